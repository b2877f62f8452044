package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archiver copies a relocated report to long-term storage.
type Archiver interface {
	Archive(ctx context.Context, filePath string) (string, error)
}

// s3PutAPI is the subset of the S3 client the archiver needs.
type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver uploads reports to an S3 bucket under the reports/ prefix.
type S3Archiver struct {
	client s3PutAPI
	bucket string
}

// NewS3Archiver loads the default AWS credential chain for region.
func NewS3Archiver(ctx context.Context, region, bucket string) (*S3Archiver, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}
	return &S3Archiver{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Archive uploads the file and returns its s3:// URI.
func (a *S3Archiver) Archive(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s for archiving: %w", filePath, err)
	}

	key := path.Join("reports", filepath.Base(filePath))
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}
