package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.input = params
	data, _ := io.ReadAll(params.Body)
	m.body = string(data)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Archiver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutrition_data_apple_2025-07-30.txt")
	require.NoError(t, os.WriteFile(path, []byte("report"), 0644))

	t.Run("Success", func(t *testing.T) {
		mock := &mockS3{}
		archiver := &S3Archiver{client: mock, bucket: "reports-bucket"}

		uri, err := archiver.Archive(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "s3://reports-bucket/reports/nutrition_data_apple_2025-07-30.txt", uri)
		assert.Equal(t, "reports-bucket", aws.ToString(mock.input.Bucket))
		assert.Equal(t, "reports/nutrition_data_apple_2025-07-30.txt", aws.ToString(mock.input.Key))
		assert.Equal(t, "report", mock.body)
	})

	t.Run("UploadError", func(t *testing.T) {
		archiver := &S3Archiver{client: &mockS3{err: errors.New("denied")}, bucket: "b"}
		_, err := archiver.Archive(context.Background(), path)
		assert.ErrorContains(t, err, "denied")
	})

	t.Run("MissingFile", func(t *testing.T) {
		archiver := &S3Archiver{client: &mockS3{}, bucket: "b"}
		_, err := archiver.Archive(context.Background(), filepath.Join(t.TempDir(), "gone.txt"))
		assert.Error(t, err)
	})
}
