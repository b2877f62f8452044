package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
	"gopkg.in/gomail.v2"
)

type sesRawAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESTransport sends raw MIME messages through Amazon SES.
type SESTransport struct {
	client sesRawAPI
}

// NewSESTransport loads the default AWS credential chain for region.
func NewSESTransport(ctx context.Context, region string) (*SESTransport, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("AWS config load failed: %w", err)
	}
	return &SESTransport{client: ses.NewFromConfig(cfg)}, nil
}

// Deliver renders m and submits it with SendRawEmail so attachments survive.
func (t *SESTransport) Deliver(ctx context.Context, from, to string, m *gomail.Message) error {
	raw, err := render(m)
	if err != nil {
		return err
	}
	_, err = t.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: raw},
		Source:       aws.String(from),
		Destinations: []string{to},
	})
	if err != nil {
		return fmt.Errorf("SES send error: %w", err)
	}
	return nil
}

var sesAuthCodes = map[string]bool{
	"InvalidClientTokenId":        true,
	"SignatureDoesNotMatch":       true,
	"UnrecognizedClientException": true,
	"AccessDenied":                true,
	"AccessDeniedException":       true,
	"ExpiredToken":                true,
}

// IsAuthError reports whether SES rejected the request's credentials.
func (t *SESTransport) IsAuthError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return sesAuthCodes[apiErr.ErrorCode()]
	}
	return false
}
