package mailer

import (
	"context"
	"fmt"
	"io"

	"nutrition-tracker/internal/config"

	"go.uber.org/zap"
)

// NewFromConfig builds the Mailer for the configured delivery transport.
func NewFromConfig(ctx context.Context, cfg *config.Config, console io.Writer, logger *zap.Logger) (*Mailer, error) {
	d := cfg.Delivery
	var transport Transport
	switch d.Transport {
	case config.TransportSMTP, "":
		transport = NewSMTPTransport(d.SMTPHost, d.SMTPPort, d.SenderEmail, d.SMTPPassword)
	case config.TransportSES:
		t, err := NewSESTransport(ctx, d.AWSRegion)
		if err != nil {
			return nil, err
		}
		transport = t
	default:
		return nil, fmt.Errorf("unsupported delivery transport %q", d.Transport)
	}
	return NewMailer(d.SenderEmail, transport, console, logger), nil
}
