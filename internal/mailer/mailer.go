// Package mailer delivers nutrition reports by email.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"nutrition-tracker/internal/nutrition"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Message is a single report email.
type Message struct {
	Subject        string
	Body           string
	To             string
	AttachmentPath string // optional
}

// Receipt describes a successful delivery.
// AttachmentErr is set when the attachment was dropped and the body sent alone.
type Receipt struct {
	Attached      bool
	AttachmentErr error
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) (*Receipt, error)
}

// Transport hands a composed MIME message to a mail service.
type Transport interface {
	Deliver(ctx context.Context, from, to string, m *gomail.Message) error
	// IsAuthError reports whether err means the service rejected our credentials.
	IsAuthError(err error) bool
}

// Mailer composes report emails and delivers them through a Transport.
type Mailer struct {
	from      string
	transport Transport
	console   io.Writer
	logger    *zap.Logger
}

// NewMailer creates a Mailer sending from the given address.
func NewMailer(from string, transport Transport, console io.Writer, logger *zap.Logger) *Mailer {
	if console == nil {
		console = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{
		from:      from,
		transport: transport,
		console:   console,
		logger:    logger.Named("mailer"),
	}
}

// Send composes msg and delivers it. An unreadable attachment does not stop the send.
func (m *Mailer) Send(ctx context.Context, msg Message) (*Receipt, error) {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	receipt := &Receipt{}
	if msg.AttachmentPath != "" {
		if err := attach(gm, msg.AttachmentPath); err != nil {
			fmt.Fprintf(m.console, "  > Could not attach file '%s': %v\n", msg.AttachmentPath, err)
			m.logger.Warn("sending without attachment", zap.String("path", msg.AttachmentPath), zap.Error(err))
			receipt.AttachmentErr = nutrition.NewFailure(nutrition.KindAttachment, err)
		} else {
			receipt.Attached = true
		}
	}

	fmt.Fprintf(m.console, "  > Attempting to send email to %s...\n", msg.To)
	if err := m.transport.Deliver(ctx, m.from, msg.To, gm); err != nil {
		if m.transport.IsAuthError(err) {
			fmt.Fprintln(m.console, "  > Email authentication failed. Check your SENDER_EMAIL and SMTP_PASSWORD.")
			fmt.Fprintln(m.console, "  > For Gmail, use an App Password rather than your regular password.")
			return nil, nutrition.NewFailure(nutrition.KindDeliveryAuth, err)
		}
		fmt.Fprintf(m.console, "  > Error sending email: %v\n", err)
		return nil, nutrition.NewFailure(nutrition.KindDelivery, err)
	}

	fmt.Fprintf(m.console, "  > Email sent successfully to %s!\n", msg.To)
	return receipt, nil
}

// attach reads the file now so a missing file is caught before sending.
func attach(gm *gomail.Message, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	gm.Attach(filepath.Base(path),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/octet-stream"}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
	)
	return nil
}

// render serializes gm into raw MIME bytes.
func render(gm *gomail.Message) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := gm.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render message: %w", err)
	}
	return buf.Bytes(), nil
}

// Subject returns the report email subject for food on the day of now.
func Subject(food string, now time.Time) string {
	return fmt.Sprintf("Nutrition Report for: %s (%s)", food, now.Format("2006-01-02"))
}

// Body wraps the rendered report in a short greeting.
func Body(food, report string) string {
	return fmt.Sprintf("Hello,\n\nHere is the detailed nutritional information for '%s' that you requested via the Nutrition Tracker program.\n\n%s\n\nBest regards,\nYour Nutrition Tracker", food, report)
}

var errNoTransport = errors.New("no mail transport configured")
