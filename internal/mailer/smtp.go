package mailer

import (
	"context"
	"errors"
	"net/textproto"

	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPTransport sends through an SMTP server. Port 465 uses implicit TLS.
type SMTPTransport struct {
	dialer dialer
}

// NewSMTPTransport creates a transport authenticating as username.
func NewSMTPTransport(host string, port int, username, password string) *SMTPTransport {
	return &SMTPTransport{dialer: gomail.NewDialer(host, port, username, password)}
}

// Deliver sends m. The envelope addresses come from the message headers.
func (t *SMTPTransport) Deliver(_ context.Context, _, _ string, m *gomail.Message) error {
	if t.dialer == nil {
		return errNoTransport
	}
	return t.dialer.DialAndSend(m)
}

// IsAuthError matches the 534/535 replies servers send for rejected credentials.
func (t *SMTPTransport) IsAuthError(err error) bool {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		return protoErr.Code == 534 || protoErr.Code == 535
	}
	return false
}
