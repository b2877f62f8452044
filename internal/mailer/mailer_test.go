package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nutrition-tracker/internal/nutrition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

// --- Mocks ---
type mockTransport struct {
	raw     []byte
	from    string
	to      string
	err     error
	authErr bool
}

func (m *mockTransport) Deliver(ctx context.Context, from, to string, gm *gomail.Message) error {
	if m.err != nil {
		return m.err
	}
	raw, err := render(gm)
	if err != nil {
		return err
	}
	m.raw, m.from, m.to = raw, from, to
	return nil
}

func (m *mockTransport) IsAuthError(err error) bool {
	return m.authErr
}

// --- Tests ---

func TestMailerSend(t *testing.T) {
	attachment := filepath.Join(t.TempDir(), "nutrition_data_apple_2025-07-30.txt")
	require.NoError(t, os.WriteFile(attachment, []byte("report content"), 0644))

	t.Run("WithAttachment", func(t *testing.T) {
		transport := &mockTransport{}
		console := &bytes.Buffer{}
		m := NewMailer("sender@example.com", transport, console, nil)

		receipt, err := m.Send(context.Background(), Message{
			Subject:        "Nutrition Report for: apple (2025-07-30)",
			Body:           "Hello",
			To:             "receiver@example.com",
			AttachmentPath: attachment,
		})
		require.NoError(t, err)
		assert.True(t, receipt.Attached)
		assert.NoError(t, receipt.AttachmentErr)

		raw := string(transport.raw)
		assert.Equal(t, "receiver@example.com", transport.to)
		assert.Contains(t, raw, "Subject: Nutrition Report for: apple (2025-07-30)")
		assert.Contains(t, raw, "Content-Disposition: attachment")
		assert.Contains(t, raw, "nutrition_data_apple_2025-07-30.txt")
		assert.Contains(t, raw, base64.StdEncoding.EncodeToString([]byte("report content")))
		assert.Contains(t, console.String(), "Email sent successfully to receiver@example.com!")
	})

	t.Run("MissingAttachmentStillSends", func(t *testing.T) {
		transport := &mockTransport{}
		console := &bytes.Buffer{}
		m := NewMailer("sender@example.com", transport, console, nil)

		receipt, err := m.Send(context.Background(), Message{
			Subject:        "s",
			Body:           "Hello",
			To:             "receiver@example.com",
			AttachmentPath: filepath.Join(t.TempDir(), "gone.txt"),
		})
		require.NoError(t, err)
		assert.False(t, receipt.Attached)
		assert.Equal(t, nutrition.KindAttachment, nutrition.KindOf(receipt.AttachmentErr))
		assert.NotContains(t, string(transport.raw), "Content-Disposition: attachment")
		assert.Contains(t, console.String(), "Could not attach file")
	})

	t.Run("AuthFailure", func(t *testing.T) {
		transport := &mockTransport{err: errors.New("535 bad credentials"), authErr: true}
		console := &bytes.Buffer{}
		m := NewMailer("sender@example.com", transport, console, nil)

		_, err := m.Send(context.Background(), Message{To: "receiver@example.com"})
		assert.Equal(t, nutrition.KindDeliveryAuth, nutrition.KindOf(err))
		assert.Contains(t, console.String(), "Email authentication failed")
	})

	t.Run("GenericFailure", func(t *testing.T) {
		transport := &mockTransport{err: errors.New("connection reset")}
		m := NewMailer("sender@example.com", transport, nil, nil)

		_, err := m.Send(context.Background(), Message{To: "receiver@example.com"})
		assert.Equal(t, nutrition.KindDelivery, nutrition.KindOf(err))
	})
}

func TestSubjectAndBody(t *testing.T) {
	day := time.Date(2025, time.July, 30, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "Nutrition Report for: apple (2025-07-30)", Subject("apple", day))

	body := Body("apple", "REPORT")
	assert.Contains(t, body, "nutritional information for 'apple'")
	assert.Contains(t, body, "\n\nREPORT\n\n")
	assert.True(t, len(body) > len("REPORT"))
}

type mockDialer struct {
	sent int
	err  error
}

func (d *mockDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent += len(m)
	return nil
}

func TestSMTPTransport(t *testing.T) {
	t.Run("Deliver", func(t *testing.T) {
		d := &mockDialer{}
		tr := &SMTPTransport{dialer: d}
		require.NoError(t, tr.Deliver(context.Background(), "a", "b", gomail.NewMessage()))
		assert.Equal(t, 1, d.sent)
	})

	t.Run("IsAuthError", func(t *testing.T) {
		tr := NewSMTPTransport("smtp.example.com", 465, "user", "pass")
		assert.True(t, tr.IsAuthError(&textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"}))
		assert.True(t, tr.IsAuthError(&textproto.Error{Code: 534, Msg: "5.7.9 Application-specific password required"}))
		assert.False(t, tr.IsAuthError(&textproto.Error{Code: 550, Msg: "mailbox unavailable"}))
		assert.False(t, tr.IsAuthError(errors.New("dial tcp: i/o timeout")))
	})
}
