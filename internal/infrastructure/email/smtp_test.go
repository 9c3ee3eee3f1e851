package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func newTestService(d dialer) *SMTPEmailService {
	s := NewSMTPEmailService(SMTPConfig{
		Host:        "localhost",
		Port:        1025,
		FromAddress: "tracker@example.com",
		FromName:    "Tracker",
	})
	s.dialer = d
	return s
}

func TestSMTPEmailService_Send(t *testing.T) {
	d := &recordingDialer{}
	s := newTestService(d)

	err := s.Send(context.Background(),
		Message{To: "alice@example.com", Subject: "[Demo] #1: Crash", PlainBody: "plain", HTMLBody: "<p>html</p>"},
		Message{To: "bob@example.com", Subject: "[Demo] #1: Crash", PlainBody: "plain", Headers: map[string]string{"X-Tracker-Issue": "demo#1"}},
	)
	require.NoError(t, err)
	require.Len(t, d.sent, 2)

	assert.Equal(t, []string{"alice@example.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{`"Tracker" <tracker@example.com>`}, d.sent[0].GetHeader("From"))
	assert.Equal(t, []string{"demo#1"}, d.sent[1].GetHeader("X-Tracker-Issue"))

	var buf bytes.Buffer
	_, err = d.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestSMTPEmailService_SendErrors(t *testing.T) {
	s := newTestService(&recordingDialer{err: errors.New("connection refused")})
	err := s.Send(context.Background(), Message{To: "alice@example.com"})
	assert.ErrorContains(t, err, "connection refused")

	d := &recordingDialer{}
	s = newTestService(d)
	require.NoError(t, s.Send(context.Background()))
	assert.Empty(t, d.sent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{To: "alice@example.com"}), context.Canceled)
}
