package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, body string
	err               error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func TestEmailAlerterMailsOperator(t *testing.T) {
	mailer := &fakeMailer{}
	alerter := NewEmailAlerter(mailer, "ops@example.com")
	alerter.async = false

	conf := validConfirmation()
	conf.Name = "<script>"
	alerter.StorageFailure(context.Background(), conf, errors.New("disk full"))

	require.Equal(t, "ops@example.com", mailer.to)
	assert.Contains(t, mailer.subject, "pay_1")
	assert.Contains(t, mailer.body, "order_1")
	assert.Contains(t, mailer.body, "disk full")
	assert.Contains(t, mailer.body, "&lt;script&gt;")
	assert.NotContains(t, mailer.body, "<script>")
}

func TestEmailAlerterSendFailureIsSwallowed(t *testing.T) {
	alerter := NewEmailAlerter(&fakeMailer{err: errors.New("smtp down")}, "ops@example.com")
	alerter.async = false

	assert.NotPanics(t, func() {
		alerter.StorageFailure(context.Background(), validConfirmation(), errors.New("disk full"))
	})
}
