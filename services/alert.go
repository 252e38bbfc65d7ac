package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/Govind-619/BuyMeAChai/utils"
)

// OperatorAlerter is told when money moved but no contribution was stored
type OperatorAlerter interface {
	StorageFailure(ctx context.Context, conf PaymentConfirmation, cause error)
}

// LogAlerter only writes the failure to the error log
type LogAlerter struct{}

func (LogAlerter) StorageFailure(_ context.Context, conf PaymentConfirmation, cause error) {
	utils.LogError("OPERATOR ACTION REQUIRED: payment %s (order %s) verified but not stored: %v",
		conf.PaymentID, conf.OrderID, cause)
}

// MailSender sends one HTML mail
type MailSender interface {
	Send(to, subject, body string) error
}

// EmailAlerter mails the operator. Sending happens in the background so the
// failing request is answered without waiting on SMTP.
type EmailAlerter struct {
	sender MailSender
	to     string
	async  bool
}

// NewEmailAlerter creates an alerter that mails to
func NewEmailAlerter(sender MailSender, to string) *EmailAlerter {
	return &EmailAlerter{sender: sender, to: to, async: true}
}

func (a *EmailAlerter) StorageFailure(ctx context.Context, conf PaymentConfirmation, cause error) {
	LogAlerter{}.StorageFailure(ctx, conf, cause)

	subject := fmt.Sprintf("[%s] Verified payment %s was not recorded", utils.AppName, conf.PaymentID)
	body := fmt.Sprintf(`
		<h2>Unrecorded chai payment</h2>
		<p>A payment passed signature verification but could not be stored. Reconcile it manually.</p>
		<ul>
			<li>Payment ID: %s</li>
			<li>Order ID: %s</li>
			<li>User ID: %s</li>
			<li>Name: %s</li>
			<li>Amount: %d</li>
			<li>Time: %s</li>
		</ul>
		<p>Cause: %s</p>
	`,
		html.EscapeString(conf.PaymentID),
		html.EscapeString(conf.OrderID),
		html.EscapeString(conf.UserID),
		html.EscapeString(conf.Name),
		conf.Amount,
		time.Now().UTC().Format(time.RFC3339),
		html.EscapeString(cause.Error()),
	)

	send := func() {
		if err := a.sender.Send(a.to, subject, body); err != nil {
			utils.LogError("Failed to alert operator about payment %s: %v", conf.PaymentID, err)
		}
	}
	if a.async {
		go send()
		return
	}
	send()
}
