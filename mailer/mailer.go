// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrSend marks a transport failure. The verification code persisted before
// dispatch stays valid, so callers report the failure without rolling back.
var ErrSend = errors.New("failed to send email")

// Sender is the email dispatch capability the handlers consume. The core
// never sees SMTP or SendGrid mechanics, only this contract.
type Sender interface {
	Send(ctx context.Context, toEmail, subject, plainBody, htmlBody string) error
}

// SendGridSender dispatches through the SendGrid v3 mail API.
type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
	}
}

func (s *SendGridSender) Send(ctx context.Context, toEmail, subject, plainBody, htmlBody string) error {
	to := mail.NewEmail("", toEmail)
	msg := mail.NewSingleEmail(s.from, subject, to, plainBody, htmlBody)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid status %d: %s", ErrSend, resp.StatusCode, resp.Body)
	}
	return nil
}

// LogSender is the development fallback when no SendGrid key is configured.
// It writes the message to the log instead of dispatching it, which also
// gives operators a recovery path when real dispatch is down: the code in
// the log is still valid and checkable.
type LogSender struct{}

func (LogSender) Send(_ context.Context, toEmail, subject, plainBody, _ string) error {
	slog.Info("email dispatch skipped (no SendGrid key configured)",
		"to", toEmail,
		"subject", subject,
		"body", plainBody,
	)
	return nil
}
