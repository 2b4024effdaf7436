// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer provides the email dispatch capability behind a small
interface.

# The Sender Contract

Handlers depend only on:

	type Sender interface {
		Send(ctx, toEmail, subject, plainBody, htmlBody string) error
	}

Two implementations exist:

  - SendGridSender: dispatches via the SendGrid v3 mail API
  - LogSender: logs the message instead of sending (development fallback
    when no API key is configured)

# Error Categories

Dispatch and templating fail differently and are reported differently:

  - ErrTemplate: the HTML body could not be produced (500-class defect)
  - ErrSend: transport failed (502-class; the persisted verification code
    stays valid, the voter can retry or request a fresh one)

# Templates

RenderCodeEmail renders the verification email body:

	html, err := mailer.RenderCodeEmail(cfg.TemplatePath, code, 10)

With an empty path the built-in template is used. Custom templates receive
{{.Code}} and {{.TTLMinutes}}.
*/
package mailer
