// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrTemplate marks template loading or rendering failures. These are
// server-side defects, distinct from authentication failures and from
// transport errors, and must never be silently swallowed.
var ErrTemplate = errors.New("email template error")

// defaultTemplate is used when no EMAIL_TEMPLATE path is configured.
const defaultTemplate = `<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; margin: 0; padding: 24px;">
    <h2>Your verification code</h2>
    <p>Use this code to sign in and cast your vote:</p>
    <p style="font-size: 32px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
    <p>The code expires in {{.TTLMinutes}} minutes. If you did not request it, ignore this email.</p>
  </body>
</html>
`

// RenderCodeEmail produces the HTML body for a verification email.
// templatePath may be empty, selecting the built-in template. A custom
// template sees {{.Code}} and {{.TTLMinutes}}.
func RenderCodeEmail(templatePath, code string, ttlMinutes int) (string, error) {
	var tmpl *template.Template
	var err error

	if templatePath == "" {
		tmpl, err = template.New("code_email").Parse(defaultTemplate)
	} else {
		tmpl, err = template.ParseFiles(templatePath)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	var buf strings.Builder
	err = tmpl.Execute(&buf, struct {
		Code       string
		TTLMinutes int
	}{Code: code, TTLMinutes: ttlMinutes})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.String(), nil
}
