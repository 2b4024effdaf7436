// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

The struct is immutable after parsing. Components receive it at
construction and never read the environment themselves.

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AllowedEmails: the voter allow-list (required, non-empty)
  - Contestants: optional contestant whitelist (empty accepts any ID)
  - CodeTTL: verification code lifetime (default 600s)
  - TokenTTL: bearer token lifetime (default 0 = no expiry)
  - SendGridAPIKey, FromEmail, FromName, TemplatePath: email dispatch

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	--sendgrid-key SendGrid API key (prefer env)

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	SENDGRID_API_KEY  → --sendgrid-key

List and lifetime settings are env-only:

	ALLOWED_EMAILS     comma-separated allow-list (required)
	CONTESTANTS        comma-separated contestant whitelist
	CODE_TTL_SECONDS   verification code TTL
	TOKEN_TTL_SECONDS  token TTL (0 disables expiry)
	FROM_EMAIL         sender address (required with SendGrid)
	FROM_NAME          sender display name
	EMAIL_TEMPLATE     path to an HTML template overriding the built-in one

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ALLOWED_EMAILS must name at least one voter
  - FROM_EMAIL must be set whenever SENDGRID_API_KEY is
*/
package cliparse
