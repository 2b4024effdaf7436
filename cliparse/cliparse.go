package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Who may vote and (optionally) who may be voted for.
	AllowedEmails []string
	Contestants   []string

	// Lifetimes. TokenTTL == 0 disables token expiry.
	CodeTTL  time.Duration
	TokenTTL time.Duration

	// Email dispatch (empty API key switches to the log-only sender).
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	TemplatePath   string
}

// ParseFlags validates flags and builds the immutable Config.
// Every component receives this struct at construction; nothing reads
// the environment after startup.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ballotbox", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SendGridAPIKey, "sendgrid-key", "", "SendGrid API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	// Allow-list - MUST be provided; an empty electorate is a deployment error
	cfg.AllowedEmails = splitList(os.Getenv("ALLOWED_EMAILS"))
	if len(cfg.AllowedEmails) == 0 {
		return Config{}, errors.New("ALLOWED_EMAILS required (comma-separated allow-list)")
	}

	// Contestant whitelist is optional; empty means any contestant ID is accepted
	cfg.Contestants = splitList(os.Getenv("CONTESTANTS"))

	var err error
	cfg.CodeTTL, err = ttlFromEnv("CODE_TTL_SECONDS", 600*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.TokenTTL, err = ttlFromEnv("TOKEN_TTL_SECONDS", 0)
	if err != nil {
		return Config{}, err
	}

	// Email dispatch settings
	if cfg.SendGridAPIKey == "" {
		cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	}
	cfg.FromEmail = os.Getenv("FROM_EMAIL")
	cfg.FromName = os.Getenv("FROM_NAME")
	if cfg.FromName == "" {
		cfg.FromName = "Ballot Box"
	}
	cfg.TemplatePath = os.Getenv("EMAIL_TEMPLATE")
	if cfg.SendGridAPIKey != "" && cfg.FromEmail == "" {
		return Config{}, errors.New("FROM_EMAIL required when SENDGRID_API_KEY is set")
	}

	return cfg, nil
}

// splitList parses a comma-separated env value, trimming whitespace and
// dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func ttlFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0, errors.New("invalid " + key + " env variable")
	}
	return time.Duration(secs) * time.Second, nil
}
