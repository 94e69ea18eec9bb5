package config

import (
	"fmt"
	"os"
	"strings"

	"opportunity_followup_reminders/internal/domain/reminder"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL           string
	ResendAPIKey          string
	EmailFrom             string
	AppBaseURL            string // Base URL for deep links into the opportunity detail view
	CronSpecReminderSweep string
	HTTPListenAddr        string
	LedgerWritePolicy     reminder.WritePolicy
	LogLevel              string
	Environment           string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is not set")
	}

	cfg.EmailFrom = os.Getenv("EMAIL_FROM")
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = "CRM <no-reply@localhost>"
	}

	cfg.AppBaseURL = os.Getenv("APP_URL")
	if cfg.AppBaseURL == "" {
		cfg.AppBaseURL = "http://localhost:3000"
	}

	cfg.CronSpecReminderSweep = os.Getenv("CRON_SPEC_REMINDER_SWEEP")
	if cfg.CronSpecReminderSweep == "" {
		cfg.CronSpecReminderSweep = "*/15 * * * *" // Default: every 15 minutes
	}

	cfg.HTTPListenAddr = os.Getenv("HTTP_LISTEN_ADDR")
	if cfg.HTTPListenAddr == "" {
		cfg.HTTPListenAddr = ":8090"
	}

	policy := strings.ToLower(os.Getenv("REMINDER_LEDGER_POLICY"))
	switch reminder.WritePolicy(policy) {
	case reminder.WriteOnAttempt, reminder.WriteOnSuccess:
		cfg.LedgerWritePolicy = reminder.WritePolicy(policy)
	case "":
		// Matches the historical behavior: a tier is marked reminded once
		// the attempt completes, even if every individual send failed.
		cfg.LedgerWritePolicy = reminder.WriteOnAttempt
	default:
		return nil, fmt.Errorf("invalid REMINDER_LEDGER_POLICY %q (want %q or %q)", policy, reminder.WriteOnAttempt, reminder.WriteOnSuccess)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}
