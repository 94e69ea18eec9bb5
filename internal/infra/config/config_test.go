package config

import (
	"testing"

	"opportunity_followup_reminders/internal/domain/reminder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("RESEND_API_KEY", "re_test_key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.AppBaseURL)
	assert.Equal(t, "*/15 * * * *", cfg.CronSpecReminderSweep)
	assert.Equal(t, ":8090", cfg.HTTPListenAddr)
	assert.Equal(t, reminder.WriteOnAttempt, cfg.LedgerWritePolicy)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RESEND_API_KEY", "re_test_key")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadMissingResendKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("RESEND_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestLoadLedgerPolicy(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("REMINDER_LEDGER_POLICY", "success")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, reminder.WriteOnSuccess, cfg.LedgerWritePolicy)
}

func TestLoadInvalidLedgerPolicy(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("REMINDER_LEDGER_POLICY", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMINDER_LEDGER_POLICY")
}
