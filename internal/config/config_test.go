package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TIMETRACKER_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_DRIVER", "")
	os.Unsetenv("DB_DRIVER")

	cfg := config.LoadConfig()
	assert.Equal(t, config.DriverSQLite, cfg.DbDriver)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "timetracker.db", cfg.DbPath)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("JIRA_DOMAIN=example.atlassian.net\nAPP_PORT=9191\n"), 0o600))
	t.Setenv("TIMETRACKER_ENV_FILE", envFile)
	t.Setenv("JIRA_DOMAIN", "")
	os.Unsetenv("JIRA_DOMAIN")
	t.Setenv("APP_PORT", "")
	os.Unsetenv("APP_PORT")

	cfg := config.LoadConfig()
	assert.Equal(t, "example.atlassian.net", cfg.Jira.Domain)
	assert.Equal(t, "9191", cfg.AppPort)
	assert.Equal(t, envFile, cfg.EnvFile)
}

func TestLoadConfig_TrustedProxies(t *testing.T) {
	t.Setenv("TIMETRACKER_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,192.168.0.1 ")

	cfg := config.LoadConfig()
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.1"}, cfg.TrustedProxies)
}

func TestCredentials_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", ".env")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9000\n"), 0o600))

	creds := config.JiraCredentials{Domain: "example.atlassian.net", Email: "me@example.com", APIToken: "secret"}
	require.NoError(t, config.SaveCredentials(path, creds))

	got, err := config.LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "APP_PORT")
}

func TestCredentials_RejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	err := config.SaveCredentials(path, config.JiraCredentials{Domain: "example.atlassian.net", Email: "me@example.com"})
	require.ErrorIs(t, err, config.ErrIncompleteCredentials)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCredentials_OAuthTokenIsEnough(t *testing.T) {
	creds := config.JiraCredentials{Domain: "example.atlassian.net", OAuthToken: "token"}
	assert.True(t, creds.Complete())
	assert.False(t, config.JiraCredentials{OAuthToken: "token"}.Complete())
}

func TestSettings_MissingFileGivesDefaults(t *testing.T) {
	settings, err := config.LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), settings)
}

func TestSettings_OverlayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
issue_key_prefix: WPM-
tasks:
  - Planning
reminder:
  interval: 5m
notifications:
  enabled: false
`), 0o644))

	settings, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "WPM-", settings.IssueKeyPrefix)
	assert.Equal(t, []string{"Planning"}, settings.Tasks)
	assert.Equal(t, 5*time.Minute, settings.Reminder.Interval)
	assert.True(t, settings.Reminder.Enabled)
	assert.False(t, settings.Notifications.Enabled)
	assert.Equal(t, 15*time.Minute, settings.Notifications.PeriodicInterval)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	settings := config.DefaultSettings()
	settings.IssueKeyPrefix = "PROJ-"
	settings.Notifications.LongRunningInterval = 45 * time.Minute

	require.NoError(t, config.SaveSettings(path, settings))

	got, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}
