package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "portfolio", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "hero", cfg.Scroll.InitialSection)
	assert.InDelta(t, DefaultProbeFraction, cfg.Scroll.ProbeFraction, 1e-9)
	assert.Equal(t, "pf_session", cfg.Session.CookieName)
	assert.Empty(t, cfg.Content.Path)
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_CONTACT_SUBMITTED_WINDOW", "2s")
	t.Setenv("APP_CONTACT_RATE_LIMIT_PER_MINUTE", "12")
	t.Setenv("APP_SCROLL_FRAME_INTERVAL", "33ms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.Contact.SubmittedWindow)
	assert.InDelta(t, 12.0, cfg.Contact.RateLimit.PerMinute, 1e-9)
	assert.Equal(t, 33*time.Millisecond, cfg.Scroll.FrameInterval)
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultFrameInterval, cfg.Scroll.FrameInterval)
	assert.Equal(t, DefaultSubmittedWindow, cfg.Contact.SubmittedWindow)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "portfolio", cfg.App.Name)
}

// TestLoad_ProfileFile tests that a profile YAML file overrides defaults.
func TestLoad_ProfileFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "qa.yaml"), []byte(`
app:
  environment: qa
contact:
  store:
    enabled: true
    path: /tmp/contact.db
`), 0o600))

	t.Chdir(dir)

	cfg, err := Load("qa")
	require.NoError(t, err)

	assert.Equal(t, "qa", cfg.App.Environment)
	assert.True(t, cfg.Contact.Store.Enabled)
	assert.Equal(t, "/tmp/contact.db", cfg.Contact.Store.Path)
}

// TestLoad_DotEnv tests that a .env file feeds APP_ variables without overriding the environment.
func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("APP_SERVER_PORT=7070\nAPP_LOG_FORMAT=text\n"), 0o600))

	t.Chdir(dir)
	t.Setenv("APP_LOG_FORMAT", "pretty")
	t.Cleanup(func() { _ = os.Unsetenv("APP_SERVER_PORT") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "pretty", cfg.Log.Format)
}

// TestLoad_BoolEnvVar tests that boolean environment variables are parsed correctly.
func TestLoad_BoolEnvVar(t *testing.T) {
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/portfolio.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
	assert.Contains(t, cfg.Log.SkipPaths, "/static/**")
}

// TestLoad_ContactDefaults tests the contact form defaults.
func TestLoad_ContactDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.InDelta(t, float64(DefaultContactRatePerMinute), cfg.Contact.RateLimit.PerMinute, 1e-9)
	assert.Equal(t, DefaultContactBurst, cfg.Contact.RateLimit.Burst)
	assert.Equal(t, 5*time.Minute, cfg.Contact.RateLimit.CleanupInterval)
	assert.False(t, cfg.Contact.Store.Enabled)
}

// TestDefaults tests that the defaults map contains expected values.
func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "portfolio", d["app.name"])
	assert.Equal(t, "dev", d["app.version"])
	assert.Equal(t, "local", d["app.environment"])
	assert.Equal(t, DefaultServerPort, d["server.port"])
	assert.Equal(t, "0.0.0.0", d["server.host"])
	assert.Equal(t, "info", d["log.level"])
	assert.Equal(t, "json", d["log.format"])
	assert.Equal(t, "hero", d["scroll.initial_section"])
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"APP_SERVER_PORT", "server.port"},
		{"APP_SERVER_READ_TIMEOUT", "server.read_timeout"},
		{"APP_SERVER_MAX_REQUEST_SIZE", "server.max_request_size"},
		{"APP_CONTACT_RATE_LIMIT_PER_MINUTE", "contact.rate_limit.per_minute"},
		{"APP_CONTACT_STORE_ENABLED", "contact.store.enabled"},
		{"APP_SESSION_IDLE_TTL", "session.idle_ttl"},
		{"APP_LOG_FILE_MAX_BACKUPS", "log.file.max_backups"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}
