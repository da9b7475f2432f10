// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (64KB).
	// Contact messages are the largest bodies the service accepts.
	DefaultMaxRequestSize = 64 << 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultProbeFraction places the active-section probe a third of the way down the viewport.
	DefaultProbeFraction = 1.0 / 3.0

	// DefaultFrameInterval is the scroll stream evaluation period (one 60Hz frame).
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultSubmittedWindow is how long the contact form shows its "submitted" banner.
	DefaultSubmittedWindow = 5 * time.Second

	// DefaultContactRatePerMinute is the default number of contact submissions per client per minute.
	DefaultContactRatePerMinute = 5

	// DefaultContactBurst is the default contact submission burst size.
	DefaultContactBurst = 5
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Content   ContentConfig   `koanf:"content"`
	Scroll    ScrollConfig    `koanf:"scroll"    validate:"required"`
	Contact   ContactConfig   `koanf:"contact"   validate:"required"`
	Session   SessionConfig   `koanf:"session"   validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level     string        `koanf:"level"      validate:"required,oneof=trace debug info warn error"`
	Format    string        `koanf:"format"     validate:"required,oneof=json text pretty"`
	SkipPaths []string      `koanf:"skip_paths"`
	File      LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ContentConfig points at the portfolio content document.
// An empty Path selects the content compiled into the binary.
type ContentConfig struct {
	Path string `koanf:"path"`
}

// ScrollConfig tunes the scroll tracker and its stream endpoint.
type ScrollConfig struct {
	ProbeFraction   float64       `koanf:"probe_fraction"    validate:"gt=0,lt=1"`
	FrameInterval   time.Duration `koanf:"frame_interval"    validate:"required,min=1ms,max=1s"`
	InitialSection  string        `koanf:"initial_section"   validate:"required,section"`
	MaxMessageBytes int64         `koanf:"max_message_bytes" validate:"required,min=256"`
}

// ContactConfig contains contact form settings.
type ContactConfig struct {
	SubmittedWindow time.Duration      `koanf:"submitted_window" validate:"required,min=10ms"`
	RateLimit       RateLimitConfig    `koanf:"rate_limit"       validate:"required"`
	Store           ContactStoreConfig `koanf:"store"`
}

// RateLimitConfig configures per-client submission limits.
type RateLimitConfig struct {
	PerMinute       float64       `koanf:"per_minute"       validate:"required,gt=0"`
	Burst           int           `koanf:"burst"            validate:"required,min=1"`
	CleanupInterval time.Duration `koanf:"cleanup_interval" validate:"required,min=1s"`
}

// ContactStoreConfig enables the sqlite submission log.
type ContactStoreConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path" validate:"required_if=Enabled true"`
}

// SessionConfig controls visitor session lifetime.
type SessionConfig struct {
	CookieName      string        `koanf:"cookie_name"      validate:"required"`
	IdleTTL         time.Duration `koanf:"idle_ttl"         validate:"required,min=1s"`
	CleanupInterval time.Duration `koanf:"cleanup_interval" validate:"required,min=1s"`
	Secure          bool          `koanf:"secure"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "portfolio",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "15s",
		"server.write_timeout":    "15s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.skip_paths":       []string{"/-/**", "/static/**", "/favicon.ico"},
		"log.file.enabled":     false,
		"log.file.path":        "./logs/portfolio.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "portfolio",
		"telemetry.sampling_rate": 1.0,

		"content.path": "",

		"scroll.probe_fraction":    DefaultProbeFraction,
		"scroll.frame_interval":    "16ms",
		"scroll.initial_section":   "hero",
		"scroll.max_message_bytes": 16 << 10,

		"contact.submitted_window":            "5s",
		"contact.rate_limit.per_minute":       DefaultContactRatePerMinute,
		"contact.rate_limit.burst":            DefaultContactBurst,
		"contact.rate_limit.cleanup_interval": "5m",
		"contact.store.enabled":               false,
		"contact.store.path":                  "./data/contact.db",

		"session.cookie_name":      "pf_session",
		"session.idle_ttl":         "30m",
		"session.cleanup_interval": "1m",
		"session.secure":           false,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix), including those read from .env
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Populate the process environment from .env without overriding real variables
	err = loadDotEnv(".env")
	if err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	// 5. Load environment variables with APP_ prefix
	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// multiWordKeys are config keys that contain underscores. APP_CONTACT_RATE_LIMIT_PER_MINUTE
// must become contact.rate_limit.per_minute rather than contact.rate.limit.per.minute.
var multiWordKeys = []string{
	"read_timeout", "write_timeout", "idle_timeout", "shutdown_timeout", "request_timeout",
	"max_request_size", "skip_paths", "max_size", "max_backups", "max_age",
	"service_name", "sampling_rate", "probe_fraction", "frame_interval", "initial_section",
	"max_message_bytes", "submitted_window", "rate_limit", "per_minute", "cleanup_interval",
	"cookie_name", "idle_ttl",
}

// envKey maps APP_SERVER_READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "_", ".")

	for _, word := range multiWordKeys {
		key = strings.ReplaceAll(key, strings.ReplaceAll(word, "_", "."), word)
	}

	return key
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// loadDotEnv reads a dotenv file into the process environment if it exists.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return godotenv.Load(path)
}
