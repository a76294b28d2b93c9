// Package config provides centralized configuration management for the
// service. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Import    ImportConfig
	Analytics AnalyticsConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 20)
	MaxConns int `env:"DB_MAX_CONNS" default:"20"`

	// MinConns is the minimum number of connections to keep open (default: 4)
	MinConns int `env:"DB_MIN_CONNS" default:"4"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum allowed upload size in bytes (default: 25MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"26214400"`

	// PreviewLen is the number of findings returned inline (default: 25)
	PreviewLen int `env:"IMPORT_PREVIEW_LEN" default:"25"`

	// ReportDir is where error reports are persisted (default: tmp/error_reports)
	ReportDir string `env:"IMPORT_REPORT_DIR" default:"tmp/error_reports"`
}

// AnalyticsConfig holds dashboard query defaults.
type AnalyticsConfig struct {
	// DefaultWindowDays is the sales window when ?days is absent (default: 30)
	DefaultWindowDays int `env:"ANALYTICS_DEFAULT_WINDOW_DAYS" default:"30"`

	// DefaultAlertLimit is the alert cap when ?limit is absent (default: 25)
	DefaultAlertLimit int `env:"ANALYTICS_DEFAULT_ALERT_LIMIT" default:"25"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Validate checks the loaded configuration for nonsense values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("db max conns must be at least 1, got %d", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("db min conns %d must be between 0 and max conns %d",
			c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Import.MaxFileSize < 1 {
		return fmt.Errorf("import max file size must be positive, got %d", c.Import.MaxFileSize)
	}
	if c.Import.PreviewLen < 1 {
		return fmt.Errorf("import preview length must be positive, got %d", c.Import.PreviewLen)
	}
	if c.Import.ReportDir == "" {
		return fmt.Errorf("import report dir must not be empty")
	}
	if c.Analytics.DefaultWindowDays < 1 || c.Analytics.DefaultWindowDays > 365 {
		return fmt.Errorf("default window days %d out of range [1,365]", c.Analytics.DefaultWindowDays)
	}
	if c.Analytics.DefaultAlertLimit < 1 || c.Analytics.DefaultAlertLimit > 200 {
		return fmt.Errorf("default alert limit %d out of range [1,200]", c.Analytics.DefaultAlertLimit)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}
