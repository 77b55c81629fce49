// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Session  SessionConfig
	Summary  SummaryConfig
	Invoice  InvoiceConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Driver is one of memory, sqlite, postgres (default: memory)
	Driver string `env:"STORAGE_DRIVER" default:"memory"`

	// SQLitePath is the database file for the sqlite driver (default: data/clock2doc.db)
	SQLitePath string `env:"SQLITE_PATH" default:"data/clock2doc.db"`

	// URL is the PostgreSQL connection string, required for the postgres driver.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// UploadConfig holds export upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of parallel imports (default: 5)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"5"`

	// MaxWaitTime is how long to wait for an import slot (default: 10s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"10s"`

	// Timeout is the maximum duration for a single import (default: 1m)
	Timeout time.Duration `env:"UPLOAD_TIMEOUT" default:"1m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for import endpoints (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10"`

	// ContactLimit is requests per minute for the contact form (default: 5)
	ContactLimit int `env:"RATE_LIMIT_CONTACT" default:"5"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AdminSecret unlocks the admin inbox until it is changed through the
	// API. Empty disables the inbox.
	AdminSecret string `env:"ADMIN_SECRET"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// SessionConfig controls how long drafts live.
type SessionConfig struct {
	// DraftTTL is how long an untouched draft is kept (default: 168h)
	DraftTTL time.Duration `env:"DRAFT_TTL" default:"168h"`

	// SweepInterval is how often expired drafts are deleted (default: 1h)
	SweepInterval time.Duration `env:"DRAFT_SWEEP_INTERVAL" default:"1h"`
}

// SummaryConfig configures executive summary generation.
type SummaryConfig struct {
	// APIKey is the Anthropic API key. Empty disables generation and the
	// fixed fallback summary is used instead.
	APIKey string `env:"ANTHROPIC_API_KEY"`

	// Model is the model used for summaries (default: claude-3-5-haiku-latest)
	Model string `env:"SUMMARY_MODEL" default:"claude-3-5-haiku-latest"`

	// MaxTokens caps the summary length (default: 300)
	MaxTokens int `env:"SUMMARY_MAX_TOKENS" default:"300"`

	// Timeout bounds one generation request (default: 20s)
	Timeout time.Duration `env:"SUMMARY_TIMEOUT" default:"20s"`
}

// InvoiceConfig holds the starting values of every new invoice.
type InvoiceConfig struct {
	// Currency is the display symbol (default: $)
	Currency string `env:"INVOICE_CURRENCY" default:"$"`

	// HourlyRate prices items the export left unpriced (default: 50)
	HourlyRate float64 `env:"INVOICE_HOURLY_RATE" default:"50"`

	// TaxRate is a percentage (default: 0)
	TaxRate float64 `env:"INVOICE_TAX_RATE" default:"0"`

	// Notes is the closing line (default: Thank you for your business!)
	Notes string `env:"INVOICE_NOTES" default:"Thank you for your business!"`

	// DueDays is the payment term in days (default: 14)
	DueDays int `env:"INVOICE_DUE_DAYS" default:"14"`

	// Template is modern, classic or bold (default: modern)
	Template string `env:"INVOICE_TEMPLATE" default:"modern"`

	// SenderName and SenderAddress prefill the "from" block.
	SenderName    string `env:"INVOICE_SENDER_NAME"`
	SenderAddress string `env:"INVOICE_SENDER_ADDRESS"`
}

// Addr returns the server listen address. IPv6 hosts are bracketed.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
