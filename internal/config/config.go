package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress     string   `env:"RUN_ADDRESS" envDefault:":8080"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	DatabaseURI    string   `env:"DATABASE_URI"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`

	AuthSecret     string        `env:"AUTH_SECRET" envDefault:"change-me-in-production"`
	AuthSecretFile string        `env:"AUTH_SECRET_FILE"`
	AuthStrategy   string        `env:"AUTH_STRATEGY" envDefault:"jwt"`
	AuthTokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"12h"`
	AdminLogin     string        `env:"ADMIN_LOGIN"`
	AdminPassword  string        `env:"ADMIN_PASSWORD"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	UploadMaxSize          int64         `env:"UPLOAD_MAX_SIZE" envDefault:"10485760"`
	UploadAllowedTypes     []string      `env:"UPLOAD_ALLOWED_TYPES" envSeparator:","`
	UploadStrictValidation bool          `env:"UPLOAD_STRICT_VALIDATION" envDefault:"true"`
	UploadRateLimit        int           `env:"UPLOAD_RATE_LIMIT" envDefault:"5"`
	UploadRateWindow       time.Duration `env:"UPLOAD_RATE_WINDOW" envDefault:"1m"`
	RateLimitBackend       string        `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`

	PaymentLockFinalized bool `env:"PAYMENT_LOCK_FINALIZED" envDefault:"false"`

	RetentionInterval      time.Duration `env:"RETENTION_INTERVAL" envDefault:"1h"`
	SecurityEventRetention time.Duration `env:"SECURITY_EVENT_RETENTION" envDefault:"720h"`

	KafkaBrokers        []string `env:"KAFKA_BROKERS" envSeparator:","`
	SecurityEventsTopic string   `env:"SECURITY_EVENTS_TOPIC" envDefault:"printshop.security-events"`

	OrdersPageSize    int `env:"ORDERS_PAGE_SIZE" envDefault:"20"`
	OrdersMaxPageSize int `env:"ORDERS_MAX_PAGE_SIZE" envDefault:"100"`
}

const (
	RateLimitMemory   = "memory"
	RateLimitPostgres = "postgres"
)

const (
	defaultShutdownTimeout   = 10 * time.Second
	defaultAuthTokenTTL      = 12 * time.Hour
	defaultUploadMaxSize     = 10 << 20
	defaultUploadRateLimit   = 5
	defaultUploadRateWindow  = time.Minute
	defaultOrdersPageSize    = 20
	defaultOrdersMaxPageSize = 100
	defaultRetentionInterval = time.Hour
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load reads an optional .env file, then parses environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], environMap(os.Environ()))
}

func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("printshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	allowedTypes := strings.Join(cfg.UploadAllowedTypes, ",")
	kafkaBrokers := strings.Join(cfg.KafkaBrokers, ",")
	trustedProxies := strings.Join(cfg.TrustedProxies, ",")

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&trustedProxies, "trusted-proxies", trustedProxies, "Comma separated proxy IPs or CIDRs allowed to set X-Forwarded-For")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing admin tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Admin token format: jwt or hmac")
	fs.DurationVar(&cfg.AuthTokenTTL, "auth-ttl", cfg.AuthTokenTTL, "Admin token lifetime")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	fs.Int64Var(&cfg.UploadMaxSize, "upload-max-size", cfg.UploadMaxSize, "Maximum upload size in bytes")
	fs.StringVar(&allowedTypes, "upload-types", allowedTypes, "Comma separated allowed upload MIME types")
	fs.BoolVar(&cfg.UploadStrictValidation, "upload-strict", cfg.UploadStrictValidation, "Sniff upload content against declared type")
	fs.IntVar(&cfg.UploadRateLimit, "upload-rate-limit", cfg.UploadRateLimit, "Upload attempts per client per window")
	fs.DurationVar(&cfg.UploadRateWindow, "upload-rate-window", cfg.UploadRateWindow, "Upload rate limit window")
	fs.StringVar(&cfg.RateLimitBackend, "rate-limit-backend", cfg.RateLimitBackend, "Rate limit counters: memory or postgres")
	fs.BoolVar(&cfg.PaymentLockFinalized, "payment-lock-finalized", cfg.PaymentLockFinalized, "Refuse payment updates on completed or cancelled orders")
	fs.DurationVar(&cfg.RetentionInterval, "retention-interval", cfg.RetentionInterval, "How often expired rows are pruned")
	fs.DurationVar(&cfg.SecurityEventRetention, "security-event-retention", cfg.SecurityEventRetention, "Age after which security events are pruned, 0 keeps them")
	fs.StringVar(&kafkaBrokers, "kafka-brokers", kafkaBrokers, "Comma separated Kafka brokers for security events")
	fs.StringVar(&cfg.SecurityEventsTopic, "security-topic", cfg.SecurityEventsTopic, "Kafka topic for security events")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.UploadAllowedTypes = splitList(allowedTypes)
	cfg.KafkaBrokers = splitList(kafkaBrokers)
	cfg.TrustedProxies = splitList(trustedProxies)

	if cfg.AuthSecretFile != "" {
		content, err := os.ReadFile(cfg.AuthSecretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	cfg.normalize()

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}
	if !logLevels[cfg.LogLevel] {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if cfg.RateLimitBackend != RateLimitMemory && cfg.RateLimitBackend != RateLimitPostgres {
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimitBackend)
	}
	if (cfg.AdminLogin == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_LOGIN and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.RateLimitBackend = strings.ToLower(strings.TrimSpace(c.RateLimitBackend))

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.AuthTokenTTL <= 0 {
		c.AuthTokenTTL = defaultAuthTokenTTL
	}
	if c.UploadMaxSize <= 0 {
		c.UploadMaxSize = defaultUploadMaxSize
	}
	if c.UploadRateLimit <= 0 {
		c.UploadRateLimit = defaultUploadRateLimit
	}
	if c.UploadRateWindow <= 0 {
		c.UploadRateWindow = defaultUploadRateWindow
	}
	if c.RetentionInterval <= 0 {
		c.RetentionInterval = defaultRetentionInterval
	}
	if c.SecurityEventRetention < 0 {
		c.SecurityEventRetention = 0
	}
	if c.OrdersPageSize <= 0 {
		c.OrdersPageSize = defaultOrdersPageSize
	}
	if c.OrdersMaxPageSize <= 0 {
		c.OrdersMaxPageSize = defaultOrdersMaxPageSize
	}
	if c.OrdersPageSize > c.OrdersMaxPageSize {
		c.OrdersPageSize = c.OrdersMaxPageSize
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func environMap(pairs []string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		if k, v, ok := strings.Cut(pair, "="); ok {
			out[k] = v
		}
	}
	return out
}
