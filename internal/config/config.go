// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads oBlog settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"your-jwt-secret-goes-here-please!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string        `env:"OBLOG_DB_PATH" envDefault:"./data/oblog.db"`
	JWTSecret  string        `env:"OBLOG_JWT_SECRET,required"`
	JWTIssuer  string        `env:"OBLOG_JWT_ISSUER" envDefault:"oblog"`
	TokenTTL   time.Duration `env:"OBLOG_TOKEN_TTL" envDefault:"1h"`
	ServerHost string        `env:"OBLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort int           `env:"OBLOG_SERVER_PORT" envDefault:"5000"`
	Env        string        `env:"OBLOG_ENV" envDefault:"development"`
	LogLevel   string        `env:"OBLOG_LOG_LEVEL" envDefault:"info"`
	DoSeed     bool          `env:"OBLOG_DO_SEED" envDefault:"false"`

	// Upload blob store
	UploadsDir     string `env:"OBLOG_UPLOADS_DIR" envDefault:"./uploads"`
	UploadMaxBytes int64  `env:"OBLOG_UPLOAD_MAX_BYTES" envDefault:"10485760"`
	UploadMaxWidth int    `env:"OBLOG_UPLOAD_MAX_WIDTH" envDefault:"2048"`

	// Cache configuration
	RedisURL     string `env:"OBLOG_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"OBLOG_CACHE_PREFIX" envDefault:"oblog:"`  // Redis key prefix
	CacheTTL     int    `env:"OBLOG_CACHE_TTL" envDefault:"60"`         // Public projection TTL in seconds
	CacheMaxSize int    `env:"OBLOG_CACHE_MAX_SIZE" envDefault:"1000"`  // Max memory cache entries

	// AI suggestion adapter (OpenAI-compatible chat completions)
	AIAPIKey  string        `env:"OBLOG_AI_API_KEY"`
	AIBaseURL string        `env:"OBLOG_AI_BASE_URL" envDefault:"https://api.openai.com/v1/"`
	AIModel   string        `env:"OBLOG_AI_MODEL" envDefault:"gpt-4o-mini"`
	AITimeout time.Duration `env:"OBLOG_AI_TIMEOUT" envDefault:"30s"`

	// Lifecycle event sink
	KafkaBrokers []string `env:"OBLOG_KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"OBLOG_KAFKA_TOPIC" envDefault:"oblog.events"`

	EventRetentionDays int      `env:"OBLOG_EVENT_RETENTION_DAYS" envDefault:"30"`
	CORSOrigins        []string `env:"OBLOG_CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Public site identity used in feeds, sitemap and robots.txt.
	// An empty SiteURL is derived from each request.
	SiteURL  string `env:"OBLOG_SITE_URL"`
	SiteName string `env:"OBLOG_SITE_NAME" envDefault:"oBlog"`

	// Request limits
	RateLimitRPS     float64       `env:"OBLOG_RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst   int           `env:"OBLOG_RATE_LIMIT_BURST" envDefault:"40"`
	UserRateLimitRPS float64       `env:"OBLOG_USER_RATE_LIMIT_RPS" envDefault:"5"`
	UserRateBurst    int           `env:"OBLOG_USER_RATE_LIMIT_BURST" envDefault:"20"`
	RequestTimeout   time.Duration `env:"OBLOG_REQUEST_TIMEOUT" envDefault:"30s"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// AIEnabled returns true if an AI provider key is configured.
func (c Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}

// KafkaEnabled returns true if lifecycle events should be sent to Kafka.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaTopic != ""
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinJWTSecretLength is the minimum required length for the token signing secret.
// HS256 keys shorter than the hash output weaken the signature.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("OBLOG_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("OBLOG_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("OBLOG_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("OBLOG_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.UploadMaxBytes <= 0 {
		return nil, fmt.Errorf("OBLOG_UPLOAD_MAX_BYTES must be positive, got %d", cfg.UploadMaxBytes)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("OBLOG_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
