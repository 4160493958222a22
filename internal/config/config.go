package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Billing   BillingConfig
	Secrets   SecretsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// SecurityConfig holds shared secrets for machine callers
type SecurityConfig struct {
	CronSecret    string // authenticates POST /cron/ensure-invoices
	WebhookSecret string // authenticates payment confirmations
}

// RateLimitConfig holds per-IP HTTP rate limiting
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

// SecretsConfig selects where the database password comes from.
// With an empty DBPasswordSecret, DB_PASSWORD is used as-is.
type SecretsConfig struct {
	Backend          string // env, file, aws, vault
	DBPasswordSecret string
	FileBase         string

	AWSRegion   string
	AWSProfile  string
	AWSEndpoint string

	VaultAddress    string
	VaultAuthMethod string
	VaultToken      string
	VaultRoleID     string
	VaultSecretID   string
	VaultK8sRole    string
	VaultNamespace  string
	VaultMountPath  string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvAsInt("PORT", 8080),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "leanttro_billing"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			MaxConns: int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns: int32(getEnvAsInt("DB_MIN_CONNS", 5)),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Security: SecurityConfig{
			CronSecret:    getEnv("CRON_SECRET", ""),
			WebhookSecret: getEnv("WEBHOOK_SECRET", ""),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 20),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Billing: BillingConfig{
			RulesFile:      getEnv("BILLING_RULES_FILE", ""),
			SweepSchedule:  getEnv("BILLING_SWEEP_SCHEDULE", ""),
			SweepBatchSize: getEnvAsInt("BILLING_SWEEP_BATCH_SIZE", 100),
		},
		Secrets: SecretsConfig{
			Backend:          getEnv("SECRETS_BACKEND", "env"),
			DBPasswordSecret: getEnv("DB_PASSWORD_SECRET", ""),
			FileBase:         getEnv("SECRETS_FILE_BASE", "./secrets"),
			AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
			AWSProfile:       getEnv("AWS_PROFILE", ""),
			AWSEndpoint:      getEnv("AWS_SECRETS_ENDPOINT", ""),
			VaultAddress:     getEnv("VAULT_ADDR", "http://127.0.0.1:8200"),
			VaultAuthMethod:  getEnv("VAULT_AUTH_METHOD", "token"),
			VaultToken:       getEnv("VAULT_TOKEN", ""),
			VaultRoleID:      getEnv("VAULT_ROLE_ID", ""),
			VaultSecretID:    getEnv("VAULT_SECRET_ID", ""),
			VaultK8sRole:     getEnv("VAULT_K8S_ROLE", ""),
			VaultNamespace:   getEnv("VAULT_NAMESPACE", ""),
			VaultMountPath:   getEnv("VAULT_MOUNT_PATH", "secret"),
		},
	}

	rules, err := LoadBillingRules(cfg.Billing.RulesFile)
	if err != nil {
		return nil, err
	}
	cfg.Billing.Rules = rules

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.Database.Password == "" && c.Secrets.DBPasswordSecret == "" {
		return fmt.Errorf("DB_PASSWORD or DB_PASSWORD_SECRET is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.Billing.SweepBatchSize < 1 {
		return fmt.Errorf("BILLING_SWEEP_BATCH_SIZE must be positive")
	}
	switch c.Secrets.Backend {
	case "env", "file", "aws", "vault":
	default:
		return fmt.Errorf("SECRETS_BACKEND must be one of env, file, aws, vault, got %q", c.Secrets.Backend)
	}
	return c.Billing.Rules.Validate()
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
