package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Tokens    TokensConfig
	Argon2    Argon2Config
	Mail      MailConfig
	Log       LogConfig
	PDF       PDFConfig
	RateLimit RateLimitConfig
	Secure    SecureConfig
	CORS      CORSConfig
	Lockout   LockoutConfig
	Webhook   WebhookConfig
	Retention RetentionConfig
	Worker    WorkerConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Port string
	// BaseURL prefixes every link sent by email or handed out for sharing.
	BaseURL string
}

type DatabaseConfig struct {
	Driver string // postgres or sqlite
	URL    string
}

type RedisConfig struct {
	URL string // empty: tasks run inline
}

type SessionConfig struct {
	Secret string
	Secure bool
	MaxAge int // seconds
}

type TokensConfig struct {
	Secret        string
	ConfirmExpiry int64 // seconds
	ResetExpiry   int64 // seconds
}

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type LogConfig struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type PDFConfig struct {
	FontPath   string
	FontFamily string
}

type RateLimitConfig struct {
	RatePerIP string // ulule format, e.g. 100-M
	RateAuth  string // login, register, forgot_password and contact POSTs
}

type SecureConfig struct {
	IsDevelopment bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LockoutConfig struct {
	MaxAttempts  int
	CooldownSecs int
}

type WebhookConfig struct {
	URL    string
	Secret string // signs the body when set
}

type RetentionConfig struct {
	UnconfirmedDays int // 0 disables the purge
}

type WorkerConfig struct {
	Enabled bool
}

type MetricsConfig struct {
	Enabled bool
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads .env (if present), the optional CONFIG_FILE and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	viper.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		viper.SetConfigFile(p)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	port := getEnvOrDefault("PORT", "8080")
	cfg := &Config{
		Server: ServerConfig{
			Port:    port,
			BaseURL: strings.TrimRight(getEnvOrDefault("BASE_URL", "http://localhost:"+port), "/"),
		},
		Database: DatabaseConfig{
			Driver: getEnvOrDefault("DATABASE_DRIVER", DriverSQLite),
			URL:    getEnvOrDefault("DATABASE_URL", "file:skillcanvas.db"),
		},
		Redis: RedisConfig{
			URL: getEnvOrDefault("REDIS_URL", ""),
		},
		Session: SessionConfig{
			Secret: getEnvOrDefault("SESSION_SECRET", ""),
			Secure: viper.GetBool("SESSION_SECURE"),
			MaxAge: viper.GetInt("SESSION_MAX_AGE"),
		},
		Tokens: TokensConfig{
			Secret:        getEnvOrDefault("TOKEN_SECRET", ""),
			ConfirmExpiry: viper.GetInt64("TOKEN_CONFIRM_EXPIRY"),
			ResetExpiry:   viper.GetInt64("TOKEN_RESET_EXPIRY"),
		},
		Argon2: Argon2Config{
			Memory:      uint32(viper.GetInt("ARGON2_MEMORY")),
			Iterations:  uint32(viper.GetInt("ARGON2_ITERATIONS")),
			Parallelism: uint8(viper.GetInt("ARGON2_PARALLELISM")),
		},
		Mail: MailConfig{
			Host:     getEnvOrDefault("MAIL_HOST", ""),
			Port:     viper.GetInt("MAIL_PORT"),
			Username: getEnvOrDefault("MAIL_USERNAME", ""),
			Password: getEnvOrDefault("MAIL_PASSWORD", ""),
			From:     getEnvOrDefault("MAIL_FROM", "noreply@skillcanvas.local"),
		},
		Log: LogConfig{
			File:       getEnvOrDefault("LOG_FILE", "logs/skill_canvas.log"),
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			MaxSizeMB:  viper.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: viper.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: viper.GetInt("LOG_MAX_AGE_DAYS"),
		},
		PDF: PDFConfig{
			FontPath:   getEnvOrDefault("PDF_FONT_PATH", ""),
			FontFamily: getEnvOrDefault("PDF_FONT_FAMILY", "SheetFont"),
		},
		RateLimit: RateLimitConfig{
			RatePerIP: getEnvOrDefault("RATE_LIMIT_PER_IP", "300-M"),
			RateAuth:  getEnvOrDefault("RATE_LIMIT_AUTH", "10-M"),
		},
		Secure: SecureConfig{
			IsDevelopment: viper.GetBool("SECURE_DEV"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
		},
		Lockout: LockoutConfig{
			MaxAttempts:  viper.GetInt("LOCKOUT_MAX_ATTEMPTS"),
			CooldownSecs: viper.GetInt("LOCKOUT_COOLDOWN_SECONDS"),
		},
		Webhook: WebhookConfig{
			URL:    getEnvOrDefault("WEBHOOK_URL", ""),
			Secret: getEnvOrDefault("WEBHOOK_SECRET", ""),
		},
		Retention: RetentionConfig{
			UnconfirmedDays: viper.GetInt("RETENTION_UNCONFIRMED_DAYS"),
		},
		Worker: WorkerConfig{
			Enabled: getEnvOrDefault("WORKER_ENABLED", "true") == "true",
		},
		Metrics: MetricsConfig{
			Enabled: getEnvOrDefault("METRICS_ENABLED", "true") == "true",
		},
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Session.MaxAge <= 0 {
		cfg.Session.MaxAge = 7 * 24 * 3600
	}
	if cfg.Tokens.ConfirmExpiry <= 0 {
		cfg.Tokens.ConfirmExpiry = 3600
	}
	if cfg.Tokens.ResetExpiry <= 0 {
		cfg.Tokens.ResetExpiry = 3600
	}
	if cfg.Argon2.Memory == 0 {
		cfg.Argon2.Memory = 64 * 1024
	}
	if cfg.Argon2.Iterations == 0 {
		cfg.Argon2.Iterations = 3
	}
	if cfg.Argon2.Parallelism == 0 {
		cfg.Argon2.Parallelism = 2
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 1025
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups <= 0 {
		cfg.Log.MaxBackups = 10
	}
	if cfg.Log.MaxAgeDays <= 0 {
		cfg.Log.MaxAgeDays = 30
	}
	if cfg.Lockout.MaxAttempts <= 0 {
		cfg.Lockout.MaxAttempts = 5
	}
	if cfg.Lockout.CooldownSecs <= 0 {
		cfg.Lockout.CooldownSecs = 900
	}
	// Dev-only secrets; Validate refuses them outside development.
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = devSecret
	}
	if cfg.Tokens.Secret == "" {
		cfg.Tokens.Secret = devSecret
	}
}

const devSecret = "skillcanvas-development-secret"

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if !c.Secure.IsDevelopment && (c.Session.Secret == devSecret || c.Tokens.Secret == devSecret) {
		return fmt.Errorf("SESSION_SECRET and TOKEN_SECRET are required unless SECURE_DEV=true")
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
