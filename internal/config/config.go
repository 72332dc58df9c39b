package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int    `mapstructure:"DB_MIN_CONNS"`

	JWTSecret    string `mapstructure:"JWT_SECRET"`
	JWTAlgorithm string `mapstructure:"JWT_ALGORITHM"`
	AppBaseURL   string `mapstructure:"APP_BASE_URL"`

	// PasswordMode is "bcrypt" or "remote".
	PasswordMode         string        `mapstructure:"PASSWORD_MODE"`
	EncryptionServiceURL string        `mapstructure:"ENCRYPTION_SERVICE_URL"`
	EncryptionKey        string        `mapstructure:"ENCRYPTION_KEY"`
	EncryptionTimeout    time.Duration `mapstructure:"ENCRYPTION_TIMEOUT"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUsername string `mapstructure:"MAIL_USERNAME"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`

	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`

	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3PublicURL string `mapstructure:"S3_PUBLIC_URL"`
}

var keys = []string{
	"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"JWT_SECRET", "JWT_ALGORITHM", "APP_BASE_URL",
	"PASSWORD_MODE", "ENCRYPTION_SERVICE_URL", "ENCRYPTION_KEY", "ENCRYPTION_TIMEOUT",
	"MAIL_HOST", "MAIL_PORT", "MAIL_USERNAME", "MAIL_PASSWORD", "MAIL_FROM",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ORIGINS",
	"S3_BUCKET", "S3_ENDPOINT", "S3_PUBLIC_URL",
}

// Load reads .env (if present) into the process environment and decodes the
// environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using process environment")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("JWT_SECRET", "medrecords-dev-secret")
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("PASSWORD_MODE", "bcrypt")
	v.SetDefault("ENCRYPTION_TIMEOUT", "10s")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("CORS_ORIGINS", "*")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate refuses configurations that would start a broken or unsafe server.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == "medrecords-dev-secret") {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("JWT_ALGORITHM must be HS256, HS384 or HS512, got %q", c.JWTAlgorithm)
	}
	switch c.PasswordMode {
	case "bcrypt":
	case "remote":
		if c.EncryptionServiceURL == "" || c.EncryptionKey == "" {
			return fmt.Errorf("ENCRYPTION_SERVICE_URL and ENCRYPTION_KEY are required when PASSWORD_MODE is \"remote\"")
		}
	default:
		return fmt.Errorf("PASSWORD_MODE must be \"bcrypt\" or \"remote\", got %q", c.PasswordMode)
	}
	return nil
}
