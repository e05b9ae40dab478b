package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	Env       string
	MongoURL  string
	MongoDB   string
	JWTSecret string
	JWTExpiry time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

func Load() Config {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		MongoURL:  os.Getenv("MONGODB_URL"),
		MongoDB:   getEnv("MONGODB_DB", "shoplite"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: 7 * 24 * time.Hour,

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}

	if cfg.MongoURL == "" {
		slog.Error("MONGODB_URL must be set")
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	return cfg
}

// IsProduction reports whether the process runs outside local development.
// Session cookies are only marked Secure in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
	}
	return fallback
}
