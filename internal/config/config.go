package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"infuct.com/seguimiento/pkg/database"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	Database database.Config

	JWTSecret string
	JWTTTL    time.Duration

	UploadDir     string
	MaxUploadSize int64

	RedisURL         string
	LoginMaxAttempts int
	LoginWindow      time.Duration

	MeiliSearchHost string
	MeiliMasterKey  string

	LogLevel  string
	LogPretty bool

	SeedSecretaryEmail    string
	SeedSecretaryPassword string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")
	cfg := &Config{
		AppEnv:         appEnv,
		Port:           getEnv("PORT", "5000"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),

		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASS"),
			Name:     getEnv("DB_NAME", "seguimiento"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Debug:    appEnv == "development",
		},

		JWTSecret: os.Getenv("JWT_SECRET"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnv("LOG_PRETTY", strconv.FormatBool(appEnv == "development")) == "true",

		SeedSecretaryEmail:    os.Getenv("SEED_SECRETARY_EMAIL"),
		SeedSecretaryPassword: os.Getenv("SEED_SECRETARY_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	var err error
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.LoginWindow, err = parseDuration(getEnv("LOGIN_WINDOW", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_WINDOW: %w", err)
	}

	cfg.LoginMaxAttempts, err = strconv.Atoi(getEnv("LOGIN_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_MAX_ATTEMPTS: %w", err)
	}

	maxUploadMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE_MB", "10"), 10, 64)
	if err != nil || maxUploadMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE_MB: %q", os.Getenv("MAX_UPLOAD_SIZE_MB"))
	}
	cfg.MaxUploadSize = maxUploadMB << 20

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
