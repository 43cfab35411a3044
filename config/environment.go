package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment holds cookie settings derived from COOKIE_DOMAIN.
type Environment struct {
	IsDevelopment bool
	Domain        string
	CookieSecure  bool
}

type Config struct {
	AppEnv         string
	Port           string
	DatabaseURL    string
	DBLogLevel     string
	LogLevel       string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	Env            Environment
}

// Load reads .env (outside Railway) and then the process environment.
func Load() (Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	cfg := Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DB_URL", "sqlite://flashcard-tracker.db"),
		DBLogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		TokenTTL:       getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		Env:            newEnvironment(os.Getenv("COOKIE_DOMAIN")),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET_KEY not set")
	}
	return cfg, nil
}

func newEnvironment(domain string) Environment {
	// No domain means local development
	isDev := domain == ""
	if isDev {
		domain = "localhost"
	}
	return Environment{
		IsDevelopment: isDev,
		Domain:        domain,
		CookieSecure:  !isDev,
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
