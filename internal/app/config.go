package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/viewinvoices/server/pkg/jwtx"
)

type Config struct {
	JWTSecret    string        // Required: HMAC secret for signing tokens
	JWTAlgorithm string        // Optional: HMAC variant (HS256, HS384, HS512) (default: HS256)
	TokenTTL     time.Duration // Optional: access token lifetime (default: 24h)

	UserDataDir string // Optional: directory for user record files (default: ./data/users)
	DatabaseURL string // Optional: Postgres DSN for the invoice database; invoices disabled when empty

	CORSOrigins         []string      // Optional: allowed browser origins (default: http://localhost:3000)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8001)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTAlgorithm:        getEnvOrDefault("JWT_ALGORITHM", "HS256"),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		UserDataDir:         getEnvOrDefault("USER_DATA_DIR", "data/users"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8001),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Comma-separated origin list, e.g. "http://localhost:3000,https://app.example.com"
	origins := getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "24h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
