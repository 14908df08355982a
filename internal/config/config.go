package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// CasdoorConfig holds the OAuth identity provider settings.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// UpstreamConfig holds the legacy housing records service settings.
type UpstreamConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Config holds all runtime configuration, loaded from environment
// variables (a .env file is honored when present).
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	// Flat-file store and upload storage
	StorePath string
	UploadDir string

	// Legacy records service
	Upstream UpstreamConfig

	// Session store; empty disables refresh tokens
	RedisURL   string
	RefreshTTL time.Duration

	// Event bus; empty disables publishing
	KafkaBrokers []string
	KafkaTopic   string

	// Auth
	Casdoor    CasdoorConfig
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	// Best effort; missing .env is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		StorePath: getEnv("STORE_PATH", "data/housing.json"),
		UploadDir: getEnv("UPLOAD_DIR", "data/uploads"),

		Upstream: UpstreamConfig{
			BaseURL: getEnv("UPSTREAM_BASE_URL", ""),
			APIKey:  getEnv("UPSTREAM_API_KEY", ""),
			Timeout: getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		},

		RedisURL:   getEnv("REDIS_URL", ""),
		RefreshTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "housing-events"),

		Casdoor: CasdoorConfig{
			Endpoint:     getEnv("CASDOOR_ENDPOINT", ""),
			ClientID:     getEnv("CASDOOR_CLIENT_ID", ""),
			ClientSecret: getEnv("CASDOOR_CLIENT_SECRET", ""),
			Cert:         getEnv("CASDOOR_CERT", ""),
			Organization: getEnv("CASDOOR_ORGANIZATION", ""),
			Application:  getEnv("CASDOOR_APPLICATION", ""),
		},

		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTTTL:     getDuration("JWT_TTL", 30*time.Minute),
		BcryptCost: getInt("BCRYPT_COST", bcrypt.DefaultCost),
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-secret"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseLogLevel(v string) slog.Level {
	switch strings.ToLower(v) {
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
