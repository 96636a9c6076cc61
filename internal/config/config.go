package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Upstream
	FPLBaseURL  string
	HTTPTimeout time.Duration

	// Cache
	CacheDir string
	CacheTTL time.Duration
	RedisURL string // optional; switches the cache backend to Redis when set
}

// Load loads configuration from environment variables. A .env file is read
// first if present; nothing is required, every value has a default.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		FPLBaseURL:  getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		CacheDir: getEnv("CACHE_DIR", ".cache"),
		CacheTTL: getEnvDuration("CACHE_TTL", 15*time.Minute),
		RedisURL: getEnv("REDIS_URL", ""),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "*")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
