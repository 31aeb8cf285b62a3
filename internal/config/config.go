package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	Plaid      PlaidConfig
	RentCast   RentCastConfig
	Yahoo      YahooConfig
	Cache      CacheConfig
	Redis      RedisConfig
	Encryption EncryptionConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PlaidConfig holds the Plaid API credentials.
// AccessToken is the single linked item served by this deployment.
type PlaidConfig struct {
	BaseURL     string
	ClientID    string
	Secret      string
	AccessToken string
	Timeout     time.Duration
}

// Enabled reports whether Plaid credentials are configured.
func (c PlaidConfig) Enabled() bool {
	return c.ClientID != "" && c.Secret != "" && c.AccessToken != ""
}

// RentCastConfig holds the RentCast API settings.
type RentCastConfig struct {
	BaseURL      string
	APIKey       string
	MonthlyQuota int64
	Timeout      time.Duration
}

// Enabled reports whether a RentCast API key is configured.
func (c RentCastConfig) Enabled() bool {
	return c.APIKey != ""
}

// YahooConfig holds the quote provider settings.
type YahooConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig controls the per-session market data caches.
type CacheConfig struct {
	SessionTTL    time.Duration
	MaxEntries    int
	SweepSchedule string
}

// RedisConfig holds the Redis connection used for quota counting.
// An empty Addr selects the in-process limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// EncryptionConfig holds the Fernet keys for fields encrypted at rest.
// Keys is a comma-separated list; the first key encrypts.
type EncryptionConfig struct {
	Keys string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	monthlyQuota, err := getEnvInt64("RENTCAST_MONTHLY_QUOTA", 50)
	if err != nil {
		return nil, err
	}
	maxEntries, err := getEnvInt("CACHE_MAX_ENTRIES", 32)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getEnvDuration("CACHE_SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	upstreamTimeout, err := getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fynnance.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Plaid: PlaidConfig{
			BaseURL:     getEnv("PLAID_BASE_URL", "https://sandbox.plaid.com"),
			ClientID:    getEnv("PLAID_CLIENT_ID", ""),
			Secret:      getEnv("PLAID_SECRET", ""),
			AccessToken: getEnv("PLAID_ACCESS_TOKEN", ""),
			Timeout:     upstreamTimeout,
		},
		RentCast: RentCastConfig{
			BaseURL:      getEnv("RENTCAST_BASE_URL", "https://api.rentcast.io/v1"),
			APIKey:       getEnv("RENTCAST_API_KEY", ""),
			MonthlyQuota: monthlyQuota,
			Timeout:      upstreamTimeout,
		},
		Yahoo: YahooConfig{
			BaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout: upstreamTimeout,
		},
		Cache: CacheConfig{
			SessionTTL:    sessionTTL,
			MaxEntries:    maxEntries,
			SweepSchedule: getEnv("CACHE_SWEEP_SCHEDULE", "@every 5m"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Encryption: EncryptionConfig{
			Keys: getEnv("FERNET_KEYS", ""),
		},
	}

	if config.Cache.MaxEntries < 1 {
		return nil, fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1, got %d", config.Cache.MaxEntries)
	}
	if config.RentCast.MonthlyQuota < 0 {
		return nil, fmt.Errorf("RENTCAST_MONTHLY_QUOTA must not be negative, got %d", config.RentCast.MonthlyQuota)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
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
