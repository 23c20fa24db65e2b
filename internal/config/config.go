package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string
	Port        string
	Environment string

	// Pokemon TCG API (pokemontcg.io) settings
	TCGAPIBaseURL string
	TCGAPIKey     string

	// Sync pipeline settings
	SyncPageSize  int           // records requested per page (API max 250)
	SyncPageDelay time.Duration // minimum wait between page fetches
	SyncQueries   string        // comma-separated queries for the daily batch
	EURToUSDRate  string        // display conversion rate, EUR -> USD
}

func Load() *Config {
	// Default MySQL connection string
	defaultDSN := "root:tcgmarket@tcp(127.0.0.1:3306)/tcg_market?charset=utf8mb4&parseTime=True&loc=Local"

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", defaultDSN),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		TCGAPIBaseURL: getEnv("TCG_API_BASE_URL", "https://api.pokemontcg.io/v2"),
		TCGAPIKey:     getEnv("TCG_API_KEY", ""),

		SyncPageSize:  getEnvInt("SYNC_PAGE_SIZE", 250),
		SyncPageDelay: getEnvDuration("SYNC_PAGE_DELAY", 500*time.Millisecond),
		SyncQueries:   getEnv("SYNC_QUERIES", "set.id:sv3pt5"),
		EURToUSDRate:  getEnv("CURRENCY_EUR_TO_USD", "1.10"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
