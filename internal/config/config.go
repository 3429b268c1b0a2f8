package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Feed   FeedConfig
	Redis  RedisConfig
}

type ServerConfig struct {
	Port     string
	LogLevel string
}

type FeedConfig struct {
	PageSize     int
	MarkupFactor float64
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	pageSize, err := strconv.Atoi(getEnv("PAGE_SIZE", "40"))
	if err != nil || pageSize <= 0 {
		pageSize = 40
	}

	markup, err := strconv.ParseFloat(getEnv("MARKUP_FACTOR", "1.1"), 64)
	if err != nil || markup <= 0 {
		markup = 1.1
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}

	config := &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Feed: FeedConfig{
			PageSize:     pageSize,
			MarkupFactor: markup,
		},
		Redis: RedisConfig{
			Enabled:  os.Getenv("REDIS_HOST") != "",
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}

	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
