package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	FiboAPIKey       string
	FiboBaseURL      string
	FiboMockMode     bool
	FiboTimeout      time.Duration
	DailyQuota       int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		FiboAPIKey:       os.Getenv("FIBO_API_KEY"),
		FiboBaseURL:      getEnv("FIBO_BASE_URL", "https://api.fibo.com/v1"),
		FiboMockMode:     getEnvBool("FIBO_MOCK_MODE", false),
		FiboTimeout:      time.Second * time.Duration(getEnvInt("FIBO_TIMEOUT_SECONDS", 300)),
		DailyQuota:       getEnvInt("DAILY_GENERATION_QUOTA", 50),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 330)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	// The write timeout has to outlive the provider call or long generations
	// get cut off mid-response.
	if cfg.HTTPWriteTimeout <= cfg.FiboTimeout {
		cfg.HTTPWriteTimeout = cfg.FiboTimeout + 30*time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
