package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"brl-rate-service/internal/domain/model"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Server           ServerConfig
	RatesAPI         RatesAPIConfig
	Store            StoreConfig
	HomeCurrencyName string
	LogLevel         string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RatesAPIConfig struct {
	BaseURL string
	// FlagsURL is optional; when empty every currency gets the default flag.
	FlagsURL string
	Timeout  time.Duration
}

type StoreConfig struct {
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
}

// LoadConfig reads the environment, after loading an optional .env file
// from the working directory.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		RatesAPI: RatesAPIConfig{
			BaseURL:  strings.TrimRight(getEnvString("RATES_API_BASE_URL", "https://brasilapi.com.br/api/cambio/v1"), "/"),
			FlagsURL: getEnvString("FLAGS_API_URL", ""),
			Timeout:  getEnvDuration("RATES_API_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Backend:       strings.ToLower(getEnvString("STORE_BACKEND", StoreMemory)),
			RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnvString("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			PostgresDSN:   getEnvString("POSTGRES_DSN", ""),
		},
		HomeCurrencyName: getEnvString("HOME_CURRENCY_NAME", model.HomeName),
		LogLevel:         getEnvString("LOG_LEVEL", "info"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for store backend %q", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.RatesAPI.BaseURL == "" {
		return fmt.Errorf("RATES_API_BASE_URL must not be empty")
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %d\n", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		fmt.Printf("Warning: Invalid duration for %s, using default: %s\n", key, defaultValue)
		return defaultValue
	}

	return value
}
