package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"dario.cat/mergo"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port           string
	MaxUploadBytes int64

	// Database configuration
	DBType            string // sqlite, sqlite3, mysql, postgres, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Snapshot store configuration
	StoreBackend   string // gorm or redis
	StoreKeyPrefix string
	StoreTimeout   time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// Logging configuration
	LogLevel string
	LogFile  string
}

// Defaults returns the configuration used when the environment is silent.
func Defaults() Config {
	return Config{
		Port:              "3000",
		MaxUploadBytes:    20 * 1024 * 1024,
		DBType:            "sqlite",
		DBDatabase:        "raulo_crm.db",
		DBConnectionLimit: 5,
		StoreBackend:      "gorm",
		StoreKeyPrefix:    "raulo_crm_",
		StoreTimeout:      2 * time.Second,
		RedisAddr:         "localhost:6379",
		LogLevel:          "info",
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              os.Getenv("PORT"),
		DBType:            os.Getenv("DB_TYPE"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBDatabase:        os.Getenv("DB_DATABASE"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 0),
		StoreBackend:      os.Getenv("STORE_BACKEND"),
		StoreKeyPrefix:    os.Getenv("STORE_KEY_PREFIX"),
		StoreTimeout:      time.Duration(getEnvAsInt("STORE_TIMEOUT_MS", 0)) * time.Millisecond,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		LogFile:           os.Getenv("LOG_FILE"),
	}
	if mb := getEnvAsInt("MAX_UPLOAD_MB", 0); mb > 0 {
		cfg.MaxUploadBytes = int64(mb) * 1024 * 1024
	}

	if err := mergo.Merge(cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks combinations that cannot work together
func (c *Config) Validate() error {
	switch c.DBType {
	case "sqlite", "sqlite3":
	case "mysql", "mariadb", "postgres", "postgresql", "sqlserver", "mssql":
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required for DB_TYPE %s", c.DBType)
		}
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required for DB_TYPE %s", c.DBType)
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}

	switch c.StoreBackend {
	case "gorm":
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for STORE_BACKEND redis")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND: %s", c.StoreBackend)
	}

	return nil
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
