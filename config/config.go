package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// HTTP configuration
	ListenAddr string

	// Secrets
	AdminCode  string // registration code that grants the admin flag
	SessionKey string // cookie session signing key

	// Domain settings with defaults
	StartingBalance int64
	AccessFee       int64

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ListenAddr:  getEnvWithDefault("LISTEN_ADDR", ":8080"),
		AdminCode:   os.Getenv("ADMIN_CODE"),
		SessionKey:  os.Getenv("SESSION_KEY"),

		StartingBalance: 5000,
		AccessFee:       1000,

		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsed, err := strconv.ParseInt(balance, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
		}
		config.StartingBalance = parsed
	}
	if fee := os.Getenv("ACCESS_FEE"); fee != "" {
		parsed, err := strconv.ParseInt(fee, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCESS_FEE: %w", err)
		}
		config.AccessFee = parsed
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.SessionKey == "" {
			return nil, fmt.Errorf("SESSION_KEY is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:     "test",
		ListenAddr:      ":0",
		SessionKey:      "test-session-key",
		StartingBalance: 5000,
		AccessFee:       1000,
	}
}
