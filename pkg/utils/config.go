package utils

import (
	"fmt"
	"maps"
	"strconv"
	"sync"
	"time"
)

// Config provides a thread-safe configuration management system
// that handles environment variables with defaults, type conversion, and modification
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a new Config instance with the provided key-value pairs
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv creates a new Config instance by loading environment
// variables from the specified .env files (similar to LoadEnv)
func NewConfigFromEnv(files ...string) *Config {
	envMap := LoadEnv(files...)
	return NewConfig(envMap)
}

// Get retrieves a configuration value by key
// Returns empty string if key doesn't exist
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetWithDefault retrieves a configuration value by key with a fallback default
func (c *Config) GetWithDefault(key, defaultValue string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if value, exists := c.values[key]; exists && value != "" {
		return value
	}
	return defaultValue
}

// GetInt retrieves a configuration value as an integer, falling back to the
// default for missing or unparseable values
func (c *Config) GetInt(key string, defaultValue int) int {
	value := c.Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDuration retrieves a configuration value as a time.Duration (Go duration
// syntax, e.g. "30s", "2h"), falling back to the default for missing or
// unparseable values
func (c *Config) GetDuration(key string, defaultValue time.Duration) time.Duration {
	value := c.Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Require retrieves a configuration value that must be present and non-empty.
// Callers use this for credentials so a misconfigured process fails at
// startup instead of on the first request
func (c *Config) Require(key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.values[key]
	if !exists || value == "" {
		return "", fmt.Errorf("required configuration %s is not set", key)
	}
	return value, nil
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.values[key]
	return exists
}

// Set modifies a configuration value
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}
