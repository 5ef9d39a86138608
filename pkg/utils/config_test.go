package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("with nil values", func(t *testing.T) {
		config := NewConfig(nil)
		require.NotNil(t, config)
		assert.Empty(t, config.Get("anything"))
	})

	t.Run("with values", func(t *testing.T) {
		values := map[string]string{
			"key1": "value1",
			"key2": "value2",
		}
		config := NewConfig(values)

		assert.Equal(t, "value1", config.Get("key1"))
		assert.Equal(t, "value2", config.Get("key2"))

		// Verify it's a copy, not a reference
		values["key1"] = "modified"
		assert.NotEqual(t, "modified", config.Get("key1"))
	})
}

func TestNewConfigFromEnv(t *testing.T) {
	// Create a temporary .env file for testing
	envContent := "TEST_KEY1=test_value1\nTEST_KEY2=test_value2\n"
	tmpFile, err := os.CreateTemp("", "test_env_*.env")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(envContent)
	require.NoError(t, err)
	tmpFile.Close()

	config := NewConfigFromEnv(tmpFile.Name())

	require.NotNil(t, config)
	assert.Equal(t, "test_value1", config.Get("TEST_KEY1"))
	assert.Equal(t, "test_value2", config.Get("TEST_KEY2"))
}

func TestConfigGet(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	t.Run("existing key", func(t *testing.T) {
		assert.Equal(t, "value", config.Get("existing"))
	})

	t.Run("non-existing key", func(t *testing.T) {
		assert.Empty(t, config.Get("missing"))
	})

	t.Run("empty value key", func(t *testing.T) {
		assert.Empty(t, config.Get("empty"))
	})
}

func TestConfigGetWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	t.Run("existing key", func(t *testing.T) {
		assert.Equal(t, "value", config.GetWithDefault("existing", "fallback"))
	})

	t.Run("missing key returns default", func(t *testing.T) {
		assert.Equal(t, "fallback", config.GetWithDefault("missing", "fallback"))
	})

	t.Run("empty value returns default", func(t *testing.T) {
		assert.Equal(t, "fallback", config.GetWithDefault("empty", "fallback"))
	})
}

func TestConfigGetInt(t *testing.T) {
	config := NewConfig(map[string]string{
		"number": "42",
		"word":   "nope",
	})

	t.Run("parses integers", func(t *testing.T) {
		assert.Equal(t, 42, config.GetInt("number", 7))
	})

	t.Run("missing key returns default", func(t *testing.T) {
		assert.Equal(t, 7, config.GetInt("missing", 7))
	})

	t.Run("unparseable value returns default", func(t *testing.T) {
		assert.Equal(t, 7, config.GetInt("word", 7))
	})
}

func TestConfigGetDuration(t *testing.T) {
	config := NewConfig(map[string]string{
		"timeout": "90s",
		"word":    "soon",
	})

	t.Run("parses durations", func(t *testing.T) {
		assert.Equal(t, 90*time.Second, config.GetDuration("timeout", time.Minute))
	})

	t.Run("missing key returns default", func(t *testing.T) {
		assert.Equal(t, time.Minute, config.GetDuration("missing", time.Minute))
	})

	t.Run("unparseable value returns default", func(t *testing.T) {
		assert.Equal(t, time.Minute, config.GetDuration("word", time.Minute))
	})
}

func TestConfigRequire(t *testing.T) {
	config := NewConfig(map[string]string{
		"present": "value",
		"empty":   "",
	})

	t.Run("present key", func(t *testing.T) {
		value, err := config.Require("present")
		require.NoError(t, err)
		assert.Equal(t, "value", value)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := config.Require("missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("empty value", func(t *testing.T) {
		_, err := config.Require("empty")
		assert.Error(t, err)
	})
}

func TestConfigHasAndSet(t *testing.T) {
	config := NewConfig(map[string]string{"existing": "value"})

	assert.True(t, config.Has("existing"))
	assert.False(t, config.Has("missing"))

	config.Set("missing", "now set")
	assert.True(t, config.Has("missing"))
	assert.Equal(t, "now set", config.Get("missing"))
}
