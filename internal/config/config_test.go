package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads all fields", func(t *testing.T) {
		path := writeConfig(t, `{
			"user_id": "7f6c2f6e-50d4-4d30-a1a7-49a2cc0fd1f2",
			"api_key": "test-key",
			"database_url": "postgres://localhost/coach",
			"port": 8080,
			"timeout_seconds": 90,
			"verbose": true
		}`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "7f6c2f6e-50d4-4d30-a1a7-49a2cc0fd1f2", cfg.UserID)
		assert.Equal(t, "test-key", cfg.APIKey)
		assert.Equal(t, "postgres://localhost/coach", cfg.DatabaseURL)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 90, cfg.TimeoutSeconds)
		assert.True(t, cfg.Verbose)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeConfig(t, `{"port": `)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts zero values", func(t *testing.T) {
		cfg := &Config{}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		cfg := &Config{Port: 70000}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects negative timeout", func(t *testing.T) {
		cfg := &Config{TimeoutSeconds: -1}
		assert.Error(t, cfg.Validate())
	})
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "from-file"}
	defaults := Config{APIKey: "default-key", Port: 8080, DatabaseURL: "postgres://localhost/coach"}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "from-file", merged.APIKey)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "postgres://localhost/coach", merged.DatabaseURL)
}
