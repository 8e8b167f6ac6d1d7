package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("AUTHKIT_API_BASE_URL", "https://api.example.com")
		t.Setenv("AUTHKIT_HTTP_TIMEOUT", "3s")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads yaml and overlays environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "authkit.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"api_base_url: https://file.example.com\nlog_level: debug\n",
		), 0o600))

		t.Setenv("AUTHKIT_API_BASE_URL", "https://env.example.com")

		cfg, err := config.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com", cfg.APIBaseURL, "environment overrides the file")
		assert.Equal(t, "debug", cfg.LogLevel, "file value survives when env is unset")
	})

	t.Run("missing file falls back to environment", func(t *testing.T) {
		t.Setenv("AUTHKIT_API_BASE_URL", "https://env.example.com")

		cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{{nope"), 0o600))

		_, err := config.LoadFile(path)
		assert.ErrorIs(t, err, config.ErrInvalidConfigFile)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, config.Config{}.Validate(), config.ErrMissingAPIBaseURL)
	assert.NoError(t, config.Config{APIBaseURL: "https://api.example.com"}.Validate())
}

func TestConfig_DefaultTokenPath(t *testing.T) {
	t.Parallel()

	t.Run("explicit path wins", func(t *testing.T) {
		t.Parallel()
		cfg := config.Config{TokenPath: "/tmp/tok"}
		assert.Equal(t, "/tmp/tok", cfg.DefaultTokenPath())
	})

	t.Run("defaults under the home directory", func(t *testing.T) {
		t.Parallel()
		path := config.Config{}.DefaultTokenPath()
		assert.Contains(t, path, filepath.Join(".authkit", "session_token"))
	})
}
