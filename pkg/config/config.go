package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingAPIBaseURL indicates no API base URL was configured
	ErrMissingAPIBaseURL = errors.New("config: missing API base URL")

	// ErrInvalidConfigFile indicates the YAML config file could not be read
	ErrInvalidConfigFile = errors.New("config: invalid config file")
)

var defaultEnvLoaded sync.Once

// Config holds everything the SDK and CLI need. Values come from the
// environment (with an optional .env file), optionally overlaid on a YAML
// config file for CLI use.
type Config struct {
	// APIBaseURL is the root of the auth API, e.g. https://api.example.com.
	APIBaseURL string `env:"AUTHKIT_API_BASE_URL" yaml:"api_base_url"`

	// HTTPTimeout bounds every request the client issues.
	HTTPTimeout time.Duration `env:"AUTHKIT_HTTP_TIMEOUT" envDefault:"15s" yaml:"http_timeout"`

	// TokenPath is where the file store keeps the session token. Empty
	// selects the default under the user's home directory.
	TokenPath string `env:"AUTHKIT_TOKEN_PATH" yaml:"token_path"`

	// RedisAddr, when set, selects the Redis token store instead of the
	// file store (headless deployments sharing one session).
	RedisAddr string `env:"AUTHKIT_REDIS_ADDR" yaml:"redis_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"AUTHKIT_LOG_LEVEL" envDefault:"info" yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `env:"AUTHKIT_LOG_FORMAT" envDefault:"text" yaml:"log_format"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored once per process; its absence is not an error.
func Load() (Config, error) {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads a YAML config file and overlays environment values on top,
// so the environment always wins. A missing file yields the plain
// environment config.
func LoadFile(path string) (Config, error) {
	var fileCfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
		}
	case os.IsNotExist(err):
		// fall through to environment only
	default:
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}

	envCfg, err := Load()
	if err != nil {
		return Config{}, err
	}

	return merge(fileCfg, envCfg), nil
}

// Validate checks the values a live client cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return ErrMissingAPIBaseURL
	}
	return nil
}

// DefaultTokenPath resolves where the file store keeps the token when
// TokenPath is unset: ~/.authkit/session_token, falling back to the working
// directory when no home is known.
func (c Config) DefaultTokenPath() string {
	if c.TokenPath != "" {
		return c.TokenPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".authkit", "session_token")
	}
	return filepath.Join(home, ".authkit", "session_token")
}

// merge overlays env on file: any env field explicitly set (differing from
// the pure-default parse of an empty environment) replaces the file value.
func merge(file, envCfg Config) Config {
	out := file

	if envCfg.APIBaseURL != "" {
		out.APIBaseURL = envCfg.APIBaseURL
	}
	if envCfg.TokenPath != "" {
		out.TokenPath = envCfg.TokenPath
	}
	if envCfg.RedisAddr != "" {
		out.RedisAddr = envCfg.RedisAddr
	}
	if out.HTTPTimeout == 0 || isEnvSet("AUTHKIT_HTTP_TIMEOUT") {
		out.HTTPTimeout = envCfg.HTTPTimeout
	}
	if out.LogLevel == "" || isEnvSet("AUTHKIT_LOG_LEVEL") {
		out.LogLevel = envCfg.LogLevel
	}
	if out.LogFormat == "" || isEnvSet("AUTHKIT_LOG_FORMAT") {
		out.LogFormat = envCfg.LogFormat
	}
	return out
}

func isEnvSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}
