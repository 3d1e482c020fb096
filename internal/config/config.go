package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Stuart-0728/cqnu/internal/errors"
)

// Config holds the client configuration. Values come from
// ~/.cqnu/config.yaml and may be overridden by CQNU_* environment
// variables.
type Config struct {
	API APIConfig `yaml:"api"`
	Log LogConfig `yaml:"log"`
}

// APIConfig configures the backend REST collaborator.
type APIConfig struct {
	BaseURL        string `yaml:"base_url" env:"CQNU_API_URL, overwrite"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"CQNU_API_TIMEOUT, overwrite"`
}

// LogConfig configures client-side logging.
type LogConfig struct {
	Level  string `yaml:"level" env:"CQNU_LOG_LEVEL, overwrite"`
	Format string `yaml:"format" env:"CQNU_LOG_FORMAT, overwrite"`
	// File receives log output while the full-screen UI owns the
	// terminal. Empty discards logs during interactive runs.
	File string `yaml:"file" env:"CQNU_LOG_FILE, overwrite"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Dir returns the client state directory (~/.cqnu), creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cqnu")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// Path returns the path to the configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration file (creating a default one on first run)
// and then applies environment overrides.
func Load(ctx context.Context) (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if saveErr := Save(cfg, path); saveErr != nil {
			return nil, saveErr
		}
	} else {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read config", readErr)
		}
		if yamlErr := yaml.Unmarshal(data, cfg); yamlErr != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to parse config", yamlErr).
				WithSuggestion("Check the YAML syntax in " + path)
		}
	}

	// Environment variables win over the file.
	if envErr := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.OsLookuper(),
	}); envErr != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to apply environment overrides", envErr)
	}

	return cfg, nil
}

// Save writes the configuration to the given path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write config", err)
	}

	return nil
}

// Get returns a configuration value by dot-notation key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.timeout_seconds":
		return fmt.Sprintf("%d", c.API.TimeoutSeconds), nil
	case "log.level":
		return c.Log.Level, nil
	case "log.format":
		return c.Log.Format, nil
	case "log.file":
		return c.Log.File, nil
	default:
		return "", errors.New(errors.ErrCodeConfigKeyUnknown, fmt.Sprintf("unknown configuration key: %s", key)).
			WithSuggestion("Known keys: api.base_url, api.timeout_seconds, log.level, log.format, log.file")
	}
}

// Set updates a configuration value by dot-notation key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.timeout_seconds":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n <= 0 {
			return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid timeout: %s", value))
		}
		c.API.TimeoutSeconds = n
	case "log.level":
		c.Log.Level = value
	case "log.format":
		c.Log.Format = value
	case "log.file":
		c.Log.File = value
	default:
		return errors.New(errors.ErrCodeConfigKeyUnknown, fmt.Sprintf("unknown configuration key: %s", key)).
			WithSuggestion("Known keys: api.base_url, api.timeout_seconds, log.level, log.format, log.file")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:5000",
			TimeoutSeconds: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
