// Package config loads tool configuration from strata.yml, with environment
// overrides and defaults for everything a fresh workspace needs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents the Strata tool configuration.
type Config struct {
	ProjectName string      `mapstructure:"project_name"`
	Model       ModelConfig `mapstructure:"model"`
	Store       StoreConfig `mapstructure:"store"`
	Log         LogConfig   `mapstructure:"log"`
}

// ModelConfig locates the model document.
type ModelConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig locates the external array store.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls tool logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads the configuration from strata.yml or strata.yaml in the current
// directory. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("model.path", "model.xml")
	v.SetDefault("store.path", "arrays.db")
	v.SetDefault("log.level", "warn")

	v.SetConfigName("strata")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("strata")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// GetStorePath returns the array store path from the environment or config.
func GetStorePath() string {
	if path := os.Getenv("STRATA_STORE"); path != "" {
		return path
	}

	cfg, err := Load()
	if err != nil {
		return ""
	}

	return cfg.Store.Path
}

// ZapLevel parses the configured log level.
func (c *Config) ZapLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// Logger builds a console logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := c.ZapLevel()
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// GetProjectRoot tries to find the project root by looking for strata.yml.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "strata.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "strata.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Strata project (no strata.yml found)")
		}
		dir = parent
	}
}

// validateConfig validates the configuration.
func validateConfig(cfg *Config) error {
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if cfg.Model.Path == "" {
		return fmt.Errorf("model.path must not be empty")
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q", cfg.Log.Level)
	}
	return nil
}
