package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	DefaultProvider = ProviderAzure
	DefaultTimeout  = 60 * time.Second

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gitget"
	}
	return filepath.Join(home, ".gitget")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Provider: DefaultProvider,
			Timeout:  DefaultTimeout,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
