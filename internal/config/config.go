package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/gitget/internal/domain"
	"github.com/quantmind-br/gitget/internal/utils"
)

// Supported source providers
const (
	ProviderAzure  = "azure"
	ProviderGitHub = "github"
	ProviderGit    = "git"
)

// Config represents the application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source" yaml:"source"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SourceConfig selects and authenticates the remote source-control API
type SourceConfig struct {
	Provider string        `mapstructure:"provider" yaml:"provider"`
	URL      string        `mapstructure:"url" yaml:"url"`
	Token    string        `mapstructure:"token" yaml:"token"`
	Project  string        `mapstructure:"project" yaml:"project"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	DryRun   bool `mapstructure:"dry_run" yaml:"dry_run"`
	Progress bool `mapstructure:"progress" yaml:"progress"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration. Unknown log settings and short timeouts
// fall back to defaults; an unknown provider is an error.
func (c *Config) Validate() error {
	c.Source.Provider = strings.ToLower(strings.TrimSpace(c.Source.Provider))
	switch c.Source.Provider {
	case "":
		c.Source.Provider = DefaultProvider
	case ProviderAzure, ProviderGitHub, ProviderGit:
	default:
		return domain.NewValidationError("source.provider",
			fmt.Sprintf("unknown provider %q (use %s, %s, or %s)", c.Source.Provider, ProviderAzure, ProviderGitHub, ProviderGit))
	}

	if c.Source.Timeout < time.Second {
		c.Source.Timeout = DefaultTimeout
	}
	if !utils.ValidLogLevel(c.Logging.Level) {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format != "pretty" && c.Logging.Format != "json" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
