package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every configuration environment variable, e.g. GITGET_SOURCE_TOKEN
const EnvPrefix = "GITGET"

// Load loads configuration from defaults, a config file, the environment, and
// whatever flags are bound to v. A nil v uses a fresh instance. An empty
// configFile searches ~/.gitget and the working directory for config.yaml; a
// missing file is not an error unless it was named explicitly.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("source.provider", DefaultProvider)
	v.SetDefault("source.url", "")
	v.SetDefault("source.token", "")
	v.SetDefault("source.project", "")
	v.SetDefault("source.timeout", DefaultTimeout)

	v.SetDefault("output.dry_run", false)
	v.SetDefault("output.progress", false)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
