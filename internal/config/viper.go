// Package config: Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory       string `mapstructure:"directory" yaml:"directory"`
		ObligationsFile string `mapstructure:"obligations_file" yaml:"obligations_file"`
		AccountsFile    string `mapstructure:"accounts_file" yaml:"accounts_file"`
		LedgerFile      string `mapstructure:"ledger_file" yaml:"ledger_file"`
	} `mapstructure:"data" yaml:"data"`

	Upcoming struct {
		// WindowDays is the default horizon for the "upcoming" query.
		WindowDays int `mapstructure:"window_days" yaml:"window_days"`
	} `mapstructure:"upcoming" yaml:"upcoming"`

	Export struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
		Format    string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then DUEBOOK_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.duebook")
	v.AddConfigPath(".duebook")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DUEBOOK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "")
	v.SetDefault("data.obligations_file", "obligations.yaml")
	v.SetDefault("data.accounts_file", "accounts.yaml")
	v.SetDefault("data.ledger_file", "ledger.csv")

	v.SetDefault("upcoming.window_days", 30)

	v.SetDefault("export.delimiter", ",")
	v.SetDefault("export.format", "csv")
}

// validateConfig performs basic sanity checks on the loaded configuration
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level '%s'", config.Log.Level)
	}

	if config.Upcoming.WindowDays < 1 {
		return fmt.Errorf("upcoming.window_days must be at least 1, got %d", config.Upcoming.WindowDays)
	}

	switch strings.ToLower(config.Export.Format) {
	case "csv", "json":
	default:
		return fmt.Errorf("unsupported export format '%s'", config.Export.Format)
	}

	return nil
}
