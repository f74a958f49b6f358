// Package config provides Viper-based configuration loading for the chat bot.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/chatbot/internal/command"
)

// CommandsConfig holds the command syntax settings.
type CommandsConfig struct {
	// Prefix marks a message as a command, e.g. "!".
	Prefix string `mapstructure:"prefix"`
	// ShortOptionPrefix introduces bundled single-character options, e.g. "-".
	ShortOptionPrefix string `mapstructure:"short_option_prefix"`
	// LongOptionPrefix introduces a named option, e.g. "--".
	LongOptionPrefix string `mapstructure:"long_option_prefix"`
	// StopParseOption is the literal token that ends option parsing.
	StopParseOption string `mapstructure:"stop_parse_option"`
	// CaseFold lowercases command names before lookup.
	CaseFold bool `mapstructure:"case_fold"`
}

// CommandConfiguration converts the section into the command package's
// read-only Configuration.
func (c CommandsConfig) CommandConfiguration() command.Configuration {
	return command.Configuration{
		CommandPrefix:     c.Prefix,
		ShortOptionPrefix: c.ShortOptionPrefix,
		LongOptionPrefix:  c.LongOptionPrefix,
		StopParseOption:   c.StopParseOption,
		CaseFoldCommands:  c.CaseFold,
	}
}

// CatalogConfig holds command catalog settings.
type CatalogConfig struct {
	// Path is the filesystem path of the command catalog YAML file.
	Path string `mapstructure:"path"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Commands CommandsConfig `mapstructure:"commands"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if the configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := c.Commands.CommandConfiguration().Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCatalog(c.Catalog); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCatalog(c CatalogConfig) error {
	if c.Path == "" {
		return fmt.Errorf("catalog.path must not be empty")
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with CHATBOT_ prefix
	v.SetEnvPrefix("CHATBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("commands.prefix", "!")
	v.SetDefault("commands.short_option_prefix", "-")
	v.SetDefault("commands.long_option_prefix", "--")
	v.SetDefault("commands.stop_parse_option", "--")
	v.SetDefault("commands.case_fold", false)

	v.SetDefault("catalog.path", "content/commands.yaml")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
