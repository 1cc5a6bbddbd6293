// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
		Models           []string `mapstructure:"models" yaml:"models"`
		MaxDocumentChars int      `mapstructure:"max_document_chars" yaml:"max_document_chars"`
		APIKey           string   `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Statement struct {
		// PrimaryHolder is the owner assumed for credit card consumption
		// blocks that end without a footer. Empty means leave the owner
		// unresolved for manual assignment.
		PrimaryHolder   string `mapstructure:"primary_holder" yaml:"primary_holder"`
		DefaultCurrency string `mapstructure:"default_currency" yaml:"default_currency"`
	} `mapstructure:"statement" yaml:"statement"`

	Classification struct {
		// ExcludedOwners lists owners whose transactions are forced to the
		// excluded type, for statements that mix another person's cards in.
		ExcludedOwners []string `mapstructure:"excluded_owners" yaml:"excluded_owners"`
	} `mapstructure:"classification" yaml:"classification"`

	Recurrence struct {
		MinOccurrences  int     `mapstructure:"min_occurrences" yaml:"min_occurrences"`
		StdDevThreshold float64 `mapstructure:"stddev_threshold" yaml:"stddev_threshold"`
		AmountBucket    int     `mapstructure:"amount_bucket" yaml:"amount_bucket"`
	} `mapstructure:"recurrence" yaml:"recurrence"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config file, then RESUMEN_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.resumen-csv")
	v.AddConfigPath(".resumen-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RESUMEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; the file is optional.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the unprefixed environment variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.models", []string{
		"gemini-2.0-flash",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	})
	v.SetDefault("ai.max_document_chars", 30000)

	v.SetDefault("statement.primary_holder", "")
	v.SetDefault("statement.default_currency", "ARS")

	v.SetDefault("classification.excluded_owners", []string{})

	v.SetDefault("recurrence.min_occurrences", 2)
	v.SetDefault("recurrence.stddev_threshold", 5.0)
	v.SetDefault("recurrence.amount_bucket", 100)

	v.SetDefault("data.directory", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if len(config.AI.Models) == 0 {
			return fmt.Errorf("ai.models must list at least one model identifier")
		}
	}

	if cur := config.Statement.DefaultCurrency; cur != "ARS" && cur != "USD" {
		return fmt.Errorf("statement.default_currency must be ARS or USD, got: %s", cur)
	}

	if config.Recurrence.MinOccurrences < 2 {
		return fmt.Errorf("recurrence.min_occurrences must be at least 2, got: %d", config.Recurrence.MinOccurrences)
	}
	if config.Recurrence.StdDevThreshold <= 0 {
		return fmt.Errorf("recurrence.stddev_threshold must be positive, got: %f", config.Recurrence.StdDevThreshold)
	}
	if config.Recurrence.AmountBucket <= 0 {
		return fmt.Errorf("recurrence.amount_bucket must be positive, got: %d", config.Recurrence.AmountBucket)
	}

	return nil
}

// ConfigureLoggingFromConfig configures a logrus logger from the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
