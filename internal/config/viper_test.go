package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *Config {
	c := &Config{}
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.CSV.Delimiter = ","
	c.CSV.IncludeHeaders = true
	c.Statement.DefaultCurrency = "ARS"
	c.Recurrence.MinOccurrences = 2
	c.Recurrence.StdDevThreshold = 5.0
	c.Recurrence.AmountBucket = 100
	return c
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults are valid", func(c *Config) {}, false},
		{"Bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"Bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"JSON log format is valid", func(c *Config) { c.Log.Format = "json" }, false},
		{"Multi-char delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, true},
		{"AI enabled without key", func(c *Config) { c.AI.Enabled = true }, true},
		{"AI enabled with key but no models", func(c *Config) {
			c.AI.Enabled = true
			c.AI.APIKey = "k"
		}, true},
		{"AI fully configured", func(c *Config) {
			c.AI.Enabled = true
			c.AI.APIKey = "k"
			c.AI.Models = []string{"gemini-2.0-flash"}
		}, false},
		{"Unsupported currency", func(c *Config) { c.Statement.DefaultCurrency = "EUR" }, true},
		{"USD currency is valid", func(c *Config) { c.Statement.DefaultCurrency = "USD" }, false},
		{"Min occurrences too low", func(c *Config) { c.Recurrence.MinOccurrences = 1 }, true},
		{"Zero stddev threshold", func(c *Config) { c.Recurrence.StdDevThreshold = 0 }, true},
		{"Zero amount bucket", func(c *Config) { c.Recurrence.AmountBucket = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := baseConfig()
			tc.mutate(c)
			err := validateConfig(c)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	c := baseConfig()
	c.Log.Level = "debug"
	logger := ConfigureLoggingFromConfig(c)
	require.NotNil(t, logger)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	c.Log.Level = "not-a-level"
	logger = ConfigureLoggingFromConfig(c)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	c.Log.Level = "info"
	c.Log.Format = "json"
	logger = ConfigureLoggingFromConfig(c)
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}
