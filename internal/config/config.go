package config

import (
	"os"
	"strconv"

	"flextab/domain/report"
	"flextab/internal/errors"
)

// Config represents the complete preview server configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Render RenderConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds the input data location
type DataConfig struct {
	// TableFile is an xlsx or csv file read at startup.
	TableFile string
	// SheetName selects the worksheet for xlsx inputs.
	SheetName string
	// GroupColumns is a comma-separated ordered list of group columns.
	GroupColumns string
	// DatabaseURL optionally resolves the table from postgres instead of a file.
	DatabaseURL string
	// Query is the SQL select used with DatabaseURL.
	Query string
}

// RenderConfig holds the formatting overrides applied to report defaults
type RenderConfig struct {
	HideGroupLabel bool
	LabelSeparator string
	FontFamily     string
	FontSize       float64
	ExpandSingle   bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			TableFile:    getEnvOrDefault("FLEXTAB_TABLE_FILE", ""),
			SheetName:    getEnvOrDefault("FLEXTAB_SHEET", "Sheet1"),
			GroupColumns: getEnvOrDefault("FLEXTAB_GROUPS", ""),
			DatabaseURL:  getEnvOrDefault("DATABASE_URL", ""),
			Query:        getEnvOrDefault("FLEXTAB_QUERY", ""),
		},
		Render: RenderConfig{
			HideGroupLabel: getEnvBoolOrDefault("FLEXTAB_HIDE_GROUP_LABEL", false),
			LabelSeparator: getEnvOrDefault("FLEXTAB_LABEL_SEPARATOR", ": "),
			FontFamily:     getEnvOrDefault("FLEXTAB_FONT_FAMILY", ""),
			FontSize:       getEnvFloatOrDefault("FLEXTAB_FONT_SIZE", 0),
			ExpandSingle:   getEnvBoolOrDefault("FLEXTAB_EXPAND_SINGLE", true),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Defaults converts the render overrides into an explicit report.Defaults
// value threaded into every bind call
func (c *Config) Defaults() report.Defaults {
	d := report.StandardDefaults()
	d.HideGroupLabel = c.Render.HideGroupLabel
	if c.Render.LabelSeparator != "" {
		d.LabelSeparator = c.Render.LabelSeparator
	}
	if c.Render.FontFamily != "" {
		d.FontFamily = c.Render.FontFamily
	}
	if c.Render.FontSize > 0 {
		d.FontSize = c.Render.FontSize
	}
	return d
}

func validateConfig(config *Config) error {
	if config.Data.TableFile == "" && config.Data.DatabaseURL == "" {
		return errors.ConfigInvalid("FLEXTAB_TABLE_FILE or DATABASE_URL is required")
	}
	if config.Data.DatabaseURL != "" && config.Data.Query == "" {
		return errors.ConfigInvalid("FLEXTAB_QUERY is required with DATABASE_URL")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
