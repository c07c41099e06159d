// Package config loads runtime settings from the environment and an optional TOML file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"spendwise/internal/core"
)

const defaultAlertThreshold = 0.9

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend  string
	SQLiteDBPath string
	SeedDemoData bool

	LogLevel string

	// AMQP, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Export
	ExportDir      string
	ExportSchedule string // cron expression, empty disables snapshots

	// Domain vocabulary and defaults, overridable from the config file
	ConfigFile            string
	Taxonomy              core.Taxonomy
	DefaultAlertThreshold float64

	fileErr error
}

// File is the layout of the optional TOML config file.
type File struct {
	SeedDemoData *bool `toml:"seed_demo_data"`
	Taxonomy     struct {
		Categories     []string `toml:"categories"`
		PaymentMethods []string `toml:"payment_methods"`
	} `toml:"taxonomy"`
	Budget struct {
		AlertThreshold *float64 `toml:"alert_threshold"`
	} `toml:"budget"`
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DataBackend:  getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expenses.db"),
		SeedDemoData: getEnvBool("SEED_DEMO_DATA", true),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendwise"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "export_jobs"),

		ExportDir:      getEnv("EXPORT_DIR", "./data/exports"),
		ExportSchedule: getEnv("EXPORT_SCHEDULE", ""),

		ConfigFile:            getEnv("SPENDWISE_CONFIG", ""),
		Taxonomy:              core.DefaultTaxonomy(),
		DefaultAlertThreshold: defaultAlertThreshold,
	}

	if cfg.ConfigFile != "" {
		f, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			cfg.fileErr = err
		} else {
			cfg.Apply(f)
		}
	}
	return cfg
}

// LoadFile decodes a TOML config file.
func LoadFile(path string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config file %s: unknown keys %v", path, undecoded)
	}
	return &f, nil
}

// Apply overrides the config with the values set in f.
func (c *Config) Apply(f *File) {
	if f.SeedDemoData != nil {
		c.SeedDemoData = *f.SeedDemoData
	}
	if len(f.Taxonomy.Categories) > 0 {
		c.Taxonomy.Categories = slices.Clone(f.Taxonomy.Categories)
	}
	if len(f.Taxonomy.PaymentMethods) > 0 {
		c.Taxonomy.PaymentMethods = slices.Clone(f.Taxonomy.PaymentMethods)
	}
	if f.Budget.AlertThreshold != nil {
		c.DefaultAlertThreshold = *f.Budget.AlertThreshold
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.fileErr != nil {
		errors = append(errors, c.fileErr.Error())
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "sqlite"}
	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}
	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	validLevels := []string{"debug", "info", "warn", "warning", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels[:4]))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ExportSchedule != "" {
		if _, err := cron.ParseStandard(c.ExportSchedule); err != nil {
			errors = append(errors, fmt.Sprintf("invalid export schedule '%s': %v", c.ExportSchedule, err))
		}
		if c.ExportDir == "" {
			errors = append(errors, "export directory cannot be empty when an export schedule is set")
		}
	}

	errors = append(errors, validateSet("category", c.Taxonomy.Categories)...)
	errors = append(errors, validateSet("payment method", c.Taxonomy.PaymentMethods)...)

	if c.DefaultAlertThreshold < 0 || c.DefaultAlertThreshold > 1 {
		errors = append(errors, fmt.Sprintf("invalid alert threshold %v: must be between 0 and 1", c.DefaultAlertThreshold))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func validateSet(kind string, values []string) []string {
	if len(values) == 0 {
		return []string{fmt.Sprintf("at least one %s is required", kind)}
	}
	var errors []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		switch {
		case strings.TrimSpace(v) == "":
			errors = append(errors, fmt.Sprintf("empty %s name", kind))
		case seen[v]:
			errors = append(errors, fmt.Sprintf("duplicate %s '%s'", kind, v))
		}
		seen[v] = true
	}
	return errors
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
