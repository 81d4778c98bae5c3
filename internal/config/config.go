// Package config handles configuration management for stadvdb.
// Configuration is loaded from config files, environment variables
// (STADVDB_ prefix, .env supported), and CLI flags. CLI flags take
// precedence over file and environment values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for stadvdb.
type Config struct {
	// SourceConnection is the connection string for the operational store.
	SourceConnection string `mapstructure:"source_connection"`

	// WarehouseConnection is the connection string for the data warehouse.
	WarehouseConnection string `mapstructure:"warehouse_connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// ETL holds configuration for the etl subcommand.
	ETL ETLConfig `mapstructure:"etl"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`

	// Serve holds configuration for the serve subcommand.
	Serve ServeConfig `mapstructure:"serve"`
}

// ETLConfig holds configuration for the transform-and-load pipeline.
type ETLConfig struct {
	// BatchSize is the number of rows per warehouse insert round trip.
	BatchSize int `mapstructure:"batch_size"`

	// WriteMode controls how the loader treats existing table data:
	// "replace", "append", or "fail".
	WriteMode string `mapstructure:"write_mode"`

	// DayFirst resolves the DD-MM vs MM-DD date ambiguity: when true,
	// day-first formats are tried before month-first ones.
	DayFirst bool `mapstructure:"day_first"`
}

// SeedConfig holds row counts for source data generation.
type SeedConfig struct {
	Users    int `mapstructure:"users"`
	Products int `mapstructure:"products"`
	Couriers int `mapstructure:"couriers"`
	Riders   int `mapstructure:"riders"`
	Orders   int `mapstructure:"orders"`
}

// ServeConfig holds configuration for the reporting API server.
type ServeConfig struct {
	// Listen is the address the HTTP server binds to.
	Listen string `mapstructure:"listen"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		ETL: ETLConfig{
			BatchSize: 5000,
			WriteMode: "append",
			DayFirst:  false,
		},
		Seed: SeedConfig{
			Users:    5000,
			Products: 1000,
			Couriers: 20,
			Riders:   500,
			Orders:   20000,
		},
		Serve: ServeConfig{
			Listen: ":5000",
		},
	}
}

// Load reads configuration from config files and the environment.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./stadvdb.yaml
// 3. ~/.config/stadvdb/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("stadvdb")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "stadvdb"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Environment variables: STADVDB_SOURCE_CONNECTION, STADVDB_ETL_BATCH_SIZE, ...
	v.SetEnvPrefix("STADVDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateSource checks configuration required to reach the source store.
func (c *Config) ValidateSource() error {
	if c.SourceConnection == "" {
		return fmt.Errorf("source connection string is required")
	}
	return nil
}

// ValidateWarehouse checks configuration required to reach the warehouse.
func (c *Config) ValidateWarehouse() error {
	if c.WarehouseConnection == "" {
		return fmt.Errorf("warehouse connection string is required")
	}
	return nil
}

// ValidateETL checks configuration required for the etl command.
func (c *Config) ValidateETL() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if err := c.ValidateWarehouse(); err != nil {
		return err
	}
	if c.ETL.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	switch c.ETL.WriteMode {
	case "replace", "append", "fail":
	default:
		return fmt.Errorf("write_mode must be 'replace', 'append' or 'fail'")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if c.Seed.Users < 1 || c.Seed.Products < 1 || c.Seed.Couriers < 1 ||
		c.Seed.Riders < 1 || c.Seed.Orders < 1 {
		return fmt.Errorf("seed row counts must be at least 1")
	}
	return nil
}

// ValidateServe checks configuration required for the serve command.
func (c *Config) ValidateServe() error {
	if err := c.ValidateWarehouse(); err != nil {
		return err
	}
	if c.Serve.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	return nil
}
