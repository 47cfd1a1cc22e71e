// Package config provides application configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"plancost/core/types"
	"plancost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pipeline contains processing defaults
	Pipeline PipelineConfig `json:"pipeline"`

	// Rates contains rate-card configuration
	Rates RatesConfig `json:"rates"`

	// Storage contains store backend configuration
	Storage StorageConfig `json:"storage"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PipelineConfig contains processing defaults
type PipelineConfig struct {
	// DefaultUnit is the unit hint when none is given (mm, cm, m, auto)
	DefaultUnit types.Unit `json:"default_unit"`

	// MinRoomAreaM2 drops classified rooms below this floor before
	// persisting
	MinRoomAreaM2 float64 `json:"min_room_area_m2"`

	// TaxRate applied to detailed-estimate subtotals
	TaxRate float64 `json:"tax_rate"`
}

// RatesConfig contains rate-card settings
type RatesConfig struct {
	// CardPath points to an HCL rate-card file; empty uses the
	// built-in defaults only
	CardPath string `json:"card_path,omitempty"`

	// MaterialsPath points to an HCL material-rules file
	MaterialsPath string `json:"materials_path,omitempty"`

	// Location filters location-scoped rate entries
	Location string `json:"location,omitempty"`
}

// StorageConfig contains store backend settings
type StorageConfig struct {
	// Backend selects the store implementation (memory, postgres)
	Backend string `json:"backend"`

	// PostgresDSN is the connection string for the postgres backend
	PostgresDSN string `json:"postgres_dsn,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowRows includes the per-room breakdown rows in CLI output
	ShowRows bool `json:"show_rows"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pipeline: PipelineConfig{
			DefaultUnit:   types.UnitAuto,
			MinRoomAreaM2: 5.0,
			TaxRate:       0.18,
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowRows:      true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, falling back to defaults when
// the file does not exist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plancost.json"
	}
	return filepath.Join(home, ".plancost.json")
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
