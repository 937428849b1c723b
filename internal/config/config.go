// Package config loads service configuration from a YAML or JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	Reconcile ReconcileConfig `json:"reconcile" yaml:"reconcile"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `json:"port" yaml:"port"`
}

// DatabaseConfig holds SQLite settings. Path may be ":memory:".
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// ReconcileConfig holds pipeline settings.
type ReconcileConfig struct {
	// DayFirst selects day-first interpretation for ambiguous numeric dates.
	DayFirst bool `json:"day_first" yaml:"day_first"`
	// RoundingTolerance is the inclusive amount-difference threshold below
	// which a mismatch is labeled a rounding difference.
	RoundingTolerance string `json:"rounding_tolerance" yaml:"rounding_tolerance"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:    ServerConfig{Port: "8080"},
		Database:  DatabaseConfig{Path: "reconciler.db"},
		Reconcile: ReconcileConfig{RoundingTolerance: "0.05"},
	}
}

// LoadFromFile reads a config file, YAML or JSON by extension, on top of the
// defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from PORT and DB_PATH when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
}

// Tolerance parses the configured rounding tolerance. An empty or malformed
// value falls back to zero, which downstream code treats as "use default".
func (c *Config) Tolerance() decimal.Decimal {
	if c.Reconcile.RoundingTolerance == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(c.Reconcile.RoundingTolerance)
	if err != nil {
		return decimal.Zero
	}
	return d
}
