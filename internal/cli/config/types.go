// Package config provides configuration management for the sqlserde CLI.
package config

import (
	"log/slog"

	"github.com/leapstack-labs/sqlserde/pkg/adapter"
	"github.com/leapstack-labs/sqlserde/pkg/plugin"
)

// Default configuration values.
const (
	DefaultDatabase = ":memory:"
	DefaultAdapter  = "sqlite"
	DefaultOutput   = "table"
	DefaultLogLevel = "warn"
)

// Output formats accepted by --output.
var OutputFormats = []string{"table", "json", "csv", "md", "yaml"}

// Config holds all CLI configuration options.
type Config struct {
	Database     string            `koanf:"database"`
	Adapter      string            `koanf:"adapter"`
	Verbose      bool              `koanf:"verbose"`
	LogLevel     string            `koanf:"log_level"`
	OutputFormat string            `koanf:"output"`
	NoTransform  bool              `koanf:"no_transform"`
	Params       map[string]any    `koanf:"params"`
	Options      map[string]string `koanf:"options"`
}

// Default returns a Config with every field at its default.
func Default() *Config {
	return &Config{
		Database:     DefaultDatabase,
		Adapter:      DefaultAdapter,
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
	}
}

// Level returns the slog level for this config. Verbose forces debug.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// AdapterConfig builds the adapter configuration. p is attached unless
// transformation is disabled.
func (c *Config) AdapterConfig(p *plugin.Plugin) adapter.Config {
	cfg := adapter.Config{
		Type:    c.Adapter,
		Path:    c.Database,
		Options: c.Options,
		Params:  c.Params,
	}
	if !c.NoTransform {
		cfg.Plugin = p
	}
	return cfg
}
