// Package config provides configuration management.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"premium-estimator/internal/errors"
	"premium-estimator/internal/logging"
)

// EnvPrefix prefixes environment overrides, e.g. PREMIUM_SERVER_ADDRESS
const EnvPrefix = "PREMIUM"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `mapstructure:"version"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Rates contains rate table configuration
	Rates RatesConfig `mapstructure:"rates"`

	// Output contains output configuration
	Output OutputConfig `mapstructure:"output"`

	// Logging contains logging configuration
	Logging logging.Config `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address is the listen address
	Address string `mapstructure:"address"`

	// MaxBodyBytes caps request bodies
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// RatesConfig contains rate table settings
type RatesConfig struct {
	// Path is an HCL rate table file; empty uses the built-in tables
	Path string `mapstructure:"path"`

	// Timezone selects the calendar used for the evaluation date ("Local", "UTC", IANA name)
	Timezone string `mapstructure:"timezone"`
}

// Location resolves Timezone
func (r RatesConfig) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "invalid rates.timezone %q", r.Timezone)
	}
	return loc, nil
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the default CLI output format (cli, json, yaml)
	Format string `mapstructure:"format"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Address:      ":8080",
			MaxBodyBytes: 1 << 20,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Rates: RatesConfig{
			Path:     "",
			Timezone: "Local",
		},
		Output: OutputConfig{
			Format: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads configuration from path (YAML, JSON or TOML by extension) and
// PREMIUM_* environment variables. A missing or empty path yields defaults
// plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(errors.TypeConfig, err, "error reading config file %s", path)
			}
		} else if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(errors.TypeConfig, err, "cannot access config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "unable to decode configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Server.MaxBodyBytes <= 0 {
		return errors.Config("server.max_body_bytes must be positive")
	}
	switch c.Output.Format {
	case "cli", "json", "yaml":
	default:
		return errors.Config(fmt.Sprintf("output.format must be cli, json or yaml, got %q", c.Output.Format))
	}
	if _, err := c.Rates.Location(); err != nil {
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("rates.path", d.Rates.Path)
	v.SetDefault("rates.timezone", d.Rates.Timezone)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
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
