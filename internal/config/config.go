// Package config loads lapwatch settings with viper.
//
// Precedence, highest first: explicitly set flags, LAPWATCH_* environment
// variables, the config file, defaults. The config file is optional unless
// named with --config.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. LAPWATCH_FORMAT.
const EnvPrefix = "LAPWATCH"

// Keys.
const (
	KeyFormat      = "format"
	KeyLogLevel    = "log_level"
	KeyMetricsAddr = "metrics_addr"
)

// flagNames maps keys to the CLI flags that override them.
var flagNames = map[string]string{
	KeyFormat:      "format",
	KeyMetricsAddr: "metrics-addr",
}

// Config is the resolved configuration.
type Config struct {
	// Format is the output format: "text" or "json".
	Format string `mapstructure:"format"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// MetricsAddr, when set, serves GET /metrics during `lapwatch run`.
	MetricsAddr string `mapstructure:"metrics_addr"`

	// File is the config file that was read, or "" if none.
	File string `mapstructure:"-"`
}

// DefaultPath returns $HOME/.lapwatch/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".lapwatch", "config.yaml"), nil
}

// Load resolves the configuration.
//
// path names an explicit config file, which must exist; "" searches
// $HOME/.lapwatch for config.yaml and tolerates its absence. flags may be nil;
// otherwise flags that were explicitly set override every other source.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMetricsAddr, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagNames {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		def, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(def))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects unknown formats and log levels.
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", c.Format)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
