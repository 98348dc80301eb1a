// Package config resolves runtime settings from defaults, an optional YAML
// config file, TRACKER_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "tracker"
	configFileType = "yaml"
	envPrefix      = "TRACKER"

	// Config keys. Flags bound to viper use the same names.
	KeyDB              = "db"
	KeyAddr            = "addr"
	KeyDefaultPageSize = "default_page_size"
	KeyMaxPageSize     = "max_page_size"
	KeyLogLevel        = "log_level"
	KeyShutdownTimeout = "shutdown_timeout"
)

// Defaults.
const (
	DefaultDB              = "data/applications.db"
	DefaultAddr            = ":8000"
	DefaultPageSize        = 10
	DefaultMaxPageSize     = 100
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the resolved settings.
type Config struct {
	DB              string        `mapstructure:"db"`
	Addr            string        `mapstructure:"addr"`
	DefaultPageSize int           `mapstructure:"default_page_size"`
	MaxPageSize     int           `mapstructure:"max_page_size"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DB:              DefaultDB,
		Addr:            DefaultAddr,
		DefaultPageSize: DefaultPageSize,
		MaxPageSize:     DefaultMaxPageSize,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Load resolves the settings.
//
// configFile names an explicit config file, which must exist. When empty,
// tracker.yaml is looked up in the working directory and then in
// $HOME/.config/tracker; a missing file there is not an error.
//
// flags may be nil. Only flags the user actually set override lower
// layers; flag names must match the config keys.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyDB, d.DB)
	v.SetDefault(KeyAddr, d.Addr)
	v.SetDefault(KeyDefaultPageSize, d.DefaultPageSize)
	v.SetDefault(KeyMaxPageSize, d.MaxPageSize)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyShutdownTimeout, d.ShutdownTimeout)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tracker"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for _, key := range []string{KeyDB, KeyAddr, KeyDefaultPageSize, KeyMaxPageSize, KeyLogLevel, KeyShutdownTimeout} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.DB == "" {
		return fmt.Errorf("config: %s must not be empty", KeyDB)
	}
	if c.MaxPageSize < 1 {
		return fmt.Errorf("config: %s must be at least 1, got %d", KeyMaxPageSize, c.MaxPageSize)
	}
	if c.DefaultPageSize < 1 || c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("config: %s must be between 1 and %d, got %d", KeyDefaultPageSize, c.MaxPageSize, c.DefaultPageSize)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: %s must be positive", KeyShutdownTimeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: %s: %w", KeyLogLevel, err)
	}
	return level, nil
}
