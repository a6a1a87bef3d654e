// Package config loads LiQuer's runtime configuration: explicit
// command-line flags override environment variables, which override a
// config file, which overrides the built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvVarPrefix is the prefix every LIQUER_* environment variable carries.
const EnvVarPrefix = "LIQUER"

// EnvironmentConfig is the set of values an environment.Environment is
// built from at process startup.
type EnvironmentConfig struct {
	// StoreRoot is the filesystem directory a file-backed store is rooted
	// at. Empty means the in-memory store is used instead.
	StoreRoot string `mapstructure:"store-root"`

	// CacheCapacity is the maximum number of entries the in-memory result
	// cache holds before evicting the least recently used.
	CacheCapacity int `mapstructure:"cache-capacity"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `mapstructure:"log-level"`

	// LogFormat is one of "json", "text".
	LogFormat string `mapstructure:"log-format"`
}

// Defaults returns the configuration used when no file, environment
// variable, or flag supplies a value.
func Defaults() EnvironmentConfig {
	return EnvironmentConfig{
		StoreRoot:     "",
		CacheCapacity: 1024,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Load resolves an EnvironmentConfig from, in increasing precedence: the
// defaults, an optional configFile (skipped entirely when empty), LIQUER_*
// environment variables, and any flags in fs that were explicitly set on
// the command line.
func Load(fs *pflag.FlagSet, configFile string) (EnvironmentConfig, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("store-root", defaults.StoreRoot)
	v.SetDefault("cache-capacity", defaults.CacheCapacity)
	v.SetDefault("log-level", defaults.LogLevel)
	v.SetDefault("log-format", defaults.LogFormat)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return EnvironmentConfig{}, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return EnvironmentConfig{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	var cfg EnvironmentConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return EnvironmentConfig{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// BindEnvOverrides applies any LIQUER_<FLAG_NAME> environment variable
// onto a flag in fs that wasn't explicitly set on the command line,
// applying the same flags > env precedence check as Load without
// requiring the full Load path (used by cobra commands that manage their
// own flag sets directly rather than going through Load).
func BindEnvOverrides(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvVarPrefix)
	v.AutomaticEnv()

	var errs []string
	fs.VisitAll(func(f *pflag.Flag) {
		name := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(name) {
			if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(name))); err != nil {
				errs = append(errs, err.Error())
			}
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("applying %s_* overrides: %s", EnvVarPrefix, strings.Join(errs, "; "))
	}
	return nil
}
