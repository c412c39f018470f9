// Package config loads mindflip settings from defaults, an optional
// config file, MINDFLIP_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MINDFLIP"

type (
	Config struct {
		Database Database `mapstructure:"database"`
		Log      Log      `mapstructure:"log"`
		Defaults Defaults `mapstructure:"defaults"`
	}

	Database struct {
		// Path to the SQLite file. Empty means the XDG data location.
		Path string `mapstructure:"path"`
	}

	Log struct {
		Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
		Format string `mapstructure:"format" validate:"oneof=text json"`
		// File receives logs instead of stderr when set.
		File string `mapstructure:"file"`
	}

	Defaults struct {
		Color string `mapstructure:"color" validate:"required,hexcolor"`
	}
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":         "database.path",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

// Load builds the configuration. flags may be nil; flags that were not
// registered on it are skipped.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("defaults.color", "#e052c4")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// MINDFLIP_DB is the short form kept for scripts.
	if err := v.BindEnv("database.path", EnvPrefix+"_DATABASE_PATH", EnvPrefix+"_DB"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if dir, err := configDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// configDir returns $XDG_CONFIG_HOME/mindflip (or the platform equivalent).
func configDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mindflip"), nil
}
