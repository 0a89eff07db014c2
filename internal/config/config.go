// Package config manages persistent xlbatch settings from
// ~/.xlbatch/config.yaml and XLBATCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	OutputDir string `mapstructure:"output_dir"`
	BackupDir string `mapstructure:"backup_dir"`
	Report    struct {
		Format string `mapstructure:"format"`
		Name   string `mapstructure:"name"`
	} `mapstructure:"report"`
	Color bool `mapstructure:"color"`
}

// knownKeys are the settable configuration keys.
var knownKeys = []string{"output_dir", "backup_dir", "report.format", "report.name", "color"}

// Load reads configuration from the config file and environment. A missing
// config file is not an error; defaults apply.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(Dir())

	viper.SetDefault("output_dir", "")
	viper.SetDefault("backup_dir", "")
	viper.SetDefault("report.format", "text")
	viper.SetDefault("report.name", "")
	viper.SetDefault("color", true)

	viper.SetEnvPrefix("XLBATCH")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}
	return &cfg, nil
}

// Set updates one key and persists the config file.
func Set(key, value string) error {
	valid := false
	for _, k := range knownKeys {
		if k == key {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown config key %q — valid keys: %v", key, knownKeys)
	}

	viper.Set(key, value)
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(Path()); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	return nil
}

// Get returns one key's current value as a string.
func Get(key string) string {
	return viper.GetString(key)
}

// All returns every known key with its current value.
func All() map[string]string {
	out := make(map[string]string, len(knownKeys))
	for _, k := range knownKeys {
		out[k] = viper.GetString(k)
	}
	return out
}

// Keys returns the settable keys, sorted.
func Keys() []string {
	keys := append([]string(nil), knownKeys...)
	sort.Strings(keys)
	return keys
}

// Dir returns the configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xlbatch"
	}
	return filepath.Join(home, ".xlbatch")
}

// Path returns the configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}
