// Package config loads the client configuration from a YAML file and
// FITTERM_-prefixed environment variables. Every value has a default,
// so a missing config file is not an error.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all settings for the fitterm client.
type Config struct {
	API  APIConfig  `mapstructure:"api"`
	Log  LogConfig  `mapstructure:"log"`
	Data DataConfig `mapstructure:"data"`
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig controls the log file. The terminal belongs to the TUI, so
// logs never go to stdout.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DataConfig locates local state (the credentials database).
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from path (or the default config dir when
// empty) plus environment variables. Keys map to env vars via the
// FITTERM prefix: api.base_url -> FITTERM_API_BASE_URL.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	} else {
		v.AddConfigPath(defaultDir())
	}

	v.SetEnvPrefix("FITTERM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("data.dir", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DataDir returns the directory for local state, falling back to the
// per-user config dir.
func (c Config) DataDir() string {
	if c.Data.Dir != "" {
		return c.Data.Dir
	}
	return defaultDir()
}

// CredentialsPath is where the token database lives.
func (c Config) CredentialsPath() string {
	return filepath.Join(c.DataDir(), "credentials.db")
}

// LogFile returns the configured log file, defaulting to fitterm.log in
// the data dir.
func (c Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir(), "fitterm.log")
}

func defaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "fitterm")
}
