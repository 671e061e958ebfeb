// Package config loads the listify client settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yukikurage/listify/internal/storage"
)

const EnvPrefix = "LISTIFY"

type Config struct {
	Server      string `mapstructure:"server"`
	Store       string `mapstructure:"store"`
	StorePath   string `mapstructure:"store_path"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// StorageConfig maps the client settings onto a storage backend.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Backend:     c.Store,
		Path:        c.StorePath,
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
	}
}

// Dir is the directory holding the config file and the default local store.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".listify"
	}
	return filepath.Join(home, ".listify")
}

// Load reads settings from defaults, then the YAML file at path (if it exists),
// then LISTIFY_* environment variables. An empty path means Dir()/config.yaml.
func Load(path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(Dir(), "config.yaml")
	}

	v := viper.New()
	v.SetDefault("server", "http://localhost:3000")
	v.SetDefault("store", storage.BackendFile)
	v.SetDefault("store_path", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_prefix", "listify:")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath(cfg.Store)
	}
	return cfg, nil
}

func defaultStorePath(backend string) string {
	switch backend {
	case storage.BackendSQLite:
		return filepath.Join(Dir(), "listify.db")
	default:
		return filepath.Join(Dir(), "store.json")
	}
}
