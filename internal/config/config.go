// Package config loads client settings from an optional YAML file and TRANSCRIPT_ environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables, e.g. TRANSCRIPT_API_URL
const EnvPrefix = "TRANSCRIPT"

type Config struct {
	API   APIConfig   `mapstructure:"api"`
	Store StoreConfig `mapstructure:"store"`
	Auth  AuthConfig  `mapstructure:"auth"`
	Log   LogConfig   `mapstructure:"log"`
}

type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StoreConfig selects credential backend; redis wins when Redis.Addr is set
type StoreConfig struct {
	URL   string      `mapstructure:"url"`
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type AuthConfig struct {
	Margin     time.Duration `mapstructure:"margin"`
	RetryLimit int           `mapstructure:"retry_limit"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// DefaultStoreURL returns ~/.transcript or a relative fallback when home is unknown
func DefaultStoreURL() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".transcript"
	}
	return filepath.Join(home, ".transcript")
}

// Load reads config from path (optional) overlaid with environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("api.url", "http://127.0.0.1:8000")
	v.SetDefault("api.timeout", 2*time.Minute)
	v.SetDefault("store.url", DefaultStoreURL())
	v.SetDefault("store.redis.addr", "")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "transcript")
	v.SetDefault("auth.margin", 60*time.Second)
	v.SetDefault("auth.retry_limit", 1)
	v.SetDefault("log.mode", "silent")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("transcript")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultStoreURL())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
