// Package config loads the server configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the structure of aniame.yaml.
type Config struct {
	Addr        string      `yaml:"addr" json:"addr"`
	Dictionary  string      `yaml:"dictionary" json:"dictionary"`
	Concurrency int         `yaml:"concurrency" json:"concurrency"`
	Metrics     bool        `yaml:"metrics" json:"metrics"`
	Log         LogConfig   `yaml:"log" json:"log"`
	Redis       RedisConfig `yaml:"redis" json:"redis"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// RedisConfig enables the Redis reference store when Addr is set.
type RedisConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	Password  string `yaml:"password" json:"password"`
	DB        int    `yaml:"db" json:"db"`
	Prefix    string `yaml:"prefix" json:"prefix"`
	TTL       string `yaml:"ttl" json:"ttl"`
	CacheSize int    `yaml:"cache_size" json:"cache_size"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:        ":8080",
		Concurrency: 1,
		Metrics:     true,
		Log:         LogConfig{Level: "info", Format: "text"},
		Redis:       RedisConfig{Prefix: "aniame:refs:", CacheSize: 1024},
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	// Relative dictionary paths are relative to the config file.
	if cfg.Dictionary != "" && !filepath.IsAbs(cfg.Dictionary) {
		cfg.Dictionary = filepath.Join(filepath.Dir(path), cfg.Dictionary)
	}
	return cfg, cfg.Validate()
}

// Validate reports inconsistent settings.
func (c Config) Validate() error {
	var errs []error
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if _, err := c.Redis.Expiration(); err != nil {
		errs = append(errs, err)
	}
	if c.Redis.Addr != "" && c.Redis.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("redis.cache_size must not be negative"))
	}
	return errors.Join(errs...)
}

// Expiration parses TTL. Empty means no expiration.
func (r RedisConfig) Expiration() (time.Duration, error) {
	if r.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0, fmt.Errorf("redis.ttl: %w", err)
	}
	return d, nil
}
