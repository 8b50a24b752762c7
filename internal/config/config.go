// Package config loads the optional stockroom.yaml settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file looked up when --config is not given.
const DefaultPath = "stockroom.yaml"

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ValidBackends lists the accepted backend values.
var ValidBackends = []string{BackendFile, BackendSQLite, BackendRedis}

// Config holds settings shared by all commands.
type Config struct {
	// File is the catalog file for the file backend (.csv or .json).
	File string `yaml:"file"`

	// Backend selects where the catalog is persisted.
	Backend string `yaml:"backend"`

	// Database is the SQLite path for the sqlite backend.
	Database string `yaml:"database"`

	Redis RedisConfig `yaml:"redis"`

	// LowStockThreshold is the default for the low command.
	LowStockThreshold int `yaml:"low_stock_threshold"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr string `yaml:"addr"`
	Key  string `yaml:"key"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		File:              "inventory.csv",
		Backend:           BackendFile,
		Database:          "stockroom.db",
		Redis:             RedisConfig{Addr: "localhost:6379", Key: "stockroom:catalog"},
		LowStockThreshold: 5,
		LogLevel:          "info",
	}
}

// Load reads path and overlays it on Default(). When required is false a
// missing file yields the defaults.
//
// Unknown keys are rejected so typos surface instead of being ignored.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if !slices.Contains(ValidBackends, c.Backend) {
		return fmt.Errorf("backend %q: must be one of %v", c.Backend, ValidBackends)
	}
	switch c.Backend {
	case BackendFile:
		if c.File == "" {
			return fmt.Errorf("file is required for the file backend")
		}
	case BackendSQLite:
		if c.Database == "" {
			return fmt.Errorf("database is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("low_stock_threshold must be non-negative, got %d", c.LowStockThreshold)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
