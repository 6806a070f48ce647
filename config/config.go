// SPDX-License-Identifier: MIT

// Package config loads matrixlink configuration.
//
// Configuration comes from a single file named by the --config flag or,
// when no flag is given, by the MATRIXLINK_CONFIG environment variable.
// There is no discovery: without either, the built-in defaults are used.
//
// The file is YAML. Files ending in .json or .jsonc are treated as JSON with
// comments and trailing commas, which are stripped before decoding.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no explicit path is given.
const EnvVar = "MATRIXLINK_CONFIG"

// Config is the full configuration shared by matrixctl and matrixstore.
type Config struct {
	// Store locates the remote matrix store.
	Store StoreConfig `yaml:"store"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	// Listen is the address matrixstore binds to.
	// Default: :8080
	Listen string `yaml:"listen"`
}

// StoreConfig locates the store and bounds the connection.
type StoreConfig struct {
	// Default: localhost
	Host string `yaml:"host"`

	// Default: 8080
	Port int `yaml:"port"`

	// DialTimeout bounds connection establishment.
	// Default: 5s
	DialTimeout time.Duration `yaml:"dial_timeout"`

	// IOTimeout bounds each command round trip. Zero blocks indefinitely.
	// Default: 0
	IOTimeout time.Duration `yaml:"io_timeout"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is json or text.
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Host:        "localhost",
			Port:        8080,
			DialTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Listen: ":8080",
	}
}

// Load resolves the configuration path and loads it. An explicit path wins
// over MATRIXLINK_CONFIG; when both are empty Default is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}

	return LoadFile(path)
}

// LoadFile reads path over the defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := Parse(data, isJSON(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes data over the defaults. When asJSON is set, JSONC comments
// and trailing commas are stripped first.
func Parse(data []byte, asJSON bool) (*Config, error) {
	if asJSON {
		data = jsonc.ToJSON(data)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func isJSON(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	}

	return false
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Store.Host == "" {
		errs = append(errs, errors.New("store.host is required"))
	}
	if c.Store.Port < 1 || c.Store.Port > 65535 {
		errs = append(errs, fmt.Errorf("store.port %d out of range 1..65535", c.Store.Port))
	}
	if c.Store.DialTimeout < 0 {
		errs = append(errs, fmt.Errorf("store.dial_timeout must not be negative, got %s", c.Store.DialTimeout))
	}
	if c.Store.IOTimeout < 0 {
		errs = append(errs, fmt.Errorf("store.io_timeout must not be negative, got %s", c.Store.IOTimeout))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}
	if c.Listen == "" {
		errs = append(errs, errors.New("listen is required"))
	}

	return errors.Join(errs...)
}

// NewLogger builds the configured slog handler writing to w.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(l.Level)
	if err != nil {
		return nil, err
	}

	handlerOptions := &slog.HandlerOptions{Level: level}
	switch l.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOptions)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, handlerOptions)), nil
	default:
		return nil, fmt.Errorf("log.format must be json or text, got %q", l.Format)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level %q: must be debug, info, warn or error", s)
	}

	return level, nil
}
