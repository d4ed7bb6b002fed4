// Package config holds the server settings and loads them from TOML or YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/podhmo/go-reflector/logging"
	"github.com/podhmo/go-reflector/parser"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config is the full server configuration. Zero durations are invalid; use
// Default as the starting point.
type Config struct {
	Addr      string `toml:"addr" yaml:"addr"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`

	// DefaultLocale is used when Accept-Language matches nothing supported.
	DefaultLocale    string   `toml:"default_locale" yaml:"default_locale"`
	SupportedLocales []string `toml:"supported_locales" yaml:"supported_locales"`

	ReadTimeout     time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`

	// MaxBodyBytes limits request bodies; 0 means unlimited.
	MaxBodyBytes int64 `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:             ":8080",
		LogLevel:         "info",
		LogFormat:        logging.FormatText,
		DefaultLocale:    "en",
		SupportedLocales: []string{"en", "ko"},
		ReadTimeout:      10 * time.Second,
		WriteTimeout:     10 * time.Second,
		ShutdownTimeout:  5 * time.Second,
		MaxBodyBytes:     1 << 20,
	}
}

// Load reads path over the defaults. The format is chosen by extension:
// .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config: unknown keys in %s: %v", path, undecoded)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported file type %q", ext)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("config: addr is empty"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("config: log_level: %w", err))
	}
	if c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON {
		errs = append(errs, fmt.Errorf("config: log_format must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.LogFormat))
	}
	if _, err := parser.Locale(c.DefaultLocale); err != nil {
		errs = append(errs, fmt.Errorf("config: default_locale %q: %w", c.DefaultLocale, err))
	}
	for _, l := range c.SupportedLocales {
		if _, err := parser.Locale(l); err != nil {
			errs = append(errs, fmt.Errorf("config: supported_locales %q: %w", l, err))
		}
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("config: %s must be positive, got %s", name, d))
		}
	}
	if c.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("config: max_body_bytes must not be negative, got %d", c.MaxBodyBytes))
	}
	return errors.Join(errs...)
}

// Locales returns the default locale followed by the other supported ones,
// without duplicates. The first entry is the fallback of locale negotiation.
func (c *Config) Locales() []language.Tag {
	tags := []language.Tag{language.Make(c.DefaultLocale)}
	for _, l := range c.SupportedLocales {
		tag := language.Make(l)
		dup := false
		for _, t := range tags {
			if t == tag {
				dup = true
				break
			}
		}
		if !dup {
			tags = append(tags, tag)
		}
	}
	return tags
}
