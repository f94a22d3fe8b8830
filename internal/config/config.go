// Package config provides configuration management for flattag.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/flattag/internal/stream"
	"github.com/open-cli-collective/flattag/pkg/flattag"
)

// Config holds the persistent flattag defaults. Unset fields fall back to
// the built-in defaults of package flattag.
type Config struct {
	Delimiter     string   `yaml:"delimiter,omitempty"`
	AttrPrefix    string   `yaml:"attr_prefix,omitempty"`
	AttrInfix     string   `yaml:"attr_infix,omitempty"`
	Newline       *string  `yaml:"newline,omitempty"`
	Tab           *string  `yaml:"tab,omitempty"`
	AttributeMode string   `yaml:"attribute_mode,omitempty"`
	AutoClose     []string `yaml:"auto_close,omitempty"`
	Encoding      string   `yaml:"encoding,omitempty"`
}

// Environment variables read by LoadFromEnv.
const (
	EnvDelimiter     = "FLATTAG_DELIMITER"
	EnvAttrPrefix    = "FLATTAG_ATTR_PREFIX"
	EnvAttrInfix     = "FLATTAG_ATTR_INFIX"
	EnvNewline       = "FLATTAG_NEWLINE"
	EnvTab           = "FLATTAG_TAB"
	EnvAttributeMode = "FLATTAG_ATTRIBUTE_MODE"
	EnvAutoClose     = "FLATTAG_AUTO_CLOSE"
	EnvEncoding      = "FLATTAG_ENCODING"
)

// EnvVars lists every environment variable flattag reads.
func EnvVars() []string {
	return []string{
		EnvDelimiter, EnvAttrPrefix, EnvAttrInfix, EnvNewline, EnvTab,
		EnvAttributeMode, EnvAutoClose, EnvEncoding,
	}
}

// Validate checks that all set fields are usable.
func (c *Config) Validate() error {
	if _, err := flattag.ParseAttrMode(c.AttributeMode); err != nil {
		return err
	}
	if _, err := stream.LookupEncoding(c.Encoding); err != nil {
		return err
	}
	for _, name := range c.AutoClose {
		if len(flattag.SplitTagList(name)) == 0 {
			return errors.New("auto_close entries must not be empty")
		}
	}
	return nil
}

// ToOptions converts the configuration into parser options.
func (c *Config) ToOptions() (flattag.Options, error) {
	opts := flattag.DefaultOptions()
	opts.Delimiter = flattag.CharOption(c.Delimiter, flattag.DefaultDelimiter)
	opts.AttrPrefix = flattag.CharOption(c.AttrPrefix, flattag.DefaultAttrPrefix)
	opts.AttrInfix = flattag.CharOption(c.AttrInfix, flattag.DefaultAttrInfix)
	if c.Newline != nil {
		opts.Newline = *c.Newline
	}
	if c.Tab != nil {
		opts.Tab = *c.Tab
	}

	mode, err := flattag.ParseAttrMode(c.AttributeMode)
	if err != nil {
		return opts, err
	}
	opts.AttrMode = mode

	for _, entry := range c.AutoClose {
		opts.AutoClose = append(opts.AutoClose, flattag.SplitTagList(entry)...)
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv(EnvDelimiter); v != "" {
		c.Delimiter = v
	}
	if v := os.Getenv(EnvAttrPrefix); v != "" {
		c.AttrPrefix = v
	}
	if v := os.Getenv(EnvAttrInfix); v != "" {
		c.AttrInfix = v
	}
	if v := os.Getenv(EnvNewline); v != "" {
		c.Newline = &v
	}
	if v := os.Getenv(EnvTab); v != "" {
		c.Tab = &v
	}
	if v := os.Getenv(EnvAttributeMode); v != "" {
		c.AttributeMode = v
	}
	if v := os.Getenv(EnvAutoClose); v != "" {
		c.AutoClose = flattag.SplitTagList(v)
	}
	if v := os.Getenv(EnvEncoding); v != "" {
		c.Encoding = v
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "flattag", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".flattag", "config.yml")
	}

	return filepath.Join(home, ".config", "flattag", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file yields an empty configuration; a file that
// exists but cannot be read or parsed is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

// StringPtr returns a pointer to s, for the optional replacement fields.
func StringPtr(s string) *string {
	return &s
}

// ResolvePath returns path, or the default location when path is empty.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return DefaultConfigPath()
}
