// Package config handles loading and saving user configuration for yomi.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the config directory.
const FileName = "config.yaml"

// Encodings lists the accepted data file encodings.
var Encodings = []string{"utf-8", "euc-jp", "shift_jis"}

// Config holds all user configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Lookup  LookupConfig  `yaml:"lookup"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// DataConfig locates the dictionary files.
type DataConfig struct {
	Dir      string `yaml:"dir"`      // directory holding dict.dat, kanji.dat, ...
	Encoding string `yaml:"encoding"` // encoding of the data files
	Rules    string `yaml:"rules"`    // optional deinflection rule file
}

// LookupConfig holds result budgets.
type LookupConfig struct {
	MaxWords      int  `yaml:"max_words"`
	MaxNames      int  `yaml:"max_names"`
	MaxTranslate  int  `yaml:"max_translate"`
	KanjiFallback bool `yaml:"kanji_fallback"`
}

// DisplayConfig controls rendering.
type DisplayConfig struct {
	KanjiInfo   []string `yaml:"kanji_info"`
	HidePOS     bool     `yaml:"hide_pos"`
	HidePopular bool     `yaml:"hide_popular"`
}

// LogConfig selects the log level (debug, info, warn, error) and format
// (text, json).
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration. Data.Dir is left empty and
// resolved against the config directory by DataDir.
func Default() *Config {
	return &Config{
		Data: DataConfig{Encoding: "utf-8"},
		Lookup: LookupConfig{
			MaxWords:      7,
			MaxNames:      20,
			MaxTranslate:  7,
			KanjiFallback: true,
		},
		Display: DisplayConfig{
			KanjiInfo: []string{"H", "L", "E", "DK", "N", "V", "Y", "P", "IN", "I", "U"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a config file. Keys missing from the file keep their default
// values. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks budgets and the data encoding.
func (c *Config) Validate() error {
	var errs []error
	if c.Lookup.MaxWords <= 0 {
		errs = append(errs, fmt.Errorf("lookup.max_words must be positive, got %d", c.Lookup.MaxWords))
	}
	if c.Lookup.MaxNames <= 0 {
		errs = append(errs, fmt.Errorf("lookup.max_names must be positive, got %d", c.Lookup.MaxNames))
	}
	if c.Lookup.MaxTranslate <= 0 {
		errs = append(errs, fmt.Errorf("lookup.max_translate must be positive, got %d", c.Lookup.MaxTranslate))
	}
	if enc := strings.ToLower(c.Data.Encoding); enc != "" && !slices.Contains(Encodings, enc) {
		errs = append(errs, fmt.Errorf("data.encoding %q is not one of %s", c.Data.Encoding, strings.Join(Encodings, ", ")))
	}
	return errors.Join(errs...)
}

// DataDir returns the data directory, defaulting to "data" under the config
// directory. A leading "~/" is expanded.
func (c *Config) DataDir(configDir string) string {
	dir := c.Data.Dir
	if dir == "" {
		return filepath.Join(configDir, "data")
	}
	if rest, ok := strings.CutPrefix(dir, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return dir
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "yomi"), nil
}

// EnsureConfigDir creates dir and the data directory cfg resolves under it.
func EnsureConfigDir(dir string, cfg *Config) error {
	for _, d := range []string{dir, cfg.DataDir(dir)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", d, err)
		}
	}
	return nil
}
