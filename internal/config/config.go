// Package config loads the shell's settings from YAML or TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/marcelocantos/cotsh/internal/cap"
)

// Config holds the global cotsh configuration. An empty StartDir means the
// process working directory; a nil SearchPath means $PATH.
type Config struct {
	StartDir   string        `yaml:"start_dir" toml:"start_dir"`
	SearchPath []string      `yaml:"search_path" toml:"search_path"`
	Prompt     string        `yaml:"prompt" toml:"prompt"`
	Color      string        `yaml:"color" toml:"color"`
	History    HistoryConfig `yaml:"history" toml:"history"`
	Audit      AuditConfig   `yaml:"audit" toml:"audit"`
	Tiers      TierConfig    `yaml:"tiers" toml:"tiers"`
}

// HistoryConfig controls the line editor's history file.
type HistoryConfig struct {
	Path  string `yaml:"path" toml:"path"`
	Limit int    `yaml:"limit" toml:"limit"`
}

// AuditConfig controls the hash-chained command log.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

// TierConfig controls which safety tiers are enabled.
type TierConfig struct {
	Read  bool `yaml:"read" toml:"read"`
	Write bool `yaml:"write" toml:"write"`
	Exec  bool `yaml:"exec" toml:"exec"`
}

// DefaultPrompt shows the working directory in place of {cwd}.
const DefaultPrompt = "~{cwd} -> "

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Prompt: DefaultPrompt,
		Color:  "auto",
		History: HistoryConfig{
			Path:  filepath.Join(home, ".local", "share", "cotsh", "history"),
			Limit: 1000,
		},
		Audit: AuditConfig{
			Enabled: false,
			Path:    filepath.Join(home, ".local", "share", "cotsh", "audit.jsonl"),
		},
		Tiers: TierConfig{
			Read:  true,
			Write: true,
			Exec:  true,
		},
	}
}

// Dir returns the standard config directory (~/.config/cotsh).
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cotsh")
}

// Load reads the config from the standard location, preferring
// config.yaml over config.toml. If neither exists, returns the default
// config.
func Load() (*Config, error) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		path := filepath.Join(Dir(), name)
		if _, err := os.Stat(path); err == nil {
			return LoadFrom(path)
		}
	}
	return DefaultConfig(), nil
}

// LoadFrom reads the config from path. Files ending in .toml are parsed as
// TOML, anything else as YAML. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.StartDir = expandHome(cfg.StartDir)
	cfg.History.Path = expandHome(cfg.History.Path)
	cfg.Audit.Path = expandHome(cfg.Audit.Path)
	for i, d := range cfg.SearchPath {
		cfg.SearchPath[i] = expandHome(d)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the loaders cannot.
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative")
	}
	if !c.Tiers.Read {
		// exit lives in the read tier.
		return fmt.Errorf("tiers.read cannot be disabled")
	}
	if c.StartDir != "" && !filepath.IsAbs(c.StartDir) {
		return fmt.Errorf("start_dir must be absolute, got %q", c.StartDir)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	return p
}

// ApplyTiers sets the registry tier permissions from the config.
func (c *Config) ApplyTiers(reg *cap.Registry) {
	reg.SetTier(cap.TierRead, c.Tiers.Read)
	reg.SetTier(cap.TierWrite, c.Tiers.Write)
	reg.SetTier(cap.TierExec, c.Tiers.Exec)
}

// ApplySearchPath installs the configured search path, if any.
func (c *Config) ApplySearchPath(reg *cap.Registry) {
	if c.SearchPath != nil {
		reg.SetSearchPath(c.SearchPath)
	}
}

// PromptFor expands the prompt template for the working directory dir.
func (c *Config) PromptFor(dir string) string {
	return strings.ReplaceAll(c.Prompt, "{cwd}", dir)
}
