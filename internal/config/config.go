// Package config loads application configuration from config.yaml, the
// environment and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. EDUPATH_LOG_LEVEL.
const EnvPrefix = "EDUPATH"

// Config is the resolved application configuration.
type Config struct {
	DB      string
	Log     LogConfig
	Catalog CatalogConfig
	Engine  EngineConfig
	LLM     LLMConfig

	// File is the config file that was read, or "" when none was found.
	File string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	File   string // path, "stderr" or "stdout"
}

// CatalogConfig points at an alternative question catalog.
type CatalogConfig struct {
	Path string
}

// EngineConfig points at an alternative scoring table.
type EngineConfig struct {
	Path string
}

// LLMConfig selects the optional language-model provider.
type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// Enabled reports whether a provider was configured explicitly.
func (c LLMConfig) Enabled() bool {
	return c.Provider != ""
}

// Options adjusts how Load searches for configuration.
type Options struct {
	// File is an explicit config file. When set, it must exist.
	File string
	// SearchPaths replaces the default search directories.
	SearchPaths []string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", DefaultLogPath())
	v.SetDefault("catalog.path", "")
	v.SetDefault("engine.path", "")
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 30*time.Second)
}

// New returns a viper instance wired for edupath: defaults, env prefix and
// config search paths.
func New(opts Options) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		return v
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	paths := opts.SearchPaths
	if paths == nil {
		paths = DefaultSearchPaths()
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	return v
}

// Load reads configuration. A missing config file is not an error unless
// one was named explicitly.
func Load(opts Options) (*Config, error) {
	v := New(opts)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DB: v.GetString("db"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		Catalog: CatalogConfig{Path: v.GetString("catalog.path")},
		Engine:  EngineConfig{Path: v.GetString("engine.path")},
		LLM: LLMConfig{
			Provider: v.GetString("llm.provider"),
			Model:    v.GetString("llm.model"),
			APIKey:   v.GetString("llm.api_key"),
			BaseURL:  v.GetString("llm.base_url"),
			Timeout:  v.GetDuration("llm.timeout"),
		},
		File: v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var errs []string
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q must be console or json", c.Log.Format))
	}
	switch c.LLM.Provider {
	case "", "anthropic", "openai", "gemini", "openrouter", "mock":
	default:
		errs = append(errs, fmt.Sprintf("llm.provider %q is not supported", c.LLM.Provider))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, "llm.timeout must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// DefaultSearchPaths returns the directories searched for config.yaml, in
// priority order.
func DefaultSearchPaths() []string {
	var paths []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, "edupath"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "edupath"))
	}
	return append(paths, ".")
}

// DefaultLogPath returns $XDG_STATE_HOME/edupath/edupath.log, falling back
// to ~/.local/state.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "stderr"
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "edupath", "edupath.log")
}
