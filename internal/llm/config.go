package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with every provider's default model.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Overrides are the provider-agnostic llm.* keys of the application config.
// Empty fields leave the current value alone.
type Overrides struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// Apply returns c with o applied to the selected provider.
func (c Config) Apply(o Overrides) Config {
	if o.Provider != "" {
		c.Provider = o.Provider
	}
	if o.Timeout > 0 {
		c.Timeout = o.Timeout
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	switch c.Provider {
	case "anthropic":
		set(&c.Anthropic.APIKey, o.APIKey)
		set(&c.Anthropic.Model, o.Model)
	case "openai":
		set(&c.OpenAI.APIKey, o.APIKey)
		set(&c.OpenAI.Model, o.Model)
		set(&c.OpenAI.BaseURL, o.BaseURL)
	case "gemini":
		set(&c.Gemini.APIKey, o.APIKey)
		set(&c.Gemini.Model, o.Model)
	case "openrouter":
		set(&c.OpenRouter.APIKey, o.APIKey)
		set(&c.OpenRouter.Model, o.Model)
		set(&c.OpenRouter.BaseURL, o.BaseURL)
	}
	return c
}

// Resolve builds the effective configuration. Explicit overrides win;
// otherwise the standard provider key variables are probed. ok is false
// when no provider could be selected.
func Resolve(o Overrides) (cfg Config, ok bool) {
	if o.Provider != "" {
		cfg = DefaultConfig().Apply(o)
		cfg.fillKeyFromEnv()
		return cfg, true
	}
	cfg, ok = DiscoverConfig()
	if !ok {
		return Config{}, false
	}
	return cfg.Apply(o), true
}

// providerKeyEnv maps each provider to its standard API key variable.
var providerKeyEnv = map[string]string{
	"gemini":     "GEMINI_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// discoveryOrder is the order DiscoverConfig probes providers in.
var discoveryOrder = []string{"gemini", "openai", "anthropic", "openrouter"}

// DiscoverConfig returns a Config for the first provider whose standard API
// key variable is set, probing Gemini, OpenAI, Anthropic then OpenRouter.
func DiscoverConfig() (Config, bool) {
	for _, p := range discoveryOrder {
		if k := os.Getenv(providerKeyEnv[p]); k != "" {
			cfg := DefaultConfig().Apply(Overrides{Provider: p, APIKey: k})
			return cfg, true
		}
	}
	return Config{}, false
}

func (c *Config) fillKeyFromEnv() {
	env, ok := providerKeyEnv[c.Provider]
	if !ok {
		return
	}
	k := os.Getenv(env)
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			c.Anthropic.APIKey = k
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			c.OpenAI.APIKey = k
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			c.Gemini.APIKey = k
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			c.OpenRouter.APIKey = k
		}
	}
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("EDUPATH_LLM_API_KEY or %s is required for the %s provider", providerKeyEnv[c.Provider], c.Provider)
	}
	return nil
}
