package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "ollama", "anthropic", "openai", "gemini", "openrouter", "mock", "auto"
	Provider string `yaml:"provider"`

	Ollama     OllamaConfig     `yaml:"ollama"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`

	// Timeout bounds a single LLM request. Zero means no deadline: a hung
	// provider hangs the request.
	Timeout time.Duration `yaml:"timeout"`
}

// OllamaConfig holds configuration for a local or remote Ollama server.
type OllamaConfig struct {
	Host  string `yaml:"host"`  // Default: "http://localhost:11434"
	Model string `yaml:"model"` // Default: "codellama:7b"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.0-flash-exp"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

const defaultOllamaHost = "http://localhost:11434"

// DefaultConfig returns a Config targeting a local Ollama server running
// codellama:7b.
func DefaultConfig() Config {
	return Config{
		Provider: "ollama",
		Ollama: OllamaConfig{
			Host:  defaultOllamaHost,
			Model: "codellama:7b",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields of c with any DSAI_* environment variables
// that are set.
func (c *Config) ApplyEnv() {
	setString(&c.Provider, "DSAI_LLM_PROVIDER")

	if h := os.Getenv("OLLAMA_HOST"); h != "" {
		c.Ollama.Host = normalizeOllamaHost(h)
	}
	setString(&c.Ollama.Host, "DSAI_OLLAMA_HOST")
	setString(&c.Ollama.Model, "DSAI_OLLAMA_MODEL")

	setString(&c.Anthropic.APIKey, "DSAI_ANTHROPIC_API_KEY")
	setString(&c.Anthropic.Model, "DSAI_ANTHROPIC_MODEL")

	setString(&c.OpenAI.APIKey, "DSAI_OPENAI_API_KEY")
	setString(&c.OpenAI.Model, "DSAI_OPENAI_MODEL")
	setString(&c.OpenAI.BaseURL, "DSAI_OPENAI_BASE_URL")

	setString(&c.Gemini.APIKey, "DSAI_GEMINI_API_KEY")
	setString(&c.Gemini.Model, "DSAI_GEMINI_MODEL")

	setString(&c.OpenRouter.APIKey, "DSAI_OPENROUTER_API_KEY")
	setString(&c.OpenRouter.Model, "DSAI_OPENROUTER_MODEL")
	setString(&c.OpenRouter.BaseURL, "DSAI_OPENROUTER_BASE_URL")

	if t := os.Getenv("DSAI_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			c.Timeout = d
		}
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has what it needs to connect.
func (c Config) Validate() error {
	switch c.Provider {
	case "ollama":
		if c.Ollama.Model == "" {
			return fmt.Errorf("DSAI_OLLAMA_MODEL is required for the ollama provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("DSAI_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("DSAI_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("DSAI_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("DSAI_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock", "auto":
		// Nothing to check up front.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("LLM timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
