package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/dsai/internal/store"
)

// Deps carries the optional sinks the middleware chain writes to.
type Deps struct {
	EventRepo store.EventRepo
	Recorder  Recorder
	Logger    *zap.Logger
}

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with metrics, logging and timeout middleware.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	if cfg.Provider == "auto" {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM API key found in the environment")
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "ollama":
		base, err = NewOllamaProvider(cfg.Ollama)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = newDemoMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return wrap(base, cfg, deps), nil
}

// wrap builds the middleware chain: caller → metrics → logging → timeout → base.
func wrap(base Provider, cfg Config, deps Deps) Provider {
	p := WithTimeout(base, cfg.Timeout)
	p = WithLogging(p, cfg.Provider, deps.EventRepo, deps.Logger)
	if deps.Recorder != nil {
		p = WithMetrics(p, deps.Recorder)
	}
	return p
}
