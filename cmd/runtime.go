package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/dsai/internal/assistant"
	"github.com/abhisek/dsai/internal/llm"
	"github.com/abhisek/dsai/internal/store"
)

// runtime bundles what every command that talks to a model needs.
type runtime struct {
	store    *store.Store
	provider llm.Provider
	svc      *assistant.Service
}

// newRuntime opens the usage store, builds the provider chain and the
// assistant service. recorder may be nil.
func newRuntime(ctx context.Context, log *zap.Logger, recorder llm.Recorder) (*runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("load topic catalog: %w", err)
	}

	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, llm.Deps{
		EventRepo: st.EventRepo(),
		Recorder:  recorder,
		Logger:    log,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	svc := assistant.NewService(provider, catalog,
		assistant.WithLogger(log),
		assistant.WithPromptBuilder(cfg.PromptBuilder()),
		assistant.WithConfig(cfg.Assistant),
	)

	return &runtime{store: st, provider: provider, svc: svc}, nil
}

func (r *runtime) Close() error {
	return r.store.Close()
}
