package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// openRouterStub serves a single chat completion and captures the request.
type openRouterStub struct {
	path   string
	auth   string
	title  string
	model  string
	prompt string
}

func newOpenRouterServer(t *testing.T, stub *openRouterStub, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.path = r.URL.Path
		stub.auth = r.Header.Get("Authorization")
		stub.title = r.Header.Get("X-Title")

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		stub.model = body.Model
		if len(body.Messages) > 0 {
			stub.prompt = body.Messages[len(body.Messages)-1].Content
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "gen-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   body.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 12, "total_tokens": 42},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenRouterProvider_ForwardsPrompt(t *testing.T) {
	stub := &openRouterStub{}
	srv := newOpenRouterServer(t, stub, "A queue is FIFO.")

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "meta-llama/llama-3-8b",
		BaseURL: srv.URL + "/api/v1/",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(context.Background(), UserPrompt("Explain a queue."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "A queue is FIFO." {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if resp.Usage.TotalTokens != 42 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}

	if stub.path != "/api/v1/chat/completions" {
		t.Errorf("path = %q", stub.path)
	}
	if stub.auth != "Bearer sk-or-test" {
		t.Errorf("authorization = %q", stub.auth)
	}
	if stub.title != "dsai" {
		t.Errorf("X-Title = %q, want dsai", stub.title)
	}
	if stub.model != "meta-llama/llama-3-8b" {
		t.Errorf("model = %q, want it sent as configured", stub.model)
	}
	if stub.prompt != "Explain a queue." {
		t.Errorf("prompt = %q", stub.prompt)
	}
}

func TestOpenRouterProvider_FromEnv(t *testing.T) {
	stub := &openRouterStub{}
	srv := newOpenRouterServer(t, stub, "Use two pointers.")

	t.Setenv("DSAI_LLM_PROVIDER", "openrouter")
	t.Setenv("DSAI_OPENROUTER_API_KEY", "sk-or-env")
	t.Setenv("DSAI_OPENROUTER_MODEL", "qwen/qwen-2.5-coder-32b-instruct")
	t.Setenv("DSAI_OPENROUTER_BASE_URL", srv.URL+"/api/v1")

	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	repo := &recordingRepo{}
	p, err := NewProvider(context.Background(), cfg, Deps{EventRepo: repo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "qwen/qwen-2.5-coder-32b-instruct" {
		t.Fatalf("model = %q", p.ModelID())
	}

	ctx := WithPurpose(context.Background(), "solve")
	if _, err := p.Generate(ctx, UserPrompt("two sum with a sorted array")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.auth != "Bearer sk-or-env" || stub.prompt != "two sum with a sorted array" {
		t.Fatalf("unexpected request: %+v", stub)
	}
	if len(repo.events) != 1 || repo.events[0].Provider != "openrouter" || repo.events[0].Purpose != "solve" {
		t.Fatalf("unexpected events: %+v", repo.events)
	}
}

func TestNewOpenRouterProvider_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  OpenRouterConfig
	}{
		{"missing key", OpenRouterConfig{Model: "meta-llama/llama-3-8b"}},
		{"missing model", OpenRouterConfig{APIKey: "sk-or-test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOpenRouterProvider(tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	t.Setenv("DSAI_LLM_PROVIDER", "openrouter")
	t.Setenv("DSAI_OPENROUTER_API_KEY", "")
	if err := ConfigFromEnv().Validate(); err == nil {
		t.Fatal("expected validation error without DSAI_OPENROUTER_API_KEY")
	}
}
