package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/dsai/internal/store"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	ctxErr []error
	err    error
}

func (r *recordingRepo) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	r.ctxErr = append(r.ctxErr, ctx.Err())
	return r.err
}

func (r *recordingRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByPurpose(context.Context) ([]store.LLMPurposeUsage, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByModel(context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	core, logs := observer.New(zap.DebugLevel)
	mock := NewMockProvider(MockResponse{Text: "answer", Usage: Usage{InputTokens: 7, OutputTokens: 3}})

	p := WithLogging(mock, "mock", repo, zap.New(core))
	ctx := WithRequestID(WithPurpose(context.Background(), "solve"), "req-42")
	if _, err := p.Generate(ctx, UserPrompt("q")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.RequestID != "req-42" || e.Purpose != "solve" || e.Provider != "mock" || e.Model != "mock" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if !e.Success || e.Failure != "" || e.InputTokens != 7 || e.OutputTokens != 3 {
		t.Fatalf("unexpected event: %+v", e)
	}

	if logs.FilterMessage("llm request completed").Len() != 1 {
		t.Fatalf("expected a completion log line, got %v", logs.All())
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	core, logs := observer.New(zap.DebugLevel)
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}})

	p := WithLogging(mock, "ollama", repo, zap.New(core))
	_, err := p.Generate(context.Background(), UserPrompt("q"))
	if err == nil {
		t.Fatal("expected error")
	}

	e := repo.events[0]
	if e.Success {
		t.Fatal("expected failed event")
	}
	if e.Failure != string(FailureUnreachable) {
		t.Fatalf("expected UNREACHABLE, got %q", e.Failure)
	}
	if e.ErrorMessage == "" {
		t.Fatal("expected error message")
	}
	if e.Purpose != PurposeUnknown {
		t.Fatalf("expected default purpose, got %q", e.Purpose)
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Fatal("expected a failure log line")
	}
}

func TestLoggingProvider_RecordsAfterCallerCancel(t *testing.T) {
	repo := &recordingRepo{}
	p := WithLogging(blockingProvider{}, "ollama", repo, nil)

	ctx, cancel := context.WithCancel(WithPurpose(context.Background(), "solve"))
	cancel()

	if _, err := p.Generate(ctx, UserPrompt("q")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	if repo.ctxErr[0] != nil {
		t.Fatalf("event written with a done context: %v", repo.ctxErr[0])
	}
	if repo.events[0].Purpose != "solve" || repo.events[0].Success {
		t.Fatalf("unexpected event: %+v", repo.events[0])
	}
}

func TestLoggingProvider_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Text: "ok"})

	p := WithLogging(mock, "mock", repo, nil)
	resp, err := p.Generate(context.Background(), UserPrompt("q"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), UserPrompt("q")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected model passthrough, got %q", p.ModelID())
	}
}

func TestMetricsProvider(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg)
	mock := NewMockProvider(
		MockResponse{Text: "ok", Usage: Usage{InputTokens: 10, OutputTokens: 4}},
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("empty")}},
	)

	p := WithMetrics(mock, rec)
	ctx := WithPurpose(context.Background(), "solve")
	_, _ = p.Generate(ctx, UserPrompt("a"))
	_, _ = p.Generate(ctx, UserPrompt("b"))

	if got := testutil.ToFloat64(rec.requestsTotal.WithLabelValues("mock", "solve", "success", "")); got != 1 {
		t.Fatalf("success count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.requestsTotal.WithLabelValues("mock", "solve", "error", "MALFORMED")); got != 1 {
		t.Fatalf("error count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.tokensTotal.WithLabelValues("mock", "solve", "input")); got != 10 {
		t.Fatalf("input tokens = %v, want 10", got)
	}
	if got := testutil.CollectAndCount(rec.requestDuration); got != 1 {
		t.Fatalf("duration series = %d, want 1", got)
	}
}

func TestTimeoutProvider(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 20*time.Millisecond)

	_, err := p.Generate(context.Background(), UserPrompt("q"))
	var te *ErrTimeout
	if !errors.As(err, &te) {
		t.Fatalf("expected ErrTimeout, got %T (%v)", err, err)
	}
	if te.After != 20*time.Millisecond {
		t.Fatalf("unexpected After: %s", te.After)
	}
	if Classify(err) != FailureTimeout {
		t.Fatalf("expected TIMEOUT, got %q", Classify(err))
	}
}

func TestTimeoutProvider_ZeroIsPassthrough(t *testing.T) {
	mock := NewMockProvider()
	if WithTimeout(mock, 0) != Provider(mock) {
		t.Fatal("expected zero timeout to return the provider unchanged")
	}
}

func TestTimeoutProvider_CallerCancel(t *testing.T) {
	p := WithTimeout(blockingProvider{}, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, UserPrompt("q"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var te *ErrTimeout
	if errors.As(err, &te) {
		t.Fatal("caller cancellation must not be reported as a timeout")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	repo := &recordingRepo{}
	cfg := Config{Provider: "mock", Timeout: time.Second}

	p, err := NewProvider(context.Background(), cfg, Deps{EventRepo: repo, Recorder: NewPrometheusRecorder(prometheus.NewRegistry())})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(WithPurpose(context.Background(), "solve"), UserPrompt("anything"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text == "" {
		t.Fatal("expected demo text")
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected the middleware chain to record 1 event, got %d", len(repo.events))
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, Deps{}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProvider_AutoWithoutKeys(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "auto"}, Deps{}); err == nil {
		t.Fatal("expected error when no key is discoverable")
	}
}
