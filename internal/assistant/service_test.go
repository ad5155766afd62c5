package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/dsai/internal/llm"
	"github.com/abhisek/dsai/internal/prompt"
	"github.com/abhisek/dsai/internal/topics"
)

const offTopicText = "The question must relate to DSA topics like arrays, trees, sorting, linked lists, stacks, queues, or other advanced concepts. Please revise your question."

func newTestService(t *testing.T, responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	return NewService(mock, topics.Default(), WithLogger(zaptest.NewLogger(t))), mock
}

func TestSolve_EmptyInput(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t"} {
		svc, mock := newTestService(t)

		ans, err := svc.Solve(context.Background(), q)
		require.Error(t, err)
		assert.Nil(t, ans)
		assert.Equal(t, KindEmptyInput, KindOf(err))
		assert.Equal(t, "Please enter a valid question.", err.Error())
		assert.Zero(t, mock.CallCount(), "model must not be called for %q", q)
	}
}

func TestSolve_OffTopic(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.Solve(context.Background(), "What is the capital of France?")
	require.Error(t, err)
	assert.Equal(t, KindOffTopic, KindOf(err))
	assert.Equal(t, offTopicText, err.Error())
	assert.Zero(t, mock.CallCount())
}

func TestSolve_AcceptedReturnsVerbatim(t *testing.T) {
	raw := "Binary search halves the range.\n```python\ndef bs(a, x):\n    pass\n```\n"
	svc, mock := newTestService(t, llm.MockResponse{Text: raw})

	ans, err := svc.Solve(context.Background(), "Explain binary search")
	require.NoError(t, err)
	assert.Equal(t, raw, ans.Text, "solve output must not be sanitized")
	assert.Equal(t, raw, ans.Raw)
	assert.Equal(t, ModeSolve, ans.Mode)
	assert.Equal(t, "Explain binary search", ans.Input)
	assert.Equal(t, "mock", ans.Model)
	assert.Len(t, ans.RequestID, 36)

	require.Equal(t, 1, mock.CallCount())
	call, _ := mock.LastCall()
	require.Len(t, call.Messages, 1)
	assert.Equal(t, prompt.BuildSolvePrompt("Explain binary search"), call.Messages[0].Content)
	assert.Equal(t, llm.RoleUser, call.Messages[0].Role)
	assert.Zero(t, call.MaxTokens)
}

func TestSolve_DefaultConfigLeavesOllamaUncapped(t *testing.T) {
	var options map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Options map[string]any `json:"options"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		options = body.Options
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":       "codellama:7b",
			"message":     map[string]any{"role": "assistant", "content": "Merge sort splits the input."},
			"done":        true,
			"done_reason": "stop",
		})
	}))
	t.Cleanup(srv.Close)

	provider, err := llm.NewOllamaProvider(llm.OllamaConfig{Host: srv.URL, Model: "codellama:7b"})
	require.NoError(t, err)

	ans, err := NewService(provider, nil).Solve(context.Background(), "merge sort")
	require.NoError(t, err)
	assert.Equal(t, "Merge sort splits the input.", ans.Text)
	assert.NotContains(t, options, "num_predict")
}

func TestSolve_BlankCompletion(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  \n\t "})
	svc := NewService(mock, nil, WithLogger(zap.New(core)))

	ans, err := svc.Solve(context.Background(), "queue using two stacks")
	assert.Nil(t, ans)

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindInvocationFailed, ae.Kind)
	assert.Equal(t, llm.FailureMalformed, ae.Failure)
	assert.Equal(t, MsgFetchFailed, ae.Message)
	assert.Equal(t, 1, logs.FilterMessage("model returned a blank completion").Len())
}

func TestSolve_TruncatedCompletionLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "partial answer", StopReason: "max_tokens", Usage: llm.Usage{OutputTokens: 64}})
	svc := NewService(mock, nil, WithLogger(zap.New(core)), WithConfig(Config{MaxTokens: 64}))

	ans, err := svc.Solve(context.Background(), "binary search")
	require.NoError(t, err)
	assert.Equal(t, "partial answer", ans.Text)

	entries := logs.FilterMessage("completion truncated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(64), fields["max_tokens"])
	assert.Equal(t, PurposeSolve, fields["purpose"])
}

func TestSolve_SubstringMatch(t *testing.T) {
	svc, _ := newTestService(t, llm.MockResponse{Text: "ok"})

	_, err := svc.Solve(context.Background(), "maximum SUBARRAY sum")
	assert.NoError(t, err)
}

func TestSolve_InvocationFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("dial tcp 127.0.0.1:11434: connection refused")},
	})
	svc := NewService(mock, nil, WithLogger(zap.New(core)))

	ans, err := svc.Solve(context.Background(), "reverse a linked list")
	require.Error(t, err)
	assert.Nil(t, ans)

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindInvocationFailed, ae.Kind)
	assert.Equal(t, llm.FailureUnreachable, ae.Failure)
	assert.Equal(t, "An error occurred: LLM provider unavailable: dial tcp 127.0.0.1:11434: connection refused", ae.Message)
	assert.Equal(t, 1, mock.CallCount(), "no retry")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "model invocation failed", logs.All()[0].Message)
}

func TestSolve_TimeoutClassified(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrTimeout{After: time.Second, Err: context.DeadlineExceeded},
	})
	svc := NewService(mock, nil)

	_, err := svc.Solve(context.Background(), "sorting algorithms")
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, llm.FailureTimeout, ae.Failure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSolve_CustomCatalog(t *testing.T) {
	catalog := topics.New([]string{"trie"}, nil)
	svc := NewService(llm.NewMockProvider(llm.MockResponse{Text: "ok"}), catalog)

	_, err := svc.Solve(context.Background(), "explain arrays")
	assert.Equal(t, KindOffTopic, KindOf(err))
	assert.Equal(t, "The question must relate to DSA topics. Please revise your question.", err.Error())

	_, err = svc.Solve(context.Background(), "build a Trie")
	assert.NoError(t, err)
}

func TestPractice_StripsCode(t *testing.T) {
	raw := "Problem Statement:\nFind the k-th largest element.\n```python\nimport heapq\n```\nConstraints: n <= 10^5\n"
	svc, mock := newTestService(t, llm.MockResponse{Text: raw})

	ans, err := svc.Practice(context.Background(), "heaps")
	require.NoError(t, err)
	assert.Equal(t, ModePractice, ans.Mode)
	assert.NotContains(t, ans.Text, "```")
	assert.NotContains(t, ans.Text, "import heapq")
	assert.True(t, strings.HasPrefix(ans.Text, "Problem Statement:"))
	assert.Equal(t, raw, ans.Raw)

	call, _ := mock.LastCall()
	assert.Equal(t, prompt.BuildGenerationPrompt("heaps"), call.Messages[0].Content)
}

func TestPractice_LogsStrippedCode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"fenced", "Problem Statement: x\n```python\npass\n```", true},
		{"plain", "Problem Statement: x\nConstraints: n <= 10", false},
		{"padded plain", "\n  Problem Statement: x  \n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			svc := NewService(llm.NewMockProvider(llm.MockResponse{Text: tt.raw}), nil, WithLogger(zap.New(core)))

			_, err := svc.Practice(context.Background(), "")
			require.NoError(t, err)

			entries := logs.FilterMessage("practice question generated").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].ContextMap()["stripped_code"])
		})
	}
}

func TestPractice_BypassesClassification(t *testing.T) {
	svc, mock := newTestService(t, llm.MockResponse{Text: "q"})

	_, err := svc.Practice(context.Background(), "cooking")
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestPractice_Failure(t *testing.T) {
	svc, _ := newTestService(t, llm.MockResponse{Err: errors.New("boom")})

	_, err := svc.Practice(context.Background(), "")
	assert.Equal(t, KindInvocationFailed, KindOf(err))
	assert.Equal(t, "An error occurred: boom", err.Error())
}

func TestInvoke(t *testing.T) {
	svc, mock := newTestService(t, llm.MockResponse{Text: "completion"}, llm.MockResponse{Err: errors.New("nope")})

	text, err := svc.Invoke(context.Background(), "any prompt")
	require.NoError(t, err)
	assert.Equal(t, "completion", text)

	call, _ := mock.LastCall()
	assert.Equal(t, "any prompt", call.Messages[0].Content)

	text, err = svc.Invoke(context.Background(), "again")
	assert.Empty(t, text)
	assert.Equal(t, KindInvocationFailed, KindOf(err))
	assert.Equal(t, llm.FailureUnknown, err.(*Error).Failure)
}

type purposeProvider struct {
	purposes []string
}

func (p *purposeProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	return &llm.Response{Text: "ok", Model: "stub"}, nil
}

func (p *purposeProvider) ModelID() string { return "stub" }

func TestInvoke_Purpose(t *testing.T) {
	p := &purposeProvider{}
	svc := NewService(p, nil)

	_, err := svc.Invoke(context.Background(), "a")
	require.NoError(t, err)
	_, err = svc.Invoke(llm.WithPurpose(context.Background(), "grading"), "b")
	require.NoError(t, err)

	assert.Equal(t, []string{PurposeInvoke, "grading"}, p.purposes)
}

func TestSubmitPractice(t *testing.T) {
	svc, mock := newTestService(t)

	msg, err := svc.SubmitPractice("def f(): return 1")
	require.NoError(t, err)
	assert.Equal(t, "Your solution has been submitted!", msg)

	_, err = svc.SubmitPractice("  ")
	assert.Equal(t, KindEmptyInput, KindOf(err))
	assert.Zero(t, mock.CallCount())
}

func TestWithPromptBuilder(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	svc := NewService(mock, nil, WithPromptBuilder(prompt.Builder{Language: "Go"}), WithConfig(Config{MaxTokens: 100, Temperature: 0.3}))

	_, err := svc.Solve(context.Background(), "stack")
	require.NoError(t, err)

	call, _ := mock.LastCall()
	assert.Contains(t, call.Messages[0].Content, "solving assistant using Go.")
	assert.Equal(t, 100, call.MaxTokens)
	assert.InDelta(t, 0.3, call.Temperature, 1e-9)
}

func TestSolve_ConcurrentUse(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.SetFallback(llm.MockResponse{Text: "ok"})
	svc := NewService(mock, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Solve(context.Background(), "queue using two stacks")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, mock.CallCount())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, Kind(""), KindOf(errors.New("x")))
	assert.Equal(t, KindOffTopic, KindOf(&Error{Kind: KindOffTopic}))
}
