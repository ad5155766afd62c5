// Package assistant orchestrates a single question through classification,
// prompt construction, one model call and, for practice questions,
// response cleanup.
package assistant

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/dsai/internal/llm"
	"github.com/abhisek/dsai/internal/prompt"
	"github.com/abhisek/dsai/internal/sanitize"
	"github.com/abhisek/dsai/internal/topics"
)

// Purpose labels attached to model calls for usage accounting.
const (
	PurposeSolve    = "solve"
	PurposePractice = "practice"
	PurposeInvoke   = "invoke"
)

// Service answers DSA questions. It holds only immutable collaborators and
// is safe for concurrent use.
type Service struct {
	provider llm.Provider
	catalog  *topics.Catalog
	prompts  prompt.Builder
	cfg      Config
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithPromptBuilder overrides the default prompt builder.
func WithPromptBuilder(b prompt.Builder) Option {
	return func(s *Service) { s.prompts = b }
}

// WithConfig overrides the model request settings.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// NewService creates a Service. A nil catalog uses topics.Default().
func NewService(provider llm.Provider, catalog *topics.Catalog, opts ...Option) *Service {
	if catalog == nil {
		catalog = topics.Default()
	}
	s := &Service{
		provider: provider,
		catalog:  catalog,
		prompts:  prompt.DefaultBuilder(),
		cfg:      DefaultConfig(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the topic catalog used for classification.
func (s *Service) Catalog() *topics.Catalog {
	return s.catalog
}

// Invoke sends prompt to the model exactly once and returns the completion
// text. Any failure is logged and returned as an INVOCATION_FAILED *Error.
func (s *Service) Invoke(ctx context.Context, prompt string) (string, error) {
	if !llm.HasPurpose(ctx) {
		ctx = llm.WithPurpose(ctx, PurposeInvoke)
	}
	resp, err := s.invoke(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (s *Service) invoke(ctx context.Context, prompt string) (*llm.Response, error) {
	req := llm.UserPrompt(prompt)
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		ae := invocationError(err)
		s.logger.Error("model invocation failed",
			zap.String("request_id", llm.RequestIDFrom(ctx)),
			zap.String("purpose", llm.PurposeFrom(ctx)),
			zap.String("failure", string(ae.Failure)),
			zap.Error(err),
		)
		return nil, ae
	}
	if resp.StopReason == "max_tokens" {
		s.logger.Warn("completion truncated",
			zap.String("request_id", llm.RequestIDFrom(ctx)),
			zap.String("purpose", llm.PurposeFrom(ctx)),
			zap.Int("max_tokens", s.cfg.MaxTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
	}
	return resp, nil
}

// Solve answers a user question. Blank questions fail with EMPTY_INPUT and
// questions matching no topic keyword fail with OFF_TOPIC; neither reaches
// the model. The completion is returned verbatim. A blank completion fails
// with INVOCATION_FAILED and MsgFetchFailed.
func (s *Service) Solve(ctx context.Context, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, emptyInputError()
	}

	id := uuid.NewString()
	log := s.logger.With(zap.String("request_id", id), zap.String("mode", string(ModeSolve)))

	keyword, ok := s.catalog.Match(question)
	if !ok {
		log.Debug("question rejected as off topic")
		return nil, &Error{Kind: KindOffTopic, Message: OffTopicMessage(s.catalog)}
	}
	log.Debug("question accepted", zap.String("keyword", keyword))

	ctx = llm.WithRequestID(llm.WithPurpose(ctx, PurposeSolve), id)
	resp, err := s.invoke(ctx, s.prompts.Solve(question))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Text) == "" {
		log.Warn("model returned a blank completion", zap.String("model", resp.Model))
		return nil, blankCompletionError()
	}

	log.Info("question answered", zap.String("model", resp.Model), zap.Int("output_tokens", resp.Usage.OutputTokens))

	return &Answer{
		RequestID: id,
		Mode:      ModeSolve,
		Input:     question,
		Text:      resp.Text,
		Raw:       resp.Text,
		Model:     resp.Model,
	}, nil
}

// Practice asks the model for a new practice problem, optionally steered
// towards topic. No classification is applied. Fenced code is stripped
// from the completion so the problem does not reveal a solution.
func (s *Service) Practice(ctx context.Context, topic string) (*Answer, error) {
	id := uuid.NewString()
	ctx = llm.WithRequestID(llm.WithPurpose(ctx, PurposePractice), id)

	resp, err := s.invoke(ctx, s.prompts.Generation(topic))
	if err != nil {
		return nil, err
	}

	cleaned := sanitize.Clean(resp.Text)
	s.logger.Info("practice question generated",
		zap.String("request_id", id),
		zap.String("topic", strings.TrimSpace(topic)),
		zap.Bool("stripped_code", sanitize.HasCode(resp.Text)),
	)

	return &Answer{
		RequestID: id,
		Mode:      ModePractice,
		Input:     topic,
		Text:      cleaned,
		Raw:       resp.Text,
		Model:     resp.Model,
	}, nil
}

// SubmitPractice acknowledges a practice solution. Solutions are not
// evaluated.
func (s *Service) SubmitPractice(solution string) (string, error) {
	if strings.TrimSpace(solution) == "" {
		return "", emptyInputError()
	}
	return MsgSubmitted, nil
}

// OffTopicMessage builds the corrective message listing the catalog's
// accepted topic categories.
func OffTopicMessage(c *topics.Catalog) string {
	cats := c.Categories()
	if len(cats) == 0 {
		return "The question must relate to DSA topics. Please revise your question."
	}
	return "The question must relate to DSA topics like " + strings.Join(cats, ", ") +
		", or other advanced concepts. Please revise your question."
}
