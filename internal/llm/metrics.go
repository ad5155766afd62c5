package llm

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives one observation per LLM request.
type Recorder interface {
	ObserveRequest(model, purpose string, inputTokens, outputTokens int, failure FailureKind, duration time.Duration)
}

// PrometheusRecorder implements Recorder with Prometheus metrics.
type PrometheusRecorder struct {
	requestsTotal   *prometheus.CounterVec
	tokensTotal     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the LLM metrics on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dsai_llm_requests_total",
				Help: "Total number of LLM requests by model, purpose, status, and failure kind",
			},
			[]string{"model", "purpose", "status", "failure"},
		),
		tokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dsai_llm_tokens_total",
				Help: "Total number of tokens used in LLM requests",
			},
			[]string{"model", "purpose", "type"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dsai_llm_request_duration_seconds",
				Help:    "Duration of LLM requests in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"model", "purpose"},
		),
	}
}

// ObserveRequest records a completed LLM request.
func (p *PrometheusRecorder) ObserveRequest(model, purpose string, inputTokens, outputTokens int, failure FailureKind, duration time.Duration) {
	status := "success"
	if failure != "" {
		status = "error"
	}

	p.requestsTotal.WithLabelValues(model, purpose, status, string(failure)).Inc()

	// Token counts are only meaningful for completed requests.
	if failure == "" {
		p.tokensTotal.WithLabelValues(model, purpose, "input").Add(float64(inputTokens))
		p.tokensTotal.WithLabelValues(model, purpose, "output").Add(float64(outputTokens))
	}

	p.requestDuration.WithLabelValues(model, purpose).Observe(duration.Seconds())
}

// MetricsProvider is a decorator that reports every request to a Recorder.
type MetricsProvider struct {
	inner    Provider
	recorder Recorder
}

// WithMetrics wraps a Provider with metrics recording.
func WithMetrics(p Provider, rec Recorder) Provider {
	return &MetricsProvider{inner: p, recorder: rec}
}

func (m *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := m.inner.Generate(ctx, req)

	model := m.inner.ModelID()
	var in, out int
	if resp != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.recorder.ObserveRequest(model, PurposeFrom(ctx), in, out, Classify(err), time.Since(start))

	return resp, err
}

func (m *MetricsProvider) ModelID() string {
	return m.inner.ModelID()
}
