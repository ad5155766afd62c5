// Package server exposes the assistant over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abhisek/dsai/internal/assistant"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server routes HTTP requests to an assistant.Service.
type Server struct {
	svc      *assistant.Service
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	router   *mux.Router
}

// New creates a Server. gatherer backs /metrics and may be nil to disable it.
func New(svc *assistant.Service, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{svc: svc, gatherer: gatherer, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(jsonMiddleware)
	handle(api, "/solve", http.MethodPost, s.handleSolve)
	handle(api, "/practice", http.MethodPost, s.handlePractice)
	handle(api, "/practice/submit", http.MethodPost, s.handleSubmit)
	handle(api, "/topics", http.MethodGet, s.handleTopics)

	r.HandleFunc("/healthz", healthCheckHandler).Methods(http.MethodGet)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return r
}

// handle registers h for method on path, followed by a catch-all route on the
// same path answering 405. mux only reports a method mismatch when no other
// route in the router matched, which a sibling GET route defeats.
func handle(r *mux.Router, path, method string, h http.HandlerFunc) {
	r.HandleFunc(path, h).Methods(method)
	r.HandleFunc(path, methodNotAllowed(method))
}

func methodNotAllowed(allowed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowed)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: errorBody{
			Kind:    "METHOD_NOT_ALLOWED",
			Message: "Method not allowed",
		}})
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type solveRequest struct {
	Question string `json:"question"`
}

type solveResponse struct {
	RequestID string `json:"request_id"`
	Solution  string `json:"solution"`
}

type practiceRequest struct {
	Topic string `json:"topic"`
}

type practiceResponse struct {
	RequestID string `json:"request_id"`
	Question  string `json:"question"`
}

type submitRequest struct {
	Solution string `json:"solution"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type topicsResponse struct {
	Categories []string `json:"categories"`
	Keywords   []string `json:"keywords"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Failure string `json:"failure,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if !decode(w, r, &req) {
		return
	}

	ans, err := s.svc.Solve(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solveResponse{RequestID: ans.RequestID, Solution: ans.Text})
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	var req practiceRequest
	if !decode(w, r, &req) {
		return
	}

	ans, err := s.svc.Practice(r.Context(), req.Topic)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, practiceResponse{RequestID: ans.RequestID, Question: ans.Text})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decode(w, r, &req) {
		return
	}

	msg, err := s.svc.SubmitPractice(req.Solution)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	c := s.svc.Catalog()
	writeJSON(w, http.StatusOK, topicsResponse{Categories: c.Categories(), Keywords: c.Keywords()})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// statusFor maps an assistant error kind to an HTTP status.
func statusFor(kind assistant.Kind) int {
	switch kind {
	case assistant.KindEmptyInput, assistant.KindOffTopic:
		return http.StatusUnprocessableEntity
	case assistant.KindInvocationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var ae *assistant.Error
	if !errors.As(err, &ae) {
		s.logger.Error("unexpected handler error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{Kind: "INTERNAL", Message: "internal error"}})
		return
	}
	writeJSON(w, statusFor(ae.Kind), errorResponse{Error: errorBody{
		Kind:    string(ae.Kind),
		Message: ae.Message,
		Failure: string(ae.Failure),
	}})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Kind: "BAD_REQUEST", Message: "Invalid JSON payload"}})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("latency", time.Since(start)),
		)
	})
}
