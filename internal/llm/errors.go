package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned something that cannot be
// used as a completion (no choices, no text block, undecodable body).
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrTimeout indicates the request did not complete within the configured
// deadline.
type ErrTimeout struct {
	After time.Duration
	Err   error
}

func (e *ErrTimeout) Error() string {
	if e.After > 0 {
		return fmt.Sprintf("LLM request timed out after %s: %v", e.After, e.Err)
	}
	return fmt.Sprintf("LLM request timed out: %v", e.Err)
}

func (e *ErrTimeout) Unwrap() error { return e.Err }

// FailureKind is a coarse classification of an invocation failure.
// It refines reporting only; every kind follows the same error path.
type FailureKind string

const (
	FailureTimeout     FailureKind = "TIMEOUT"
	FailureUnreachable FailureKind = "UNREACHABLE"
	FailureMalformed   FailureKind = "MALFORMED"
	FailureUnknown     FailureKind = "UNKNOWN"
)

// Classify maps an error returned by a Provider to a FailureKind.
// Returns "" for a nil error.
func Classify(err error) FailureKind {
	if err == nil {
		return ""
	}

	var timeout *ErrTimeout
	if errors.As(err, &timeout) || errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return FailureMalformed
	}

	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return FailureUnreachable
	}
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return FailureUnreachable
	}

	return FailureUnknown
}
