package assistant

import (
	"errors"
	"fmt"

	"github.com/abhisek/dsai/internal/llm"
)

// Kind identifies why a request was not answered.
type Kind string

const (
	// KindEmptyInput means the question was blank.
	KindEmptyInput Kind = "EMPTY_INPUT"
	// KindOffTopic means the question matched no topic keyword.
	KindOffTopic Kind = "OFF_TOPIC"
	// KindInvocationFailed means the model call failed.
	KindInvocationFailed Kind = "INVOCATION_FAILED"
)

// User-facing messages.
const (
	MsgEmptyInput       = "Please enter a valid question."
	MsgSubmitted        = "Your solution has been submitted!"
	MsgReceived         = "Response received!"
	MsgFetchFailed      = "Failed to fetch a response."
	invocationFailedFmt = "An error occurred: %s"
)

// Error is returned by Service operations. Message is safe to show to the
// user as-is.
type Error struct {
	Kind    Kind
	Message string

	// Failure refines INVOCATION_FAILED. Empty for other kinds.
	Failure llm.FailureKind

	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func emptyInputError() *Error {
	return &Error{Kind: KindEmptyInput, Message: MsgEmptyInput}
}

func invocationError(err error) *Error {
	return &Error{
		Kind:    KindInvocationFailed,
		Message: fmt.Sprintf(invocationFailedFmt, err.Error()),
		Failure: llm.Classify(err),
		Err:     err,
	}
}

func blankCompletionError() *Error {
	return &Error{Kind: KindInvocationFailed, Message: MsgFetchFailed, Failure: llm.FailureMalformed}
}
