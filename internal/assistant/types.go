package assistant

// Mode is the kind of request an Answer responds to.
type Mode string

const (
	ModeSolve    Mode = "solve"
	ModePractice Mode = "practice"
)

// Answer is the result of a successful Solve or Practice call.
type Answer struct {
	// RequestID correlates the answer with its log lines and usage event.
	RequestID string

	Mode Mode

	// Input is the question for solve and the topic (possibly empty) for
	// practice.
	Input string

	// Text is what the caller shows: the raw completion for solve, the
	// cleaned completion for practice.
	Text string

	// Raw is the unmodified completion.
	Raw string

	// Model is the model that produced the completion.
	Model string
}
