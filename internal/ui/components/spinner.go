package components

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dsai/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// SpinnerTickMsg advances a Spinner by one frame.
type SpinnerTickMsg struct {
	ID int64
}

var lastSpinnerID atomic.Int64

// Spinner is a labelled activity indicator shown while a request is in
// flight.
type Spinner struct {
	Label  string
	id     int64
	frame  int
	active bool
}

// NewSpinner creates a stopped spinner with the given label.
func NewSpinner(label string) Spinner {
	return Spinner{Label: label, id: lastSpinnerID.Add(1)}
}

// Start activates the spinner and returns the first tick.
func (s Spinner) Start() (Spinner, tea.Cmd) {
	s.active = true
	s.frame = 0
	return s, s.tick()
}

// Stop deactivates the spinner. Pending ticks are ignored.
func (s Spinner) Stop() Spinner {
	s.active = false
	return s
}

// Active reports whether the spinner is running.
func (s Spinner) Active() bool {
	return s.active
}

// Update advances the frame on this spinner's own ticks.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	tick, ok := msg.(SpinnerTickMsg)
	if !ok || tick.ID != s.id || !s.active {
		return s, nil
	}
	s.frame = (s.frame + 1) % len(spinnerFrames)
	return s, s.tick()
}

// View renders the current frame and label, or nothing when stopped.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}
	return theme.Selected.Render(spinnerFrames[s.frame]) + " " + theme.Subtitle.Render(s.Label)
}

func (s Spinner) tick() tea.Cmd {
	id := s.id
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{ID: id}
	})
}
