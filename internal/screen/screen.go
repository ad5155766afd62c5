// Package screen defines the contract between the dsai TUI router and the
// screens it stacks (welcome, home, solve, practice, topics).
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dsai/internal/ui/layout"
)

// Screen is one page of the TUI. View receives the space left between the
// header and the footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header. The welcome screen returns "".
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that own in-flight model calls. The
// router calls Close when the screen leaves the stack so the call is
// cancelled instead of finishing for a screen nobody sees.
type Closer interface {
	Close()
}
