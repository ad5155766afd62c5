package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dsai/internal/ui/theme"
)

// SubmitKey is the binding that submits an Editor's contents. Enter is left
// to the textarea so multi-line input works.
const SubmitKey = "ctrl+s"

// EditorSubmitMsg carries the text of an Editor when the user submits it.
type EditorSubmitMsg struct {
	Value string
}

// Editor wraps a multi-line textarea with a label and a submit binding.
type Editor struct {
	Label    string
	area     textarea.Model
	disabled bool
}

// NewEditor creates a focused editor.
func NewEditor(label, placeholder string) Editor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(6)
	ta.Focus()
	return Editor{Label: label, area: ta}
}

// SetWidth resizes the input area.
func (e *Editor) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	e.area.SetWidth(w)
}

// SetHeight resizes the input area.
func (e *Editor) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	e.area.SetHeight(h)
}

// SetDisabled blocks key handling while a request is in flight.
func (e *Editor) SetDisabled(disabled bool) {
	e.disabled = disabled
	if disabled {
		e.area.Blur()
	} else {
		e.area.Focus()
	}
}

// Disabled reports whether the editor ignores input.
func (e Editor) Disabled() bool {
	return e.disabled
}

// Value returns the current text.
func (e Editor) Value() string {
	return e.area.Value()
}

// SetValue replaces the current text.
func (e *Editor) SetValue(s string) {
	e.area.SetValue(s)
}

// Reset clears the text.
func (e *Editor) Reset() {
	e.area.Reset()
}

// Update forwards input to the textarea. The submit binding emits an
// EditorSubmitMsg with the current text.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	if e.disabled {
		return e, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == SubmitKey {
		value := e.area.Value()
		return e, func() tea.Msg { return EditorSubmitMsg{Value: value} }
	}

	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return e, cmd
}

// View renders the label above a bordered input area.
func (e Editor) View() string {
	var b strings.Builder
	if e.Label != "" {
		b.WriteString(theme.Body.Bold(true).Render(e.Label))
		b.WriteString("\n")
	}
	card := theme.FocusedCard
	if e.disabled {
		card = theme.Card
	}
	b.WriteString(card.Render(e.area.View()))
	return b.String()
}
