package solve

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dsai/internal/assistant"
	"github.com/abhisek/dsai/internal/render"
	"github.com/abhisek/dsai/internal/screen"
	"github.com/abhisek/dsai/internal/ui/components"
	"github.com/abhisek/dsai/internal/ui/layout"
	"github.com/abhisek/dsai/internal/ui/theme"
)

const (
	editorLabel   = "Enter your DSA question here:"
	loadingLabel  = "Fetching response..."
	editorHeight  = 5
	reservedLines = 14
)

// answerMsg carries the outcome of an asynchronous Solve call.
type answerMsg struct {
	seq    int
	answer *assistant.Answer
	err    error
}

// SolveScreen lets the user type a question and shows the generated
// solution below the input.
type SolveScreen struct {
	svc      *assistant.Service
	renderer *render.Renderer
	language string

	editor   components.Editor
	spinner  components.Spinner
	viewport viewport.Model

	seq       int
	loading   bool
	cancel    context.CancelFunc
	status    string
	statusErr bool
	answer    *assistant.Answer
}

var _ screen.Screen = (*SolveScreen)(nil)
var _ screen.KeyHintProvider = (*SolveScreen)(nil)
var _ screen.Closer = (*SolveScreen)(nil)

// New creates a solve screen. renderer may be nil, in which case answers
// are shown as plain text.
func New(svc *assistant.Service, renderer *render.Renderer, language string) *SolveScreen {
	editor := components.NewEditor(editorLabel, "e.g. Reverse a linked list in place")
	editor.SetHeight(editorHeight)
	return &SolveScreen{
		svc:      svc,
		renderer: renderer,
		language: language,
		editor:   editor,
		spinner:  components.NewSpinner(loadingLabel),
		viewport: viewport.New(),
	}
}

func (s *SolveScreen) Init() tea.Cmd {
	return nil
}

func (s *SolveScreen) Title() string {
	return "Solve"
}

func (s *SolveScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SolveScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.EditorSubmitMsg:
		return s, s.submit(msg.Value)

	case answerMsg:
		return s.handleAnswer(msg)

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "pgup":
			s.viewport.PageUp()
			return s, nil
		case "pgdown":
			s.viewport.PageDown()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s *SolveScreen) submit(question string) tea.Cmd {
	if s.loading {
		return nil
	}
	s.seq++
	s.loading = true
	s.status = ""
	s.editor.SetDisabled(true)

	var tick tea.Cmd
	s.spinner, tick = s.spinner.Start()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	svc, seq := s.svc, s.seq
	return tea.Batch(tick, func() tea.Msg {
		answer, err := svc.Solve(ctx, question)
		return answerMsg{seq: seq, answer: answer, err: err}
	})
}

// Close cancels the outstanding Solve call, if any.
func (s *SolveScreen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *SolveScreen) handleAnswer(msg answerMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.seq {
		return s, nil
	}
	s.Close()
	s.loading = false
	s.spinner = s.spinner.Stop()
	s.editor.SetDisabled(false)

	if msg.err != nil {
		s.answer = nil
		s.status = msg.err.Error()
		s.statusErr = true
		return s, nil
	}
	if msg.answer == nil {
		s.answer = nil
		s.status = assistant.MsgFetchFailed
		s.statusErr = true
		return s, nil
	}

	s.answer = msg.answer
	s.status = assistant.MsgReceived
	s.statusErr = false
	s.viewport.SetContent(s.renderAnswer(msg.answer.Text))
	s.viewport.GotoTop()
	return s, nil
}

func (s *SolveScreen) renderAnswer(text string) string {
	if s.renderer == nil {
		return render.CodeBlock(text, s.language)
	}
	return s.renderer.Code(text, s.language)
}

func (s *SolveScreen) View(width, height int) string {
	inner := width - 4
	s.editor.SetWidth(inner)
	s.viewport.SetWidth(inner)
	s.viewport.SetHeight(max(height-reservedLines, 3))

	var b strings.Builder
	b.WriteString(theme.Title.Render("Type the Question"))
	b.WriteString("\n\n")
	b.WriteString(s.editor.View())
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString(s.spinner.View())
	case s.status != "" && s.statusErr:
		b.WriteString(theme.ErrorText.Render(s.status))
	case s.status != "":
		b.WriteString(theme.SuccessText.Render(s.status))
	}
	b.WriteString("\n")

	if s.answer != nil {
		b.WriteString(theme.Title.Render("Solution:"))
		b.WriteString("\n")
		b.WriteString(s.viewport.View())
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}
