package practice

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
	fetchingLabel   = "Fetching Question..."
	evaluatingLabel = "Evaluating your solution..."
	editorLabel     = "Write the solution:"
	editorHeight    = 6
	reservedLines   = 16
)

type questionMsg struct {
	seq    int
	answer *assistant.Answer
	err    error
}

type submittedMsg struct {
	seq     int
	message string
	err     error
}

// PracticeScreen fetches a generated problem and collects the user's
// solution for it.
type PracticeScreen struct {
	svc      *assistant.Service
	renderer *render.Renderer
	topic    string

	editor   components.Editor
	spinner  components.Spinner
	viewport viewport.Model

	seq       int
	loading   bool
	cancel    context.CancelFunc
	question  *assistant.Answer
	status    string
	statusErr bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.Closer = (*PracticeScreen)(nil)

// New creates a practice screen. topic may be empty.
func New(svc *assistant.Service, renderer *render.Renderer, topic string) *PracticeScreen {
	editor := components.NewEditor(editorLabel, "")
	editor.SetHeight(editorHeight)
	editor.SetDisabled(true)
	return &PracticeScreen{
		svc:      svc,
		renderer: renderer,
		topic:    topic,
		editor:   editor,
		spinner:  components.NewSpinner(fetchingLabel),
		viewport: viewport.New(),
	}
}

// Init requests the first question.
func (p *PracticeScreen) Init() tea.Cmd {
	return p.fetch()
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Submit Solution"},
		{Key: "Ctrl+R", Description: "New Question"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionMsg:
		return p.handleQuestion(msg)

	case submittedMsg:
		return p.handleSubmitted(msg)

	case components.EditorSubmitMsg:
		return p, p.submit(msg.Value)

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+r":
			return p, p.fetch()
		case "pgup":
			p.viewport.PageUp()
			return p, nil
		case "pgdown":
			p.viewport.PageDown()
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return p, cmd
}

func (p *PracticeScreen) start(label string) tea.Cmd {
	p.seq++
	p.loading = true
	p.status = ""
	p.editor.SetDisabled(true)
	p.spinner.Label = label

	var tick tea.Cmd
	p.spinner, tick = p.spinner.Start()
	return tick
}

func (p *PracticeScreen) stop() {
	p.Close()
	p.loading = false
	p.spinner = p.spinner.Stop()
	p.editor.SetDisabled(false)
}

func (p *PracticeScreen) fetch() tea.Cmd {
	if p.loading {
		return nil
	}
	tick := p.start(fetchingLabel)

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	svc, topic, seq := p.svc, p.topic, p.seq
	return tea.Batch(tick, func() tea.Msg {
		answer, err := svc.Practice(ctx, topic)
		return questionMsg{seq: seq, answer: answer, err: err}
	})
}

// Close cancels the outstanding problem request, if any.
func (p *PracticeScreen) Close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *PracticeScreen) submit(solution string) tea.Cmd {
	if p.loading || p.question == nil {
		return nil
	}
	tick := p.start(evaluatingLabel)

	svc, seq := p.svc, p.seq
	return tea.Batch(tick, func() tea.Msg {
		message, err := svc.SubmitPractice(solution)
		return submittedMsg{seq: seq, message: message, err: err}
	})
}

func (p *PracticeScreen) handleQuestion(msg questionMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != p.seq {
		return p, nil
	}
	p.stop()

	if msg.err != nil {
		p.status = msg.err.Error()
		p.statusErr = true
		if p.question == nil {
			p.editor.SetDisabled(true)
		}
		return p, nil
	}

	p.question = msg.answer
	p.editor.Reset()
	p.viewport.SetContent(p.renderQuestion(msg.answer.Text))
	p.viewport.GotoTop()
	return p, nil
}

func (p *PracticeScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != p.seq {
		return p, nil
	}
	p.stop()

	if msg.err != nil {
		p.status = msg.err.Error()
		p.statusErr = true
		return p, nil
	}
	p.status = msg.message
	p.statusErr = false
	return p, nil
}

func (p *PracticeScreen) renderQuestion(text string) string {
	if p.renderer == nil {
		return text
	}
	return p.renderer.Markdown(text)
}

func (p *PracticeScreen) View(width, height int) string {
	inner := width - 4
	p.editor.SetWidth(inner)
	p.viewport.SetWidth(inner)
	p.viewport.SetHeight(max(height-reservedLines, 3))

	var b strings.Builder
	b.WriteString(theme.Title.Render("Interactive Problem Solving"))
	if p.topic != "" {
		b.WriteString(theme.Subtitle.Render("  · " + p.topic))
	}
	b.WriteString("\n\n")

	if p.question != nil {
		b.WriteString(p.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(p.editor.View())
		b.WriteString("\n")
	}

	switch {
	case p.loading:
		b.WriteString(p.spinner.View())
	case p.status != "" && p.statusErr:
		b.WriteString(theme.ErrorText.Render(p.status))
		if p.question == nil {
			b.WriteString("\n" + theme.Hint.Render("press Ctrl+R to try again"))
		}
	case p.status != "":
		b.WriteString(theme.SuccessText.Render(p.status))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}
