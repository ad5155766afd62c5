package topics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dsai/internal/assistant"
	"github.com/abhisek/dsai/internal/render"
	"github.com/abhisek/dsai/internal/router"
	"github.com/abhisek/dsai/internal/screen"
	"github.com/abhisek/dsai/internal/screens/practice"
	"github.com/abhisek/dsai/internal/ui/layout"
	"github.com/abhisek/dsai/internal/ui/theme"
)

const reservedLines = 6

// TopicsScreen lists the accepted topic keywords. Choosing one starts a
// practice round on that topic.
type TopicsScreen struct {
	svc      *assistant.Service
	renderer *render.Renderer
	keywords []string
	cursor   int
	offset   int
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)

// New creates a topics screen for the service's catalog.
func New(svc *assistant.Service, renderer *render.Renderer) *TopicsScreen {
	return &TopicsScreen{
		svc:      svc,
		renderer: renderer,
		keywords: svc.Catalog().Keywords(),
	}
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicsScreen) Title() string {
	return "Topics"
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(s.keywords) == 0 {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.keywords)-1 {
			s.cursor++
		}
	case "home", "g":
		s.cursor = 0
	case "end", "G":
		s.cursor = len(s.keywords) - 1
	case "enter":
		topic := s.keywords[s.cursor]
		next := practice.New(s.svc, s.renderer, topic)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}
	}
	return s, nil
}

// Selected returns the keyword under the cursor.
func (s *TopicsScreen) Selected() string {
	if len(s.keywords) == 0 {
		return ""
	}
	return s.keywords[s.cursor]
}

func (s *TopicsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Accepted Topics"))
	b.WriteString("\n")

	cats := s.svc.Catalog().Categories()
	if len(cats) > 0 {
		b.WriteString(theme.Subtitle.Render(strings.Join(cats, " · ")))
	}
	b.WriteString("\n\n")

	visible := max(height-reservedLines, 1)
	s.scrollTo(visible)

	end := min(s.offset+visible, len(s.keywords))
	for i := s.offset; i < end; i++ {
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("  ▸ " + s.keywords[i]))
		} else {
			b.WriteString(theme.Unselected.Render("    " + s.keywords[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d of %d", s.cursor+1, len(s.keywords))))

	return lipgloss.NewStyle().PaddingLeft(2).Width(width).Render(b.String())
}

// scrollTo keeps the cursor inside a window of n rows.
func (s *TopicsScreen) scrollTo(n int) {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+n {
		s.offset = s.cursor - n + 1
	}
}
