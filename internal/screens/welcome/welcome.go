package welcome

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dsai/internal/router"
	"github.com/abhisek/dsai/internal/screen"
	"github.com/abhisek/dsai/internal/ui/theme"
)

const tagline = "Your data structures and algorithms assistant"

// WelcomeScreen shows the banner and the active model before handing over
// to the home screen on the first key press.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	model        string
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced
// by homeFactory. model names the backing model and may be empty.
func New(homeFactory func() screen.Screen, model string) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		model:       model,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		"",
		theme.Body.Bold(true).Render(tagline),
	}

	if w.model != "" {
		sections = append(sections, theme.Subtitle.Render("powered by "+w.model))
	}

	sections = append(sections, "", theme.Hint.Render("press any key to continue"))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
