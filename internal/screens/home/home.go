package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dsai/internal/assistant"
	"github.com/abhisek/dsai/internal/render"
	"github.com/abhisek/dsai/internal/router"
	"github.com/abhisek/dsai/internal/screen"
	"github.com/abhisek/dsai/internal/screens/practice"
	"github.com/abhisek/dsai/internal/screens/solve"
	topicsscreen "github.com/abhisek/dsai/internal/screens/topics"
	"github.com/abhisek/dsai/internal/ui/components"
	"github.com/abhisek/dsai/internal/ui/layout"
	"github.com/abhisek/dsai/internal/ui/theme"
)

// Instructions is the guidance shown above the menu.
const Instructions = "Please enter a valid DSA question related to topics such as arrays, trees, " +
	"sorting, linked lists, stacks, queues, or other advanced concepts, including " +
	"implementing an MP3 player using a doubly linked list."

// Deps holds what the home screen needs to build the screens it opens.
type Deps struct {
	Service  *assistant.Service
	Renderer *render.Renderer
	Language string
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "Solve", Hint: "get a solution for your question", Action: push(func() screen.Screen {
			return solve.New(deps.Service, deps.Renderer, deps.Language)
		})},
		{Label: "Practice", Hint: "work through a generated problem", Action: push(func() screen.Screen {
			return practice.New(deps.Service, deps.Renderer, "")
		})},
		{Label: "Topics", Hint: "browse accepted topics", Action: push(func() screen.Screen {
			return topicsscreen.New(deps.Service, deps.Renderer)
		})},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	boxWidth := min(width-4, 76)

	instructions := theme.Card.
		Width(boxWidth).
		Render(theme.Body.Render(Instructions))

	var b strings.Builder
	b.WriteString(theme.Title.Render("Instructions"))
	b.WriteString("\n")
	b.WriteString(instructions)
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render("Select Section"))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
