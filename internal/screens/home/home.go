package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptcraft/internal/router"
	"github.com/abhisek/promptcraft/internal/screen"
	"github.com/abhisek/promptcraft/internal/ui/components"
	"github.com/abhisek/promptcraft/internal/ui/layout"
)

// HomeScreen is the landing screen: product title, feature list and the
// entry into the chat.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. newChat builds a fresh chat screen each time
// the user starts creating.
func New(newChat func() screen.Screen) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START CREATING", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newChat()}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{
		renderLogo(cw),
		renderHero(cw, compact),
		components.Panel(renderFeatures(cw-6, compact), cw),
		h.menu.View(cw),
		renderPoweredBy(cw),
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CenterFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Welcome"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
