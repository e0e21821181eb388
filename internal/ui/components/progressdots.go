package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcraft/internal/ui/theme"
)

// ProgressDots shows one dot per step: done, current and pending.
type ProgressDots struct {
	Current int // zero-based
	Total   int
}

// NewProgressDots creates a progress indicator.
func NewProgressDots(current, total int) ProgressDots {
	return ProgressDots{Current: current, Total: total}
}

// Label returns "Step n of total", clamped to the last step.
func (p ProgressDots) Label() string {
	return fmt.Sprintf("Step %d of %d", min(p.Current+1, p.Total), p.Total)
}

// View renders the dots and label centered in width.
func (p ProgressDots) View(width int) string {
	dots := make([]string, 0, p.Total)
	for i := range p.Total {
		switch {
		case i < p.Current:
			dots = append(dots, theme.DotDone.Render("●"))
		case i == p.Current:
			dots = append(dots, theme.DotActive.Render("◉"))
		default:
			dots = append(dots, theme.DotPending.Render("○"))
		}
	}
	line := strings.Join(dots, " ") + "  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Label())

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(line)
}
