package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcraft/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for landing sections.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CenterFrame centers content horizontally and vertically in the area.
func CenterFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel wraps content in a rounded card at the given content width.
func Panel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BgHighlight).
		Width(cw - 2).
		Padding(0, 2).
		Render(content)
}

// CTAButton renders a full-width call-to-action button.
func CTAButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.Text).
			Background(theme.Primary).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Padding(0, 1).
		Render(label)
}
