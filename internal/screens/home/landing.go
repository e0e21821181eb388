package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcraft/internal/ui/theme"
)

// feature is one line of the landing feature list.
type feature struct {
	icon        string
	title       string
	description string
}

var features = []feature{
	{"🎬", "Explore Techniques", "Learn cinematography concepts through visual examples"},
	{"🎯", "Make Choices", "Pick your preferred style from curated option pairs"},
	{"✨", "Get Your Prompt", "Receive a professional video prompt built from your preferences"},
}

// renderLogo renders the red app badge over the brand name.
func renderLogo(cw int) string {
	badge := lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(theme.Text).
		Bold(true).
		Padding(0, 2).
		Render("Ai")
	brand := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Bold(true).
		Render("ADOBE")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(badge + "\n" + brand)
}

// renderHero renders the title and subtitle.
func renderHero(cw int, compact bool) string {
	title := theme.Title.Width(cw).Render("Creative\nPrompt Builder")
	if compact {
		title = theme.Title.Width(cw).Render("Creative Prompt Builder")
	}
	subtitle := theme.Subtitle.Width(cw).Render(
		"Don't know the right words for your video vision?\nLet me help you discover them.")
	return title + "\n\n" + subtitle
}

// renderFeatures renders the feature list. Compact mode drops the
// descriptions.
func renderFeatures(width int, compact bool) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(max(width-4, 10))

	rows := make([]string, 0, len(features))
	for _, f := range features {
		row := f.icon + "  " + titleStyle.Render(f.title)
		if !compact {
			row += "\n    " + descStyle.Render(f.description)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func renderPoweredBy(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextFaint).
		Render("Powered by Adobe Firefly")
}
