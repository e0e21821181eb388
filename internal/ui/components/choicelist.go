package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcraft/internal/script"
	"github.com/abhisek/promptcraft/internal/ui/theme"
)

// ChoiceList is a lettered option picker for one choice message. Once an
// option is picked the list locks and keeps showing the pick.
type ChoiceList struct {
	Options []script.ChoiceOption
	Cursor  int
	Chosen  string // option ID, empty until picked
}

// NewChoiceList creates a picker over options.
func NewChoiceList(options []script.ChoiceOption) ChoiceList {
	return ChoiceList{Options: options}
}

// Locked reports whether an option has been picked.
func (c ChoiceList) Locked() bool {
	return c.Chosen != ""
}

// Update handles navigation and selection. A letter or a 1-based digit
// picks directly; arrows move the cursor and enter picks it. picked is
// non-nil when this key chose an option.
func (c ChoiceList) Update(msg tea.Msg) (updated ChoiceList, picked *script.ChoiceOption) {
	if c.Locked() || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, nil
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, nil
	case "enter":
		return c.pick(c.Cursor)
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(c.Options) {
		return c.pick(n - 1)
	}
	for i, o := range c.Options {
		if strings.EqualFold(key, o.Letter) {
			return c.pick(i)
		}
	}
	return c, nil
}

func (c ChoiceList) pick(i int) (ChoiceList, *script.ChoiceOption) {
	c.Cursor = i
	c.Chosen = c.Options[i].ID
	opt := c.Options[i]
	return c, &opt
}

// View renders the options. active marks the list as the one receiving
// keys; inactive lists are dimmed except for their pick.
func (c ChoiceList) View(width int, active bool) string {
	var b strings.Builder
	for i, o := range c.Options {
		if i > 0 {
			b.WriteString("\n")
		}

		badge := theme.LetterBadge.Render(o.Letter)
		label := lipgloss.NewStyle().Width(max(width-6, 10)).Render(o.Label)

		switch {
		case c.Chosen == o.ID:
			badge = theme.LetterBadgeActive.Render(o.Letter)
			label = theme.Selected.Render(label)
		case c.Locked() || !active:
			badge = theme.Disabled.Render(" " + o.Letter + " ")
			label = theme.Disabled.Render(label)
		case i == c.Cursor:
			badge = theme.LetterBadgeActive.Render(o.Letter)
			label = theme.Selected.Render(label)
		default:
			label = theme.Unselected.Render(label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, badge, " ", label))
	}
	return b.String()
}
