package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcraft/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with chat styling. A disabled input
// ignores keys and renders dimmed.
type TextInput struct {
	Model    textinput.Model
	Disabled bool
}

// NewTextInput creates a focused text input limited to charLimit runes.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Disabled {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	if t.Disabled {
		return lipgloss.NewStyle().Foreground(theme.TextFaint).Render("› " + t.Model.Placeholder)
	}
	return t.Model.View()
}

// SetPlaceholder changes the hint shown while empty.
func (t *TextInput) SetPlaceholder(s string) {
	t.Model.Placeholder = s
}

// SetDisabled toggles the input, moving focus accordingly.
func (t *TextInput) SetDisabled(disabled bool) tea.Cmd {
	t.Disabled = disabled
	if disabled {
		t.Model.Blur()
		return nil
	}
	return t.Model.Focus()
}

// Focused reports whether the input receives keys.
func (t TextInput) Focused() bool {
	return !t.Disabled && t.Model.Focused()
}

// Blur removes focus without disabling the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focus gives the input focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Clear empties the input.
func (t *TextInput) Clear() {
	t.Model.Reset()
}
