package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptcraft/internal/script"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

var testOptions = []script.ChoiceOption{
	{ID: "smooth", Letter: "A", Label: "Smooth"},
	{ID: "handheld", Letter: "B", Label: "Handheld"},
	{ID: "aggressive", Letter: "C", Label: "Aggressive"},
}

func TestChoiceList_LetterPicks(t *testing.T) {
	c := NewChoiceList(testOptions)
	c, picked := c.Update(keyPress('b'))
	if picked == nil || picked.ID != "handheld" {
		t.Fatalf("picked = %+v, want handheld", picked)
	}
	if !c.Locked() {
		t.Error("expected list to lock after pick")
	}

	_, again := c.Update(keyPress('a'))
	if again != nil {
		t.Error("locked list must ignore further keys")
	}
}

func TestChoiceList_DigitPicks(t *testing.T) {
	c := NewChoiceList(testOptions)
	_, picked := c.Update(keyPress('3'))
	if picked == nil || picked.ID != "aggressive" {
		t.Fatalf("picked = %+v, want aggressive", picked)
	}

	c = NewChoiceList(testOptions)
	_, picked = c.Update(keyPress('9'))
	if picked != nil {
		t.Error("out of range digit must not pick")
	}
}

func TestChoiceList_ArrowsAndEnter(t *testing.T) {
	c := NewChoiceList(testOptions)
	c, _ = c.Update(specialKey(tea.KeyDown))
	c, _ = c.Update(specialKey(tea.KeyDown))
	c, _ = c.Update(specialKey(tea.KeyDown))
	if c.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", c.Cursor)
	}
	c, _ = c.Update(specialKey(tea.KeyUp))
	_, picked := c.Update(specialKey(tea.KeyEnter))
	if picked == nil || picked.ID != "handheld" {
		t.Fatalf("picked = %+v, want handheld", picked)
	}
}

func TestChoiceList_View(t *testing.T) {
	c := NewChoiceList(testOptions)
	view := c.View(60, true)
	for _, o := range testOptions {
		if !strings.Contains(view, o.Label) {
			t.Errorf("view missing %q", o.Label)
		}
	}
}

func TestProgressDots_Label(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{0, 5, "Step 1 of 5"},
		{4, 5, "Step 5 of 5"},
		{5, 5, "Step 5 of 5"},
	}
	for _, tt := range tests {
		if got := NewProgressDots(tt.current, tt.total).Label(); got != tt.want {
			t.Errorf("Label(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestMenu_WrapsAndSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "one"},
		{Label: "two", Disabled: true},
		{Label: "three"},
	})
	if m.Selected != 0 {
		t.Fatalf("initial selection = %d, want 0", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 2 {
		t.Errorf("after down = %d, want 2", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 0 {
		t.Errorf("after wrap = %d, want 0", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(specialKey(tea.KeyEnter))
	if !ran {
		t.Error("expected action to run")
	}
}

func TestTextInput_DisabledIgnoresKeys(t *testing.T) {
	ti := NewTextInput("Say something...", 10)
	ti.SetDisabled(true)
	ti, _ = ti.Update(keyPress('x'))
	if ti.Value() != "" {
		t.Errorf("disabled input accepted text: %q", ti.Value())
	}
	if !strings.Contains(ti.View(), "Say something...") {
		t.Error("disabled view should show placeholder")
	}

	ti.SetDisabled(false)
	ti, _ = ti.Update(keyPress('x'))
	if ti.Value() != "x" {
		t.Errorf("value = %q, want x", ti.Value())
	}
}
