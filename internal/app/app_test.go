package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptcraft/internal/router"
	"github.com/abhisek/promptcraft/internal/screens/chat"
	"github.com/abhisek/promptcraft/internal/ui/layout"
)

func sized(t *testing.T, w, h int) AppModel {
	t.Helper()
	m, _ := newAppModel(Options{}).Update(tea.WindowSizeMsg{Width: w, Height: h})
	return m.(AppModel)
}

func TestAppModel_HomeView(t *testing.T) {
	m := sized(t, 100, 40)
	if got := m.router.Active().Title(); got != "Welcome" {
		t.Errorf("Title = %q, want %q", got, "Welcome")
	}
	_ = m.View()
	if content := m.router.View(100, 30); !strings.Contains(content, "START CREATING") {
		t.Error("expected start menu on the home screen")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := sized(t, layout.MinWidth-1, layout.MinHeight)
	_ = m.View()
	if !layout.IsTooSmall(m.width, m.height) {
		t.Error("expected terminal to be reported as too small")
	}
}

func TestAppModel_StartCreatingPushesChat(t *testing.T) {
	m := sized(t, 100, 40)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from menu")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*chat.ChatScreen); !ok {
		t.Fatalf("pushed %T, want *chat.ChatScreen", push.Screen)
	}
	m.router.Update(push)
	defer m.router.Pop()

	if m.router.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", m.router.Depth())
	}
	hints := m.footerHints(m.router.Active())
	if len(hints) == 0 || hints[len(hints)-1].Key != "Esc" {
		t.Errorf("expected chat hints ending with Esc, got %+v", hints)
	}
}

func TestAppModel_EscPopsOnlyAboveRoot(t *testing.T) {
	m := sized(t, 100, 40)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected esc to do nothing on the root screen")
	}
}
