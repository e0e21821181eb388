// Package chat implements the chat screen: the message log, choice cards,
// typing indicator and input box driven by the session controller.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/promptcraft/internal/chat"
	"github.com/abhisek/promptcraft/internal/conversation"
	"github.com/abhisek/promptcraft/internal/screen"
	"github.com/abhisek/promptcraft/internal/script"
	"github.com/abhisek/promptcraft/internal/ui/components"
	"github.com/abhisek/promptcraft/internal/ui/layout"
)

const (
	eventBuffer     = 256
	spinnerInterval = 120 * time.Millisecond
)

type focusArea int

const (
	focusChoices focusArea = iota
	focusInput
)

// ChatScreen implements screen.Screen for the conversation.
type ChatScreen struct {
	ctrl   *sess.Controller
	script *script.Script
	events chan sess.Event
	ctx    context.Context
	cancel context.CancelFunc

	state   conversation.State
	choices map[string]components.ChoiceList // by message ID
	input   components.TextInput
	focus   focusArea
	pending bool // an action is running
	scroll  int  // lines scrolled up from the bottom
	frame   int
	cardIdx int // expanded learner card, -1 for none
	errMsg  string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.StatusProvider = (*ChatScreen)(nil)
var _ screen.Disposer = (*ChatScreen)(nil)

// New creates a ChatScreen driving a new controller over sc. opts are
// passed to the controller.
func New(sc *script.Script, opts ...sess.Option) *ChatScreen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &ChatScreen{
		script:  sc,
		events:  make(chan sess.Event, eventBuffer),
		ctx:     ctx,
		cancel:  cancel,
		choices: make(map[string]components.ChoiceList),
		input:   components.NewTextInput(placeholderFor(conversation.PhaseIdle), sess.MaxInputLength),
		focus:   focusInput,
		cardIdx: -1,
		state:   conversation.NewState(sc.StepCount()),
	}
	s.ctrl = sess.New(sc, append(opts, sess.WithListener(s.forward))...)
	s.input.SetDisabled(true)
	return s
}

// forward runs on the controller's goroutine and hands events to the
// update loop. It gives up once the screen is disposed.
func (s *ChatScreen) forward(ev sess.Event) {
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return tea.Batch(
		s.restart(),
		s.waitForEvent(),
		spinnerTick(),
	)
}

func (s *ChatScreen) Title() string {
	return "Creative Assistant"
}

// Status shows step progress while exploring.
func (s *ChatScreen) Status() string {
	switch s.state.Phase {
	case conversation.PhaseExploring:
		return components.NewProgressDots(s.state.CurrentStepIndex, s.state.TotalSteps).Label()
	case conversation.PhaseComplete:
		return "Prompt ready"
	default:
		return ""
	}
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if _, ok := s.activeChoice(); ok {
		if s.focus == focusChoices {
			hints = append(hints,
				layout.KeyHint{Key: "A-D", Description: "Choose"},
				layout.KeyHint{Key: "Tab", Description: "Type instead"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Choices"})
		}
	}
	if s.focus == focusInput || s.state.Phase == conversation.PhaseComplete {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Send"})
	}
	if s.hasLearnerCard() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+L", Description: "Next card"})
	}
	return append(hints,
		layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"},
		layout.KeyHint{Key: "Ctrl+R", Description: "Restart"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// Dispose stops the event bridge. Any running walk finishes without delays.
func (s *ChatScreen) Dispose() {
	s.cancel()
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEventMsg:
		s.handleEvent(msg.Event)
		return s, tea.Batch(s.syncInput(), s.waitForEvent())

	case actionDoneMsg:
		return s.handleActionDone(msg)

	case spinnerTickMsg:
		s.frame++
		return s, spinnerTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) handleEvent(ev sess.Event) {
	s.state = ev.State
	if ev.Kind == sess.EventMessage && ev.Message.Type == conversation.TypeChoice && ev.Message.Choices != nil {
		s.choices[ev.Message.ID] = components.NewChoiceList(ev.Message.Choices.Options)
		s.focus = focusChoices
	}
	if ev.Kind == sess.EventMessage && ev.Message.Type == conversation.TypeLearnerCard {
		s.cardIdx = 0
	}
	if s.state.Phase == conversation.PhaseComplete {
		s.focus = focusInput
	}
	s.input.SetPlaceholder(placeholderFor(s.state.Phase))
	s.scroll = 0
}

func (s *ChatScreen) handleActionDone(msg actionDoneMsg) (screen.Screen, tea.Cmd) {
	s.pending = false
	if msg.Err != nil && !errors.Is(msg.Err, sess.ErrBusy) {
		s.errMsg = errorText(msg.Err)
		// A rejected pick unlocks its card again.
		if id, ok := s.activeChoice(); ok {
			if cl := s.choices[id]; cl.Locked() {
				s.choices[id] = components.NewChoiceList(cl.Options)
			}
		}
	}
	return s, s.syncInput()
}

func (s *ChatScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	s.errMsg = ""

	switch key {
	case "ctrl+r":
		if s.busy() {
			return s, nil
		}
		return s, s.restart()
	case "pgup":
		s.scroll += 5
		return s, nil
	case "pgdown":
		s.scroll = max(s.scroll-5, 0)
		return s, nil
	case "ctrl+l":
		s.nextCard()
		return s, nil
	case "tab":
		if _, ok := s.activeChoice(); ok {
			if s.focus == focusChoices {
				s.focus = focusInput
			} else {
				s.focus = focusChoices
			}
		}
		return s, s.syncInput()
	}

	if s.busy() {
		return s, nil
	}

	if id, ok := s.activeChoice(); ok && s.focus == focusChoices {
		cl, picked := s.choices[id].Update(msg)
		s.choices[id] = cl
		if picked != nil {
			option := *picked
			return s, s.run(func(ctx context.Context) error {
				return s.ctrl.SelectChoice(ctx, option)
			})
		}
		return s, nil
	}

	if key == "enter" {
		return s.submitText()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) submitText() (screen.Screen, tea.Cmd) {
	text := s.input.Value()
	if strings.TrimSpace(text) == "" {
		return s, nil
	}
	s.input.Clear()
	return s, s.run(func(ctx context.Context) error {
		return s.ctrl.SendText(ctx, text)
	})
}

// restart discards the local view state and starts a new session.
func (s *ChatScreen) restart() tea.Cmd {
	s.choices = make(map[string]components.ChoiceList)
	s.cardIdx = -1
	s.scroll = 0
	s.focus = focusInput
	s.input.Clear()
	return s.run(s.ctrl.InitConversation)
}

// run executes a controller action off the update loop.
func (s *ChatScreen) run(fn func(context.Context) error) tea.Cmd {
	s.pending = true
	s.input.SetDisabled(true)
	ctx := s.ctx
	return func() tea.Msg {
		return actionDoneMsg{Err: fn(ctx)}
	}
}

func (s *ChatScreen) waitForEvent() tea.Cmd {
	events, done := s.events, s.ctx.Done()
	return func() tea.Msg {
		select {
		case ev := <-events:
			return sessionEventMsg{Event: ev}
		case <-done:
			return nil
		}
	}
}

// syncInput enables the input only when typing makes sense. While a
// choice card has focus the input stays enabled but blurred.
func (s *ChatScreen) syncInput() tea.Cmd {
	disabled := s.busy() || s.state.Phase == conversation.PhaseIdle
	if _, ok := s.activeChoice(); ok && !disabled && s.focus == focusChoices {
		s.input.Disabled = false
		s.input.Blur()
		return nil
	}
	return s.input.SetDisabled(disabled)
}

func (s *ChatScreen) busy() bool {
	return s.pending || s.state.IsTyping
}

// activeChoice returns the ID of the only choice card accepting input.
func (s *ChatScreen) activeChoice() (string, bool) {
	id, ok := s.state.ActiveChoiceID()
	if !ok {
		return "", false
	}
	if _, known := s.choices[id]; !known {
		return "", false
	}
	return id, true
}

func (s *ChatScreen) hasLearnerCard() bool {
	for _, m := range s.state.Messages {
		if m.Type == conversation.TypeLearnerCard {
			return true
		}
	}
	return false
}

// nextCard expands the next learner card, collapsing all after the last.
func (s *ChatScreen) nextCard() {
	n := len(s.script.KnowledgePoints())
	if !s.hasLearnerCard() || n == 0 {
		return
	}
	s.cardIdx++
	if s.cardIdx >= n {
		s.cardIdx = -1
	}
}

func placeholderFor(phase conversation.Phase) string {
	switch phase {
	case conversation.PhaseIntro:
		return "Describe your video idea..."
	case conversation.PhaseComplete:
		return "Type your feedback..."
	default:
		return "Type your choice or thoughts..."
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, conversation.ErrStaleSelection):
		return "That choice is no longer available."
	case errors.Is(err, sess.ErrInputTooLong):
		return "Message is too long."
	case errors.Is(err, conversation.ErrEmptyInput):
		return "Type something first."
	default:
		return err.Error()
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
