// Package chat implements the session controller: it owns the conversation
// state, dispatches user actions to the engine and delivers the resulting
// messages one at a time with simulated typing delays.
package chat

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/promptcraft/internal/conversation"
	"github.com/abhisek/promptcraft/internal/script"
)

// MaxInputLength is the longest accepted free-text input, in runes.
const MaxInputLength = 500

// Option configures a Controller.
type Option func(*Controller)

// WithDelays sets the delivery pacing.
func WithDelays(d Delays) Option {
	return func(c *Controller) { c.delays = d }
}

// WithSleeper replaces the real timer.
func WithSleeper(s Sleeper) Option {
	return func(c *Controller) { c.sleeper = s }
}

// WithRand sets the source of typing jitter. fn must return values in [0, 1).
func WithRand(fn func() float64) Option {
	return func(c *Controller) { c.rnd = fn }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithListener registers the session observer.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

// WithClock sets the clock used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns a conversation session. Actions block until their
// messages have been delivered; only one action runs at a time.
type Controller struct {
	script *script.Script
	engine *conversation.Engine
	ids    *conversation.IDSequence
	msgs   conversation.Factory

	delays   Delays
	sleeper  Sleeper
	rnd      func() float64
	now      func() time.Time
	log      *zap.Logger
	listener Listener

	mu        sync.Mutex
	state     conversation.State
	started   bool
	busy      bool
	sessionID string
}

// New creates a Controller for sc. The session starts with InitConversation.
func New(sc *script.Script, opts ...Option) *Controller {
	c := &Controller{
		script:  sc,
		ids:     &conversation.IDSequence{},
		delays:  DefaultDelays(),
		sleeper: TimerSleeper{},
		rnd:     rand.Float64,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.engine = conversation.NewEngine(sc, c.ids, c.now)
	c.msgs = conversation.NewFactory(c.ids, c.now)
	c.state = conversation.NewState(sc.StepCount())
	return c
}

// Script returns the script driving the session.
func (c *Controller) Script() *script.Script {
	return c.script
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() conversation.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Busy reports whether a delivery walk is in progress.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// SessionID returns the ID of the current session, or "" before
// InitConversation.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Reset returns the session to its initial idle state.
func (c *Controller) Reset() error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.resetLocked()
	snap := c.state.Clone()
	c.mu.Unlock()

	c.emit(Event{Kind: EventState, State: snap})
	return nil
}

func (c *Controller) resetLocked() {
	c.state = conversation.NewState(c.script.StepCount())
	c.ids.Reset()
	c.started = false
	c.sessionID = ""
}

// InitConversation resets the session and delivers the intro.
func (c *Controller) InitConversation(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.resetLocked()
	c.started = true
	c.busy = true
	c.sessionID = uuid.NewString()
	sessionID := c.sessionID
	c.mu.Unlock()
	defer c.done()

	c.log.Info("session started", zap.String("session", sessionID), zap.Int("steps", c.script.StepCount()))
	c.deliver(ctx, c.engine.Start())
	return nil
}

// SubmitIdea sends the user's video idea. It is valid only in the intro phase.
func (c *Controller) SubmitIdea(ctx context.Context, idea string) error {
	idea, err := cleanInput(idea)
	if err != nil {
		return err
	}
	state, err := c.begin()
	if err != nil {
		return err
	}
	defer c.done()

	resp, err := c.engine.SubmitIdea(state, idea)
	if err != nil {
		return err
	}
	c.deliver(ctx, resp)
	return nil
}

// SelectChoice records a tapped option for the current step.
func (c *Controller) SelectChoice(ctx context.Context, option script.ChoiceOption) error {
	state, err := c.begin()
	if err != nil {
		return err
	}
	defer c.done()

	resp, err := c.engine.SubmitChoice(state, option)
	if err != nil {
		c.log.Debug("choice rejected", zap.String("option", option.ID), zap.Error(err))
		return err
	}
	c.deliver(ctx, resp)
	return nil
}

// SendText routes typed text by phase: the idea during intro, a free-text
// answer while exploring and plain feedback once complete.
func (c *Controller) SendText(ctx context.Context, text string) error {
	text, err := cleanInput(text)
	if err != nil {
		return err
	}
	state, err := c.begin()
	if err != nil {
		return err
	}
	defer c.done()

	var resp conversation.Response
	switch state.Phase {
	case conversation.PhaseIntro:
		resp, err = c.engine.SubmitIdea(state, text)
	case conversation.PhaseExploring:
		resp, err = c.engine.SubmitFreeText(state, text)
	case conversation.PhaseComplete:
		c.appendMessage(c.msgs.UserText(text))
		return nil
	default:
		err = &conversation.PhaseError{Op: "send text", Phase: state.Phase}
	}
	if err != nil {
		return err
	}
	c.deliver(ctx, resp)
	return nil
}

// begin claims the session for one action and returns a state snapshot.
func (c *Controller) begin() (conversation.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return conversation.State{}, ErrNoSession
	}
	if c.busy {
		return conversation.State{}, ErrBusy
	}
	c.busy = true
	return c.state.Clone(), nil
}

func (c *Controller) done() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// deliver applies the response delta and then walks its messages in order.
// User messages are appended at once; each assistant message is preceded
// by a typing wait. Once ctx is done the remaining messages are appended
// without waiting.
func (c *Controller) deliver(ctx context.Context, resp conversation.Response) {
	c.mu.Lock()
	prev := c.state.Phase
	c.state.Apply(resp.Delta)
	snap := c.state.Clone()
	c.mu.Unlock()

	if snap.Phase != prev {
		c.log.Info("phase changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", snap.Phase),
			zap.Int("step", snap.CurrentStepIndex))
	}
	c.emit(Event{Kind: EventState, State: snap})

	last := len(resp.Messages) - 1
	for i, m := range resp.Messages {
		if !m.IsAI() {
			c.appendMessage(m)
			continue
		}

		c.typingFor(ctx, c.delays.duration(ProfileMedium, c.rnd))
		c.appendMessage(m)

		if p, ok := c.delays.sentinel(m.Content); ok {
			wait := c.delays.duration(p, c.rnd)
			c.log.Debug("sentinel wait", zap.String("profile", string(p)), zap.Duration("wait", wait))
			c.typingFor(ctx, wait)
		}

		if i < last {
			c.sleep(ctx, c.delays.duration(ProfileShort, c.rnd))
		}
	}
}

// typingFor shows the typing indicator for d.
func (c *Controller) typingFor(ctx context.Context, d time.Duration) {
	c.setTyping(true)
	c.sleep(ctx, d)
	c.setTyping(false)
}

func (c *Controller) sleep(ctx context.Context, d time.Duration) {
	if ctx.Err() != nil {
		return
	}
	if err := c.sleeper.Sleep(ctx, d); err != nil {
		c.log.Debug("delivery wait interrupted", zap.Error(err))
	}
}

func (c *Controller) setTyping(on bool) {
	c.mu.Lock()
	c.state.IsTyping = on
	snap := c.state.Clone()
	c.mu.Unlock()

	c.emit(Event{Kind: EventTyping, Typing: on, State: snap})
}

func (c *Controller) appendMessage(m conversation.Message) {
	c.mu.Lock()
	c.state.Messages = append(c.state.Messages, m)
	snap := c.state.Clone()
	c.mu.Unlock()

	c.emit(Event{Kind: EventMessage, Message: m.Clone(), State: snap})
}

func (c *Controller) emit(ev Event) {
	if c.listener != nil {
		c.listener(ev)
	}
}

func cleanInput(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", conversation.ErrEmptyInput
	}
	if utf8.RuneCountInString(s) > MaxInputLength {
		return "", ErrInputTooLong
	}
	return s, nil
}
