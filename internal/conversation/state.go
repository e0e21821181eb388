// Package conversation implements the scripted conversation engine: the
// message model, the conversation state and the pure operations that turn
// an input event into messages plus a state delta.
package conversation

import (
	"fmt"
	"maps"
)

// Phase is the coarse conversation state.
type Phase int

const (
	PhaseIdle       Phase = iota // No session started
	PhaseIntro                   // Waiting for the user's idea
	PhaseExploring               // Walking through the steps
	PhaseGenerating              // Reserved; no transition produces it
	PhaseComplete                // Result delivered, free text is feedback only
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseIntro:
		return "intro"
	case PhaseExploring:
		return "exploring"
	case PhaseGenerating:
		return "generating"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is the conversation aggregate. The session controller owns the
// authoritative instance; everyone else sees clones.
type State struct {
	Phase            Phase             `json:"phase"`
	CurrentStepIndex int               `json:"current_step_index"`
	TotalSteps       int               `json:"total_steps"`
	UserIdea         string            `json:"user_idea"`
	Selections       map[string]string `json:"selections"`
	Messages         []Message         `json:"messages"`
	IsTyping         bool              `json:"is_typing"`
}

// NewState returns a state with all fields at their defaults.
func NewState(totalSteps int) State {
	return State{
		Phase:      PhaseIdle,
		TotalSteps: totalSteps,
		Selections: make(map[string]string),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Selections = maps.Clone(s.Selections)
	if out.Selections == nil {
		out.Selections = make(map[string]string)
	}
	out.Messages = make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		out.Messages[i] = m.Clone()
	}
	return out
}

// ActiveChoiceID returns the ID of the only actionable choice message: the
// most recent choice message, provided the conversation is still exploring.
func (s State) ActiveChoiceID() (string, bool) {
	if s.Phase != PhaseExploring {
		return "", false
	}
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Type == TypeChoice {
			return s.Messages[i].ID, true
		}
	}
	return "", false
}

// StateDelta is the set of fields an engine response changes. Nil fields
// are left untouched.
type StateDelta struct {
	Phase            *Phase
	CurrentStepIndex *int
	TotalSteps       *int
	UserIdea         *string

	// Selections entries are merged into the state's selections.
	Selections map[string]string
}

// Apply merges d into s.
func (s *State) Apply(d StateDelta) {
	if d.Phase != nil {
		s.Phase = *d.Phase
	}
	if d.UserIdea != nil {
		s.UserIdea = *d.UserIdea
	}
	if d.CurrentStepIndex != nil {
		s.CurrentStepIndex = *d.CurrentStepIndex
	}
	if d.TotalSteps != nil {
		s.TotalSteps = *d.TotalSteps
	}
	if d.Selections != nil {
		if s.Selections == nil {
			s.Selections = make(map[string]string, len(d.Selections))
		}
		for k, v := range d.Selections {
			s.Selections[k] = v
		}
	}
}

func ptr[T any](v T) *T { return &v }
