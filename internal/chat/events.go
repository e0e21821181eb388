package chat

import "github.com/abhisek/promptcraft/internal/conversation"

// EventKind identifies what changed in the session.
type EventKind int

const (
	EventTyping  EventKind = iota // typing indicator toggled
	EventMessage                  // a message was appended to the log
	EventState                    // phase or step fields changed
)

func (k EventKind) String() string {
	switch k {
	case EventTyping:
		return "typing"
	case EventMessage:
		return "message"
	case EventState:
		return "state"
	default:
		return "unknown"
	}
}

// Event is emitted to the listener in delivery order. State is a snapshot
// taken right after the change.
type Event struct {
	Kind    EventKind
	Typing  bool
	Message conversation.Message
	State   conversation.State
}

// Listener observes session changes. It is called from the goroutine
// running the action and must not call back into the Controller.
type Listener func(Event)
