package chat

import (
	"time"

	sess "github.com/abhisek/promptcraft/internal/chat"
)

// sessionEventMsg carries one controller event into the update loop.
type sessionEventMsg struct {
	Event sess.Event
}

// actionDoneMsg is sent when a controller action has finished delivering.
type actionDoneMsg struct {
	Err error
}

// spinnerTickMsg animates the typing indicator.
type spinnerTickMsg time.Time
