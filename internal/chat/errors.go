package chat

import "errors"

var (
	// ErrBusy is returned when an action arrives while a delivery walk is
	// still running.
	ErrBusy = errors.New("conversation is busy delivering messages")

	// ErrNoSession is returned for actions before InitConversation.
	ErrNoSession = errors.New("no active conversation session")

	// ErrInputTooLong is returned for text over MaxInputLength runes.
	ErrInputTooLong = errors.New("input too long")
)
