package conversation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned for empty or whitespace-only text.
	ErrEmptyInput = errors.New("empty input")

	// ErrStaleSelection matches any *StaleSelectionError.
	ErrStaleSelection = errors.New("stale selection")

	// ErrInvalidPhase matches any *PhaseError.
	ErrInvalidPhase = errors.New("operation not valid in current phase")

	// ErrIncompleteSelections matches any *IncompleteSelectionsError.
	ErrIncompleteSelections = errors.New("incomplete selections")
)

// StaleSelectionError indicates a choice that does not belong to the
// current step, typically a tap on an older choice card.
type StaleSelectionError struct {
	StepID   string
	OptionID string
}

func (e *StaleSelectionError) Error() string {
	return fmt.Sprintf("stale selection: option %q is not a choice of step %q", e.OptionID, e.StepID)
}

func (e *StaleSelectionError) Unwrap() error { return ErrStaleSelection }

// PhaseError indicates an engine operation invoked in the wrong phase.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: not valid in phase %s", e.Op, e.Phase)
}

func (e *PhaseError) Unwrap() error { return ErrInvalidPhase }

// IncompleteSelectionsError is returned by finalization when some steps
// have no recorded selection.
type IncompleteSelectionsError struct {
	Missing []string
}

func (e *IncompleteSelectionsError) Error() string {
	return fmt.Sprintf("incomplete selections: missing %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteSelectionsError) Unwrap() error { return ErrIncompleteSelections }
