package orchestrator

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/generate"
)

// PrecursorMissingError indicates an action was requested before the
// artifact or completion it depends on exists. The flag record is never
// touched when this is returned.
type PrecursorMissingError struct {
	Action   generate.Action
	Required string
}

func (e *PrecursorMissingError) Error() string {
	return fmt.Sprintf("cannot run %s: requires %s", e.Action, e.Required)
}

// InvalidArgumentError indicates a required action parameter was absent or
// malformed.
type InvalidArgumentError struct {
	Action generate.Action
	Field  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("action %s requires %s", e.Action, e.Field)
}

// GenerationFailedError wraps a transport or timeout failure from the
// generation layer. Shape failures never surface as this; they are replaced
// by fallback artifacts instead.
type GenerationFailedError struct {
	Action generate.Action
	Err    error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed for %s: %v", e.Action, e.Err)
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }

// PersistenceFailedError wraps a storage failure after a successful
// generation. The artifact and its flag share one transaction, so neither
// is written when this is returned.
type PersistenceFailedError struct {
	Action generate.Action
	Err    error
}

func (e *PersistenceFailedError) Error() string {
	return fmt.Sprintf("failed to persist %s result: %v", e.Action, e.Err)
}

func (e *PersistenceFailedError) Unwrap() error { return e.Err }

// InFlightError indicates the same action is already running for the user.
type InFlightError struct {
	Action generate.Action
}

func (e *InFlightError) Error() string {
	return fmt.Sprintf("action %s is already in progress for this user", e.Action)
}

// UnknownActionError indicates an action name outside the step chain.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action: %s", e.Action)
}
