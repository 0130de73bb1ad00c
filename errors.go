package statepaths

import (
	"fmt"
)

// TransitionError is returned when the machine's transition function fails
// while exploring a configuration. Exploration stops at the first failure.
type TransitionError struct {
	// StateKey is the serialized configuration the transition started from.
	StateKey string

	// EventKey is the serialized event that was being applied.
	EventKey string

	// Err is the error returned by the transition function.
	Err error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("unable to transition from state %s on event %s: %v", e.StateKey, e.EventKey, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// UnmatchedEventError is returned by PathFromEvents when an event in the
// sequence has no recorded edge from the current configuration.
type UnmatchedEventError struct {
	// State is the configuration the event could not be applied to.
	State any

	// StateKey is the serialized form of State.
	StateKey string

	// Event is the event that could not be matched.
	Event Event

	// EventKey is the serialized form of Event.
	EventKey string

	// Step is the zero-based position of Event in the replayed sequence.
	Step int
}

func (e *UnmatchedEventError) Error() string {
	return fmt.Sprintf(
		"invalid transition at step %d: no edge from state %s for event %s",
		e.Step, e.StateKey, e.EventKey)
}
