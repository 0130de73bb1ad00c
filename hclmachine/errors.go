package hclmachine

import (
	"errors"
)

var (
	// ErrNoInitialState is returned for a machine without an initial state.
	ErrNoInitialState = errors.New("no initial state")

	// ErrUnknownState is returned when a target or initial names a state
	// that is not declared.
	ErrUnknownState = errors.New("unknown state")

	// ErrDuplicateState is returned when a state is declared twice.
	ErrDuplicateState = errors.New("duplicate state")

	// ErrDuplicateMachine is returned when two files declare the same machine.
	ErrDuplicateMachine = errors.New("duplicate machine")

	// ErrInvalidContext is returned when a context is not an object.
	ErrInvalidContext = errors.New("context must be an object")

	// ErrInvalidTransition is returned for an on block that combines
	// settings that cannot go together.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrMachineNotFound is returned by Find for an unknown machine name.
	ErrMachineNotFound = errors.New("machine not found")

	// ErrGuardNotMet is returned by a cond expression that evaluates to false.
	ErrGuardNotMet = errors.New("condition not met")
)
