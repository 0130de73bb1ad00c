package machine

import (
	"github.com/atlekbai/statepaths"
)

// Transition describes a state change in progress. Actions receive it.
type Transition[S comparable] struct {
	// Source is the state transitioned from.
	Source S

	// Destination is the state transitioned to.
	Destination S

	// Event is the event that caused the transition.
	Event statepaths.Event

	isInitial bool
}

// NewTransition creates a new transition.
func NewTransition[S comparable](source, destination S, event statepaths.Event) Transition[S] {
	return Transition[S]{
		Source:      source,
		Destination: destination,
		Event:       event,
	}
}

// NewInitialTransition creates a transition into the initial substate of source.
func NewInitialTransition[S comparable](source, destination S, event statepaths.Event) Transition[S] {
	t := NewTransition(source, destination, event)
	t.isInitial = true
	return t
}

// IsReentry returns true if the transition is a re-entry, i.e., the identity transition.
func (t Transition[S]) IsReentry() bool {
	return t.Source == t.Destination
}

// IsInitial returns true if this is an initial transition.
func (t Transition[S]) IsInitial() bool {
	return t.isInitial
}
