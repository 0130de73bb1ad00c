package machine

import (
	"github.com/atlekbai/statepaths"
)

// triggerBehaviour is what a state does when it receives an event type.
type triggerBehaviour[S comparable, X any] interface {
	EventType() string
	Guard() TransitionGuard[X]
	Actions() []actionBehaviour[S, X]
	addAction(action actionBehaviour[S, X])
}

type triggerBehaviourBase[S comparable, X any] struct {
	eventType string
	guard     TransitionGuard[X]
	actions   []actionBehaviour[S, X]
}

func (t *triggerBehaviourBase[S, X]) EventType() string {
	return t.eventType
}

func (t *triggerBehaviourBase[S, X]) Guard() TransitionGuard[X] {
	return t.guard
}

func (t *triggerBehaviourBase[S, X]) Actions() []actionBehaviour[S, X] {
	return t.actions
}

func (t *triggerBehaviourBase[S, X]) addAction(action actionBehaviour[S, X]) {
	t.actions = append(t.actions, action)
}

// transitioningBehaviour moves to a fixed destination state.
type transitioningBehaviour[S comparable, X any] struct {
	triggerBehaviourBase[S, X]

	destination S
}

// reentryBehaviour exits and re-enters the state it is declared on.
type reentryBehaviour[S comparable, X any] struct {
	triggerBehaviourBase[S, X]

	destination S
}

// ignoredBehaviour swallows the event.
type ignoredBehaviour[S comparable, X any] struct {
	triggerBehaviourBase[S, X]
}

// dynamicBehaviour picks its destination from the context and event.
type dynamicBehaviour[S comparable, X any] struct {
	triggerBehaviourBase[S, X]

	selector            func(context X, event statepaths.Event) S
	selectorDescription InvocationInfo
	possible            []S
}

// internalBehaviour runs its actions without leaving the state.
type internalBehaviour[S comparable, X any] struct {
	triggerBehaviourBase[S, X]
}

func newBase[S comparable, X any](eventType string, guard TransitionGuard[X]) triggerBehaviourBase[S, X] {
	return triggerBehaviourBase[S, X]{eventType: eventType, guard: guard}
}

// behaviourResult is the outcome of looking up the handler for an event.
type behaviourResult[S comparable, X any] struct {
	// handler is the single behaviour whose guards passed, if any.
	handler triggerBehaviour[S, X]

	// unmetGuards holds the guard errors when no behaviour passed.
	unmetGuards []error

	// multiple is set when more than one behaviour passed its guards.
	multiple bool
}
