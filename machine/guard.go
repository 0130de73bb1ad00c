package machine

import (
	"github.com/atlekbai/statepaths"
)

// Guard decides whether a transition may be taken. It returns nil if the
// condition is met, or an error describing why it is not.
type Guard[X any] func(context X, event statepaths.Event) error

// GuardCondition is a single guard with its description.
type GuardCondition[X any] struct {
	Guard Guard[X]

	description InvocationInfo
}

// NewGuardCondition creates a new guard condition.
func NewGuardCondition[X any](guard Guard[X], description InvocationInfo) GuardCondition[X] {
	return GuardCondition[X]{
		Guard:       guard,
		description: description,
	}
}

// Description returns the description of the guard.
func (g GuardCondition[X]) Description() string {
	return g.description.Description()
}

// Error returns the error from the guard, or nil if the guard passes.
func (g GuardCondition[X]) Error(context X, event statepaths.Event) error {
	if g.Guard == nil {
		return nil
	}
	return g.Guard(context, event)
}

// TransitionGuard is the conjunction of guard conditions on one transition.
// The zero value always passes.
type TransitionGuard[X any] struct {
	Conditions []GuardCondition[X]
}

// NewTransitionGuard creates a transition guard from a single guard function.
func NewTransitionGuard[X any](guard Guard[X], description string) TransitionGuard[X] {
	if guard == nil {
		return TransitionGuard[X]{}
	}
	return TransitionGuard[X]{
		Conditions: []GuardCondition[X]{
			NewGuardCondition(guard, CreateInvocationInfo(guard, description)),
		},
	}
}

// Met returns true if all guard conditions are met.
func (tg TransitionGuard[X]) Met(context X, event statepaths.Event) bool {
	for _, c := range tg.Conditions {
		if c.Error(context, event) != nil {
			return false
		}
	}
	return true
}

// Unmet returns the errors of all guard conditions that are not met.
func (tg TransitionGuard[X]) Unmet(context X, event statepaths.Event) []error {
	var unmet []error
	for _, c := range tg.Conditions {
		if err := c.Error(context, event); err != nil {
			unmet = append(unmet, err)
		}
	}
	return unmet
}

// Descriptions returns the description of every condition.
func (tg TransitionGuard[X]) Descriptions() []string {
	if len(tg.Conditions) == 0 {
		return nil
	}
	result := make([]string, len(tg.Conditions))
	for i, c := range tg.Conditions {
		result[i] = c.Description()
	}
	return result
}

// IsEmpty returns true if the transition guard has no conditions.
func (tg TransitionGuard[X]) IsEmpty() bool {
	return len(tg.Conditions) == 0
}
