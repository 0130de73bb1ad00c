package machine

import (
	"fmt"

	"github.com/atlekbai/statepaths"
)

// StateConfiguration provides a fluent interface for configuring state behaviour.
//
// Configuration mistakes that can never be executed, such as a Permit to the
// state itself, panic.
type StateConfiguration[S comparable, X any] struct {
	representation *representation[S, X]
	lookup         func(S) *representation[S, X]
	last           triggerBehaviour[S, X]
}

// State returns the state being configured.
func (sc *StateConfiguration[S, X]) State() S {
	return sc.representation.state
}

func (sc *StateConfiguration[S, X]) add(behaviour triggerBehaviour[S, X]) *StateConfiguration[S, X] {
	sc.representation.addBehaviour(behaviour)
	sc.last = behaviour
	return sc
}

// Permit transitions to destination when eventType is received.
func (sc *StateConfiguration[S, X]) Permit(eventType string, destination S) *StateConfiguration[S, X] {
	return sc.PermitIf(eventType, destination, nil)
}

// PermitIf transitions to destination when eventType is received and guard is met.
func (sc *StateConfiguration[S, X]) PermitIf(eventType string, destination S, guard Guard[X], guardDescription ...string) *StateConfiguration[S, X] {
	sc.enforceNotIdentityTransition(destination)
	sc.lookup(destination)
	return sc.add(&transitioningBehaviour[S, X]{
		triggerBehaviourBase: newBase[S](eventType, NewTransitionGuard(guard, firstOrEmpty(guardDescription))),
		destination:          destination,
	})
}

// PermitReentry exits and re-enters the state when eventType is received.
// Exit and entry actions are executed.
func (sc *StateConfiguration[S, X]) PermitReentry(eventType string) *StateConfiguration[S, X] {
	return sc.PermitReentryIf(eventType, nil)
}

// PermitReentryIf exits and re-enters the state when eventType is received
// and guard is met.
func (sc *StateConfiguration[S, X]) PermitReentryIf(eventType string, guard Guard[X], guardDescription ...string) *StateConfiguration[S, X] {
	return sc.add(&reentryBehaviour[S, X]{
		triggerBehaviourBase: newBase[S](eventType, NewTransitionGuard(guard, firstOrEmpty(guardDescription))),
		destination:          sc.representation.state,
	})
}

// PermitDynamic transitions to the state chosen by selector when eventType is
// received. possibleDestinations are only used to describe the machine's structure.
func (sc *StateConfiguration[S, X]) PermitDynamic(
	eventType string,
	selector func(context X, event statepaths.Event) S,
	possibleDestinations ...S,
) *StateConfiguration[S, X] {
	return sc.PermitDynamicIf(eventType, selector, nil, "", possibleDestinations...)
}

// PermitDynamicIf is PermitDynamic with a guard.
func (sc *StateConfiguration[S, X]) PermitDynamicIf(
	eventType string,
	selector func(context X, event statepaths.Event) S,
	guard Guard[X],
	guardDescription string,
	possibleDestinations ...S,
) *StateConfiguration[S, X] {
	for _, destination := range possibleDestinations {
		sc.lookup(destination)
	}
	return sc.add(&dynamicBehaviour[S, X]{
		triggerBehaviourBase: newBase[S](eventType, NewTransitionGuard(guard, guardDescription)),
		selector:             selector,
		selectorDescription:  CreateInvocationInfo(selector, ""),
		possible:             possibleDestinations,
	})
}

// Ignore swallows eventType in this state.
func (sc *StateConfiguration[S, X]) Ignore(eventType string) *StateConfiguration[S, X] {
	return sc.IgnoreIf(eventType, nil)
}

// IgnoreIf swallows eventType in this state when guard is met.
func (sc *StateConfiguration[S, X]) IgnoreIf(eventType string, guard Guard[X], guardDescription ...string) *StateConfiguration[S, X] {
	return sc.add(&ignoredBehaviour[S, X]{
		triggerBehaviourBase: newBase[S](eventType, NewTransitionGuard(guard, firstOrEmpty(guardDescription))),
	})
}

// InternalTransition runs action on eventType without exiting or entering
// the state; entry and exit actions are not executed.
func (sc *StateConfiguration[S, X]) InternalTransition(eventType string, action Action[S, X]) *StateConfiguration[S, X] {
	return sc.InternalTransitionIf(eventType, nil, action)
}

// InternalTransitionIf is InternalTransition with a guard.
func (sc *StateConfiguration[S, X]) InternalTransitionIf(
	eventType string,
	guard Guard[X],
	action Action[S, X],
	guardDescription ...string,
) *StateConfiguration[S, X] {
	b := &internalBehaviour[S, X]{
		triggerBehaviourBase: newBase[S](eventType, NewTransitionGuard(guard, firstOrEmpty(guardDescription))),
	}
	if action != nil {
		b.addAction(newActionBehaviour(action, ""))
	}
	return sc.add(b)
}

// Assign attaches action to the most recently declared transition of this
// state. It runs after exit actions and before entry actions.
func (sc *StateConfiguration[S, X]) Assign(action Action[S, X], description ...string) *StateConfiguration[S, X] {
	if sc.last == nil {
		panic(fmt.Sprintf("assign requires a transition declared on state '%v'", sc.representation.state))
	}
	if _, ok := sc.last.(*ignoredBehaviour[S, X]); ok {
		panic(fmt.Sprintf("assign cannot be attached to ignored event '%s' on state '%v'", sc.last.EventType(), sc.representation.state))
	}
	sc.last.addAction(newActionBehaviour(action, firstOrEmpty(description)))
	return sc
}

// OnEntry runs action whenever the state is entered.
func (sc *StateConfiguration[S, X]) OnEntry(action Action[S, X], description ...string) *StateConfiguration[S, X] {
	sc.representation.entryActions = append(sc.representation.entryActions,
		newActionBehaviour(action, firstOrEmpty(description)))
	return sc
}

// OnEntryFrom runs action when the state is entered through eventType.
func (sc *StateConfiguration[S, X]) OnEntryFrom(eventType string, action Action[S, X], description ...string) *StateConfiguration[S, X] {
	sc.representation.entryActions = append(sc.representation.entryActions,
		newActionBehaviourFrom(eventType, action, firstOrEmpty(description)))
	return sc
}

// OnExit runs action whenever the state is exited.
func (sc *StateConfiguration[S, X]) OnExit(action Action[S, X], description ...string) *StateConfiguration[S, X] {
	sc.representation.exitActions = append(sc.representation.exitActions,
		newActionBehaviour(action, firstOrEmpty(description)))
	return sc
}

// SubstateOf sets the superstate of this state.
func (sc *StateConfiguration[S, X]) SubstateOf(superstate S) *StateConfiguration[S, X] {
	superstateRep := sc.lookup(superstate)

	if superstateRep.isIncludedIn(sc.representation.state) {
		panic(fmt.Sprintf("circular superstate relationship detected: %v -> %v", sc.representation.state, superstate))
	}
	if sc.representation.superstate != nil {
		panic(fmt.Sprintf("state '%v' is already a substate of '%v'", sc.representation.state, sc.representation.superstate.state))
	}

	sc.representation.superstate = superstateRep
	superstateRep.addSubstate(sc.representation)
	return sc
}

// InitialTransition sets the substate entered whenever this state is entered.
// The destination must be a direct substate of this state by the time the
// machine runs.
func (sc *StateConfiguration[S, X]) InitialTransition(destination S) *StateConfiguration[S, X] {
	if sc.representation.state == destination {
		panic(fmt.Sprintf("initial transition to self is not allowed: state '%v'", destination))
	}
	if sc.representation.hasInitialTransition {
		panic(fmt.Sprintf("state '%v' already has an initial transition defined", sc.representation.state))
	}
	sc.representation.setInitialTransition(destination)
	return sc
}

func (sc *StateConfiguration[S, X]) enforceNotIdentityTransition(destination S) {
	if sc.representation.state == destination {
		panic("permit() requires that the destination state is not equal to the source state. " +
			"To accept an event without changing state, use either Ignore() or PermitReentry()")
	}
}
