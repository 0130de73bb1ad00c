package machine

import (
	"fmt"

	"github.com/atlekbai/statepaths"
)

// representation models the declared behaviour of one state.
type representation[S comparable, X any] struct {
	state S

	superstate *representation[S, X]
	substates  []*representation[S, X]

	// behaviours maps event types to their behaviours; events keeps the
	// event types in declaration order.
	behaviours map[string][]triggerBehaviour[S, X]
	events     []string

	entryActions []actionBehaviour[S, X]
	exitActions  []actionBehaviour[S, X]

	hasInitialTransition    bool
	initialTransitionTarget S
}

func newRepresentation[S comparable, X any](state S) *representation[S, X] {
	return &representation[S, X]{
		state:      state,
		behaviours: make(map[string][]triggerBehaviour[S, X]),
	}
}

func (r *representation[S, X]) addBehaviour(behaviour triggerBehaviour[S, X]) {
	eventType := behaviour.EventType()
	if _, ok := r.behaviours[eventType]; !ok {
		r.events = append(r.events, eventType)
	}
	r.behaviours[eventType] = append(r.behaviours[eventType], behaviour)
}

func (r *representation[S, X]) addSubstate(substate *representation[S, X]) {
	r.substates = append(r.substates, substate)
}

func (r *representation[S, X]) setInitialTransition(target S) {
	r.hasInitialTransition = true
	r.initialTransitionTarget = target
}

// findHandler looks for the behaviour handling event, starting at this state
// and moving up through superstates while no behaviour passes its guards.
// It returns nil when no state in the hierarchy declares the event type.
func (r *representation[S, X]) findHandler(context X, event statepaths.Event) *behaviourResult[S, X] {
	local := r.findLocalHandler(context, event)
	if local != nil && (local.handler != nil || local.multiple) {
		return local
	}
	if r.superstate != nil {
		if parent := r.superstate.findHandler(context, event); parent != nil {
			if local != nil && parent.handler == nil && !parent.multiple {
				parent.unmetGuards = append(local.unmetGuards, parent.unmetGuards...)
			}
			return parent
		}
	}
	return local
}

func (r *representation[S, X]) findLocalHandler(context X, event statepaths.Event) *behaviourResult[S, X] {
	behaviours, ok := r.behaviours[event.Type]
	if !ok {
		return nil
	}

	// Each guard runs once per lookup.
	var passing []triggerBehaviour[S, X]
	var unmet []error
	for _, behaviour := range behaviours {
		if errs := behaviour.Guard().Unmet(context, event); len(errs) > 0 {
			unmet = append(unmet, errs...)
		} else {
			passing = append(passing, behaviour)
		}
	}

	switch len(passing) {
	case 0:
		return &behaviourResult[S, X]{unmetGuards: unmet}
	case 1:
		return &behaviourResult[S, X]{handler: passing[0]}
	default:
		return &behaviourResult[S, X]{multiple: true}
	}
}

// enter runs the entry actions of every state entered by t, outermost first.
func (r *representation[S, X]) enter(context X, t Transition[S]) (X, error) {
	if t.IsReentry() {
		return runActions(r.entryActions, context, t)
	}
	if r.includes(t.Source) {
		return context, nil
	}
	if r.superstate != nil {
		var err error
		context, err = r.superstate.enter(context, t)
		if err != nil {
			return context, err
		}
	}
	return runActions(r.entryActions, context, t)
}

// exit runs the exit actions of every state left by t, innermost first.
func (r *representation[S, X]) exit(context X, t Transition[S]) (X, error) {
	if t.IsReentry() {
		return runActions(r.exitActions, context, t)
	}
	if r.includes(t.Destination) {
		return context, nil
	}
	context, err := runActions(r.exitActions, context, t)
	if err != nil {
		return context, err
	}
	if r.superstate != nil {
		return r.superstate.exit(context, t)
	}
	return context, nil
}

// includes returns true if this state or any of its substates is state.
func (r *representation[S, X]) includes(state S) bool {
	if r.state == state {
		return true
	}
	for _, substate := range r.substates {
		if substate.includes(state) {
			return true
		}
	}
	return false
}

// isIncludedIn returns true if this state is state or a substate of it.
func (r *representation[S, X]) isIncludedIn(state S) bool {
	if r.state == state {
		return true
	}
	if r.superstate != nil {
		return r.superstate.isIncludedIn(state)
	}
	return false
}

// declaredEvents returns the event types declared on this state and its
// superstates, innermost first, without duplicates.
func (r *representation[S, X]) declaredEvents() []string {
	var result []string
	seen := make(map[string]bool)
	for rep := r; rep != nil; rep = rep.superstate {
		for _, eventType := range rep.events {
			if !seen[eventType] {
				seen[eventType] = true
				result = append(result, eventType)
			}
		}
	}
	return result
}

// permittedEvents returns the declared event types with at least one
// behaviour whose guards pass for context and a bare event of that type.
func (r *representation[S, X]) permittedEvents(context X) []string {
	var result []string
	for _, eventType := range r.declaredEvents() {
		res := r.findHandler(context, statepaths.Event{Type: eventType})
		if res != nil && (res.handler != nil || res.multiple) {
			result = append(result, eventType)
		}
	}
	return result
}

func (r *representation[S, X]) String() string {
	return fmt.Sprintf("%v", r.state)
}
