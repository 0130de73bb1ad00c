// Package machine provides a hierarchical state machine whose transition
// function is pure: every call takes a configuration and returns a new one.
//
// A Machine satisfies statepaths.Machine, so its reachable configurations
// and the paths to them can be explored directly:
//
//	m := machine.New("door", "closed", 0)
//	m.Configure("closed").Permit("open", "opened")
//	m.Configure("opened").Permit("close", "closed")
//
//	paths, err := statepaths.ShortestPaths[machine.Configuration[string, int]](m)
package machine

import (
	"fmt"

	"github.com/atlekbai/statepaths"
)

// Configuration is where a machine is: its active leaf state and its
// extended context.
type Configuration[S comparable, X any] struct {
	State   S `json:"state"`
	Context X `json:"context"`
}

// Machine is a hierarchical state machine over states S with context X.
// It holds only declarations; configurations live outside of it.
type Machine[S comparable, X any] struct {
	id      string
	initial S
	context X

	// representations contains the declaration of each state; order keeps
	// the states in the order they were first mentioned.
	representations map[S]*representation[S, X]
	order           []S
}

var _ statepaths.Machine[Configuration[string, int]] = (*Machine[string, int])(nil)

// New creates a machine that starts in initial with the given context.
func New[S comparable, X any](id string, initial S, context X) *Machine[S, X] {
	return &Machine[S, X]{
		id:              id,
		initial:         initial,
		context:         context,
		representations: make(map[S]*representation[S, X]),
	}
}

// ID returns the machine identifier.
func (m *Machine[S, X]) ID() string {
	return m.id
}

// Configure begins configuration of a state.
func (m *Machine[S, X]) Configure(state S) *StateConfiguration[S, X] {
	return &StateConfiguration[S, X]{
		representation: m.getRepresentation(state),
		lookup:         m.getRepresentation,
	}
}

// Initial returns the initial configuration. Initial transitions of the
// initial state are followed down to a leaf; entry actions are not run.
func (m *Machine[S, X]) Initial() Configuration[S, X] {
	state, context, err := m.resolveInitialTransitions(m.initial, m.context, statepaths.Event{}, false)
	if err != nil {
		return Configuration[S, X]{State: m.initial, Context: m.context}
	}
	return Configuration[S, X]{State: state, Context: context}
}

// Transition applies event to config and returns the resulting configuration.
//
// If the event type is declared in the hierarchy of the active state but no
// behaviour's guards pass, config is returned unchanged. An event type that
// is not declared at all yields an *InvalidTransitionError, and more than one
// passing behaviour an *InvalidOperationError.
func (m *Machine[S, X]) Transition(config Configuration[S, X], event statepaths.Event) (Configuration[S, X], error) {
	source := config.State
	rep := m.stateRepresentation(source)

	result := rep.findHandler(config.Context, event)
	if result == nil {
		return config, &InvalidTransitionError{
			Event:           event.Type,
			State:           source,
			PermittedEvents: rep.permittedEvents(config.Context),
		}
	}
	if result.multiple {
		return config, &InvalidOperationError{
			Message: fmt.Sprintf(
				"multiple permitted transitions are configured from state '%v' for event '%s'; guards should be mutually exclusive",
				source, event.Type),
		}
	}
	if result.handler == nil {
		return config, nil
	}

	switch behaviour := result.handler.(type) {
	case *transitioningBehaviour[S, X]:
		// A superstate transition to the current substate would otherwise
		// exit and re-enter it.
		if source == behaviour.destination {
			return config, nil
		}
		return m.executeTransition(config, rep, behaviour.destination, event, behaviour.Actions())

	case *reentryBehaviour[S, X]:
		return m.executeTransition(config, rep, behaviour.destination, event, behaviour.Actions())

	case *dynamicBehaviour[S, X]:
		destination := behaviour.selector(config.Context, event)
		return m.executeTransition(config, rep, destination, event, behaviour.Actions())

	case *ignoredBehaviour[S, X]:
		return config, nil

	case *internalBehaviour[S, X]:
		t := NewTransition(source, source, event)
		context, err := runActions(behaviour.Actions(), config.Context, t)
		if err != nil {
			return config, err
		}
		return Configuration[S, X]{State: source, Context: context}, nil

	default:
		return config, &InvalidOperationError{Message: fmt.Sprintf("unknown trigger behaviour type: %T", behaviour)}
	}
}

// executeTransition runs exit actions, transition actions, entry actions and
// initial transitions, in that order.
func (m *Machine[S, X]) executeTransition(
	config Configuration[S, X],
	sourceRep *representation[S, X],
	destination S,
	event statepaths.Event,
	actions []actionBehaviour[S, X],
) (Configuration[S, X], error) {
	t := NewTransition(config.State, destination, event)

	context, err := sourceRep.exit(config.Context, t)
	if err != nil {
		return config, err
	}
	if context, err = runActions(actions, context, t); err != nil {
		return config, err
	}
	if context, err = m.stateRepresentation(destination).enter(context, t); err != nil {
		return config, err
	}

	state, context, err := m.resolveInitialTransitions(destination, context, event, true)
	if err != nil {
		return config, err
	}
	return Configuration[S, X]{State: state, Context: context}, nil
}

// resolveInitialTransitions follows initial transitions from state down to a leaf.
func (m *Machine[S, X]) resolveInitialTransitions(
	state S,
	context X,
	event statepaths.Event,
	runEntryActions bool,
) (S, X, error) {
	current := state
	for {
		rep := m.stateRepresentation(current)
		if !rep.hasInitialTransition {
			return current, context, nil
		}

		target := rep.initialTransitionTarget
		targetRep := m.stateRepresentation(target)
		if targetRep.superstate != rep {
			return state, context, &InvalidOperationError{
				Message: fmt.Sprintf("initial transition target '%v' is not a substate of '%v'", target, current),
			}
		}

		if runEntryActions {
			var err error
			context, err = runActions(targetRep.entryActions, context, NewInitialTransition(current, target, event))
			if err != nil {
				return state, context, err
			}
		}
		current = target
	}
}

// NextEvents returns the event types declared on the active state and its
// superstates, innermost first, in declaration order.
func (m *Machine[S, X]) NextEvents(config Configuration[S, X]) []string {
	return m.stateRepresentation(config.State).declaredEvents()
}

// PermittedEvents returns the event types whose guards pass in config for
// an event without payload.
func (m *Machine[S, X]) PermittedEvents(config Configuration[S, X]) []string {
	return m.stateRepresentation(config.State).permittedEvents(config.Context)
}

// CanFire returns true if event would be handled by a behaviour in config.
func (m *Machine[S, X]) CanFire(config Configuration[S, X], event statepaths.Event) bool {
	result := m.stateRepresentation(config.State).findHandler(config.Context, event)
	return result != nil && result.handler != nil
}

// IsInState returns true if the active state of config is state or one of its substates.
func (m *Machine[S, X]) IsInState(config Configuration[S, X], state S) bool {
	return m.stateRepresentation(config.State).isIncludedIn(state)
}

// Root returns the declared structure of the machine. Its children are the
// states without a superstate.
func (m *Machine[S, X]) Root() statepaths.StructuralNode {
	return &Node[S, X]{machine: m}
}

// getRepresentation gets or creates the representation for a state.
func (m *Machine[S, X]) getRepresentation(state S) *representation[S, X] {
	rep, exists := m.representations[state]
	if !exists {
		rep = newRepresentation[S, X](state)
		m.representations[state] = rep
		m.order = append(m.order, state)
	}
	return rep
}

// stateRepresentation returns the declaration of state without registering it.
func (m *Machine[S, X]) stateRepresentation(state S) *representation[S, X] {
	if rep, ok := m.representations[state]; ok {
		return rep
	}
	return newRepresentation[S, X](state)
}

func (m *Machine[S, X]) String() string {
	return fmt.Sprintf("Machine { ID = %s, Initial = %v }", m.id, m.initial)
}
