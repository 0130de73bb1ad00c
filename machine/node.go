package machine

import (
	"fmt"

	"github.com/atlekbai/statepaths"
)

// Node is a declared state of a Machine, or the machine itself when it has
// no state.
type Node[S comparable, X any] struct {
	machine *Machine[S, X]
	rep     *representation[S, X]
}

var _ statepaths.StructuralNode = (*Node[string, int])(nil)

func (n *Node[S, X]) node(rep *representation[S, X]) *Node[S, X] {
	return &Node[S, X]{machine: n.machine, rep: rep}
}

// IsRoot returns true for the node standing for the whole machine.
func (n *Node[S, X]) IsRoot() bool {
	return n.rep == nil
}

// State returns the declared state. It is the zero value for the root.
func (n *Node[S, X]) State() S {
	if n.rep == nil {
		var zero S
		return zero
	}
	return n.rep.state
}

// ID returns the machine identifier for the root and the state name otherwise.
func (n *Node[S, X]) ID() string {
	if n.rep == nil {
		return n.machine.id
	}
	return fmt.Sprintf("%v", n.rep.state)
}

// Children returns the declared substates in the order they were first mentioned.
func (n *Node[S, X]) Children() []statepaths.StructuralNode {
	var children []statepaths.StructuralNode
	if n.rep != nil {
		for _, sub := range n.rep.substates {
			children = append(children, n.node(sub))
		}
		return children
	}
	for _, state := range n.machine.order {
		rep := n.machine.representations[state]
		if rep.superstate == nil {
			children = append(children, n.node(rep))
		}
	}
	return children
}

// Transitions returns the transitions declared on the state in declaration
// order. Ignored events are not transitions and are left out.
func (n *Node[S, X]) Transitions() []statepaths.DeclaredTransition {
	if n.rep == nil {
		return nil
	}
	var result []statepaths.DeclaredTransition
	for _, eventType := range n.rep.events {
		for _, behaviour := range n.rep.behaviours[eventType] {
			t := statepaths.DeclaredTransition{
				Event:  eventType,
				Guards: behaviour.Guard().Descriptions(),
			}
			switch b := behaviour.(type) {
			case *transitioningBehaviour[S, X]:
				t.Targets = []statepaths.StructuralNode{n.node(n.machine.stateRepresentation(b.destination))}
			case *reentryBehaviour[S, X]:
				t.Targets = []statepaths.StructuralNode{n}
			case *dynamicBehaviour[S, X]:
				for _, destination := range b.possible {
					t.Targets = append(t.Targets, n.node(n.machine.stateRepresentation(destination)))
				}
			case *internalBehaviour[S, X]:
				t.Internal = true
			case *ignoredBehaviour[S, X]:
				continue
			}
			result = append(result, t)
		}
	}
	return result
}

// InitialID returns the ID of the state entered first: the machine's initial
// state for the root, the initial substate otherwise, or "" if there is none.
func (n *Node[S, X]) InitialID() string {
	if n.rep == nil {
		return fmt.Sprintf("%v", n.machine.initial)
	}
	if !n.rep.hasInitialTransition {
		return ""
	}
	return fmt.Sprintf("%v", n.rep.initialTransitionTarget)
}

// EntryActions returns the descriptions of the entry actions.
func (n *Node[S, X]) EntryActions() []string {
	if n.rep == nil {
		return nil
	}
	return describeActions(n.rep.entryActions)
}

// ExitActions returns the descriptions of the exit actions.
func (n *Node[S, X]) ExitActions() []string {
	if n.rep == nil {
		return nil
	}
	return describeActions(n.rep.exitActions)
}
