// Package graph renders machine structure and reachability graphs as
// UML-style DOT or Mermaid state diagrams.
package graph

import (
	"github.com/atlekbai/statepaths"
)

// State represents a declared state in the graph.
type State struct {
	// StateName is the name of the state.
	StateName string

	// NodeName is the name used for the node in the graph.
	NodeName string

	// EntryActions are the entry actions for this state.
	EntryActions []string

	// ExitActions are the exit actions for this state.
	ExitActions []string

	// Leaving are the transitions leaving this state.
	Leaving []*Transition

	// Arriving are the transitions arriving at this state.
	Arriving []*Transition

	// SuperState is the parent state, if any.
	SuperState *SuperState

	// Cluster is set when the state has substates.
	Cluster *SuperState

	// Node is the exported node this state was built from.
	Node *statepaths.DirectedNode
}

// SuperState represents a state that contains substates.
type SuperState struct {
	*State

	// SubStates are the child states of this state.
	SubStates []*State
}

// Decision is a choice node standing for a transition with several
// possible destinations.
type Decision struct {
	// NodeName is the name of the decision node.
	NodeName string

	// Label describes the choice.
	Label string

	// Leaving are the transitions leaving this decision node.
	Leaving []*Transition

	// Arriving are the transitions arriving at this decision node.
	Arriving []*Transition
}

// Transition represents a transition in the graph.
type Transition struct {
	// Trigger is the event type that causes this transition.
	Trigger string

	// SourceNodeName and DestinationNodeName name the graph nodes joined by
	// the transition; either may be a decision node.
	SourceNodeName      string
	DestinationNodeName string

	// SourceState and DestinationState are nil when the end is a decision node.
	SourceState      *State
	DestinationState *State

	// Guards are the guard descriptions for this transition.
	Guards []string

	// DestinationEntryActions are the entry actions executed at the destination.
	DestinationEntryActions []string

	// ExecuteEntryExitActions is false for internal transitions.
	ExecuteEntryExitActions bool
}

// IsStay returns true for a transition from a state to itself.
func (t *Transition) IsStay() bool {
	return t.SourceNodeName == t.DestinationNodeName
}
