package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atlekbai/statepaths"
)

// actionDescriber is implemented by structural nodes that know their actions.
type actionDescriber interface {
	EntryActions() []string
	ExitActions() []string
}

// initialDescriber is implemented by structural nodes that know which child
// is entered first.
type initialDescriber interface {
	InitialID() string
}

// StateGraph generates a symbolic representation of the graph structure.
type StateGraph struct {
	// InitialState is the name of the initial state, or "" if unknown.
	InitialState string

	// States contains all states in the graph, indexed by state name.
	States map[string]*State

	// Order lists state names depth first in declaration order.
	Order []string

	// Transitions contains all transitions in the graph.
	Transitions []*Transition

	// Decisions contains all decision nodes in the graph.
	Decisions []*Decision
}

// NewStateGraph creates a new state graph from the directed graph of a
// machine root. The root itself is not drawn; its children are the
// top-level states.
func NewStateGraph(root *statepaths.DirectedNode) *StateGraph {
	sg := &StateGraph{
		States: make(map[string]*State),
	}
	if root == nil {
		return sg
	}

	for _, child := range root.Children {
		sg.addState(child, nil)
	}
	for _, name := range sg.Order {
		sg.addTransitions(sg.States[name])
	}
	sg.InitialState = sg.initialState(root)

	return sg
}

// addState adds node and its descendants under superState.
func (sg *StateGraph) addState(node *statepaths.DirectedNode, superState *SuperState) {
	if _, exists := sg.States[node.ID]; exists {
		return
	}

	state := &State{
		StateName:  node.ID,
		NodeName:   node.ID,
		SuperState: superState,
		Node:       node,
	}
	if d, ok := node.Node.(actionDescriber); ok {
		state.EntryActions = d.EntryActions()
		state.ExitActions = d.ExitActions()
	}
	sg.States[node.ID] = state
	sg.Order = append(sg.Order, node.ID)
	if superState != nil {
		superState.SubStates = append(superState.SubStates, state)
	}

	if len(node.Children) > 0 {
		state.Cluster = &SuperState{State: state}
		for _, child := range node.Children {
			sg.addState(child, state.Cluster)
		}
	}
}

// addTransitions adds the transitions declared on state. A declared
// transition with more than one target goes through a decision node.
func (sg *StateGraph) addTransitions(state *State) {
	var groups [][]statepaths.DirectedEdge
	for _, edge := range state.Node.Edges {
		n := len(groups)
		if n > 0 && groups[n-1][0].Transition == edge.Transition {
			groups[n-1] = append(groups[n-1], edge)
			continue
		}
		groups = append(groups, []statepaths.DirectedEdge{edge})
	}

	for _, group := range groups {
		first := group[0]
		if len(group) == 1 {
			sg.link(state.NodeName, first.Target, first)
			continue
		}

		decide := &Decision{
			NodeName: fmt.Sprintf("Decision%d", len(sg.Decisions)+1),
			Label:    first.Label,
		}
		sg.Decisions = append(sg.Decisions, decide)
		sg.link(state.NodeName, decide.NodeName, first)
		for _, edge := range group {
			sg.link(decide.NodeName, edge.Target, statepaths.DirectedEdge{Label: edge.Label})
		}
	}
}

// link records a transition between two graph nodes.
func (sg *StateGraph) link(source, destination string, edge statepaths.DirectedEdge) {
	t := &Transition{
		Trigger:                 edge.Label,
		SourceNodeName:          source,
		DestinationNodeName:     destination,
		SourceState:             sg.States[source],
		DestinationState:        sg.States[destination],
		Guards:                  edge.Guards,
		ExecuteEntryExitActions: !edge.Internal,
	}
	if t.DestinationState != nil && t.ExecuteEntryExitActions && t.IsStay() {
		t.DestinationEntryActions = t.DestinationState.EntryActions
	}
	sg.Transitions = append(sg.Transitions, t)

	if t.SourceState != nil {
		t.SourceState.Leaving = append(t.SourceState.Leaving, t)
	} else if d := sg.decision(source); d != nil {
		d.Leaving = append(d.Leaving, t)
	}
	if t.DestinationState != nil {
		t.DestinationState.Arriving = append(t.DestinationState.Arriving, t)
	} else if d := sg.decision(destination); d != nil {
		d.Arriving = append(d.Arriving, t)
	}
}

func (sg *StateGraph) decision(name string) *Decision {
	for _, d := range sg.Decisions {
		if d.NodeName == name {
			return d
		}
	}
	return nil
}

// initialState returns the state entered first.
func (sg *StateGraph) initialState(root *statepaths.DirectedNode) string {
	if d, ok := root.Node.(initialDescriber); ok {
		if id := d.InitialID(); id != "" {
			return id
		}
	}
	if len(root.Children) > 0 {
		return root.Children[0].ID
	}
	return ""
}

// ToGraph converts the state graph to a string representation using the specified style.
func (sg *StateGraph) ToGraph(style Style) string {
	var sb strings.Builder

	sb.WriteString(style.GetPrefix())

	for _, name := range sg.Order {
		state := sg.States[name]
		if state.SuperState != nil {
			continue
		}
		if state.Cluster != nil {
			sb.WriteString(style.FormatOneCluster(state.Cluster))
			continue
		}
		sb.WriteString(style.FormatOneState(state))
	}

	for _, dec := range sg.Decisions {
		sb.WriteString(style.FormatOneDecisionNode(dec.NodeName, dec.Label))
	}

	for _, line := range style.FormatAllTransitions(sg.getSortedTransitions(), sg.Decisions) {
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	sb.WriteString(style.GetInitialTransition(sg.InitialState))

	return sb.String()
}

// getSortedTransitions returns transitions sorted by source node, then destination node, then trigger.
func (sg *StateGraph) getSortedTransitions() []*Transition {
	sorted := make([]*Transition, len(sg.Transitions))
	copy(sorted, sg.Transitions)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i], sorted[j]
		if ti.SourceNodeName != tj.SourceNodeName {
			return ti.SourceNodeName < tj.SourceNodeName
		}
		if ti.DestinationNodeName != tj.DestinationNodeName {
			return ti.DestinationNodeName < tj.DestinationNodeName
		}
		return ti.Trigger < tj.Trigger
	})
	return sorted
}
