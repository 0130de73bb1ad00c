package graph

import (
	"strings"
)

// Style defines the interface for formatting state graphs.
type Style interface {
	// GetPrefix returns the text that starts a new graph.
	GetPrefix() string

	// GetInitialTransition returns the text for the initial state transition.
	GetInitialTransition(initialState string) string

	// FormatOneState formats a single state.
	FormatOneState(state *State) string

	// FormatOneCluster formats a superstate and its substates.
	FormatOneCluster(superState *SuperState) string

	// FormatOneDecisionNode formats a decision node.
	FormatOneDecisionNode(nodeName, label string) string

	// FormatAllTransitions formats all transitions.
	FormatAllTransitions(transitions []*Transition, decisions []*Decision) []string

	// FormatOneTransition formats a single transition.
	FormatOneTransition(
		sourceNodeName, trigger string,
		actions []string,
		destinationNodeName string,
		guards []string,
	) string
}

// FormatTransitions is a helper that formats all transitions using the given style.
func FormatTransitions(style Style, transitions []*Transition) []string {
	var lines []string
	for _, transit := range transitions {
		if line := formatSingleTransition(style, transit); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func formatSingleTransition(style Style, transit *Transition) string {
	if transit.SourceNodeName == "" || transit.DestinationNodeName == "" {
		return ""
	}

	var actions []string
	if transit.ExecuteEntryExitActions {
		actions = transit.DestinationEntryActions
	}

	return style.FormatOneTransition(
		transit.SourceNodeName,
		transit.Trigger,
		actions,
		transit.DestinationNodeName,
		transit.Guards,
	)
}

// transitionLabel joins trigger, actions and guards the way UML writes them.
func transitionLabel(trigger string, actions, guards []string) string {
	var sb strings.Builder

	sb.WriteString(trigger)

	if len(actions) > 0 {
		sb.WriteString(" / ")
		sb.WriteString(strings.Join(actions, ", "))
	}

	for _, info := range guards {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("[")
		sb.WriteString(info)
		sb.WriteString("]")
	}

	return sb.String()
}
