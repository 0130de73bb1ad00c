package graph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/atlekbai/statepaths"
)

// MermaidGraphDirection specifies the direction of the Mermaid graph.
type MermaidGraphDirection int

const (
	// TopToBottom flows from top to bottom.
	TopToBottom MermaidGraphDirection = iota
	// BottomToTop flows from bottom to top.
	BottomToTop
	// LeftToRight flows from left to right.
	LeftToRight
	// RightToLeft flows from right to left.
	RightToLeft
)

// MermaidGraphStyle generates Mermaid graphs.
type MermaidGraphStyle struct {
	graph     *StateGraph
	direction *MermaidGraphDirection
	aliases   map[string]string
	order     []string
}

// NewMermaidGraphStyle creates a new Mermaid graph style.
func NewMermaidGraphStyle(graph *StateGraph, direction *MermaidGraphDirection) *MermaidGraphStyle {
	s := &MermaidGraphStyle{
		graph:     graph,
		direction: direction,
		aliases:   make(map[string]string),
	}
	s.buildAliases()
	return s
}

// GetPrefix returns the text that starts a new Mermaid graph.
func (s *MermaidGraphStyle) GetPrefix() string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2")

	if s.direction != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("\tdirection %s", GetDirectionCode(*s.direction)))
	}

	for _, name := range s.order {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("\t%s : %s", s.aliases[name], name))
	}

	return sb.String()
}

// FormatOneCluster formats a superstate and its substates.
func (s *MermaidGraphStyle) FormatOneCluster(superState *SuperState) string {
	return s.formatCluster(superState, "\t")
}

func (s *MermaidGraphStyle) formatCluster(superState *SuperState, indent string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%sstate %s {", indent, s.sanitizedName(superState.StateName)))

	for _, subState := range superState.SubStates {
		if subState.Cluster != nil {
			sb.WriteString(s.formatCluster(subState.Cluster, indent+"\t"))
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s\t%s", indent, s.sanitizedName(subState.StateName)))
	}

	sb.WriteString(fmt.Sprintf("\n%s}", indent))
	return sb.String()
}

// FormatOneState formats a single state (Mermaid doesn't need explicit state definitions).
func (s *MermaidGraphStyle) FormatOneState(_ *State) string {
	return ""
}

// FormatOneDecisionNode formats a decision node.
func (s *MermaidGraphStyle) FormatOneDecisionNode(nodeName, _ string) string {
	return fmt.Sprintf("\n\tstate %s <<choice>>", nodeName)
}

// FormatAllTransitions formats all transitions.
func (s *MermaidGraphStyle) FormatAllTransitions(transitions []*Transition, _ []*Decision) []string {
	return FormatTransitions(s, transitions)
}

// FormatOneTransition formats a single transition.
func (s *MermaidGraphStyle) FormatOneTransition(
	sourceNodeName, trigger string,
	actions []string,
	destinationNodeName string,
	guards []string,
) string {
	return fmt.Sprintf("\t%s --> %s : %s",
		s.sanitizedName(sourceNodeName),
		s.sanitizedName(destinationNodeName),
		transitionLabel(trigger, actions, guards))
}

// GetInitialTransition returns the text for the initial state transition.
func (s *MermaidGraphStyle) GetInitialTransition(initialState string) string {
	if initialState == "" {
		return ""
	}
	return fmt.Sprintf("\n[*] --> %s", s.sanitizedName(initialState))
}

// buildAliases assigns a unique sanitized alias to every state whose name
// Mermaid cannot use as is.
func (s *MermaidGraphStyle) buildAliases() {
	if s.graph == nil {
		return
	}
	taken := make(map[string]bool)

	for _, name := range s.graph.Order {
		sanitized := SanitizeStateName(name)
		if sanitized == name {
			continue
		}

		candidate := sanitized
		for count := 1; taken[candidate] || s.graph.States[candidate] != nil; count++ {
			candidate = fmt.Sprintf("%s_%d", sanitized, count)
		}
		taken[candidate] = true
		s.aliases[name] = candidate
		s.order = append(s.order, name)
	}
}

// sanitizedName returns the alias for a state, or the name itself.
func (s *MermaidGraphStyle) sanitizedName(stateName string) string {
	if alias, ok := s.aliases[stateName]; ok {
		return alias
	}
	return stateName
}

// SanitizeStateName removes characters that would cause invalid Mermaid graphs.
func SanitizeStateName(name string) string {
	var result strings.Builder
	for _, c := range name {
		if !unicode.IsSpace(c) && c != ':' && c != '-' {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// GetDirectionCode returns the Mermaid direction code.
func GetDirectionCode(direction MermaidGraphDirection) string {
	switch direction {
	case TopToBottom:
		return "TB"
	case BottomToTop:
		return "BT"
	case LeftToRight:
		return "LR"
	case RightToLeft:
		return "RL"
	default:
		return "TB"
	}
}

// MermaidGraph renders the directed graph of a machine as a Mermaid state diagram.
func MermaidGraph(root *statepaths.DirectedNode, direction *MermaidGraphDirection) string {
	graph := NewStateGraph(root)
	return graph.ToGraph(NewMermaidGraphStyle(graph, direction))
}
