package graph

import (
	"fmt"
	"strings"

	"github.com/atlekbai/statepaths"
)

// AdjacencyDot renders an adjacency map as a DOT graph. Nodes are named s0,
// s1, ... in discovery order and labelled with their canonical keys.
func AdjacencyDot[C any](adj *statepaths.AdjacencyMap[C]) string {
	if adj == nil {
		adj = &statepaths.AdjacencyMap[C]{}
	}

	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("node [shape=Mrecord]\n")
	sb.WriteString("rankdir=\"LR\"\n")

	ids := adjacencyIDs(adj)
	for _, key := range adj.Keys() {
		sb.WriteString(fmt.Sprintf("%s [label=\"%s\"];\n", ids[key], EscapeLabel(key)))
	}

	for _, key := range adj.Keys() {
		vertex, _ := adj.Vertex(key)
		for _, edge := range vertex.Edges() {
			sb.WriteString(fmt.Sprintf("%s -> %s [label=\"%s\"];\n",
				ids[key], ids[edge.StateKey], EscapeLabel(edgeLabel(edge.Event))))
		}
	}

	if initial, ok := ids[adj.InitialKey()]; ok {
		sb.WriteString(" init [label=\"\", shape=point];\n")
		sb.WriteString(fmt.Sprintf(" init -> %s\n", initial))
	}
	sb.WriteString("}")

	return sb.String()
}

// AdjacencyMermaid renders an adjacency map as a Mermaid state diagram.
func AdjacencyMermaid[C any](adj *statepaths.AdjacencyMap[C], direction *MermaidGraphDirection) string {
	if adj == nil {
		adj = &statepaths.AdjacencyMap[C]{}
	}

	var sb strings.Builder
	sb.WriteString("stateDiagram-v2")
	if direction != nil {
		sb.WriteString(fmt.Sprintf("\n\tdirection %s", GetDirectionCode(*direction)))
	}

	ids := adjacencyIDs(adj)
	for _, key := range adj.Keys() {
		sb.WriteString(fmt.Sprintf("\n\t%s : %s", ids[key], mermaidText(key)))
	}

	for _, key := range adj.Keys() {
		vertex, _ := adj.Vertex(key)
		for _, edge := range vertex.Edges() {
			sb.WriteString(fmt.Sprintf("\n\t%s --> %s : %s",
				ids[key], ids[edge.StateKey], mermaidText(edgeLabel(edge.Event))))
		}
	}

	if initial, ok := ids[adj.InitialKey()]; ok {
		sb.WriteString(fmt.Sprintf("\n[*] --> %s", initial))
	}

	return sb.String()
}

func adjacencyIDs[C any](adj *statepaths.AdjacencyMap[C]) map[string]string {
	ids := make(map[string]string)
	for i, key := range adj.Keys() {
		ids[key] = fmt.Sprintf("s%d", i)
	}
	return ids
}

// edgeLabel is the event type, or the full event key when it has a payload.
func edgeLabel(event statepaths.Event) string {
	if len(event.Payload) == 0 {
		return event.Type
	}
	return event.String()
}

// mermaidText keeps state descriptions on one line and clear of the
// characters Mermaid treats as separators.
func mermaidText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, ":", "#58;")
	return s
}
