package statepaths

import (
	"fmt"
)

// DirectedNode is a declared state and its declared transitions, with its
// declared children nested below it.
type DirectedNode struct {
	ID       string          `json:"id"`
	Node     StructuralNode  `json:"-"`
	Children []*DirectedNode `json:"children"`
	Edges    []DirectedEdge  `json:"edges"`
}

// DirectedEdge is one declared transition from Source to Target. A
// transition with several targets yields one edge per target, all sharing
// the same Transition index.
type DirectedEdge struct {
	ID         string   `json:"id"`
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Label      string   `json:"label"`
	Guards     []string `json:"guards,omitempty"`
	Internal   bool     `json:"internal,omitempty"`
	Transition int      `json:"transition"`
}

// ToDirectedGraph converts the declared structure rooted at node into a
// tree of directed nodes. It never runs the machine, so the result does not
// depend on reachability or exploration options.
//
// A transition without declared targets becomes an edge from the node to itself.
func ToDirectedGraph(node StructuralNode) *DirectedNode {
	if node == nil {
		return nil
	}
	d := &DirectedNode{
		ID:       node.ID(),
		Node:     node,
		Children: []*DirectedNode{},
		Edges:    []DirectedEdge{},
	}

	for i, t := range node.Transitions() {
		targets := t.Targets
		if len(targets) == 0 {
			targets = []StructuralNode{node}
		}
		for j, target := range targets {
			d.Edges = append(d.Edges, DirectedEdge{
				ID:         fmt.Sprintf("%s:%d:%d", node.ID(), i, j),
				Source:     node.ID(),
				Target:     target.ID(),
				Label:      t.Event,
				Guards:     t.Guards,
				Internal:   t.Internal,
				Transition: i,
			})
		}
	}

	for _, child := range node.Children() {
		d.Children = append(d.Children, ToDirectedGraph(child))
	}
	return d
}

// Count returns the number of nodes in the tree rooted at d.
func (d *DirectedNode) Count() int {
	if d == nil {
		return 0
	}
	n := 1
	for _, child := range d.Children {
		n += child.Count()
	}
	return n
}

// Walk calls fn for d and every descendant, parents before children.
func (d *DirectedNode) Walk(fn func(*DirectedNode)) {
	if d == nil {
		return
	}
	fn(d)
	for _, child := range d.Children {
		child.Walk(fn)
	}
}

// StateNodes returns every declared node below root, depth first in declaration order.
func StateNodes(root StructuralNode) []StructuralNode {
	if root == nil {
		return nil
	}
	var nodes []StructuralNode
	for _, child := range root.Children() {
		nodes = append(nodes, child)
		nodes = append(nodes, StateNodes(child)...)
	}
	return nodes
}
