package statepaths_test

import (
	"github.com/atlekbai/statepaths"
)

// graphMachine is a flat machine whose configurations are state names.
// Events not declared on a state leave it unchanged.
type graphMachine struct {
	id      string
	initial string
	states  []string
	edges   map[string][]graphEdge
	errs    map[string]error
}

type graphEdge struct {
	event  string
	target string
}

func newGraphMachine(initial string) *graphMachine {
	return &graphMachine{
		id:      "graph",
		initial: initial,
		edges:   make(map[string][]graphEdge),
		errs:    make(map[string]error),
	}
}

func (g *graphMachine) state(name string) *graphMachine {
	for _, s := range g.states {
		if s == name {
			return g
		}
	}
	g.states = append(g.states, name)
	return g
}

func (g *graphMachine) on(source, event, target string) *graphMachine {
	g.state(source).state(target)
	g.edges[source] = append(g.edges[source], graphEdge{event: event, target: target})
	return g
}

func (g *graphMachine) Initial() string {
	return g.initial
}

func (g *graphMachine) Transition(config string, event statepaths.Event) (string, error) {
	if err, ok := g.errs[config+"/"+event.Type]; ok {
		return "", err
	}
	for _, e := range g.edges[config] {
		if e.event == event.Type {
			return e.target, nil
		}
	}
	return config, nil
}

func (g *graphMachine) NextEvents(config string) []string {
	var events []string
	for _, e := range g.edges[config] {
		events = append(events, e.event)
	}
	return events
}

func (g *graphMachine) Root() statepaths.StructuralNode {
	root := &graphNode{id: g.id}
	nodes := make(map[string]*graphNode)
	for _, s := range g.states {
		nodes[s] = &graphNode{id: s}
		root.children = append(root.children, nodes[s])
	}
	for _, s := range g.states {
		for _, e := range g.edges[s] {
			nodes[s].transitions = append(nodes[s].transitions, statepaths.DeclaredTransition{
				Event:   e.event,
				Targets: []statepaths.StructuralNode{nodes[e.target]},
			})
		}
	}
	return root
}

type graphNode struct {
	id          string
	children    []statepaths.StructuralNode
	transitions []statepaths.DeclaredTransition
}

func (n *graphNode) ID() string { return n.id }
func (n *graphNode) Children() []statepaths.StructuralNode { return n.children }
func (n *graphNode) Transitions() []statepaths.DeclaredTransition { return n.transitions }

// twoState is A --go--> B.
func twoState() *graphMachine {
	return newGraphMachine("A").on("A", "go", "B")
}

// diamond is A -> B -> D, A -> C -> D, with D -> A closing a cycle.
func diamond() *graphMachine {
	return newGraphMachine("A").
		on("A", "left", "B").
		on("A", "right", "C").
		on("B", "down", "D").
		on("C", "down", "D").
		on("D", "reset", "A")
}

func key(state string) string {
	return statepaths.SerializeState(state)
}
