package graph_test

import (
	"strings"
	"testing"

	"github.com/atlekbai/statepaths"
	"github.com/atlekbai/statepaths/graph"
	"github.com/atlekbai/statepaths/machine"
)

func noop(context int, _ machine.Transition[string]) (int, error) {
	return context, nil
}

func directed(m *machine.Machine[string, int]) *statepaths.DirectedNode {
	return statepaths.ToDirectedGraph(m.Root())
}

func threeStates() *machine.Machine[string, int] {
	m := machine.New("test", "A", 0)
	m.Configure("A").
		Permit("X", "B").
		Permit("Y", "C")
	m.Configure("B").
		Permit("Z", "A")
	m.Configure("C").
		Permit("Z", "A")
	return m
}

func TestUmlDotGraph(t *testing.T) {
	dotGraph := graph.UmlDotGraph(directed(threeStates()))

	if !strings.Contains(dotGraph, "digraph") {
		t.Error("expected DOT graph to contain 'digraph'")
	}
	if !strings.Contains(dotGraph, "init") {
		t.Error("expected DOT graph to contain 'init' node")
	}
	for _, name := range []string{`"A"`, `"B"`, `"C"`} {
		if !strings.Contains(dotGraph, name) {
			t.Errorf("expected DOT graph to contain %s", name)
		}
	}
}

func TestMermaidGraph(t *testing.T) {
	direction := graph.LeftToRight
	mermaidGraph := graph.MermaidGraph(directed(threeStates()), &direction)

	if !strings.Contains(mermaidGraph, "stateDiagram-v2") {
		t.Error("expected Mermaid graph to contain 'stateDiagram-v2'")
	}
	if !strings.Contains(mermaidGraph, "direction LR") {
		t.Error("expected Mermaid graph to contain 'direction LR'")
	}
	if !strings.Contains(mermaidGraph, "[*] --> A") {
		t.Error("expected Mermaid graph to contain initial transition")
	}
	if !strings.Contains(mermaidGraph, "\tA --> B : X") {
		t.Errorf("expected Mermaid graph to contain A->B, got:\n%s", mermaidGraph)
	}
}

func TestMermaidGraphWithoutDirection(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").Permit("X", "B")
	m.Configure("B").Permit("Y", "A")

	mermaidGraph := graph.MermaidGraph(directed(m), nil)

	if !strings.Contains(mermaidGraph, "stateDiagram-v2") {
		t.Error("expected Mermaid graph to contain 'stateDiagram-v2'")
	}
	if strings.Contains(mermaidGraph, "direction") {
		t.Error("expected Mermaid graph not to contain 'direction' when not specified")
	}
}

func TestMermaidGraph_AliasesUnsafeNames(t *testing.T) {
	m := machine.New("test", "Off Hook", 0)
	m.Configure("Off Hook").Permit("dial", "Ringing")
	m.Configure("Ringing")

	mermaidGraph := graph.MermaidGraph(directed(m), nil)

	if !strings.Contains(mermaidGraph, "\tOffHook : Off Hook") {
		t.Errorf("expected alias for 'Off Hook', got:\n%s", mermaidGraph)
	}
	if !strings.Contains(mermaidGraph, "\tOffHook --> Ringing : dial") {
		t.Errorf("expected aliased transition, got:\n%s", mermaidGraph)
	}
	if !strings.Contains(mermaidGraph, "[*] --> OffHook") {
		t.Errorf("expected aliased initial state, got:\n%s", mermaidGraph)
	}
}

func TestMermaidGraph_NestedClusters(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").Permit("X", "C")
	m.Configure("B")
	m.Configure("C").SubstateOf("B")
	m.Configure("D").SubstateOf("C")

	mermaidGraph := graph.MermaidGraph(directed(m), nil)

	expected := "\n\tstate B {\n\t\tstate C {\n\t\t\tD\n\t\t}\n\t}"
	if !strings.Contains(mermaidGraph, expected) {
		t.Errorf("expected nested clusters, got:\n%s", mermaidGraph)
	}
}

func TestStateGraphWithHierarchy(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").Permit("X", "B")
	m.Configure("B")
	m.Configure("C").SubstateOf("B")

	dotGraph := graph.UmlDotGraph(directed(m))

	expected := "\nsubgraph \"clusterB\"\n\t{\n\tlabel = \"B\"\n\"C\" [label=\"C\"];\n}\n"
	if !strings.Contains(dotGraph, expected) {
		t.Errorf("expected cluster for B, got:\n%s", dotGraph)
	}
}

func TestNewStateGraph(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").
		Permit("X", "B").
		OnEntry(noop)
	m.Configure("B").
		PermitReentry("Y")

	sg := graph.NewStateGraph(directed(m))

	if sg == nil {
		t.Fatal("expected non-nil StateGraph")
	}
	if len(sg.States) != 2 {
		t.Errorf("expected 2 states, got %d", len(sg.States))
	}
	if sg.InitialState != "A" {
		t.Errorf("expected initial state A, got %q", sg.InitialState)
	}
	if got := sg.States["A"].EntryActions; len(got) != 1 || got[0] != machine.DefaultFunctionDescription {
		t.Errorf("expected one undescribed entry action, got %v", got)
	}
	if len(sg.States["B"].Leaving) != 1 || !sg.States["B"].Leaving[0].IsStay() {
		t.Errorf("expected a stay transition on B")
	}
}

func TestNewStateGraph_NilRoot(t *testing.T) {
	sg := graph.NewStateGraph(nil)

	if len(sg.States) != 0 || len(sg.Transitions) != 0 {
		t.Errorf("expected empty graph, got %d states", len(sg.States))
	}
	if sg.InitialState != "" {
		t.Errorf("expected no initial state, got %q", sg.InitialState)
	}
}

func TestUmlDotGraphStyle(t *testing.T) {
	style := graph.NewUmlDotGraphStyle()

	prefix := style.GetPrefix()
	if !strings.Contains(prefix, "digraph") {
		t.Error("expected prefix to contain 'digraph'")
	}
	if !strings.Contains(prefix, "node [shape=Mrecord]") {
		t.Error("expected prefix to contain node style")
	}
}

func TestMermaidGraphStyle(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").Permit("X", "B")

	sg := graph.NewStateGraph(directed(m))
	direction := graph.TopToBottom
	style := graph.NewMermaidGraphStyle(sg, &direction)

	prefix := style.GetPrefix()
	if prefix != "stateDiagram-v2\n\tdirection TB" {
		t.Errorf("unexpected prefix %q", prefix)
	}
}

func TestEscapeLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{`with"quotes`, `with\"quotes`},
		{`with\backslash`, `with\\backslash`},
		{`both"and\`, `both\"and\\`},
	}

	for _, tc := range tests {
		result := graph.EscapeLabel(tc.input)
		if result != tc.expected {
			t.Errorf("EscapeLabel(%q) = %q, expected %q", tc.input, result, tc.expected)
		}
	}
}

func TestSanitizeStateName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SimpleState", "SimpleState"},
		{"State With Spaces", "StateWithSpaces"},
		{"State-With-Dashes", "StateWithDashes"},
		{"State:With:Colons", "StateWithColons"},
	}

	for _, tc := range tests {
		result := graph.SanitizeStateName(tc.input)
		if result != tc.expected {
			t.Errorf("SanitizeStateName(%q) = %q, expected %q", tc.input, result, tc.expected)
		}
	}
}

func TestGetDirectionCode(t *testing.T) {
	tests := []struct {
		direction graph.MermaidGraphDirection
		expected  string
	}{
		{graph.TopToBottom, "TB"},
		{graph.BottomToTop, "BT"},
		{graph.LeftToRight, "LR"},
		{graph.RightToLeft, "RL"},
	}

	for _, tc := range tests {
		result := graph.GetDirectionCode(tc.direction)
		if result != tc.expected {
			t.Errorf("GetDirectionCode(%v) = %q, expected %q", tc.direction, result, tc.expected)
		}
	}
}

// =============================================================================
// DOT graph fixtures
// =============================================================================

func TestDotGraph_SimpleTransition(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").Permit("X", "B")
	m.Configure("B")

	expected := "digraph {\n" +
		"compound=true;\n" +
		"node [shape=Mrecord]\n" +
		"rankdir=\"LR\"\n" +
		"\"A\" [label=\"A\"];\n" +
		"\"B\" [label=\"B\"];\n" +
		"\n" +
		"\"A\" -> \"B\" [style=\"solid\", label=\"X\"];\n" +
		" init [label=\"\", shape=point];\n" +
		" init -> \"A\"[style = \"solid\"]\n" +
		"}"

	if dotGraph := graph.UmlDotGraph(directed(m)); dotGraph != expected {
		t.Errorf("unexpected graph:\n%s\nexpected:\n%s", dotGraph, expected)
	}
}

func TestDotGraph_TwoSimpleTransitions(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").
		Permit("X", "B").
		Permit("Y", "C")

	dotGraph := graph.UmlDotGraph(directed(m))

	for _, want := range []string{
		`"A" [label="A"]`,
		`"B" [label="B"]`,
		`"C" [label="C"]`,
		`"A" -> "B" [style="solid", label="X"];`,
		`"A" -> "C" [style="solid", label="Y"];`,
	} {
		if !strings.Contains(dotGraph, want) {
			t.Errorf("expected graph to contain %s, got:\n%s", want, dotGraph)
		}
	}
	if strings.Index(dotGraph, `label="X"`) > strings.Index(dotGraph, `label="Y"`) {
		t.Errorf("expected transitions sorted by destination, got:\n%s", dotGraph)
	}
}

func TestDotGraph_WhenDiscriminatedByAnonymousGuard(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").PermitIf("X", "B", func(int, statepaths.Event) error { return nil })

	dotGraph := graph.UmlDotGraph(directed(m))

	want := `"A" -> "B" [style="solid", label="X [` + machine.DefaultFunctionDescription + `]"];`
	if !strings.Contains(dotGraph, want) {
		t.Errorf("expected graph to contain guard description, got:\n%s", dotGraph)
	}
}

func TestDotGraph_WhenDiscriminatedByAnonymousGuardWithDescription(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").PermitIf("X", "B", func(int, statepaths.Event) error { return nil }, "description")

	dotGraph := graph.UmlDotGraph(directed(m))

	if !strings.Contains(dotGraph, `label="X [description]"`) {
		t.Errorf("expected graph to contain guard description, got:\n%s", dotGraph)
	}
}

func TestDotGraph_DestinationStateIsDynamic(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").PermitDynamic("X", func(int, statepaths.Event) string { return "B" }, "B", "C")

	dotGraph := graph.UmlDotGraph(directed(m))

	for _, want := range []string{
		`"Decision1" [shape = "diamond", label = "X"];`,
		`"A" -> "Decision1" [style="solid", label="X"];`,
		`"Decision1" -> "B" [style="solid", label="X"];`,
		`"Decision1" -> "C" [style="solid", label="X"];`,
	} {
		if !strings.Contains(dotGraph, want) {
			t.Errorf("expected graph to contain %s, got:\n%s", want, dotGraph)
		}
	}
}

func TestDotGraph_OnEntryWithDescription(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").
		OnEntry(noop, "enteredA").
		OnExit(noop, "leftA").
		Permit("X", "B")

	dotGraph := graph.UmlDotGraph(directed(m))

	if !strings.Contains(dotGraph, `"A" [label="A|entry / enteredA\nexit / leftA"];`) {
		t.Errorf("expected graph to contain entry and exit actions, got:\n%s", dotGraph)
	}
}

func TestDotGraph_TransitionWithIgnore(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").
		Ignore("Y").
		Permit("X", "B")

	dotGraph := graph.UmlDotGraph(directed(m))

	if strings.Contains(dotGraph, `label="Y"`) {
		t.Errorf("expected ignored event to be left out, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, `"A" -> "B"`) {
		t.Errorf("expected graph to contain A->B transition, got:\n%s", dotGraph)
	}
}

func TestDotGraph_ReentryRunsEntryActions(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").
		OnEntry(noop, "enteredA").
		PermitReentry("X")

	dotGraph := graph.UmlDotGraph(directed(m))

	if !strings.Contains(dotGraph, `"A" -> "A" [style="solid", label="X / enteredA"];`) {
		t.Errorf("expected reentry with entry action, got:\n%s", dotGraph)
	}
}

func TestDotGraph_InternalTransition(t *testing.T) {
	m := machine.New("test", "A", 0)
	m.Configure("A").
		OnEntry(noop, "enteredA").
		InternalTransition("X", noop)

	dotGraph := graph.UmlDotGraph(directed(m))

	if !strings.Contains(dotGraph, `"A" -> "A" [style="solid", label="X"];`) {
		t.Errorf("expected internal transition without entry actions, got:\n%s", dotGraph)
	}
}

func TestDotGraph_SubstateInitialTransition(t *testing.T) {
	m := machine.New("test", "B", 0)
	m.Configure("B").InitialTransition("C")
	m.Configure("C").SubstateOf("B")

	dotGraph := graph.UmlDotGraph(directed(m))

	if !strings.Contains(dotGraph, ` init -> "B"[style = "solid"]`) {
		t.Errorf("expected init pointing at B, got:\n%s", dotGraph)
	}
}

func TestDotGraph_EmptyMachine(t *testing.T) {
	dotGraph := graph.UmlDotGraph(nil)

	if !strings.HasPrefix(dotGraph, "digraph {") || !strings.HasSuffix(dotGraph, "\n}") {
		t.Errorf("expected an empty digraph, got:\n%s", dotGraph)
	}
	if strings.Contains(dotGraph, "init") {
		t.Errorf("expected no init node, got:\n%s", dotGraph)
	}
}
