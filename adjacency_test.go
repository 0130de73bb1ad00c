package statepaths_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/statepaths"
)

func TestBuildAdjacencyMap_TwoStates(t *testing.T) {
	adj, err := statepaths.BuildAdjacencyMap[string](twoState())
	require.NoError(t, err)

	assert.Equal(t, key("A"), adj.InitialKey())
	assert.Equal(t, []string{key("A"), key("B")}, adj.Keys())

	a, ok := adj.Vertex(key("A"))
	require.True(t, ok)
	want := []statepaths.Edge[string]{{
		Event:    statepaths.Event{Type: "go"},
		EventKey: `{"type":"go"}`,
		State:    "B",
		StateKey: key("B"),
	}}
	if diff := cmp.Diff(want, a.Edges()); diff != "" {
		t.Errorf("edges from A mismatch (-want +got):\n%s", diff)
	}

	b, ok := adj.Vertex(key("B"))
	require.True(t, ok)
	assert.Empty(t, b.Edges())
}

func TestBuildAdjacencyMap_ReachabilityClosure(t *testing.T) {
	g := diamond().on("E", "orphan", "A")

	adj, err := statepaths.BuildAdjacencyMap[string](g)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{key("A"), key("B"), key("C"), key("D")}, adj.Keys())
	_, ok := adj.Vertex(key("E"))
	assert.False(t, ok, "unreachable state must not be explored")

	for _, k := range adj.Keys() {
		v, _ := adj.Vertex(k)
		for _, edge := range v.Edges() {
			_, ok := adj.Vertex(edge.StateKey)
			assert.True(t, ok, "edge target %s must be in the map", edge.StateKey)
		}
	}
}

func TestBuildAdjacencyMap_DiscoveryOrder(t *testing.T) {
	adj, err := statepaths.BuildAdjacencyMap[string](diamond())
	require.NoError(t, err)

	assert.Equal(t, []string{key("A"), key("B"), key("D"), key("C")}, adj.Keys())
}

func TestBuildAdjacencyMap_NoSelfEdges(t *testing.T) {
	g := twoState().on("A", "stay", "A").on("B", "noop", "B")

	adj, err := statepaths.BuildAdjacencyMap[string](g)
	require.NoError(t, err)

	for _, k := range adj.Keys() {
		v, _ := adj.Vertex(k)
		for _, edge := range v.Edges() {
			assert.NotEqual(t, k, edge.StateKey)
		}
	}
	a, _ := adj.Vertex(key("A"))
	_, ok := a.Edge(`{"type":"stay"}`)
	assert.False(t, ok)
}

func TestBuildAdjacencyMap_Filter(t *testing.T) {
	adj, err := statepaths.BuildAdjacencyMap[string](diamond(),
		statepaths.WithFilter(func(state string) bool { return state != "C" }))
	require.NoError(t, err)

	assert.Equal(t, []string{key("A"), key("B"), key("D")}, adj.Keys())
	a, _ := adj.Vertex(key("A"))
	_, ok := a.Edge(`{"type":"right"}`)
	assert.False(t, ok, "edges to filtered states are not recorded")
}

func TestBuildAdjacencyMap_FilterCannotRemoveInitial(t *testing.T) {
	adj, err := statepaths.BuildAdjacencyMap[string](twoState(),
		statepaths.WithFilter(func(string) bool { return false }))
	require.NoError(t, err)

	assert.Equal(t, []string{key("A")}, adj.Keys())
}

func TestBuildAdjacencyMap_WithEvents(t *testing.T) {
	one := statepaths.NewEvent("go", map[string]any{"speed": 1})
	two := statepaths.NewEvent("go", map[string]any{"speed": 2})

	adj, err := statepaths.BuildAdjacencyMap[string](twoState(), statepaths.WithEvents[string]("go", one, two))
	require.NoError(t, err)

	a, _ := adj.Vertex(key("A"))
	require.Len(t, a.Edges(), 2)

	edge, ok := a.Edge(`{"speed":2,"type":"go"}`)
	require.True(t, ok)
	assert.Equal(t, two, edge.Event)
	assert.Equal(t, "B", edge.State)
}

func TestBuildAdjacencyMap_WithEventsFunc(t *testing.T) {
	calls := map[string]int{}
	adj, err := statepaths.BuildAdjacencyMap[string](diamond(),
		statepaths.WithEventsFunc("down", func(state string) []statepaths.Event {
			calls[state]++
			return nil
		}))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"B": 1, "C": 1}, calls)
	assert.Equal(t, []string{key("A"), key("B"), key("C")}, adj.Keys())
}

func TestBuildAdjacencyMap_TransitionError(t *testing.T) {
	boom := errors.New("boom")
	g := diamond()
	g.errs["B/down"] = boom

	adj, err := statepaths.BuildAdjacencyMap[string](g)
	assert.Nil(t, adj)

	var transitionErr *statepaths.TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, key("B"), transitionErr.StateKey)
	assert.Equal(t, `{"type":"down"}`, transitionErr.EventKey)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, `unable to transition from state "B" on event {"type":"down"}: boom`)
}

func TestBuildAdjacencyMap_CustomSerializers(t *testing.T) {
	adj, err := statepaths.BuildAdjacencyMap[string](twoState(),
		statepaths.WithStateSerializer(func(state string) string { return "state:" + state }),
		statepaths.WithEventSerializer[string](func(event statepaths.Event) string { return event.Type }))
	require.NoError(t, err)

	assert.Equal(t, []string{"state:A", "state:B"}, adj.Keys())
	a, _ := adj.Vertex("state:A")
	_, ok := a.Edge("go")
	assert.True(t, ok)
}

func TestBuildAdjacencyMap_NilOptionsUseDefaults(t *testing.T) {
	adj, err := statepaths.BuildAdjacencyMap[string](twoState(),
		statepaths.WithFilter[string](nil),
		statepaths.WithStateSerializer[string](nil),
		statepaths.WithLogger[string](nil))
	require.NoError(t, err)

	assert.Equal(t, []string{key("A"), key("B")}, adj.Keys())
}

func TestBuildAdjacencyMap_Degenerate(t *testing.T) {
	adj, err := statepaths.BuildAdjacencyMap[string](newGraphMachine("A"))
	require.NoError(t, err)

	assert.Equal(t, 1, adj.Len())
	assert.Equal(t, key("A"), adj.InitialKey())
}

func TestBuildAdjacencyMap_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := statepaths.BuildAdjacencyMap[string](twoState(), statepaths.WithLogger[string](logger))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "recorded edge")
	assert.Contains(t, buf.String(), "exploration complete")
}
