package statepaths_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/statepaths"
)

func TestShortestPaths_TwoStates(t *testing.T) {
	index, err := statepaths.ShortestPaths[string](twoState())
	require.NoError(t, err)

	want := statepaths.PathsIndex[string]{
		key("A"): {
			State: "A",
			Paths: []statepaths.Path[string]{{Segments: []statepaths.Segment[string]{}, State: "A", Weight: 0}},
		},
		key("B"): {
			State: "B",
			Paths: []statepaths.Path[string]{{
				Segments: []statepaths.Segment[string]{{State: "A", Event: statepaths.Event{Type: "go"}}},
				State:    "B",
				Weight:   1,
			}},
		},
	}
	if diff := cmp.Diff(want, index); diff != "" {
		t.Errorf("shortest paths mismatch (-want +got):\n%s", diff)
	}
}

func TestShortestPaths_Weights(t *testing.T) {
	// A long way round and a shortcut to E.
	g := newGraphMachine("A").
		on("A", "next", "B").
		on("B", "next", "C").
		on("C", "next", "D").
		on("D", "next", "E").
		on("A", "jump", "D").
		on("E", "back", "B")

	adj, err := statepaths.BuildAdjacencyMap[string](g)
	require.NoError(t, err)
	index := statepaths.ShortestPathsFromMap(adj)

	weights := map[string]int{}
	for k, entry := range index {
		require.Len(t, entry.Paths, 1)
		weights[k] = entry.Paths[0].Weight
		assert.Len(t, entry.Paths[0].Segments, entry.Paths[0].Weight)
	}
	assert.Equal(t, map[string]int{
		key("A"): 0, key("B"): 1, key("C"): 2, key("D"): 1, key("E"): 2,
	}, weights)

	for _, k := range adj.Keys() {
		v, _ := adj.Vertex(k)
		for _, edge := range v.Edges() {
			assert.LessOrEqual(t, weights[edge.StateKey], weights[k]+1)
		}
	}

	assert.Equal(t,
		[]statepaths.Event{{Type: "jump"}, {Type: "next"}},
		index[key("E")].Paths[0].Events())
}

func TestShortestPaths_TieBreakFollowsDiscoveryOrder(t *testing.T) {
	index, err := statepaths.ShortestPaths[string](diamond())
	require.NoError(t, err)

	assert.Equal(t,
		[]statepaths.Event{{Type: "left"}, {Type: "down"}},
		index[key("D")].Paths[0].Events())
}

func TestShortestPaths_PathsEndAtTheirState(t *testing.T) {
	index, err := statepaths.ShortestPaths[string](diamond())
	require.NoError(t, err)

	for k, entry := range index {
		for _, p := range entry.Paths {
			assert.Equal(t, k, key(p.State))
			if p.Weight > 0 {
				assert.Equal(t, "A", p.Segments[0].State)
			}
		}
	}
}

func TestShortestPaths_Degenerate(t *testing.T) {
	index, err := statepaths.ShortestPaths[string](newGraphMachine("A"))
	require.NoError(t, err)
	assert.Empty(t, index)

	assert.Empty(t, statepaths.ShortestPathsFromMap[string](nil))
}

func TestShortestPaths_PropagatesTransitionError(t *testing.T) {
	g := twoState()
	g.errs["A/go"] = assert.AnError

	_, err := statepaths.ShortestPaths[string](g)
	assert.ErrorIs(t, err, assert.AnError)
}
