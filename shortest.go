package statepaths

import (
	"slices"
)

// relaxation is the best known way of reaching a configuration.
type relaxation struct {
	weight   int
	prevKey  string
	eventKey string
	hasPrev  bool
}

// ShortestPaths explores m and returns, for every reachable configuration,
// a single path with the minimum number of transitions from the initial
// configuration. A machine that declares no states yields an empty index.
func ShortestPaths[C any](m Machine[C], opts ...Option[C]) (PathsIndex[C], error) {
	if isDegenerate(m) {
		return PathsIndex[C]{}, nil
	}
	adj, err := BuildAdjacencyMap(m, opts...)
	if err != nil {
		return nil, err
	}
	return ShortestPathsFromMap(adj), nil
}

// ShortestPathsFromMap computes shortest paths over an existing adjacency map.
//
// All edges weigh 1. The frontier starts at the initial configuration; each
// configuration leaves the frontier once its edges are relaxed and is never
// examined again. Among equally short alternatives the first relaxation in
// discovery order wins.
func ShortestPathsFromMap[C any](adj *AdjacencyMap[C]) PathsIndex[C] {
	index := PathsIndex[C]{}
	if adj == nil || adj.Len() == 0 {
		return index
	}

	initial := adj.InitialKey()
	best := map[string]relaxation{initial: {weight: 0}}
	settled := make(map[string]bool)
	frontier := []string{initial}

	for len(frontier) > 0 {
		var next []string
		for _, key := range frontier {
			if settled[key] {
				continue
			}
			vertex, ok := adj.Vertex(key)
			if !ok {
				continue
			}
			weight := best[key].weight
			for _, edge := range vertex.Edges() {
				current, seen := best[edge.StateKey]
				if seen && current.weight <= weight+1 {
					continue
				}
				best[edge.StateKey] = relaxation{
					weight:   weight + 1,
					prevKey:  key,
					eventKey: edge.EventKey,
					hasPrev:  true,
				}
				if !settled[edge.StateKey] {
					next = append(next, edge.StateKey)
				}
			}
			settled[key] = true
		}
		frontier = next
	}

	for _, key := range adj.Keys() {
		if _, ok := best[key]; !ok {
			continue
		}
		vertex, _ := adj.Vertex(key)
		segments := tracePredecessors(adj, best, key)
		index[key] = StatePaths[C]{
			State: vertex.State,
			Paths: []Path[C]{{
				Segments: segments,
				State:    vertex.State,
				Weight:   len(segments),
			}},
		}
	}
	return index
}

// tracePredecessors walks predecessor links from key back to the initial
// configuration and returns the segments in forward order.
func tracePredecessors[C any](adj *AdjacencyMap[C], best map[string]relaxation, key string) []Segment[C] {
	segments := make([]Segment[C], 0, best[key].weight)
	for step := best[key]; step.hasPrev; step = best[step.prevKey] {
		prev, _ := adj.Vertex(step.prevKey)
		edge, _ := prev.Edge(step.eventKey)
		segments = append(segments, Segment[C]{State: prev.State, Event: edge.Event})
	}
	slices.Reverse(segments)
	return segments
}
