package statepaths

// SimplePaths explores m and returns every path from the initial
// configuration to every reachable configuration that visits no
// configuration twice. A machine that declares no states yields an empty index.
//
// The number of simple paths can grow combinatorially with the size of the
// machine. Use WithFilter to prune the explored space.
func SimplePaths[C any](m Machine[C], opts ...Option[C]) (PathsIndex[C], error) {
	if isDegenerate(m) {
		return PathsIndex[C]{}, nil
	}
	adj, err := BuildAdjacencyMap(m, opts...)
	if err != nil {
		return nil, err
	}
	return SimplePathsFromMap(adj), nil
}

// SimplePathsAsSlice returns the simple paths of m flattened and ordered by
// weight, then by the key of the configuration they reach.
func SimplePathsAsSlice[C any](m Machine[C], opts ...Option[C]) ([]Path[C], error) {
	index, err := SimplePaths(m, opts...)
	if err != nil {
		return nil, err
	}
	return index.Flatten(), nil
}

// SimplePathsFromMap enumerates simple paths over an existing adjacency map.
// Within an entry, paths appear in the order the depth-first search completes them.
func SimplePathsFromMap[C any](adj *AdjacencyMap[C]) PathsIndex[C] {
	index := PathsIndex[C]{}
	if adj == nil || adj.Len() == 0 {
		return index
	}

	initial := adj.InitialKey()
	for _, target := range adj.Keys() {
		vertex, _ := adj.Vertex(target)
		s := &simpleSearch[C]{
			adj:    adj,
			onPath: make(map[string]bool),
		}
		s.walk(initial, target)
		index[target] = StatePaths[C]{State: vertex.State, Paths: s.paths}
	}
	return index
}

// simpleSearch is a depth-first search for every simple path to one target.
type simpleSearch[C any] struct {
	adj      *AdjacencyMap[C]
	onPath   map[string]bool
	segments []Segment[C]
	paths    []Path[C]
}

func (s *simpleSearch[C]) walk(key, target string) {
	s.onPath[key] = true
	defer delete(s.onPath, key)

	vertex, _ := s.adj.Vertex(key)
	if key == target {
		// The target is on the current path, so no longer path can reach it again.
		segments := append(make([]Segment[C], 0, len(s.segments)), s.segments...)
		s.paths = append(s.paths, Path[C]{
			Segments: segments,
			State:    vertex.State,
			Weight:   len(segments),
		})
		return
	}

	for _, edge := range vertex.Edges() {
		if s.onPath[edge.StateKey] {
			continue
		}
		s.segments = append(s.segments, Segment[C]{State: vertex.State, Event: edge.Event})
		s.walk(edge.StateKey, target)
		s.segments = s.segments[:len(s.segments)-1]
	}
}
