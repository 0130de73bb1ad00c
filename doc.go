// Package statepaths explores the reachable configuration space of a
// deterministic, event-driven state machine and derives artifacts used for
// model-based testing and visualization.
//
// The package consumes a machine only through the Machine interface: an
// initial configuration, a pure transition function, the event types enabled
// in a configuration, and the declared structure of the machine.
//
// # Adjacency Map
//
// Explore every configuration reachable from the initial one:
//
//	adj, err := statepaths.BuildAdjacencyMap(m)
//
// Configurations and events are compared by their serialized keys, never by
// identity. Transitions that do not change the configuration are not recorded.
//
// # Paths
//
// Shortest paths to every reachable configuration:
//
//	paths, err := statepaths.ShortestPaths(m)
//
// Every simple (non-repeating) path:
//
//	paths, err := statepaths.SimplePaths(m)
//
// Replay an explicit event sequence:
//
//	path, err := statepaths.PathFromEvents(m, []statepaths.Event{{Type: "go"}})
//
// # Bounding Exploration
//
// Exploration does not stop on machines with unbounded state. Restrict it
// with WithFilter or by enumerating event payloads with WithEvents:
//
//	paths, err := statepaths.ShortestPaths(m,
//	    statepaths.WithFilter(func(c Config) bool { return c.Context.Count < 5 }),
//	)
//
// # Static Graph
//
// Export the declared hierarchy independently of reachability:
//
//	root := statepaths.ToDirectedGraph(m.Root())
//
// The graph subpackage renders a directed graph as DOT or Mermaid.
package statepaths
