package statepaths

// Edge is a recorded transition out of a configuration.
type Edge[C any] struct {
	// Event is the event that triggers the transition.
	Event Event

	// EventKey is the serialized form of Event.
	EventKey string

	// State is the resulting configuration.
	State C

	// StateKey is the serialized form of State.
	StateKey string
}

// Vertex is a reachable configuration together with its outgoing edges.
type Vertex[C any] struct {
	// State is the configuration.
	State C

	// Key is the serialized form of State.
	Key string

	edges []Edge[C]
	index map[string]int
}

// Edges returns the outgoing edges in the order they were discovered.
func (v *Vertex[C]) Edges() []Edge[C] {
	return v.edges
}

// Edge returns the outgoing edge triggered by the event with the given key.
func (v *Vertex[C]) Edge(eventKey string) (Edge[C], bool) {
	i, ok := v.index[eventKey]
	if !ok {
		return Edge[C]{}, false
	}
	return v.edges[i], true
}

// put records an edge; a later edge for the same event key replaces the earlier one.
func (v *Vertex[C]) put(edge Edge[C]) {
	if i, ok := v.index[edge.EventKey]; ok {
		v.edges[i] = edge
		return
	}
	v.index[edge.EventKey] = len(v.edges)
	v.edges = append(v.edges, edge)
}

// AdjacencyMap is the reachability graph of a machine: every configuration
// reachable from the initial one, keyed by its serialized form, with the
// configuration-changing transitions out of it.
//
// Iteration order is the order of discovery, so every consumer of the map
// is deterministic for a deterministic machine.
type AdjacencyMap[C any] struct {
	initial  string
	order    []string
	vertices map[string]*Vertex[C]
}

func newAdjacencyMap[C any]() *AdjacencyMap[C] {
	return &AdjacencyMap[C]{
		vertices: make(map[string]*Vertex[C]),
	}
}

// InitialKey returns the key of the initial configuration, or "" for an empty map.
func (a *AdjacencyMap[C]) InitialKey() string {
	return a.initial
}

// Len returns the number of configurations in the map.
func (a *AdjacencyMap[C]) Len() int {
	return len(a.order)
}

// Keys returns the configuration keys in discovery order.
func (a *AdjacencyMap[C]) Keys() []string {
	return append([]string(nil), a.order...)
}

// Vertex returns the configuration stored under key.
func (a *AdjacencyMap[C]) Vertex(key string) (*Vertex[C], bool) {
	v, ok := a.vertices[key]
	return v, ok
}

// add inserts a configuration with no edges. The first one added is the initial configuration.
func (a *AdjacencyMap[C]) add(key string, state C) *Vertex[C] {
	if v, ok := a.vertices[key]; ok {
		return v
	}
	v := &Vertex[C]{
		State: state,
		Key:   key,
		index: make(map[string]int),
	}
	if len(a.order) == 0 {
		a.initial = key
	}
	a.vertices[key] = v
	a.order = append(a.order, key)
	return v
}

// explorer carries the state of one exploration run.
type explorer[C any] struct {
	machine Machine[C]
	opts    *Options[C]
	adj     *AdjacencyMap[C]
	visited map[string]struct{}
}

// BuildAdjacencyMap explores every configuration reachable from the machine's
// initial configuration through transitions that change the configuration and
// whose result passes the filter.
//
// Exploration is depth-first and unbounded: on a machine with infinitely many
// reachable configurations it does not return unless restricted with
// WithFilter or WithEvents. The first error returned by the transition
// function aborts the exploration and is returned as a *TransitionError.
func BuildAdjacencyMap[C any](m Machine[C], opts ...Option[C]) (*AdjacencyMap[C], error) {
	return buildAdjacencyMap(m, newOptions(opts))
}

func buildAdjacencyMap[C any](m Machine[C], opts *Options[C]) (*AdjacencyMap[C], error) {
	x := &explorer[C]{
		machine: m,
		opts:    opts,
		adj:     newAdjacencyMap[C](),
		visited: make(map[string]struct{}),
	}
	if err := x.explore(m.Initial()); err != nil {
		return nil, err
	}
	opts.Logger.Debug("exploration complete", "states", x.adj.Len())
	return x.adj, nil
}

// explore records config and recursively every configuration reachable from it.
func (x *explorer[C]) explore(config C) error {
	key := x.opts.StateSerializer(config)
	if _, seen := x.visited[key]; seen {
		return nil
	}
	// Mark before descending so cycles terminate.
	x.visited[key] = struct{}{}
	vertex := x.adj.add(key, config)
	x.opts.Logger.Debug("exploring state", "state", key)

	for _, event := range x.candidates(config) {
		eventKey := x.opts.EventSerializer(event)
		next, err := x.machine.Transition(config, event)
		if err != nil {
			return &TransitionError{StateKey: key, EventKey: eventKey, Err: err}
		}

		if !x.opts.Filter(next) {
			x.opts.Logger.Debug("filtered transition", "state", key, "event", eventKey)
			continue
		}
		nextKey := x.opts.StateSerializer(next)
		if nextKey == key {
			continue
		}

		vertex.put(Edge[C]{
			Event:    event,
			EventKey: eventKey,
			State:    next,
			StateKey: nextKey,
		})
		x.opts.Logger.Debug("recorded edge", "from", key, "event", eventKey, "to", nextKey)

		if err := x.explore(next); err != nil {
			return err
		}
	}
	return nil
}

// candidates returns the events tried from config: the configured events for
// each enabled type, or a bare event of that type.
func (x *explorer[C]) candidates(config C) []Event {
	var events []Event
	for _, eventType := range x.machine.NextEvents(config) {
		if source, ok := x.opts.Events[eventType]; ok && source != nil {
			events = append(events, source(config)...)
			continue
		}
		events = append(events, Event{Type: eventType})
	}
	return events
}
