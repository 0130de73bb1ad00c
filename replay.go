package statepaths

// PathFromEvents replays events in order from the initial configuration and
// returns the path they produce.
//
// The reachability graph is explored with exactly the supplied events as
// candidates for their types. If an event has no edge from the configuration
// reached so far, PathFromEvents returns an *UnmatchedEventError and no path.
// An empty list yields the zero-weight path at the initial configuration.
func PathFromEvents[C any](m Machine[C], events []Event, opts ...Option[C]) (Path[C], error) {
	o := newOptions(opts)
	grouped := make(map[string][]Event)
	for _, event := range events {
		grouped[event.Type] = append(grouped[event.Type], event)
	}
	for eventType, list := range grouped {
		list := list
		o.Events[eventType] = func(C) []Event { return list }
	}

	adj, err := buildAdjacencyMap(m, o)
	if err != nil {
		return Path[C]{}, err
	}

	current, _ := adj.Vertex(adj.InitialKey())
	segments := make([]Segment[C], 0, len(events))
	for step, event := range events {
		eventKey := o.EventSerializer(event)
		edge, ok := current.Edge(eventKey)
		if !ok {
			return Path[C]{}, &UnmatchedEventError{
				State:    current.State,
				StateKey: current.Key,
				Event:    event,
				EventKey: eventKey,
				Step:     step,
			}
		}
		segments = append(segments, Segment[C]{State: current.State, Event: event})
		current, _ = adj.Vertex(edge.StateKey)
	}

	o.Logger.Debug("replayed events", "events", len(events), "state", current.Key)
	return Path[C]{
		Segments: segments,
		State:    current.State,
		Weight:   len(segments),
	}, nil
}
