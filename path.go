package statepaths

import (
	"sort"
)

// Segment is one step of a path: the configuration at this point and the
// event fired next.
type Segment[C any] struct {
	State C     `json:"state"`
	Event Event `json:"event"`
}

// Path is a sequence of segments ending at State. Weight is the number of segments.
type Path[C any] struct {
	Segments []Segment[C] `json:"segments"`
	State    C            `json:"state"`
	Weight   int          `json:"weight"`
}

// Events returns the events fired along the path, in order.
func (p Path[C]) Events() []Event {
	events := make([]Event, len(p.Segments))
	for i, seg := range p.Segments {
		events[i] = seg.Event
	}
	return events
}

// StatePaths holds a configuration and the paths reaching it.
type StatePaths[C any] struct {
	State C         `json:"state"`
	Paths []Path[C] `json:"paths"`
}

// PathsIndex maps a configuration key to the paths reaching that configuration.
type PathsIndex[C any] map[string]StatePaths[C]

// Keys returns the configuration keys in sorted order.
func (idx PathsIndex[C]) Keys() []string {
	keys := make([]string, 0, len(idx))
	for key := range idx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Flatten returns every path in the index, sorted by weight and then by the
// key of the configuration it reaches.
func (idx PathsIndex[C]) Flatten() []Path[C] {
	type keyed struct {
		key  string
		path Path[C]
	}
	var all []keyed
	for _, key := range idx.Keys() {
		for _, p := range idx[key].Paths {
			all = append(all, keyed{key: key, path: p})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].path.Weight != all[j].path.Weight {
			return all[i].path.Weight < all[j].path.Weight
		}
		return all[i].key < all[j].key
	})

	paths := make([]Path[C], len(all))
	for i, k := range all {
		paths[i] = k.path
	}
	return paths
}
