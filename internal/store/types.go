package store

import (
	"time"

	"github.com/atlekbai/statepaths"
)

// Run is one exploration of a machine and the paths it produced. States is
// the number of configurations explored, or 0 when the mode does not
// explore the whole machine.
type Run struct {
	RunID     string
	MachineID string
	Mode      string
	States    int
	CreatedAt time.Time
	Paths     []PathRecord
}

// PathRecord is a stored path. Ordinal numbers the paths reaching the same
// target, in the order they were produced.
type PathRecord struct {
	TargetKey string
	Ordinal   int
	Weight    int
	Segments  []SegmentRecord
}

// SegmentRecord is one step of a stored path, by canonical keys.
type SegmentRecord struct {
	StateKey string `json:"state"`
	EventKey string `json:"event"`
}

// FromIndex converts every path of idx into records. stateKey must be the
// serializer the paths were explored with.
func FromIndex[C any](idx statepaths.PathsIndex[C], stateKey func(C) string) []PathRecord {
	var records []PathRecord
	for _, key := range idx.Keys() {
		for i, p := range idx[key].Paths {
			rec := FromPath(p, stateKey)
			rec.TargetKey = key
			rec.Ordinal = i
			records = append(records, rec)
		}
	}
	return records
}

// FromPath converts a single path into a record.
func FromPath[C any](p statepaths.Path[C], stateKey func(C) string) PathRecord {
	rec := PathRecord{
		TargetKey: stateKey(p.State),
		Weight:    p.Weight,
		Segments:  make([]SegmentRecord, len(p.Segments)),
	}
	for i, seg := range p.Segments {
		rec.Segments[i] = SegmentRecord{
			StateKey: stateKey(seg.State),
			EventKey: statepaths.SerializeEvent(seg.Event),
		}
	}
	return rec
}
