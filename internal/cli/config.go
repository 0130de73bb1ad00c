package cli

import (
	"encoding/json"
	"fmt"

	"github.com/atlekbai/statepaths"
)

// Modes the CLI can run.
const (
	ModeAdjacency = "adjacency"
	ModeShortest  = "shortest"
	ModeSimple    = "simple"
	ModeReplay    = "replay"
	ModeGraph     = "graph"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

// Config holds the validated settings of one invocation.
type Config struct {
	MachinePath string
	Machine     string
	Mode        string
	Format      string
	Events      []statepaths.Event
	DBPath      string
	LogLevel    string
	LogFormat   string
}

// NewConfig validates cfg and returns it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Mode {
	case ModeAdjacency, ModeShortest, ModeSimple, ModeReplay, ModeGraph:
	default:
		return nil, fmt.Errorf("invalid mode %q: must be one of adjacency, shortest, simple, replay, graph", cfg.Mode)
	}

	switch cfg.Format {
	case FormatJSON:
	case FormatDOT, FormatMermaid:
		if cfg.Mode != ModeGraph && cfg.Mode != ModeAdjacency {
			return nil, fmt.Errorf("format %q is only available for the graph and adjacency modes", cfg.Format)
		}
	default:
		return nil, fmt.Errorf("invalid format %q: must be one of json, dot, mermaid", cfg.Format)
	}

	if cfg.DBPath != "" && (cfg.Mode == ModeGraph || cfg.Mode == ModeAdjacency) {
		return nil, fmt.Errorf("-db is only available for the shortest, simple and replay modes")
	}

	return &cfg, nil
}

// parseEvents decodes a JSON array of events. Each element is an object
// with a "type" and any payload fields.
func parseEvents(raw string) ([]statepaths.Event, error) {
	var objects []map[string]any
	if err := json.Unmarshal([]byte(raw), &objects); err != nil {
		return nil, fmt.Errorf("invalid events: %w", err)
	}

	events := make([]statepaths.Event, 0, len(objects))
	for i, obj := range objects {
		eventType, ok := obj["type"].(string)
		if !ok || eventType == "" {
			return nil, fmt.Errorf("invalid events: element %d has no type", i)
		}
		delete(obj, "type")
		var payload map[string]any
		if len(obj) > 0 {
			payload = obj
		}
		events = append(events, statepaths.NewEvent(eventType, payload))
	}
	return events, nil
}
