package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atlekbai/statepaths"
	"github.com/atlekbai/statepaths/graph"
	"github.com/atlekbai/statepaths/hclmachine"
	"github.com/atlekbai/statepaths/internal/store"
)

// pathOutput is the JSON form of a path. States and events are written as
// their canonical keys.
type pathOutput struct {
	Segments []segmentOutput `json:"segments"`
	State    json.RawMessage `json:"state"`
	Weight   int             `json:"weight"`
}

type segmentOutput struct {
	State json.RawMessage `json:"state"`
	Event json.RawMessage `json:"event"`
}

// vertexOutput is the JSON form of one configuration of an adjacency map.
type vertexOutput struct {
	Key   string       `json:"key"`
	State any          `json:"state"`
	Edges []edgeOutput `json:"edges"`
}

type edgeOutput struct {
	Event  json.RawMessage `json:"event"`
	Target string          `json:"target"`
}

// Run loads the machine named by cfg, runs the requested mode and writes
// the result to out. Logs go to logW.
func Run(cfg *Config, out, logW io.Writer) error {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	statepaths.Logger = logger

	def, err := selectMachine(cfg)
	if err != nil {
		return err
	}
	m, err := def.Build()
	if err != nil {
		return err
	}
	logger.Info("Machine loaded.", "machine", def.Name, "file", def.File, "states", len(def.States))

	opts := append(def.Options(), statepaths.WithLogger[hclmachine.Configuration](logger))

	var (
		result any
		run    *store.Run
	)
	switch cfg.Mode {
	case ModeGraph:
		root := statepaths.ToDirectedGraph(m.Root())
		switch cfg.Format {
		case FormatDOT:
			return writeText(out, graph.UmlDotGraph(root))
		case FormatMermaid:
			return writeText(out, graph.MermaidGraph(root, nil))
		}
		result = root

	case ModeAdjacency:
		adj, err := statepaths.BuildAdjacencyMap[hclmachine.Configuration](m, opts...)
		if err != nil {
			return err
		}
		logger.Info("Exploration complete.", "machine", def.Name, "configurations", adj.Len())
		switch cfg.Format {
		case FormatDOT:
			return writeText(out, graph.AdjacencyDot(adj))
		case FormatMermaid:
			return writeText(out, graph.AdjacencyMermaid(adj, nil))
		}
		result = adjacencyOutput(adj)

	case ModeShortest, ModeSimple:
		adj, err := statepaths.BuildAdjacencyMap[hclmachine.Configuration](m, opts...)
		if err != nil {
			return err
		}
		var index statepaths.PathsIndex[hclmachine.Configuration]
		if cfg.Mode == ModeShortest {
			index = statepaths.ShortestPathsFromMap(adj)
		} else {
			index = statepaths.SimplePathsFromMap(adj)
		}
		paths := index.Flatten()
		logger.Info("Paths computed.", "machine", def.Name, "mode", cfg.Mode, "configurations", adj.Len(), "paths", len(paths))

		outputs := make([]pathOutput, len(paths))
		for i, p := range paths {
			outputs[i] = newPathOutput(p)
		}
		result = outputs
		run = &store.Run{
			MachineID: def.Name,
			Mode:      cfg.Mode,
			States:    adj.Len(),
			Paths:     store.FromIndex(index, hclmachine.StateKey),
		}

	case ModeReplay:
		p, err := statepaths.PathFromEvents[hclmachine.Configuration](m, cfg.Events, opts...)
		if err != nil {
			return err
		}
		logger.Info("Sequence replayed.", "machine", def.Name, "weight", p.Weight)
		result = newPathOutput(p)
		run = &store.Run{
			MachineID: def.Name,
			Mode:      cfg.Mode,
			Paths:     []store.PathRecord{store.FromPath(p, hclmachine.StateKey)},
		}
	}

	if run != nil && cfg.DBPath != "" {
		if err := save(cfg.DBPath, *run, logger); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// selectMachine loads the machines at cfg.MachinePath and picks the one to run.
func selectMachine(cfg *Config) (*hclmachine.Definition, error) {
	defs, err := hclmachine.Load(cfg.MachinePath)
	if err != nil {
		return nil, err
	}
	if cfg.Machine != "" {
		return hclmachine.Find(defs, cfg.Machine)
	}

	switch len(defs) {
	case 0:
		return nil, &ExitError{Code: 1, Message: fmt.Sprintf("no machines found in %s", cfg.MachinePath)}
	case 1:
		return defs[0], nil
	}
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return nil, &ExitError{
		Code:    2,
		Message: fmt.Sprintf("%s declares several machines (%s); choose one with -machine", cfg.MachinePath, strings.Join(names, ", ")),
	}
}

func save(dbPath string, run store.Run, logger *slog.Logger) error {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.SaveRun(run)
	if err != nil {
		return err
	}
	logger.Info("Run saved.", "run_id", id, "paths", len(run.Paths), "db", dbPath)
	return nil
}

func newPathOutput(p statepaths.Path[hclmachine.Configuration]) pathOutput {
	out := pathOutput{
		Segments: make([]segmentOutput, len(p.Segments)),
		State:    json.RawMessage(hclmachine.StateKey(p.State)),
		Weight:   p.Weight,
	}
	for i, seg := range p.Segments {
		out.Segments[i] = segmentOutput{
			State: json.RawMessage(hclmachine.StateKey(seg.State)),
			Event: json.RawMessage(statepaths.SerializeEvent(seg.Event)),
		}
	}
	return out
}

func adjacencyOutput(adj *statepaths.AdjacencyMap[hclmachine.Configuration]) []vertexOutput {
	var vertices []vertexOutput
	for _, key := range adj.Keys() {
		vertex, _ := adj.Vertex(key)
		v := vertexOutput{
			Key:   key,
			State: hclmachine.ConfigurationJSON(vertex.State),
			Edges: []edgeOutput{},
		}
		for _, edge := range vertex.Edges() {
			v.Edges = append(v.Edges, edgeOutput{
				Event:  json.RawMessage(edge.EventKey),
				Target: edge.StateKey,
			})
		}
		vertices = append(vertices, v)
	}
	return vertices
}

func writeText(out io.Writer, text string) error {
	_, err := fmt.Fprintln(out, text)
	return err
}
