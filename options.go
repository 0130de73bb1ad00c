package statepaths

import (
	"log/slog"
)

// Logger is the default logger used when none is provided.
var Logger = slog.Default()

// Options controls how a machine is explored.
type Options[C any] struct {
	// Events maps an event type to the candidate events tried for it.
	// Types without an entry are tried once as a bare event of that type.
	Events map[string]func(config C) []Event

	// Filter rejects configurations; rejected ones are neither recorded nor explored.
	Filter func(config C) bool

	// StateSerializer returns the canonical key of a configuration.
	StateSerializer func(config C) string

	// EventSerializer returns the canonical key of an event.
	EventSerializer func(event Event) string

	// Logger receives debug output about the exploration.
	Logger *slog.Logger
}

// Option is a functional option for configuring exploration.
type Option[C any] func(*Options[C])

// WithEvents sets the fixed list of events tried for eventType.
func WithEvents[C any](eventType string, events ...Event) Option[C] {
	list := append([]Event(nil), events...)
	return func(o *Options[C]) {
		o.Events[eventType] = func(C) []Event { return list }
	}
}

// WithEventsFunc sets a function producing the events tried for eventType
// in a given configuration.
func WithEventsFunc[C any](eventType string, fn func(config C) []Event) Option[C] {
	return func(o *Options[C]) {
		o.Events[eventType] = fn
	}
}

// WithFilter sets the predicate a resulting configuration must satisfy
// for its edge to be recorded.
func WithFilter[C any](fn func(config C) bool) Option[C] {
	return func(o *Options[C]) {
		o.Filter = fn
	}
}

// WithStateSerializer overrides the configuration canonicalizer.
func WithStateSerializer[C any](fn func(config C) string) Option[C] {
	return func(o *Options[C]) {
		o.StateSerializer = fn
	}
}

// WithEventSerializer overrides the event canonicalizer.
func WithEventSerializer[C any](fn func(event Event) string) Option[C] {
	return func(o *Options[C]) {
		o.EventSerializer = fn
	}
}

// WithLogger sets the logger for the exploration.
func WithLogger[C any](logger *slog.Logger) Option[C] {
	return func(o *Options[C]) {
		o.Logger = logger
	}
}

// newOptions applies opts over the defaults.
func newOptions[C any](opts []Option[C]) *Options[C] {
	o := &Options[C]{
		Events:          make(map[string]func(C) []Event),
		Filter:          func(C) bool { return true },
		StateSerializer: func(config C) string { return SerializeState(config) },
		EventSerializer: SerializeEvent,
		Logger:          Logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Filter == nil {
		o.Filter = func(C) bool { return true }
	}
	if o.StateSerializer == nil {
		o.StateSerializer = func(config C) string { return SerializeState(config) }
	}
	if o.EventSerializer == nil {
		o.EventSerializer = SerializeEvent
	}
	if o.Logger == nil {
		o.Logger = Logger
	}
	return o
}
