package statepaths

// Event is a tagged message that drives a transition. Payload is optional.
type Event struct {
	Type    string
	Payload map[string]any
}

// NewEvent creates an event of the given type carrying payload.
func NewEvent(eventType string, payload map[string]any) Event {
	return Event{Type: eventType, Payload: payload}
}

// String returns the canonical key of the event.
func (e Event) String() string {
	return SerializeEvent(e)
}

// Machine is the state machine explored by this package. C is the
// configuration type: whatever value describes where the machine currently is.
//
// Transition must be deterministic for a given configuration and event; every
// result of this package depends on it.
type Machine[C any] interface {
	// Initial returns the initial configuration.
	Initial() C

	// Transition applies event to config and returns the resulting configuration.
	Transition(config C, event Event) (C, error)

	// NextEvents returns the event types potentially enabled in config.
	NextEvents(config C) []string

	// Root returns the root of the machine's declared structure.
	Root() StructuralNode
}

// StructuralNode is a declared state of a machine, independent of any
// configuration reached at runtime.
type StructuralNode interface {
	// ID returns a unique identifier of the node within its machine.
	ID() string

	// Children returns the declared child nodes in declaration order.
	Children() []StructuralNode

	// Transitions returns the transitions declared on this node.
	Transitions() []DeclaredTransition
}

// DeclaredTransition is a transition as written in a machine definition.
type DeclaredTransition struct {
	// Event is the event type triggering the transition.
	Event string

	// Targets are the declared destinations. Empty means the node itself.
	Targets []StructuralNode

	// Guards are descriptions of the guard conditions, if any.
	Guards []string

	// Internal is true when the transition neither exits nor enters the node.
	Internal bool
}

// isDegenerate reports whether the machine declares no states at all.
func isDegenerate[C any](m Machine[C]) bool {
	root := m.Root()
	return root == nil || len(root.Children()) == 0
}
