package machine

import (
	"fmt"
	"strings"
)

// InvalidOperationError indicates a machine definition that cannot be executed,
// such as overlapping guards or an initial transition to a non-substate.
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string {
	return e.Message
}

// InvalidTransitionError is returned when an event is applied to a state
// that declares no behaviour for it, directly or through a superstate.
type InvalidTransitionError struct {
	Event           string
	State           any
	PermittedEvents []string
}

func (e *InvalidTransitionError) Error() string {
	var permitted string
	if len(e.PermittedEvents) > 0 {
		permitted = fmt.Sprintf(" Permitted events: %s.", strings.Join(e.PermittedEvents, ", "))
	} else {
		permitted = " No valid leaving transitions are permitted from state."
	}

	return fmt.Sprintf(
		"no valid leaving transitions are permitted from state '%v' for event '%s'.%s",
		e.State, e.Event, permitted)
}
