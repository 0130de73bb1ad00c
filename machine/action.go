package machine

// Action runs during a transition and returns the updated context.
// Context values are never mutated in place by the machine; an action that
// wants to change the context returns the new value.
type Action[S comparable, X any] func(context X, t Transition[S]) (X, error)

// actionBehaviour is an action with its description, optionally bound to one event type.
type actionBehaviour[S comparable, X any] struct {
	action      Action[S, X]
	description InvocationInfo
	fromEvent   *string
}

func newActionBehaviour[S comparable, X any](action Action[S, X], description string) actionBehaviour[S, X] {
	return actionBehaviour[S, X]{
		action:      action,
		description: CreateInvocationInfo(action, description),
	}
}

func newActionBehaviourFrom[S comparable, X any](eventType string, action Action[S, X], description string) actionBehaviour[S, X] {
	a := newActionBehaviour(action, description)
	a.fromEvent = &eventType
	return a
}

func (a actionBehaviour[S, X]) execute(context X, t Transition[S]) (X, error) {
	if a.action == nil {
		return context, nil
	}
	if a.fromEvent != nil && *a.fromEvent != t.Event.Type {
		return context, nil
	}
	return a.action(context, t)
}

// runActions threads context through actions in order, stopping at the first error.
func runActions[S comparable, X any](actions []actionBehaviour[S, X], context X, t Transition[S]) (X, error) {
	for _, action := range actions {
		next, err := action.execute(context, t)
		if err != nil {
			return context, err
		}
		context = next
	}
	return context, nil
}

func describeActions[S comparable, X any](actions []actionBehaviour[S, X]) []string {
	var result []string
	for _, action := range actions {
		result = append(result, action.description.Description())
	}
	return result
}
