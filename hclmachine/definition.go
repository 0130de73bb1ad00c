package hclmachine

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/atlekbai/statepaths"
	"github.com/atlekbai/statepaths/machine"
)

// Configuration is the configuration of a machine built from a Definition.
type Configuration = machine.Configuration[string, cty.Value]

// Definition is a validated machine block.
type Definition struct {
	// Name is the machine label.
	Name string

	// File is the file the machine was read from.
	File string

	// Initial is the initial state.
	Initial string

	// States lists the declared states depth first in declaration order.
	States []string

	block   *machineBlock
	src     []byte
	parents map[string]string
}

// Variables each kind of expression may refer to.
var (
	contextVars = map[string]bool{}
	actionVars  = map[string]bool{"ctx": true, "event": true}
	valuesVars  = map[string]bool{"ctx": true}
	filterVars  = map[string]bool{"ctx": true, "state": true}
)

func newDefinition(block *machineBlock, path string, src []byte) (*Definition, error) {
	d := &Definition{
		Name:    block.Name,
		File:    path,
		Initial: block.Initial,
		block:   block,
		src:     src,
		parents: make(map[string]string),
	}
	if err := d.collect(block.States, ""); err != nil {
		return nil, err
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// collect records every state and its superstate.
func (d *Definition) collect(states []*stateBlock, parent string) error {
	for _, s := range states {
		if _, ok := d.parents[s.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateState, s.Name)
		}
		d.parents[s.Name] = parent
		d.States = append(d.States, s.Name)
		if err := d.collect(s.States, s.Name); err != nil {
			return err
		}
	}
	return nil
}

func (d *Definition) validate() error {
	if d.Initial == "" {
		return ErrNoInitialState
	}
	if !d.declared(d.Initial) {
		return fmt.Errorf("%w: initial %q", ErrUnknownState, d.Initial)
	}
	if err := checkVariables(d.block.Context, contextVars, "context"); err != nil {
		return err
	}
	if err := checkVariables(d.block.Filter, filterVars, "filter"); err != nil {
		return err
	}

	types := make(map[string]bool)
	for _, ev := range d.block.Events {
		if types[ev.Type] {
			return fmt.Errorf("events %q declared twice", ev.Type)
		}
		types[ev.Type] = true
		if err := checkVariables(ev.Values, valuesVars, "events "+ev.Type); err != nil {
			return err
		}
	}

	return d.validateStates(d.block.States)
}

func (d *Definition) validateStates(states []*stateBlock) error {
	for _, s := range states {
		if s.Initial != "" && d.parents[s.Initial] != s.Name {
			return fmt.Errorf("%w: initial %q of state %q is not one of its substates", ErrUnknownState, s.Initial, s.Name)
		}
		if err := checkVariables(s.Entry, actionVars, "entry of "+s.Name); err != nil {
			return err
		}
		if err := checkVariables(s.Exit, actionVars, "exit of "+s.Name); err != nil {
			return err
		}

		for _, on := range s.On {
			if err := d.validateOn(s.Name, on); err != nil {
				return fmt.Errorf("state %q: on %q: %w", s.Name, on.Event, err)
			}
		}

		if err := d.validateStates(s.States); err != nil {
			return err
		}
	}
	return nil
}

func (d *Definition) validateOn(state string, on *onBlock) error {
	switch {
	case on.Ignore && (on.Target != "" || on.Reenter || present(on.Assign)):
		return fmt.Errorf("%w: ignore cannot have a target, reenter or assign", ErrInvalidTransition)
	case on.Reenter && on.Target != "":
		return fmt.Errorf("%w: reenter cannot have a target", ErrInvalidTransition)
	case on.Target == state:
		return fmt.Errorf("%w: target is the state itself, use reenter", ErrInvalidTransition)
	case on.Target != "" && !d.declared(on.Target):
		return fmt.Errorf("%w: target %q", ErrUnknownState, on.Target)
	}

	if err := checkVariables(on.Cond, actionVars, "cond"); err != nil {
		return err
	}
	return checkVariables(on.Assign, actionVars, "assign")
}

func (d *Definition) declared(state string) bool {
	_, ok := d.parents[state]
	return ok
}

// checkVariables rejects references to variables outside allowed.
func checkVariables(expr hcl.Expression, allowed map[string]bool, what string) error {
	if expr == nil {
		return nil
	}
	for _, traversal := range expr.Variables() {
		if name := traversal.RootName(); !allowed[name] {
			return fmt.Errorf("%s: unknown variable %q at %s", what, name, traversal.SourceRange())
		}
	}
	return nil
}

// InitialContext evaluates the context of the machine. A machine without
// a context starts with an empty object.
func (d *Definition) InitialContext() (cty.Value, error) {
	if !present(d.block.Context) {
		return cty.EmptyObjectVal, nil
	}
	v, diags := d.block.Context.Value(evalContext(nil))
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("machine %q: context: %w", d.Name, diags)
	}
	if v.IsNull() || !v.IsWhollyKnown() || !v.Type().IsObjectType() {
		return cty.NilVal, fmt.Errorf("machine %q: %w, got %s", d.Name, ErrInvalidContext, v.Type().FriendlyName())
	}
	return v, nil
}

// Build creates the machine described by d.
func (d *Definition) Build() (*machine.Machine[string, cty.Value], error) {
	context, err := d.InitialContext()
	if err != nil {
		return nil, err
	}

	m := machine.New(d.Name, d.Initial, context)
	d.configure(m, d.block.States, "")
	return m, nil
}

func (d *Definition) configure(m *machine.Machine[string, cty.Value], states []*stateBlock, parent string) {
	for _, s := range states {
		sc := m.Configure(s.Name)
		if parent != "" {
			sc.SubstateOf(parent)
		}
		if present(s.Entry) {
			sc.OnEntry(d.update(s.Entry), "assign "+sourceText(s.Entry, d.src))
		}
		if present(s.Exit) {
			sc.OnExit(d.update(s.Exit), "assign "+sourceText(s.Exit, d.src))
		}

		for _, on := range s.On {
			d.configureOn(sc, on)
		}

		d.configure(m, s.States, s.Name)
		if s.Initial != "" {
			sc.InitialTransition(s.Initial)
		}
	}
}

func (d *Definition) configureOn(sc *machine.StateConfiguration[string, cty.Value], on *onBlock) {
	var guard machine.Guard[cty.Value]
	var description string
	if present(on.Cond) {
		guard = d.guard(on.Cond)
		description = sourceText(on.Cond, d.src)
	}

	var assign machine.Action[string, cty.Value]
	if present(on.Assign) {
		assign = d.update(on.Assign)
	}

	switch {
	case on.Ignore:
		sc.IgnoreIf(on.Event, guard, description)
		return
	case on.Reenter:
		sc.PermitReentryIf(on.Event, guard, description)
	case on.Target != "":
		sc.PermitIf(on.Event, on.Target, guard, description)
	default:
		sc.InternalTransitionIf(on.Event, guard, assign, description)
		return
	}

	if assign != nil {
		sc.Assign(assign, "assign "+sourceText(on.Assign, d.src))
	}
}

// guard evaluates cond against the context and the event. An expression
// that fails to evaluate counts as not met.
func (d *Definition) guard(cond hcl.Expression) machine.Guard[cty.Value] {
	return func(context cty.Value, event statepaths.Event) error {
		ev, err := eventValue(event)
		if err != nil {
			return err
		}
		ok, err := evalBool(cond, map[string]cty.Value{"ctx": context, "event": ev})
		if err != nil {
			statepaths.Logger.Warn("cond evaluation failed", "machine", d.Name, "event", event.Type, "error", err)
			return err
		}
		if !ok {
			return ErrGuardNotMet
		}
		return nil
	}
}

// update returns an action setting the attributes of expr on the context.
func (d *Definition) update(expr hcl.Expression) machine.Action[string, cty.Value] {
	return func(context cty.Value, t machine.Transition[string]) (cty.Value, error) {
		ev, err := eventValue(t.Event)
		if err != nil {
			return context, err
		}
		v, diags := expr.Value(evalContext(map[string]cty.Value{"ctx": context, "event": ev}))
		if diags.HasErrors() {
			return context, fmt.Errorf("machine %q: assign: %w", d.Name, diags)
		}
		return merge(context, v)
	}
}

// Options returns the exploration options declared by the machine: the
// canonical state serializer, the events blocks and the filter.
func (d *Definition) Options() []statepaths.Option[Configuration] {
	opts := []statepaths.Option[Configuration]{
		statepaths.WithStateSerializer(StateKey),
	}
	for _, ev := range d.block.Events {
		opts = append(opts, statepaths.WithEventsFunc(ev.Type, d.events(ev)))
	}
	if present(d.block.Filter) {
		opts = append(opts, statepaths.WithFilter(d.filter()))
	}
	return opts
}

// events returns the candidate events of an events block for a configuration.
func (d *Definition) events(block *eventsBlock) func(Configuration) []statepaths.Event {
	return func(config Configuration) []statepaths.Event {
		values, diags := block.Values.Value(evalContext(map[string]cty.Value{"ctx": config.Context}))
		if diags.HasErrors() {
			statepaths.Logger.Warn("events evaluation failed", "machine", d.Name, "event", block.Type, "error", diags)
			return nil
		}
		events, err := eventsFromValue(block.Type, values)
		if err != nil {
			statepaths.Logger.Warn("events evaluation failed", "machine", d.Name, "event", block.Type, "error", err)
			return nil
		}
		return events
	}
}

// filter returns the machine filter. An expression that fails to evaluate
// rejects the configuration.
func (d *Definition) filter() func(Configuration) bool {
	return func(config Configuration) bool {
		ok, err := evalBool(d.block.Filter, map[string]cty.Value{
			"ctx":   config.Context,
			"state": cty.StringVal(config.State),
		})
		if err != nil {
			statepaths.Logger.Warn("filter evaluation failed", "machine", d.Name, "state", config.State, "error", err)
			return false
		}
		return ok
	}
}

// StateKey returns the canonical key of a configuration: its state and its
// context encoded as JSON.
func StateKey(config Configuration) string {
	data, err := json.Marshal(ConfigurationJSON(config))
	if err != nil {
		return fmt.Sprintf("%s %s", config.State, config.Context.GoString())
	}
	return string(data)
}

// ConfigurationJSON returns a value that encodes config as JSON.
func ConfigurationJSON(config Configuration) any {
	return struct {
		State   string          `json:"state"`
		Context json.RawMessage `json:"context"`
	}{config.State, ContextJSON(config.Context)}
}
