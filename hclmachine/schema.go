package hclmachine

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes all top-level blocks of a file.
type fileRoot struct {
	Machines []*machineBlock `hcl:"machine,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type machineBlock struct {
	Name    string         `hcl:"name,label"`
	Initial string         `hcl:"initial,optional"`
	Context hcl.Expression `hcl:"context,optional"`
	Filter  hcl.Expression `hcl:"filter,optional"`
	Events  []*eventsBlock `hcl:"events,block"`
	States  []*stateBlock  `hcl:"state,block"`
}

type eventsBlock struct {
	Type   string         `hcl:"type,label"`
	Values hcl.Expression `hcl:"values"`
}

type stateBlock struct {
	Name    string         `hcl:"name,label"`
	Initial string         `hcl:"initial,optional"`
	Entry   hcl.Expression `hcl:"entry,optional"`
	Exit    hcl.Expression `hcl:"exit,optional"`
	On      []*onBlock     `hcl:"on,block"`
	States  []*stateBlock  `hcl:"state,block"`
}

type onBlock struct {
	Event   string         `hcl:"event,label"`
	Target  string         `hcl:"target,optional"`
	Cond    hcl.Expression `hcl:"cond,optional"`
	Assign  hcl.Expression `hcl:"assign,optional"`
	Reenter bool           `hcl:"reenter,optional"`
	Ignore  bool           `hcl:"ignore,optional"`
}

// present reports whether an optional expression was written in the file.
// gohcl fills a missing optional expression with a static null.
func present(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	if len(expr.Variables()) > 0 {
		return true
	}
	v, diags := expr.Value(nil)
	return diags.HasErrors() || !v.IsNull()
}
