package hclmachine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/atlekbai/statepaths"
)

// functions are available to every expression.
var functions = map[string]function.Function{
	"abs":      stdlib.AbsoluteFunc,
	"coalesce": stdlib.CoalesceFunc,
	"concat":   stdlib.ConcatFunc,
	"contains": stdlib.ContainsFunc,
	"keys":     stdlib.KeysFunc,
	"length":   stdlib.LengthFunc,
	"lower":    stdlib.LowerFunc,
	"max":      stdlib.MaxFunc,
	"merge":    stdlib.MergeFunc,
	"min":      stdlib.MinFunc,
	"upper":    stdlib.UpperFunc,
}

// evalContext returns the context for expressions seeing vars.
func evalContext(vars map[string]cty.Value) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: vars,
		Functions: functions,
	}
}

// eventValue converts an event into an object holding its payload fields
// and its type under "type".
func eventValue(event statepaths.Event) (cty.Value, error) {
	var v ctyjson.SimpleJSONValue
	if err := json.Unmarshal([]byte(statepaths.SerializeEvent(event)), &v); err != nil {
		return cty.NilVal, fmt.Errorf("converting event %s: %w", event.Type, err)
	}
	return v.Value, nil
}

// eventsFromValue converts a list of objects into events of eventType.
func eventsFromValue(eventType string, values cty.Value) ([]statepaths.Event, error) {
	if values.IsNull() || !values.IsKnown() {
		return nil, fmt.Errorf("values of %s must be a known list", eventType)
	}
	if !values.CanIterateElements() {
		return nil, fmt.Errorf("values of %s must be a list, got %s", eventType, values.Type().FriendlyName())
	}

	var events []statepaths.Event
	for it := values.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if !v.Type().IsObjectType() && !v.Type().IsMapType() {
			return nil, fmt.Errorf("values of %s must hold objects, got %s", eventType, v.Type().FriendlyName())
		}

		data, err := ctyjson.SimpleJSONValue{Value: v}.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("converting values of %s: %w", eventType, err)
		}
		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("converting values of %s: %w", eventType, err)
		}
		if len(payload) == 0 {
			payload = nil
		}
		events = append(events, statepaths.NewEvent(eventType, payload))
	}
	return events, nil
}

// merge returns context with the attributes of update set on it.
func merge(context, update cty.Value) (cty.Value, error) {
	if update.IsNull() {
		return context, nil
	}
	if !update.IsKnown() || (!update.Type().IsObjectType() && !update.Type().IsMapType()) {
		return context, fmt.Errorf("%w: update is %s", ErrInvalidContext, update.Type().FriendlyName())
	}

	attrs := make(map[string]cty.Value)
	if !context.IsNull() {
		for name, v := range context.AsValueMap() {
			attrs[name] = v
		}
	}
	for it := update.ElementIterator(); it.Next(); {
		name, v := it.Element()
		attrs[name.AsString()] = v
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal, nil
	}
	return cty.ObjectVal(attrs), nil
}

// evalBool evaluates a condition.
func evalBool(expr hcl.Expression, vars map[string]cty.Value) (bool, error) {
	v, diags := expr.Value(evalContext(vars))
	if diags.HasErrors() {
		return false, diags
	}
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Bool) {
		return false, fmt.Errorf("condition must be a bool, got %s", v.Type().FriendlyName())
	}
	return v.True(), nil
}

// contextKey returns the canonical JSON encoding of a context. cty object
// attributes are encoded in lexical order.
func contextKey(context cty.Value) string {
	if context.IsNull() {
		return "null"
	}
	data, err := ctyjson.SimpleJSONValue{Value: context}.MarshalJSON()
	if err != nil {
		return context.GoString()
	}
	return string(data)
}

// ContextJSON is the JSON form of a context value.
func ContextJSON(context cty.Value) json.RawMessage {
	return json.RawMessage(contextKey(context))
}

// sourceText returns the text of expr in src, with whitespace collapsed.
func sourceText(expr hcl.Expression, src []byte) string {
	rng := expr.Range()
	if rng.End.Byte > len(src) || rng.Start.Byte > rng.End.Byte {
		return ""
	}
	return strings.Join(strings.Fields(string(rng.SliceBytes(src))), " ")
}
