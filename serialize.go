package statepaths

import (
	"encoding/json"
	"fmt"
)

// eventTypeField is the key holding the event type in a serialized event.
const eventTypeField = "type"

// SerializeState returns the canonical key of a configuration.
//
// The key is the JSON encoding of config: map keys are sorted and struct
// fields keep their declaration order, so equal configurations always yield
// equal keys. Types that need a different canonical form should implement
// json.Marshaler or be explored with WithStateSerializer.
func SerializeState(config any) string {
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Sprintf("%#v", config)
	}
	return string(data)
}

// SerializeEvent returns the canonical key of an event: a flat JSON object
// holding the payload fields and the event type under "type". A payload
// field named "type" is shadowed by the event type.
func SerializeEvent(event Event) string {
	fields := make(map[string]any, len(event.Payload)+1)
	for name, value := range event.Payload {
		fields[name] = value
	}
	fields[eventTypeField] = event.Type

	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Sprintf("%#v", event)
	}
	return string(data)
}

// DeserializeEventKey reconstructs an event from a key produced by
// SerializeEvent.
//
// The result is a best-effort inverse. Payload values come back as their JSON
// counterparts: numbers as float64, objects as map[string]any, arrays as
// []any. A key that is not a JSON object is taken as a bare event type.
func DeserializeEventKey(key string) Event {
	var fields map[string]any
	if err := json.Unmarshal([]byte(key), &fields); err != nil || fields == nil {
		return Event{Type: key}
	}

	var event Event
	if eventType, ok := fields[eventTypeField].(string); ok {
		event.Type = eventType
	}
	delete(fields, eventTypeField)
	if len(fields) > 0 {
		event.Payload = fields
	}
	return event
}
