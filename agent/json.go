package agent

import "encoding/json"

// indentJSON renders a tool data value for human-facing output. Falls
// back to the raw Go value formatting when the value cannot be
// marshaled, which registered tools never produce.
func indentJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "(unrenderable tool result)"
	}
	return string(data)
}
