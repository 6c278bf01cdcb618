package interfaces

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// FactorValue is a rating as typed into a form or stored by the backend.
// The backend sends numbers and strings interchangeably, so both decode to the same text.
// An empty FactorValue means "not selected".
type FactorValue string

// IsEmpty reports whether no rating was selected.
func (v FactorValue) IsEmpty() bool {
	return strings.TrimSpace(string(v)) == ""
}

// UnmarshalJSON accepts a JSON string, number or null.
func (v *FactorValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FactorValue(s)
		return nil
	}
	*v = FactorValue(data)
	return nil
}

// UnmarshalYAML accepts any scalar; null and "~" decode to empty.
func (v *FactorValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*v = ""
		return nil
	}
	*v = FactorValue(node.Value)
	return nil
}
