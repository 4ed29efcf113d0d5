package components

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ternary is a three-valued capability flag. In metadata documents null means
// "not applicable to this component", which is distinct from false
// ("applicable but unsupported").
type Ternary int

const (
	// NotApplicable is the null value.
	NotApplicable Ternary = iota

	// No means the capability applies but is unsupported.
	No

	// Yes means the capability is supported.
	Yes
)

// Bool collapses the flag for consumers that only care about support.
func (t Ternary) Bool() bool {
	return t == Yes
}

// Applicable reports whether the flag carries a real yes/no value.
func (t Ternary) Applicable() bool {
	return t != NotApplicable
}

func (t Ternary) String() string {
	switch t {
	case Yes:
		return "true"
	case No:
		return "false"
	default:
		return "null"
	}
}

// UnmarshalYAML decodes null as NotApplicable and booleans as Yes/No.
func (t *Ternary) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*t = NotApplicable
		return nil
	}
	var b bool
	if err := value.Decode(&b); err != nil {
		return fmt.Errorf("expected boolean or null, got %q", value.Value)
	}
	if b {
		*t = Yes
	} else {
		*t = No
	}
	return nil
}

// MarshalYAML is the inverse of UnmarshalYAML.
func (t Ternary) MarshalYAML() (interface{}, error) {
	if t == NotApplicable {
		return nil, nil
	}
	return t == Yes, nil
}

// MarshalJSON mirrors the YAML representation for the HTTP API.
func (t Ternary) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (t *Ternary) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*t = NotApplicable
	case "true":
		*t = Yes
	case "false":
		*t = No
	default:
		return fmt.Errorf("expected boolean or null, got %s", data)
	}
	return nil
}
