package components

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Option describes one configuration field of a component. Options nest
// recursively through the object type variant.
type Option struct {
	// Common marks options shown in abbreviated documentation.
	Common bool `yaml:"common" json:"common"`

	// Description must be non-empty; enforced by the validator.
	Description string `yaml:"description" json:"description"`

	Required bool `yaml:"required" json:"required"`

	Type TypeSpec `yaml:"type" json:"type"`
}

// TypeKind tags the closed set of option type variants.
type TypeKind string

const (
	// StringKind options hold a single string value.
	StringKind TypeKind = "string"

	// BoolKind options hold a boolean value.
	BoolKind TypeKind = "bool"

	// UintKind options hold an unsigned integer value.
	UintKind TypeKind = "uint"

	// StringsKind options hold an ordered list of strings.
	StringsKind TypeKind = "strings"

	// ObjectKind options group nested options.
	ObjectKind TypeKind = "object"
)

// TypeKinds lists every recognized option type variant.
var TypeKinds = []TypeKind{StringKind, BoolKind, UintKind, StringsKind, ObjectKind}

// TypeSpec is a tagged union over the option type variants. Exactly one
// variant is populated; the YAML decoder rejects anything else.
type TypeSpec struct {
	Kind TypeKind `json:"kind"`

	String  *StringType  `json:"string,omitempty"`
	Bool    *BoolType    `json:"bool,omitempty"`
	Uint    *UintType    `json:"uint,omitempty"`
	Strings *StringsType `json:"strings,omitempty"`
	Object  *ObjectType  `json:"object,omitempty"`
}

// StringType carries the payload of a string option.
type StringType struct {
	Default  *string  `yaml:"default" json:"default"`
	Examples []string `yaml:"examples,omitempty" json:"examples,omitempty"`

	// Enum constrains the value, default, and examples to a fixed set.
	Enum []string `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// BoolType carries the payload of a boolean option.
type BoolType struct {
	Default *bool `yaml:"default" json:"default"`
}

// UintType carries the payload of an unsigned integer option.
type UintType struct {
	Default  *uint64  `yaml:"default" json:"default"`
	Examples []uint64 `yaml:"examples,omitempty" json:"examples,omitempty"`
	Unit     string   `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// StringsType carries the payload of a string list option.
type StringsType struct {
	Default  []string `yaml:"default" json:"default"`
	Examples []string `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// ObjectType carries the payload of a nested option group. A group with zero
// sub-options is valid.
type ObjectType struct {
	Options  map[string]*Option `yaml:"options" json:"options"`
	Examples []string           `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// UnmarshalYAML decodes the tagged union form:
//
//	type:
//	  string:
//	    default: null
//	    examples: ["pulsar://127.0.0.1:6650"]
//
// A mapping with zero or multiple variant keys, or an unrecognized variant
// key, is a parse error.
func (t *TypeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("type must be a mapping with exactly one variant")
	}
	if len(value.Content) != 2 {
		return fmt.Errorf("type must declare exactly one variant, got %d", len(value.Content)/2)
	}

	key := value.Content[0].Value
	payload := value.Content[1]

	switch TypeKind(key) {
	case StringKind:
		t.String = &StringType{}
		if err := decodeVariant(payload, t.String); err != nil {
			return fmt.Errorf("string variant: %w", err)
		}
	case BoolKind:
		t.Bool = &BoolType{}
		if err := decodeVariant(payload, t.Bool); err != nil {
			return fmt.Errorf("bool variant: %w", err)
		}
	case UintKind:
		t.Uint = &UintType{}
		if err := decodeVariant(payload, t.Uint); err != nil {
			return fmt.Errorf("uint variant: %w", err)
		}
	case StringsKind:
		t.Strings = &StringsType{}
		if err := decodeVariant(payload, t.Strings); err != nil {
			return fmt.Errorf("strings variant: %w", err)
		}
	case ObjectKind:
		t.Object = &ObjectType{}
		if err := decodeVariant(payload, t.Object); err != nil {
			return fmt.Errorf("object variant: %w", err)
		}
	default:
		return fmt.Errorf("unrecognized type variant %q, expected one of: %s", key, AllowedValues(TypeKinds))
	}

	t.Kind = TypeKind(key)
	return nil
}

// decodeVariant re-encodes the payload node and decodes it through a strict
// decoder. Node.Decode does not inherit KnownFields from the document
// decoder, so a typo inside a variant payload would otherwise vanish silently.
func decodeVariant(payload *yaml.Node, out interface{}) error {
	data, err := yaml.Marshal(payload)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// MarshalYAML is the inverse of UnmarshalYAML.
func (t TypeSpec) MarshalYAML() (interface{}, error) {
	out := map[string]interface{}{}
	switch t.Kind {
	case StringKind:
		out[string(StringKind)] = t.String
	case BoolKind:
		out[string(BoolKind)] = t.Bool
	case UintKind:
		out[string(UintKind)] = t.Uint
	case StringsKind:
		out[string(StringsKind)] = t.Strings
	case ObjectKind:
		out[string(ObjectKind)] = t.Object
	default:
		return nil, fmt.Errorf("cannot marshal type spec with kind %q", t.Kind)
	}
	return out, nil
}

// HasDefault reports whether the populated variant declares a default value.
func (t TypeSpec) HasDefault() bool {
	switch t.Kind {
	case StringKind:
		return t.String != nil && t.String.Default != nil
	case BoolKind:
		return t.Bool != nil && t.Bool.Default != nil
	case UintKind:
		return t.Uint != nil && t.Uint.Default != nil
	case StringsKind:
		return t.Strings != nil && t.Strings.Default != nil
	default:
		return false
	}
}

// Enum returns the declared enumeration of a string option, or nil.
func (t TypeSpec) Enum() []string {
	if t.Kind == StringKind && t.String != nil {
		return t.String.Enum
	}
	return nil
}

// Options returns the nested option group of an object option, or nil.
func (t TypeSpec) Options() map[string]*Option {
	if t.Kind == ObjectKind && t.Object != nil {
		return t.Object.Options
	}
	return nil
}
