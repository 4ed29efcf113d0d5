// Package jsonschema renders a component's configuration options as a JSON
// schema fragment suitable for driving config validation downstream.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/GeorgeHahn/vector/components"
	"github.com/GeorgeHahn/vector/render"
)

const rendererName = "json-schema"

type schemaRenderer struct{}

func (r *schemaRenderer) Name() string {
	return rendererName
}

// Render produces a deterministic fragment: encoding/json sorts map keys, so
// identical records always render identical bytes.
func (r *schemaRenderer) Render(meta *components.Metadata) ([]byte, error) {
	root := map[string]interface{}{
		"title":                meta.Title,
		"type":                 "object",
		"additionalProperties": false,
	}
	props, required, err := optionsSchema(meta.Configuration)
	if err != nil {
		return nil, err
	}
	root["properties"] = props
	if len(required) > 0 {
		root["required"] = required
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func optionsSchema(opts map[string]*components.Option) (map[string]interface{}, []string, error) {
	props := make(map[string]interface{}, len(opts))
	var required []string
	for name, opt := range opts {
		schema, err := optionSchema(opt)
		if err != nil {
			return nil, nil, fmt.Errorf("option %s: %w", name, err)
		}
		props[name] = schema
		if opt.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)
	return props, required, nil
}

func optionSchema(opt *components.Option) (map[string]interface{}, error) {
	schema := map[string]interface{}{
		"description": opt.Description,
	}
	switch opt.Type.Kind {
	case components.StringKind:
		schema["type"] = "string"
		st := opt.Type.String
		if st.Default != nil {
			schema["default"] = *st.Default
		}
		if len(st.Enum) > 0 {
			schema["enum"] = st.Enum
		}
		if len(st.Examples) > 0 {
			schema["examples"] = st.Examples
		}
	case components.BoolKind:
		schema["type"] = "boolean"
		if opt.Type.Bool.Default != nil {
			schema["default"] = *opt.Type.Bool.Default
		}
	case components.UintKind:
		schema["type"] = "integer"
		schema["minimum"] = 0
		ut := opt.Type.Uint
		if ut.Default != nil {
			schema["default"] = *ut.Default
		}
		if len(ut.Examples) > 0 {
			schema["examples"] = ut.Examples
		}
	case components.StringsKind:
		schema["type"] = "array"
		schema["items"] = map[string]interface{}{"type": "string"}
		st := opt.Type.Strings
		if st.Default != nil {
			schema["default"] = st.Default
		}
		if len(st.Examples) > 0 {
			schema["examples"] = st.Examples
		}
	case components.ObjectKind:
		schema["type"] = "object"
		schema["additionalProperties"] = false
		// An empty group renders as an object with no properties.
		props, required, err := optionsSchema(opt.Type.Options())
		if err != nil {
			return nil, err
		}
		schema["properties"] = props
		if len(required) > 0 {
			schema["required"] = required
		}
	default:
		return nil, fmt.Errorf("cannot render type kind %q", opt.Type.Kind)
	}
	return schema, nil
}

func init() {
	render.Register(rendererName, render.RendererConstructorFunc(func() render.Renderer {
		return &schemaRenderer{}
	}))
}
