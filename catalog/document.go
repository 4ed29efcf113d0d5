package catalog

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/GeorgeHahn/vector/components"
)

// Format identifies the serialization of a metadata document.
type Format string

const (
	// YAMLFormat documents are the primary authoring format.
	YAMLFormat Format = "yaml"

	// TOMLFormat documents are normalized through the YAML decode path.
	TOMLFormat Format = "toml"
)

// Document is one raw metadata or registry file.
type Document struct {
	// Name identifies the document in parse errors, usually the file path.
	Name   string
	Format Format
	Data   []byte
}

// FormatForPath guesses the document format from the file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return YAMLFormat, true
	case ".toml":
		return TOMLFormat, true
	}
	return "", false
}

// ServiceEntry is one entry in the shared services namespace.
type ServiceEntry struct {
	Name string `yaml:"name" json:"name"`

	// URL optionally references the urls namespace.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
}

// registryDocument supplies flat entries for the services and urls namespaces.
type registryDocument struct {
	Services map[string]ServiceEntry `yaml:"services"`
	URLs     map[string]string       `yaml:"urls"`
}

// parsed is the result of decoding one document: exactly one of the fields is
// populated.
type parsed struct {
	component *components.Metadata
	registry  *registryDocument
}

// probe looks at top-level keys to tell registry documents from component
// documents without committing to a full decode.
type probe struct {
	Kind     string                 `yaml:"kind"`
	Services map[string]interface{} `yaml:"services"`
	URLs     map[string]interface{} `yaml:"urls"`
}

// parseDocument decodes one document. TOML input is converted to YAML first so
// both formats share a single typed decode path.
func parseDocument(doc Document) (parsed, *ParseError) {
	data := doc.Data
	if doc.Format == TOMLFormat {
		var err error
		data, err = tomlToYAML(data)
		if err != nil {
			return parsed{}, &ParseError{Document: doc.Name, Err: err}
		}
	}

	var p probe
	if err := yaml.Unmarshal(data, &p); err != nil {
		return parsed{}, &ParseError{Document: doc.Name, Err: err}
	}

	if len(p.Services) > 0 || len(p.URLs) > 0 {
		var reg registryDocument
		if err := strictDecode(data, &reg); err != nil {
			return parsed{}, &ParseError{Document: doc.Name, Err: err}
		}
		return parsed{registry: &reg}, nil
	}

	var meta components.Metadata
	if err := strictDecode(data, &meta); err != nil {
		return parsed{}, &ParseError{Document: doc.Name, Err: err}
	}
	if !meta.Kind.Valid() {
		return parsed{}, &ParseError{
			Document: doc.Name,
			Err:      fmt.Errorf("unrecognized component kind %q, expected one of: %s", meta.Kind, components.AllowedValues(components.Kinds)),
		}
	}
	if meta.Name == "" {
		return parsed{}, &ParseError{Document: doc.Name, Err: fmt.Errorf("component documents must declare a name")}
	}
	return parsed{component: &meta}, nil
}

// strictDecode rejects unknown fields so typos surface as parse errors.
func strictDecode(data []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// tomlToYAML re-encodes a TOML document as YAML. Decoding through a generic
// map keeps the typed unmarshallers (tagged unions, tri-state booleans) in one
// place.
func tomlToYAML(data []byte) ([]byte, error) {
	var tree map[string]interface{}
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("malformed toml: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("toml conversion: %w", err)
	}
	return out, nil
}
