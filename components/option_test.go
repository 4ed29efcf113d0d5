package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOptionStringVariant(t *testing.T) {
	data := `
common: true
description: The endpoint to which the sink connects.
required: true
type:
  string:
    default: null
    examples: ["pulsar://127.0.0.1:6650"]
`
	var opt Option
	require.NoError(t, yaml.Unmarshal([]byte(data), &opt))

	assert.True(t, opt.Common)
	assert.True(t, opt.Required)
	assert.Equal(t, StringKind, opt.Type.Kind)
	require.NotNil(t, opt.Type.String)
	assert.Nil(t, opt.Type.String.Default)
	assert.Equal(t, []string{"pulsar://127.0.0.1:6650"}, opt.Type.String.Examples)
	assert.False(t, opt.Type.HasDefault())
}

func TestOptionEnumVariant(t *testing.T) {
	data := `
description: The encoding codec.
required: false
type:
  string:
    default: text
    enum: [text, json, avro]
`
	var opt Option
	require.NoError(t, yaml.Unmarshal([]byte(data), &opt))
	assert.True(t, opt.Type.HasDefault())
	assert.Equal(t, []string{"text", "json", "avro"}, opt.Type.Enum())
}

func TestOptionNestedObject(t *testing.T) {
	data := `
description: Options for OAuth2 authentication.
required: false
type:
  object:
    options:
      audience:
        description: The OAuth2 audience.
        required: false
        type:
          string:
            default: null
            examples: []
      credentials_url:
        description: The base64-encoded credentials URL.
        required: true
        type:
          string:
            default: null
`
	var opt Option
	require.NoError(t, yaml.Unmarshal([]byte(data), &opt))
	require.Equal(t, ObjectKind, opt.Type.Kind)

	nested := opt.Type.Options()
	require.Len(t, nested, 2)
	audience := nested["audience"]
	require.NotNil(t, audience)
	// Absence of examples is valid, not a warning.
	assert.Empty(t, audience.Type.String.Examples)
	assert.True(t, nested["credentials_url"].Required)
}

func TestOptionEmptyObjectGroup(t *testing.T) {
	data := `
description: An empty group.
type:
  object:
    options: {}
`
	var opt Option
	require.NoError(t, yaml.Unmarshal([]byte(data), &opt))
	require.Equal(t, ObjectKind, opt.Type.Kind)
	require.NotNil(t, opt.Type.Options())
	assert.Len(t, opt.Type.Options(), 0)
}

func TestOptionRejectsMultipleVariants(t *testing.T) {
	data := `
description: Broken.
type:
  string:
    default: null
  bool:
    default: false
`
	var opt Option
	err := yaml.Unmarshal([]byte(data), &opt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one variant")
}

func TestOptionRejectsUnknownVariant(t *testing.T) {
	data := `
description: Broken.
type:
  float:
    default: 1.5
`
	var opt Option
	err := yaml.Unmarshal([]byte(data), &opt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized type variant")
}

func TestOptionRejectsUnknownPayloadField(t *testing.T) {
	data := `
description: Broken.
type:
  string:
    default: null
    exmaples: []
`
	var opt Option
	err := yaml.Unmarshal([]byte(data), &opt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exmaples")
}

func TestOptionRejectsScalarType(t *testing.T) {
	data := `
description: Broken.
type: string
`
	var opt Option
	err := yaml.Unmarshal([]byte(data), &opt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapping")
}

func TestTypeSpecMarshalRoundTrip(t *testing.T) {
	def := "text"
	spec := TypeSpec{
		Kind: StringKind,
		String: &StringType{
			Default: &def,
			Enum:    []string{"text", "json"},
		},
	}

	data, err := yaml.Marshal(spec)
	require.NoError(t, err)

	var decoded TypeSpec
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, spec, decoded)
}
