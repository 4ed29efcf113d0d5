package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Null means "not applicable to this component", which must stay distinct
// from false ("applicable but unsupported").
func TestTernaryNullVersusFalse(t *testing.T) {
	data := `
logs: true
metrics: null
traces: false
`
	var input Input
	require.NoError(t, yaml.Unmarshal([]byte(data), &input))

	assert.Equal(t, Yes, input.Logs)
	assert.Equal(t, NotApplicable, input.Metrics)
	assert.Equal(t, No, input.Traces)

	assert.True(t, input.Logs.Applicable())
	assert.False(t, input.Metrics.Applicable())
	assert.True(t, input.Traces.Applicable())
	assert.False(t, input.Traces.Bool())
}

func TestTernaryOmittedIsNotApplicable(t *testing.T) {
	var input Input
	require.NoError(t, yaml.Unmarshal([]byte("logs: true"), &input))
	assert.Equal(t, NotApplicable, input.Metrics)
}

func TestTernaryRejectsStrings(t *testing.T) {
	var input Input
	err := yaml.Unmarshal([]byte(`logs: "yes"`), &input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected boolean or null")
}

func TestTernaryMarshal(t *testing.T) {
	input := Input{Logs: Yes, Metrics: NotApplicable, Traces: No}
	data, err := yaml.Marshal(&input)
	require.NoError(t, err)

	var decoded Input
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, input, decoded)
}

func TestEnumMembership(t *testing.T) {
	assert.True(t, AtLeastOnce.Valid())
	assert.False(t, DeliveryGuarantee("exactly_once_ish").Valid())
	assert.True(t, Beta.Valid())
	assert.False(t, DevelopmentStatus("alpha").Valid())
	assert.True(t, StreamEgress.Valid())
	assert.False(t, EgressMethod("trickle").Valid())
	assert.True(t, AvroCodec.Valid())
	assert.False(t, Codec("protobuf").Valid())

	assert.Equal(t, "at_least_once, best_effort, exactly_once", AllowedValues(DeliveryGuarantees))
}
