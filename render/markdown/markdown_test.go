package markdown

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeorgeHahn/vector/catalog"
	"github.com/GeorgeHahn/vector/components"
	"github.com/GeorgeHahn/vector/render"
)

const pulsarSinkDoc = `
kind: sink
name: pulsar
title: Apache Pulsar
classes:
  commonly_used: false
  delivery: at_least_once
  development: beta
  egress_method: stream
  service_providers: ["AWS", "Self-hosted"]
  stateful: false
features:
  acknowledgements: true
  healthcheck:
    enabled: true
  send:
    compression:
      enabled: false
    encoding:
      enabled: true
      codec:
        enabled: true
        default: text
        enum: [text, json, avro]
    request:
      enabled: false
    tls:
      enabled: true
      enabled_default: false
      can_verify_certificate: true
      can_verify_hostname: false
    to:
      service: services.pulsar
      interface:
        socket:
          direction: outgoing
          protocols: [tcp]
          protocol_url: urls.pulsar_protocol
          ssl: optional
support:
  requirements: []
  warnings: ["Beta quality."]
  notices: []
configuration:
  endpoint:
    common: true
    description: Endpoint to which the sink connects.
    required: true
    type:
      string:
        default: null
        examples: ["pulsar://127.0.0.1:6650"]
  oauth2:
    common: false
    description: Options for OAuth2 authentication.
    required: false
    type:
      object:
        options:
          audience:
            common: false
            description: The OAuth2 audience.
            required: false
            type:
              string:
                default: null
                examples: []
input:
  logs: true
  metrics: null
  traces: false
telemetry:
  metrics:
    encode_errors_total: components.sources.internal_metrics.output.metrics.encode_errors_total
`

func loadPulsar(t *testing.T) *components.Metadata {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cat, parseErrors := catalog.LoadDocuments(logger, []catalog.Document{
		{Name: "sinks/pulsar.yml", Format: catalog.YAMLFormat, Data: []byte(pulsarSinkDoc)},
	})
	require.Empty(t, parseErrors)
	meta, ok := cat.Component(components.Sink, "pulsar")
	require.True(t, ok)
	return meta
}

// Every input field must appear in the rendered output; no silent drops.
func TestRenderRoundTrip(t *testing.T) {
	out, err := render.Render(loadPulsar(t), "markdown")
	require.NoError(t, err)
	doc := string(out)

	for _, expected := range []string{
		"# Apache Pulsar",
		"`sinks.pulsar` (sink)",
		"delivery: at_least_once",
		"development: beta",
		"egress method: stream",
		"service providers: AWS, Self-hosted",
		"acknowledgements: true",
		"healthcheck: true",
		"codecs: text, json, avro",
		"`services.pulsar`",
		"outgoing over tcp (ssl optional)",
		"`urls.pulsar_protocol`",
		"Beta quality.",
		"`endpoint` (string) required common: Endpoint to which the sink connects.",
		`example: "pulsar://127.0.0.1:6650"`,
		"`oauth2` (object)",
		"`audience` (string)",
		"logs: true",
		"metrics: null",
		"traces: false",
		"`encode_errors_total` -> `components.sources.internal_metrics.output.metrics.encode_errors_total`",
	} {
		if !assert.Contains(t, doc, expected) {
			diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:       difflib.SplitLines(expected),
				B:       difflib.SplitLines(doc),
				Context: 2,
			})
			t.Logf("missing %q:\n%s", expected, diff)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	meta := loadPulsar(t)
	first, err := render.Render(meta, "markdown")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := render.Render(meta, "markdown")
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestRenderEmptyObjectGroup(t *testing.T) {
	meta := &components.Metadata{
		Kind:  components.Sink,
		Name:  "blackhole",
		Title: "Blackhole",
		Configuration: map[string]*components.Option{
			"buffer": {
				Description: "Buffer tuning options.",
				Type: components.TypeSpec{
					Kind:   components.ObjectKind,
					Object: &components.ObjectType{Options: map[string]*components.Option{}},
				},
			},
		},
	}
	out, err := render.Render(meta, "markdown")
	require.NoError(t, err)
	assert.Contains(t, string(out), "`buffer` (object): Buffer tuning options.")
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := render.Render(loadPulsar(t), "asciidoc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Renderer Constructor")
}

func TestRendererName(t *testing.T) {
	constructor, err := render.RendererByName("markdown")
	require.NoError(t, err)
	assert.Equal(t, "markdown", constructor.New().Name())
	assert.False(t, strings.Contains(constructor.New().Name(), " "))
}
