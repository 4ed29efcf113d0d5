package components

// Metadata is the root record describing one pluggable component. Records are
// authored declaratively, loaded and validated at build time, and never
// mutated afterwards.
type Metadata struct {
	// Kind and Name identify the record inside the catalog.
	Kind Kind   `yaml:"kind" json:"kind"`
	Name string `yaml:"name" json:"name"`

	// Title is the display name, e.g. "Apache Pulsar".
	Title string `yaml:"title" json:"title"`

	Classes       Classes            `yaml:"classes" json:"classes"`
	Features      Features           `yaml:"features" json:"features"`
	Support       Support            `yaml:"support" json:"support"`
	Configuration map[string]*Option `yaml:"configuration" json:"configuration"`

	// Input declares which event types the component accepts. Nil for
	// sources, which have no input.
	Input *Input `yaml:"input,omitempty" json:"input,omitempty"`

	// Output declares the metrics the component emits, addressable by other
	// records through telemetry references.
	Output *Output `yaml:"output,omitempty" json:"output,omitempty"`

	// Telemetry maps metric names to references into another component's
	// declared output metrics.
	Telemetry *Telemetry `yaml:"telemetry,omitempty" json:"telemetry,omitempty"`
}

// ID returns the catalog identity of the record, e.g. "sinks.pulsar".
func (m *Metadata) ID() string {
	return m.Kind.Plural() + "." + m.Name
}

// Classes is the operational classification of a component.
type Classes struct {
	CommonlyUsed     bool              `yaml:"commonly_used" json:"commonly_used"`
	Delivery         DeliveryGuarantee `yaml:"delivery" json:"delivery"`
	Development      DevelopmentStatus `yaml:"development" json:"development"`
	EgressMethod     EgressMethod      `yaml:"egress_method" json:"egress_method"`
	ServiceProviders []string          `yaml:"service_providers,omitempty" json:"service_providers,omitempty"`
	Stateful         bool              `yaml:"stateful" json:"stateful"`
}

// Features describes which capabilities a component supports.
type Features struct {
	Acknowledgements bool         `yaml:"acknowledgements" json:"acknowledgements"`
	Healthcheck      Healthcheck  `yaml:"healthcheck" json:"healthcheck"`
	Send             *SendFeature `yaml:"send,omitempty" json:"send,omitempty"`
}

// Healthcheck declares whether the component performs a startup health probe.
type Healthcheck struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// SendFeature describes how a sink transmits events to its target service.
type SendFeature struct {
	Compression Compression `yaml:"compression" json:"compression"`
	Encoding    Encoding    `yaml:"encoding" json:"encoding"`
	Request     Request     `yaml:"request" json:"request"`
	TLS         TLS         `yaml:"tls" json:"tls"`
	To          *Target     `yaml:"to,omitempty" json:"to,omitempty"`
}

// Compression declares payload compression support.
type Compression struct {
	Enabled    bool     `yaml:"enabled" json:"enabled"`
	Default    string   `yaml:"default,omitempty" json:"default,omitempty"`
	Algorithms []string `yaml:"algorithms,omitempty" json:"algorithms,omitempty"`
}

// Encoding declares payload encoding support.
type Encoding struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Codec   *CodecSupport `yaml:"codec,omitempty" json:"codec,omitempty"`
}

// CodecSupport constrains the codecs a component can encode with.
type CodecSupport struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	Default Codec   `yaml:"default,omitempty" json:"default,omitempty"`
	Enum    []Codec `yaml:"enum" json:"enum"`
}

// Request declares request-shaping support for the send path.
type Request struct {
	Enabled            bool `yaml:"enabled" json:"enabled"`
	DefaultConcurrency uint `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
}

// TLS declares the transport security posture of the send path.
type TLS struct {
	Enabled              bool `yaml:"enabled" json:"enabled"`
	EnabledDefault       bool `yaml:"enabled_default" json:"enabled_default"`
	CanVerifyCertificate bool `yaml:"can_verify_certificate" json:"can_verify_certificate"`
	CanVerifyHostname    bool `yaml:"can_verify_hostname" json:"can_verify_hostname"`
}

// Target names the external service a sink writes to, as references into the
// shared registry namespaces.
type Target struct {
	// Service is a dotted-path reference, e.g. "services.pulsar".
	Service string `yaml:"service" json:"service"`

	Interface *Interface `yaml:"interface,omitempty" json:"interface,omitempty"`
}

// Interface describes the wire interface used to reach the target service.
type Interface struct {
	Socket *Socket `yaml:"socket,omitempty" json:"socket,omitempty"`
}

// Socket describes direction, protocols, and TLS posture of a socket interface.
type Socket struct {
	// Direction is "incoming" or "outgoing".
	Direction string `yaml:"direction" json:"direction"`

	// Protocols lists wire protocols, e.g. ["tcp"].
	Protocols []string `yaml:"protocols,omitempty" json:"protocols,omitempty"`

	// ProtocolURL is an optional dotted-path reference into the urls
	// namespace, e.g. "urls.pulsar_protocol".
	ProtocolURL string `yaml:"protocol_url,omitempty" json:"protocol_url,omitempty"`

	// Port is the default service port, zero when the service has none.
	Port uint16 `yaml:"port,omitempty" json:"port,omitempty"`

	// SSL is "disabled", "optional", or "required".
	SSL string `yaml:"ssl" json:"ssl"`
}

// SocketDirections and SocketSSLModes are the allowed socket enumerations.
var (
	SocketDirections = []string{"incoming", "outgoing"}
	SocketSSLModes   = []string{"disabled", "optional", "required"}
)

// Support carries free-form operator guidance. Empty lists are valid.
type Support struct {
	Requirements []string `yaml:"requirements" json:"requirements"`
	Warnings     []string `yaml:"warnings" json:"warnings"`
	Notices      []string `yaml:"notices" json:"notices"`
}

// Input declares which event types a component accepts.
type Input struct {
	Logs    Ternary `yaml:"logs" json:"logs"`
	Metrics Ternary `yaml:"metrics" json:"metrics"`
	Traces  Ternary `yaml:"traces" json:"traces"`
}

// Output declares the metrics a component emits.
type Output struct {
	Metrics map[string]*MetricSpec `yaml:"metrics" json:"metrics"`
}

// MetricSpec documents one emitted metric.
type MetricSpec struct {
	// Type is "counter", "gauge", or "histogram".
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description"`
}

// MetricTypes is the allowed metric type enumeration.
var MetricTypes = []string{"counter", "gauge", "histogram"}

// Telemetry maps a component's metric names to dotted-path references into
// another component's output metrics, e.g.
// "components.sources.internal_metrics.output.metrics.encode_errors_total".
type Telemetry struct {
	Metrics map[string]string `yaml:"metrics" json:"metrics"`
}
