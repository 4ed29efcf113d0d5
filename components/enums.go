package components

import "strings"

// Kind is defined for each component category.
type Kind string

const (
	// Source components ingest events from external systems.
	Source Kind = "source"

	// Transform components modify events in flight.
	Transform Kind = "transform"

	// Sink components write events to external systems.
	Sink Kind = "sink"
)

// Kinds lists every recognized component kind.
var Kinds = []Kind{Source, Transform, Sink}

// Valid reports whether the kind is one of the recognized categories.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Plural returns the catalog namespace segment for the kind, e.g. "sinks".
func (k Kind) Plural() string {
	return string(k) + "s"
}

// DeliveryGuarantee is the delivery contract a component offers.
type DeliveryGuarantee string

const (
	// AtLeastOnce delivery may duplicate events but never drops them.
	AtLeastOnce DeliveryGuarantee = "at_least_once"

	// BestEffort delivery may drop events under failure.
	BestEffort DeliveryGuarantee = "best_effort"

	// ExactlyOnce delivery neither drops nor duplicates events.
	ExactlyOnce DeliveryGuarantee = "exactly_once"
)

// DeliveryGuarantees lists the allowed delivery values.
var DeliveryGuarantees = []DeliveryGuarantee{AtLeastOnce, BestEffort, ExactlyOnce}

// Valid reports membership in the fixed delivery enumeration.
func (d DeliveryGuarantee) Valid() bool {
	for _, known := range DeliveryGuarantees {
		if d == known {
			return true
		}
	}
	return false
}

// DevelopmentStatus is the maturity classification of a component.
type DevelopmentStatus string

const (
	// Beta components may change incompatibly between releases.
	Beta DevelopmentStatus = "beta"

	// Stable components honor compatibility guarantees.
	Stable DevelopmentStatus = "stable"

	// Deprecated components are scheduled for removal.
	Deprecated DevelopmentStatus = "deprecated"
)

// DevelopmentStatuses lists the allowed development values.
var DevelopmentStatuses = []DevelopmentStatus{Beta, Stable, Deprecated}

// Valid reports membership in the fixed development enumeration.
func (d DevelopmentStatus) Valid() bool {
	for _, known := range DevelopmentStatuses {
		if d == known {
			return true
		}
	}
	return false
}

// EgressMethod describes how a sink forwards events downstream.
type EgressMethod string

const (
	// StreamEgress forwards each event individually.
	StreamEgress EgressMethod = "stream"

	// BatchEgress accumulates events and forwards them in groups.
	BatchEgress EgressMethod = "batch"

	// DynamicEgress selects stream or batch at runtime.
	DynamicEgress EgressMethod = "dynamic"
)

// EgressMethods lists the allowed egress_method values.
var EgressMethods = []EgressMethod{StreamEgress, BatchEgress, DynamicEgress}

// Valid reports membership in the fixed egress enumeration.
func (e EgressMethod) Valid() bool {
	for _, known := range EgressMethods {
		if e == known {
			return true
		}
	}
	return false
}

// Codec is an encoding scheme applied to outgoing events.
type Codec string

const (
	// TextCodec emits the raw message field.
	TextCodec Codec = "text"

	// JSONCodec emits the full event serialized as JSON.
	JSONCodec Codec = "json"

	// AvroCodec emits the event serialized against an Avro schema.
	AvroCodec Codec = "avro"
)

// Codecs lists the allowed codec values.
var Codecs = []Codec{TextCodec, JSONCodec, AvroCodec}

// Valid reports membership in the fixed codec enumeration.
func (c Codec) Valid() bool {
	for _, known := range Codecs {
		if c == known {
			return true
		}
	}
	return false
}

// AllowedValues formats an enumeration for diagnostic messages.
func AllowedValues[T ~string](values []T) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = string(v)
	}
	return strings.Join(strs, ", ")
}
