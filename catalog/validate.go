package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GeorgeHahn/vector/components"
	"github.com/GeorgeHahn/vector/util/metrics"
)

// Validate checks every record for semantic and referential correctness and
// returns the complete list of findings. It never fails fast: a single
// invalid document yields all of its diagnostics at once. Validation is pure
// and deterministic, so re-validating an already-valid catalog yields the
// same (empty) list.
func (c *Catalog) Validate() Diagnostics {
	var diags Diagnostics
	for _, meta := range c.Components() {
		v := &recordValidator{catalog: c, meta: meta}
		v.run()
		diags = append(diags, v.diags...)
	}
	diags = append(diags, c.registryDiagnostics()...)
	diags.Sort()
	metrics.ValidationErrors.Set(float64(len(diags)))
	return diags
}

// recordValidator accumulates diagnostics for one record.
type recordValidator struct {
	catalog *Catalog
	meta    *components.Metadata
	diags   Diagnostics
}

func (v *recordValidator) invalid(path, format string, args ...interface{}) {
	v.diags = append(v.diags, Diagnostic{
		Kind:     ValidationDiagnostic,
		Document: v.meta.ID(),
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *recordValidator) unresolved(path, ref string) {
	v.diags = append(v.diags, Diagnostic{
		Kind:     ReferenceDiagnostic,
		Document: v.meta.ID(),
		Path:     path,
		Message:  fmt.Sprintf("unresolved reference %q", ref),
	})
}

func (v *recordValidator) run() {
	m := v.meta

	if m.Title == "" {
		v.invalid("title", "title is required")
	}

	v.classes()
	v.features()

	if m.Configuration == nil {
		v.invalid("configuration", "configuration is required")
	} else {
		v.options("configuration", m.Configuration)
	}

	// Sinks and transforms consume events; sources and transforms produce
	// them. Each side must be declared.
	switch m.Kind {
	case components.Sink:
		if m.Input == nil {
			v.invalid("input", "sink records must declare input capabilities")
		}
	case components.Source:
		if m.Output == nil {
			v.invalid("output", "source records must declare output metrics")
		}
	case components.Transform:
		if m.Input == nil {
			v.invalid("input", "transform records must declare input capabilities")
		}
		if m.Output == nil {
			v.invalid("output", "transform records must declare output metrics")
		}
	}

	v.output()
	v.telemetry()
}

func (v *recordValidator) classes() {
	cl := v.meta.Classes
	if !cl.Delivery.Valid() {
		v.invalid("classes.delivery", "invalid value %q, allowed: %s",
			cl.Delivery, components.AllowedValues(components.DeliveryGuarantees))
	}
	if !cl.Development.Valid() {
		v.invalid("classes.development", "invalid value %q, allowed: %s",
			cl.Development, components.AllowedValues(components.DevelopmentStatuses))
	}
	if v.meta.Kind == components.Sink && !cl.EgressMethod.Valid() {
		v.invalid("classes.egress_method", "invalid value %q, allowed: %s",
			cl.EgressMethod, components.AllowedValues(components.EgressMethods))
	}
}

func (v *recordValidator) features() {
	send := v.meta.Features.Send
	if send == nil {
		return
	}

	if codec := send.Encoding.Codec; codec != nil {
		if len(codec.Enum) == 0 {
			v.invalid("features.send.encoding.codec.enum", "codec enumeration must not be empty")
		}
		for _, c := range codec.Enum {
			if !c.Valid() {
				v.invalid("features.send.encoding.codec.enum", "invalid codec %q, allowed: %s",
					c, components.AllowedValues(components.Codecs))
			}
		}
		if codec.Default != "" && !containsCodec(codec.Enum, codec.Default) {
			v.invalid("features.send.encoding.codec.default",
				"default %q is not in the declared enum", codec.Default)
		}
	}

	if to := send.To; to != nil {
		if to.Service == "" {
			v.invalid("features.send.to.service", "target service reference is required")
		} else if !strings.HasPrefix(to.Service, "services.") {
			v.invalid("features.send.to.service", "reference %q must be in the services namespace", to.Service)
		} else if _, err := v.catalog.Resolve(to.Service); err != nil {
			v.unresolved("features.send.to.service", to.Service)
		}

		if to.Interface != nil && to.Interface.Socket != nil {
			v.socket(to.Interface.Socket)
		}
	}
}

func (v *recordValidator) socket(s *components.Socket) {
	const base = "features.send.to.interface.socket"
	if !containsString(components.SocketDirections, s.Direction) {
		v.invalid(base+".direction", "invalid value %q, allowed: %s",
			s.Direction, strings.Join(components.SocketDirections, ", "))
	}
	if !containsString(components.SocketSSLModes, s.SSL) {
		v.invalid(base+".ssl", "invalid value %q, allowed: %s",
			s.SSL, strings.Join(components.SocketSSLModes, ", "))
	}
	if s.ProtocolURL != "" {
		if !strings.HasPrefix(s.ProtocolURL, "urls.") {
			v.invalid(base+".protocol_url", "reference %q must be in the urls namespace", s.ProtocolURL)
		} else if _, err := v.catalog.Resolve(s.ProtocolURL); err != nil {
			v.unresolved(base+".protocol_url", s.ProtocolURL)
		}
	}
}

// options walks a (possibly nested) option group in sorted order so
// diagnostics come out deterministic.
func (v *recordValidator) options(prefix string, opts map[string]*components.Option) {
	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		opt := opts[name]
		path := prefix + "." + name
		if opt == nil {
			v.invalid(path, "option must not be empty")
			continue
		}
		if opt.Description == "" {
			v.invalid(path, "description is required")
		}
		if opt.Required && opt.Type.HasDefault() {
			v.invalid(path, "a required option must not declare a default")
		}
		if enum := opt.Type.Enum(); len(enum) > 0 {
			st := opt.Type.String
			if st.Default != nil && !containsString(enum, *st.Default) {
				v.invalid(path, "default %q is not in the declared enum (%s)",
					*st.Default, strings.Join(enum, ", "))
			}
			for _, example := range st.Examples {
				if !containsString(enum, example) {
					v.invalid(path, "example %q is not in the declared enum (%s)",
						example, strings.Join(enum, ", "))
				}
			}
		}
		// A nested object with zero sub-options is a valid empty group.
		if nested := opt.Type.Options(); nested != nil {
			v.options(path+".options", nested)
		}
	}
}

func (v *recordValidator) output() {
	out := v.meta.Output
	if out == nil {
		return
	}
	names := make([]string, 0, len(out.Metrics))
	for name := range out.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec := out.Metrics[name]
		path := "output.metrics." + name
		if spec == nil {
			v.invalid(path, "metric spec must not be empty")
			continue
		}
		if !containsString(components.MetricTypes, spec.Type) {
			v.invalid(path+".type", "invalid value %q, allowed: %s",
				spec.Type, strings.Join(components.MetricTypes, ", "))
		}
		if spec.Description == "" {
			v.invalid(path+".description", "description is required")
		}
	}
}

func (v *recordValidator) telemetry() {
	tel := v.meta.Telemetry
	if tel == nil {
		return
	}
	names := make([]string, 0, len(tel.Metrics))
	for name := range tel.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := tel.Metrics[name]
		path := "telemetry.metrics." + name
		if !strings.HasPrefix(ref, "components.") {
			v.invalid(path, "reference %q must be in the components namespace", ref)
			continue
		}
		if _, err := v.catalog.Resolve(ref); err != nil {
			v.unresolved(path, ref)
		}
	}
}

// registryDiagnostics checks references internal to the registry namespaces.
// A service url may point into the urls namespace and must resolve like any
// other reference.
func (c *Catalog) registryDiagnostics() Diagnostics {
	var diags Diagnostics
	keys := make([]string, 0, len(c.registry))
	for key := range c.registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := c.registry[key]
		if !strings.HasSuffix(key, ".url") || !strings.HasPrefix(value, "urls.") {
			continue
		}
		if _, err := c.Resolve(value); err != nil {
			diags = append(diags, Diagnostic{
				Kind:     ReferenceDiagnostic,
				Document: strings.TrimSuffix(key, ".url"),
				Path:     "url",
				Message:  fmt.Sprintf("unresolved reference %q", value),
			})
		}
	}
	return diags
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsCodec(haystack []components.Codec, needle components.Codec) bool {
	for _, c := range haystack {
		if c == needle {
			return true
		}
	}
	return false
}
