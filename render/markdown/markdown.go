// Package markdown renders a component record as a documentation page.
package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GeorgeHahn/vector/components"
	"github.com/GeorgeHahn/vector/render"
)

const rendererName = "markdown"

type markdownRenderer struct{}

func (r *markdownRenderer) Name() string {
	return rendererName
}

// Render writes every field of the record so no input is silently dropped.
// Option maps are emitted in sorted order to keep the output deterministic.
func (r *markdownRenderer) Render(meta *components.Metadata) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", meta.Title)
	fmt.Fprintf(&b, "`%s` (%s)\n\n", meta.ID(), meta.Kind)

	writeClasses(&b, meta.Classes)
	writeFeatures(&b, meta.Features)
	writeSupport(&b, meta.Support)

	b.WriteString("## Configuration\n\n")
	if len(meta.Configuration) == 0 {
		b.WriteString("This component has no configuration options.\n\n")
	} else {
		writeOptions(&b, meta.Configuration, 0)
	}

	if meta.Input != nil {
		b.WriteString("## Input\n\n")
		fmt.Fprintf(&b, "- logs: %s\n", meta.Input.Logs)
		fmt.Fprintf(&b, "- metrics: %s\n", meta.Input.Metrics)
		fmt.Fprintf(&b, "- traces: %s\n\n", meta.Input.Traces)
	}

	if meta.Output != nil {
		b.WriteString("## Output Metrics\n\n")
		for _, name := range sortedKeys(meta.Output.Metrics) {
			spec := meta.Output.Metrics[name]
			fmt.Fprintf(&b, "- `%s` (%s): %s\n", name, spec.Type, spec.Description)
		}
		b.WriteString("\n")
	}

	if meta.Telemetry != nil {
		b.WriteString("## Telemetry\n\n")
		for _, name := range sortedKeys(meta.Telemetry.Metrics) {
			fmt.Fprintf(&b, "- `%s` -> `%s`\n", name, meta.Telemetry.Metrics[name])
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

func writeClasses(b *strings.Builder, cl components.Classes) {
	b.WriteString("## Classes\n\n")
	fmt.Fprintf(b, "- commonly used: %t\n", cl.CommonlyUsed)
	fmt.Fprintf(b, "- delivery: %s\n", cl.Delivery)
	fmt.Fprintf(b, "- development: %s\n", cl.Development)
	if cl.EgressMethod != "" {
		fmt.Fprintf(b, "- egress method: %s\n", cl.EgressMethod)
	}
	if len(cl.ServiceProviders) > 0 {
		fmt.Fprintf(b, "- service providers: %s\n", strings.Join(cl.ServiceProviders, ", "))
	}
	fmt.Fprintf(b, "- stateful: %t\n\n", cl.Stateful)
}

func writeFeatures(b *strings.Builder, f components.Features) {
	b.WriteString("## Features\n\n")
	fmt.Fprintf(b, "- acknowledgements: %t\n", f.Acknowledgements)
	fmt.Fprintf(b, "- healthcheck: %t\n", f.Healthcheck.Enabled)
	if send := f.Send; send != nil {
		b.WriteString("- send:\n")
		fmt.Fprintf(b, "  - compression: %t", send.Compression.Enabled)
		if send.Compression.Enabled {
			fmt.Fprintf(b, " (default %s, algorithms: %s)",
				send.Compression.Default, strings.Join(send.Compression.Algorithms, ", "))
		}
		b.WriteString("\n")
		fmt.Fprintf(b, "  - encoding: %t", send.Encoding.Enabled)
		if codec := send.Encoding.Codec; codec != nil {
			enum := make([]string, len(codec.Enum))
			for i, c := range codec.Enum {
				enum[i] = string(c)
			}
			fmt.Fprintf(b, " (codecs: %s)", strings.Join(enum, ", "))
		}
		b.WriteString("\n")
		fmt.Fprintf(b, "  - request: %t", send.Request.Enabled)
		if send.Request.DefaultConcurrency > 0 {
			fmt.Fprintf(b, " (concurrency %d)", send.Request.DefaultConcurrency)
		}
		b.WriteString("\n")
		fmt.Fprintf(b, "  - tls: %t (default %t, verify certificate %t, verify hostname %t)\n",
			send.TLS.Enabled, send.TLS.EnabledDefault,
			send.TLS.CanVerifyCertificate, send.TLS.CanVerifyHostname)
		if to := send.To; to != nil {
			fmt.Fprintf(b, "  - to: `%s`\n", to.Service)
			if to.Interface != nil && to.Interface.Socket != nil {
				s := to.Interface.Socket
				fmt.Fprintf(b, "    - socket: %s over %s (ssl %s)",
					s.Direction, strings.Join(s.Protocols, ", "), s.SSL)
				if s.Port != 0 {
					fmt.Fprintf(b, " port %d", s.Port)
				}
				if s.ProtocolURL != "" {
					fmt.Fprintf(b, " see `%s`", s.ProtocolURL)
				}
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\n")
}

func writeSupport(b *strings.Builder, s components.Support) {
	b.WriteString("## Support\n\n")
	writeList(b, "Requirements", s.Requirements)
	writeList(b, "Warnings", s.Warnings)
	writeList(b, "Notices", s.Notices)
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "### %s\n\n", title)
	if len(items) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func writeOptions(b *strings.Builder, opts map[string]*components.Option, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range sortedKeys(opts) {
		opt := opts[name]
		badges := ""
		if opt.Required {
			badges += " required"
		}
		if opt.Common {
			badges += " common"
		}
		fmt.Fprintf(b, "%s- `%s` (%s)%s: %s\n", indent, name, opt.Type.Kind, badges, opt.Description)
		writeTypeDetails(b, opt.Type, indent+"  ")
		// An object with zero sub-options is a valid empty group.
		if nested := opt.Type.Options(); nested != nil {
			writeOptions(b, nested, depth+1)
		}
	}
	if depth == 0 {
		b.WriteString("\n")
	}
}

func writeTypeDetails(b *strings.Builder, t components.TypeSpec, indent string) {
	switch t.Kind {
	case components.StringKind:
		if t.String.Default != nil {
			fmt.Fprintf(b, "%s- default: %q\n", indent, *t.String.Default)
		}
		if len(t.String.Enum) > 0 {
			fmt.Fprintf(b, "%s- enum: %s\n", indent, strings.Join(t.String.Enum, ", "))
		}
		for _, example := range t.String.Examples {
			fmt.Fprintf(b, "%s- example: %q\n", indent, example)
		}
	case components.BoolKind:
		if t.Bool.Default != nil {
			fmt.Fprintf(b, "%s- default: %t\n", indent, *t.Bool.Default)
		}
	case components.UintKind:
		if t.Uint.Default != nil {
			fmt.Fprintf(b, "%s- default: %d\n", indent, *t.Uint.Default)
		}
		if t.Uint.Unit != "" {
			fmt.Fprintf(b, "%s- unit: %s\n", indent, t.Uint.Unit)
		}
		for _, example := range t.Uint.Examples {
			fmt.Fprintf(b, "%s- example: %d\n", indent, example)
		}
	case components.StringsKind:
		if t.Strings.Default != nil {
			fmt.Fprintf(b, "%s- default: [%s]\n", indent, strings.Join(t.Strings.Default, ", "))
		}
		for _, example := range t.Strings.Examples {
			fmt.Fprintf(b, "%s- example: %q\n", indent, example)
		}
	case components.ObjectKind:
		for _, example := range t.Object.Examples {
			fmt.Fprintf(b, "%s- example: %q\n", indent, example)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	render.Register(rendererName, render.RendererConstructorFunc(func() render.Renderer {
		return &markdownRenderer{}
	}))
}
