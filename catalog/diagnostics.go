package catalog

import (
	"fmt"
	"sort"
)

// ParseError reports a structurally malformed document. It aborts loading of
// that document only; unrelated documents continue to load.
type ParseError struct {
	// Document is the file path or document name that failed to parse.
	Document string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Document, e.Err)
}

// Unwrap exposes the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// DiagnosticKind partitions validation findings by the rule family violated.
type DiagnosticKind string

const (
	// ValidationDiagnostic is a semantic rule violation: bad enum value,
	// required+default conflict, missing description.
	ValidationDiagnostic DiagnosticKind = "validation"

	// ReferenceDiagnostic is a dotted-path cross-reference that does not
	// resolve in the catalog.
	ReferenceDiagnostic DiagnosticKind = "reference"
)

// Diagnostic is a single validation finding with enough context to fix the
// source document.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`

	// Document identifies the record, e.g. "sinks.pulsar".
	Document string `json:"document"`

	// Path is the field path inside the document, e.g. "configuration.endpoint".
	Path string `json:"path"`

	Message string `json:"message"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Document, d.Path, d.Message)
}

// Diagnostics is the complete, deterministically ordered list of findings for
// a catalog. Validation collects every violation rather than failing fast.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "no diagnostics"
	case 1:
		return ds[0].Error()
	}
	out := fmt.Sprintf("found %d problems:", len(ds))
	for _, d := range ds {
		out += "\n  " + d.Error()
	}
	return out
}

// Sort orders diagnostics by document id, then field path, then message, so
// repeated validation of the same catalog produces identical output.
func (ds Diagnostics) Sort() {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].Document != ds[j].Document {
			return ds[i].Document < ds[j].Document
		}
		if ds[i].Path != ds[j].Path {
			return ds[i].Path < ds[j].Path
		}
		return ds[i].Message < ds[j].Message
	})
}

// NotFoundError is returned by Resolve when a dotted path has no catalog entry.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no catalog entry for path %q", e.Path)
}
