package interfaces

import (
	"html/template"
	"time"
)

// CaptionRegistry maintains the label→figure-number table for a single
// document run and formats caption and reference markup from it. One registry
// instance serves exactly one document; entries are never removed during a
// run and nothing is persisted afterwards.
type CaptionRegistry interface {
	// RegisterCaption assigns (or confirms, when the table was seeded by a
	// pre-scan) the figure number for label and returns the anchor and
	// caption-text fragments. Registering the same label twice returns a
	// duplicate-label error regardless of the remaining arguments.
	RegisterCaption(label, text string, opts CaptionOptions) (CaptionMarkup, error)

	// LookupReference resolves label to its figure number and returns the
	// textual reference, optionally wrapped in a link to the caption anchor.
	// A label the registry has never seen fails with an unknown-label error
	// unless the caller opted out of the existence check.
	LookupReference(label string, opts ReferenceOptions) (string, error)

	// DumpAll returns a snapshot copy of the current label→number table.
	DumpAll() map[string]int
}

// CaptionOptions carries the formatting switches accepted by RegisterCaption.
type CaptionOptions struct {
	// Center prepends inline-block centering styles to the caption span.
	Center bool
	// Color sets the caption font color; empty selects the default ("black").
	Color string
}

// ReferenceOptions carries the switches accepted by LookupReference.
type ReferenceOptions struct {
	// Hyperlink wraps the reference text in a link to the caption anchor.
	Hyperlink bool
	// SkipExistsCheck disables the unknown-label failure. The formatted
	// output for a missing label is unspecified; this is an escape hatch,
	// not a recommended path.
	SkipExistsCheck bool
}

// CaptionMarkup is the structured result of a caption registration: an empty
// named-anchor element keyed by the label, and the rendered caption text. The
// pair is transient; the registry retains only the assigned number.
type CaptionMarkup struct {
	Anchor      template.HTML
	CaptionText template.HTML
}

// Inline concatenates the anchor and caption-text fragments for direct
// placement in flowing text.
func (m CaptionMarkup) Inline() template.HTML {
	return m.Anchor + m.CaptionText
}

// LabelScanner performs the static pre-pass over raw document source,
// returning caption labels in order of first appearance. Implementations are
// best-effort text scans: invocations spread across lines or labels computed
// at runtime are not detected.
type LabelScanner interface {
	Scan(source string) ([]string, error)
}

// DirectiveParser extracts figref directive invocations from content.
type DirectiveParser interface {
	Parse(content string) ([]ParsedDirective, error)
	Extract(content string) (placeholders string, directives []ParsedDirective, err error)
}

// ParsedDirective represents one invocation discovered by the parser layer.
// Positional arguments are keyed "param1", "param2", … until the directive
// schema maps them onto names. Placeholder is the marker Extract left in the
// transformed content where this invocation's rendered output belongs.
type ParsedDirective struct {
	Name        string
	Params      map[string]any
	Placeholder string
}

// FigureMetrics records directive rendering telemetry. Implementations must
// tolerate concurrent use when the host shares one instance across documents.
type FigureMetrics interface {
	ObserveRenderDuration(directive string, d time.Duration)
	IncrementRenderError(directive string)
}

// MarkdownConverter renders processed document bodies to HTML. The figref
// service treats this as an opaque delegation boundary; it never parses
// markdown itself.
type MarkdownConverter interface {
	Convert(source []byte) ([]byte, error)
}
