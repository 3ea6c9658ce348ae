// Package figref numbers figure captions and resolves textual
// cross-references in markup documents. Labels are assigned sequential
// figure numbers in order of first appearance by a static pre-scan of the
// raw source, so references resolve correctly even when they appear before
// the caption they point at. Rendering then proceeds top to bottom: caption
// directives confirm their pre-scanned number and emit anchor plus caption
// markup, reference directives splice "Figure <N>" text or anchor links.
//
// Duplicate labels and references to unknown labels are fatal: caption
// numbering is a whole-document invariant, so processing aborts on the first
// such error rather than emitting partial output.
package figref

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-figref/internal/document"
	"github.com/goliatone/go-figref/internal/logging"
	"github.com/goliatone/go-figref/internal/prescan"
	"github.com/goliatone/go-figref/internal/registry"
	"github.com/goliatone/go-figref/pkg/interfaces"
)

// Service orchestrates the two passes over a document: the label pre-scan
// and the directive-rendering pass. A Service is safe to reuse across
// documents; each Process call owns a fresh registry.
type Service struct {
	scanner      interfaces.LabelScanner
	parser       interfaces.DirectiveParser
	validator    *Validator
	definitions  map[string]DirectiveDefinition
	order        []string
	markdown     interfaces.MarkdownConverter
	defaultColor string
	logger       interfaces.Logger
	metrics      interfaces.FigureMetrics
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLoggerProvider derives the service logger from a provider, attaching
// the module field the way every figref logger carries it. Combine with
// NewLoggerProvider for go-logger backed output.
func WithLoggerProvider(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *Service) {
		if provider != nil {
			s.logger = logging.ModuleLogger(provider, "figref")
		}
	}
}

// WithMetrics wires the metrics recorder used for telemetry.
func WithMetrics(metrics interfaces.FigureMetrics) ServiceOption {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithScanner overrides the label pre-scanner.
func WithScanner(scanner interfaces.LabelScanner) ServiceOption {
	return func(s *Service) {
		if scanner != nil {
			s.scanner = scanner
		}
	}
}

// WithParser overrides the directive parser.
func WithParser(parser interfaces.DirectiveParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithMarkdown attaches a markdown converter applied by ProcessDocument
// after directive expansion.
func WithMarkdown(converter interfaces.MarkdownConverter) ServiceOption {
	return func(s *Service) {
		if converter != nil {
			s.markdown = converter
		}
	}
}

// WithColor overrides the caption font color used when an invocation does
// not set one.
func WithColor(color string) ServiceOption {
	return func(s *Service) {
		s.defaultColor = strings.TrimSpace(color)
	}
}

// WithDirectives registers additional directive definitions alongside the
// built-in catalogue. Definitions are validated in NewService.
func WithDirectives(defs ...DirectiveDefinition) ServiceOption {
	return func(s *Service) {
		for _, def := range defs {
			if _, exists := s.definitions[def.Name]; !exists {
				s.order = append(s.order, def.Name)
			}
			s.definitions[def.Name] = def
		}
	}
}

// NewService constructs a figref service with the built-in figure, caption,
// and ref directives.
func NewService(opts ...ServiceOption) (*Service, error) {
	s := &Service{
		validator:   NewValidator(),
		definitions: make(map[string]DirectiveDefinition),
		logger:      logging.NoOp(),
		metrics:     NoOpMetrics(),
	}

	for _, def := range BuiltInDefinitions() {
		s.definitions[def.Name] = def
		s.order = append(s.order, def.Name)
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, name := range s.order {
		if err := s.validator.ValidateDefinition(s.definitions[name]); err != nil {
			return nil, err
		}
	}

	if s.scanner == nil {
		s.scanner = prescan.NewScanner(s.captionDirectiveNames()...)
	}
	if s.parser == nil {
		s.parser = NewParser(s.order...)
	}

	return s, nil
}

// NewRegistry constructs a standalone caption registry, optionally seeded
// with pre-scanned labels in first-appearance order. Hosts that drive their
// own rendering loop can call RegisterCaption and LookupReference on it
// directly.
func NewRegistry(seed ...string) (interfaces.CaptionRegistry, error) {
	return registry.New(seed...)
}

// NewScanner constructs a standalone label pre-scanner for the supplied
// caption-creating directive names (the built-ins when empty).
func NewScanner(directives ...string) interfaces.LabelScanner {
	return prescan.NewScanner(directives...)
}

// RenderedDocument is the result of ProcessDocument.
type RenderedDocument struct {
	// Document is the input document with Body untouched.
	Document *interfaces.Document
	// Output is the body after directive expansion.
	Output string
	// HTML is the goldmark rendering of Output when a converter is
	// configured; empty otherwise.
	HTML template.HTML
	// Figures is the final label→number table for the run.
	Figures map[string]int
}

// Process runs both passes over the supplied source and returns the content
// with every recognised directive replaced by its rendered markup. The first
// duplicate label, unknown reference, or malformed invocation aborts the run.
func (s *Service) Process(ctx context.Context, source string) (string, error) {
	output, _, err := s.process(ctx, source)
	return output, err
}

// ProcessDocument strips frontmatter off the document body, runs both passes
// over the remaining markup, and, when a markdown converter is configured,
// renders the expanded body to HTML. Parsed frontmatter is attached to the
// document unless the caller already populated it.
func (s *Service) ProcessDocument(ctx context.Context, doc *interfaces.Document) (*RenderedDocument, error) {
	if doc == nil {
		return nil, fmt.Errorf("figref: document is required")
	}

	meta, body, err := document.Parse(doc.Body)
	if err != nil {
		return nil, wrapParseError(err)
	}
	if doc.FrontMatter.Raw == nil {
		doc.FrontMatter = meta
	}

	output, reg, err := s.process(ctx, string(body))
	if err != nil {
		return nil, err
	}

	rendered := &RenderedDocument{
		Document: doc,
		Output:   output,
		Figures:  reg.DumpAll(),
	}

	if s.markdown != nil {
		converted, err := s.markdown.Convert([]byte(output))
		if err != nil {
			return nil, err
		}
		rendered.HTML = template.HTML(converted)
	}

	return rendered, nil
}

func (s *Service) process(ctx context.Context, source string) (string, interfaces.CaptionRegistry, error) {
	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "figref.process",
		"run_id":    uuid.NewString(),
	})

	labels, err := s.scanner.Scan(source)
	if err != nil {
		logging.WithFields(logger, map[string]any{
			"error": err,
		}).Error("figref.service.prescan_failed")
		return "", nil, wrapScanError(err)
	}

	reg, err := registry.New(labels...)
	if err != nil {
		return "", nil, wrapScanError(err)
	}

	if strings.TrimSpace(source) == "" {
		return source, reg, nil
	}

	transformed, directives, err := s.parser.Extract(source)
	if err != nil {
		logging.WithFields(logger, map[string]any{
			"error": err,
		}).Error("figref.service.parse_failed")
		return "", nil, wrapParseError(err)
	}

	output := transformed
	for idx, directive := range directives {
		rendered, err := s.render(reg, directive)

		entryFields := map[string]any{
			"directive": directive.Name,
			"index":     idx,
		}
		if err != nil {
			s.metrics.IncrementRenderError(directive.Name)
			entryFields["error"] = err
			logging.WithFields(logger, entryFields).Error("figref.service.render_failed")
			return "", nil, wrapRenderError(err)
		}
		logging.WithFields(logger, entryFields).Debug("figref.service.render_succeeded")

		output = strings.Replace(output, directive.Placeholder, string(rendered), 1)
	}

	logging.WithFields(logger, map[string]any{
		"directives": len(directives),
		"figures":    len(labels),
	}).Debug("figref.service.process_completed")
	return output, reg, nil
}

func (s *Service) render(reg interfaces.CaptionRegistry, directive interfaces.ParsedDirective) (template.HTML, error) {
	def, ok := s.definitions[directive.Name]
	if !ok {
		return "", fmt.Errorf("figref: unknown directive %q", directive.Name)
	}

	params, err := s.validator.CoerceParams(def, directive.Params)
	if err != nil {
		return "", err
	}

	if s.defaultColor != "" {
		if color, ok := params["color"].(string); ok && color == "" {
			params["color"] = s.defaultColor
		}
	}

	start := time.Now()
	rendered, err := def.Handler(reg, params)
	s.metrics.ObserveRenderDuration(directive.Name, time.Since(start))
	if err != nil {
		return "", err
	}
	return rendered, nil
}

func (s *Service) captionDirectiveNames() []string {
	var names []string
	for _, name := range s.order {
		if s.definitions[name].CreatesCaption {
			names = append(names, name)
		}
	}
	return names
}

func (s *Service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}
