package figref

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-figref/pkg/interfaces"
)

// MarkdownOptions configures the goldmark engine used to render processed
// document bodies. Figref itself never parses markdown; conversion is
// delegated wholesale to goldmark after directives have been expanded.
type MarkdownOptions struct {
	// HardWraps renders newlines as <br> elements.
	HardWraps bool
	// Extensions selects goldmark extensions by name; unknown names are
	// ignored. Empty selects GFM, linkify, and task lists.
	Extensions []string
	// Safe suppresses raw HTML in the output. Figref output is raw HTML, so
	// enabling this strips the rendered figures; it exists for callers that
	// post-process fragments separately.
	Safe bool
}

// NewMarkdownConverter builds a converter around a goldmark engine configured
// from the supplied options.
func NewMarkdownConverter(opts MarkdownOptions) interfaces.MarkdownConverter {
	return &goldmarkConverter{engine: newGoldmarkEngine(opts)}
}

type goldmarkConverter struct {
	engine goldmark.Markdown
}

// Convert renders markdown into HTML. The engine is stateless, so a single
// converter can be reused across documents.
func (c *goldmarkConverter) Convert(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts MarkdownOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	if !opts.Safe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
