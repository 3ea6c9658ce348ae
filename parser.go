package figref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-figref/pkg/interfaces"
)

// placeholderFormat is the marker spliced into content while directives are
// rendered out of band. The nonce is fresh per Extract call so author content
// containing a literal marker cannot hijack the splice.
const placeholderFormat = "<!-- figref:%s:%d -->"

var (
	directiveTagPattern = regexp.MustCompile(`\{\{<\s*([A-Za-z][\w-]*)\b([^>]*?)>\}\}`)
	// paramPattern tokenises directive arguments: named parameters with
	// quoted or bare values, then quoted or bare positional arguments.
	paramPattern = regexp.MustCompile(`([A-Za-z][\w-]*)\s*=\s*(?:"([^"]*)"|(\S+))|"([^"]*)"|(\S+)`)
)

// Parser extracts figref directive invocations ({{< name args >}}) from
// content. Tags whose name is not in the recognised set pass through
// untouched so documents can mix figref directives with a host's own
// shortcodes. All figref directives are self-closing.
type Parser struct {
	recognized map[string]struct{}
}

// NewParser creates a parser recognising the supplied directive names.
func NewParser(names ...string) *Parser {
	recognized := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			recognized[name] = struct{}{}
		}
	}
	return &Parser{recognized: recognized}
}

// Parse returns the list of parsed directives in the content.
func (p *Parser) Parse(content string) ([]interfaces.ParsedDirective, error) {
	_, directives, err := p.Extract(content)
	return directives, err
}

// Extract replaces recognised directives with placeholders and returns both
// the transformed content and the extracted invocations in source order.
func (p *Parser) Extract(content string) (string, []interfaces.ParsedDirective, error) {
	var (
		out        strings.Builder
		directives []interfaces.ParsedDirective
		position   int
	)
	nonce := uuid.NewString()

	for position < len(content) {
		loc := directiveTagPattern.FindStringSubmatchIndex(content[position:])
		if loc == nil {
			out.WriteString(content[position:])
			break
		}

		tagStart := position + loc[0]
		tagEnd := position + loc[1]
		name := content[position+loc[2] : position+loc[3]]

		out.WriteString(content[position:tagStart])

		if _, ok := p.recognized[name]; !ok {
			out.WriteString(content[tagStart:tagEnd])
			position = tagEnd
			continue
		}

		rawArgs := ""
		if loc[4] >= 0 {
			rawArgs = content[position+loc[4] : position+loc[5]]
		}

		placeholder := fmt.Sprintf(placeholderFormat, nonce, len(directives))
		out.WriteString(placeholder)
		directives = append(directives, interfaces.ParsedDirective{
			Name:        name,
			Params:      parseParams(rawArgs),
			Placeholder: placeholder,
		})

		position = tagEnd
	}

	return out.String(), directives, nil
}

// parseParams splits raw argument text into named and positional parameters.
// Positional arguments are keyed "param1", "param2", … in order; the
// directive schema maps them onto names later.
func parseParams(raw string) map[string]any {
	raw = strings.TrimSpace(raw)
	params := make(map[string]any)
	if raw == "" {
		return params
	}

	positional := 0
	for _, match := range paramPattern.FindAllStringSubmatch(raw, -1) {
		switch {
		case match[1] != "":
			// Quoted values may legitimately be empty, so inspect the raw
			// match rather than the capture to pick the variant.
			if strings.Contains(match[0], `"`) {
				params[match[1]] = match[2]
			} else {
				params[match[1]] = match[3]
			}
		case strings.HasPrefix(match[0], `"`):
			positional++
			params[fmt.Sprintf("param%d", positional)] = match[4]
		default:
			positional++
			params[fmt.Sprintf("param%d", positional)] = match[5]
		}
	}

	return params
}
