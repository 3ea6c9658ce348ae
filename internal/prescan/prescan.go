// Package prescan implements the static pre-pass over raw document source
// that determines figure numbering before rendering begins. The scan is a
// line-oriented regular-expression pass: it sees only literal labels on
// single-line invocations. Labels computed at runtime or invocations spread
// across lines are not detected; the registry assigns those lazily during
// rendering instead.
package prescan

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-figref/internal/registry"
	"github.com/goliatone/go-figref/pkg/interfaces"
)

var (
	// labelParamPattern matches the named label argument of an invocation.
	labelParamPattern = regexp.MustCompile(`\blabel\s*=\s*"([^"]*)"`)
	// positionalLiteralPattern matches a quoted literal that is not the
	// value of a named argument (no "=" immediately before the quote).
	positionalLiteralPattern = regexp.MustCompile(`(?:^|\s)"([^"]*)"`)
)

// Scanner extracts caption labels from raw source in order of first
// appearance. The zero value is not usable; construct with NewScanner.
type Scanner struct {
	invocation *regexp.Regexp
}

// NewScanner builds a scanner recognising invocations of the supplied
// caption-creating directive names. With no names it recognises the built-in
// "figure" and "caption" directives.
func NewScanner(directives ...string) *Scanner {
	if len(directives) == 0 {
		directives = []string{"figure", "caption"}
	}

	quoted := make([]string, 0, len(directives))
	for _, name := range directives {
		if name = strings.TrimSpace(name); name != "" {
			quoted = append(quoted, regexp.QuoteMeta(name))
		}
	}

	return &Scanner{
		invocation: regexp.MustCompile(`\{\{<\s*(?:` + strings.Join(quoted, "|") + `)\b([^>]*)>\}\}`),
	}
}

// Scan reads source line by line and returns every extracted label in order
// of first appearance. A label appearing more than once fails with
// ErrDuplicateLabel naming the label. The scan never mutates the source.
func (s *Scanner) Scan(source string) ([]string, error) {
	var labels []string
	seen := make(map[string]struct{})

	sc := bufio.NewScanner(strings.NewReader(source))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := sc.Text()
		for _, match := range s.invocation.FindAllStringSubmatch(line, -1) {
			label := extractLabel(match[1])
			if label == "" {
				// Unlabelled figure, or a label the static scan cannot see.
				continue
			}
			if _, dup := seen[label]; dup {
				return nil, fmt.Errorf("%w: pre-scan found %q more than once", registry.ErrDuplicateLabel, label)
			}
			seen[label] = struct{}{}
			labels = append(labels, label)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("figref: pre-scan read: %w", err)
	}

	return labels, nil
}

// extractLabel pulls the label out of the raw argument text: the label="…"
// named argument wins, otherwise the first positional quoted literal.
func extractLabel(args string) string {
	if match := labelParamPattern.FindStringSubmatch(args); match != nil {
		return strings.TrimSpace(match[1])
	}
	if match := positionalLiteralPattern.FindStringSubmatch(args); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// Ensure Scanner implements interfaces.LabelScanner.
var _ interfaces.LabelScanner = (*Scanner)(nil)
