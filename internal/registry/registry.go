// Package registry implements the per-document caption registry: a
// label→figure-number table seeded by the pre-scan (or filled lazily when
// used standalone) plus the caption and reference formatting built on it.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-figref/internal/markup"
	"github.com/goliatone/go-figref/pkg/interfaces"
)

// Registry is the in-memory implementation of interfaces.CaptionRegistry.
// One instance serves exactly one document run. Processing is single-threaded
// per document; the mutex keeps accidental cross-goroutine use from
// corrupting the table rather than licensing concurrent rendering.
type Registry struct {
	mu         sync.RWMutex
	numbers    map[string]int
	registered map[string]struct{}
}

// New constructs a registry, optionally seeded with pre-scanned labels in
// first-appearance order. Seed labels reserve numbers 1..N; a repeated seed
// label fails with ErrDuplicateLabel.
func New(seed ...string) (*Registry, error) {
	r := &Registry{
		numbers:    make(map[string]int, len(seed)),
		registered: make(map[string]struct{}, len(seed)),
	}

	for _, label := range seed {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, dup := r.numbers[label]; dup {
			return nil, fmt.Errorf("%w: pre-scan found %q more than once", ErrDuplicateLabel, label)
		}
		r.numbers[label] = len(r.numbers) + 1
	}

	return r, nil
}

// RegisterCaption assigns (or confirms) the figure number for label and
// returns the anchor plus the rendered caption text. A label the pre-scan
// missed gets the next free number, which may fall outside true document
// order; that divergence is inherent to the static scan and is surfaced, not
// hidden. Registering a label twice fails regardless of the other arguments.
func (r *Registry) RegisterCaption(label, text string, opts interfaces.CaptionOptions) (interfaces.CaptionMarkup, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return interfaces.CaptionMarkup{}, fmt.Errorf("figref: caption label is required")
	}

	r.mu.Lock()
	if _, dup := r.registered[label]; dup {
		r.mu.Unlock()
		return interfaces.CaptionMarkup{}, fmt.Errorf("%w: registration of %q", ErrDuplicateLabel, label)
	}
	number, ok := r.numbers[label]
	if !ok {
		number = len(r.numbers) + 1
		r.numbers[label] = number
	}
	r.registered[label] = struct{}{}
	r.mu.Unlock()

	return interfaces.CaptionMarkup{
		Anchor:      markup.Anchor(label),
		CaptionText: markup.CaptionText(number, text, opts.Center, opts.Color),
	}, nil
}

// LookupReference resolves label to its figure number. The lookup is a pure
// read. A missing label fails with ErrUnknownLabel unless the caller opted
// out of the existence check, in which case the returned text carries an
// unspecified number.
func (r *Registry) LookupReference(label string, opts interfaces.ReferenceOptions) (string, error) {
	label = strings.TrimSpace(label)

	r.mu.RLock()
	number, ok := r.numbers[label]
	r.mu.RUnlock()

	if !ok && !opts.SkipExistsCheck {
		return "", fmt.Errorf("%w: reference to %q", ErrUnknownLabel, label)
	}

	if opts.Hyperlink {
		return markup.ReferenceLink(label, number), nil
	}
	return markup.ReferenceText(number), nil
}

// DumpAll returns a snapshot copy of the current label→number table.
func (r *Registry) DumpAll() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int, len(r.numbers))
	for label, number := range r.numbers {
		out[label] = number
	}
	return out
}

// Ensure Registry implements interfaces.CaptionRegistry.
var _ interfaces.CaptionRegistry = (*Registry)(nil)
