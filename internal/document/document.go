// Package document turns raw markup files into figref documents: YAML/TOML
// frontmatter is split off the body so the figref passes only ever see the
// markup the author wrote.
package document

import (
	"bytes"
	"fmt"
	"io/fs"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-figref/pkg/interfaces"
)

// Parse extracts metadata and body content from the provided source bytes.
// It returns the structured frontmatter, the body without delimiters, and
// any error encountered. Sources without a frontmatter block come back with
// an empty FrontMatter and the source unchanged.
func Parse(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// Build assembles an interfaces.Document from the supplied file path, raw
// content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func Build(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := Parse(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

// Load reads and parses a single document from the provided filesystem.
func Load(fsys fs.FS, path string) (*interfaces.Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("document read %s: %w", path, err)
	}

	info, err := fs.Stat(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("document stat %s: %w", path, err)
	}

	return Build(path, data, info.ModTime())
}

type frontMatterEnvelope struct {
	Title  string         `yaml:"title"`
	Author string         `yaml:"author"`
	Date   time.Time      `yaml:"date"`
	Draft  bool           `yaml:"draft"`
	Custom map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+4)
	for key, value := range env.Custom {
		raw[key] = value
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	if env.Draft {
		raw["draft"] = env.Draft
	}

	return interfaces.FrontMatter{
		Title:  env.Title,
		Author: env.Author,
		Date:   env.Date,
		Draft:  env.Draft,
		Raw:    raw,
	}
}
