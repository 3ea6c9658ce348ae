package figref

import (
	"io/fs"

	"github.com/goliatone/go-figref/internal/document"
	"github.com/goliatone/go-figref/pkg/interfaces"
)

// ParseDocument splits frontmatter off raw source, returning the structured
// metadata and the body without delimiters. Sources without a frontmatter
// block come back with an empty FrontMatter and the source unchanged.
func ParseDocument(source []byte) (interfaces.FrontMatter, []byte, error) {
	return document.Parse(source)
}

// LoadDocument reads and parses a single document from the provided
// filesystem, ready to hand to ProcessDocument.
func LoadDocument(fsys fs.FS, path string) (*interfaces.Document, error) {
	return document.Load(fsys, path)
}
