package interfaces

import "time"

// Document is a single markup source file after frontmatter extraction. Body
// holds the raw markup handed to the figref passes; BodyHTML stays empty
// until a caller renders it.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
}

// FrontMatter captures the structured metadata parsed from a document header.
// Raw preserves every field, including ones without a dedicated accessor.
type FrontMatter struct {
	Title  string
	Author string
	Date   time.Time
	Draft  bool
	Raw    map[string]any
}
