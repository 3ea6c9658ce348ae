package document

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

const sample = `---
title: Waveforms
author: jane
draft: true
section: results
---
# Waveforms

{{< figure src="cos.png" label="cos_wav" text="A cosine" >}}
`

func TestParse(t *testing.T) {
	meta, body, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if meta.Title != "Waveforms" {
		t.Fatalf("Parse() title = %q", meta.Title)
	}
	if meta.Author != "jane" {
		t.Fatalf("Parse() author = %q", meta.Author)
	}
	if !meta.Draft {
		t.Fatal("Parse() expected draft")
	}
	if meta.Raw["section"] != "results" {
		t.Fatalf("Parse() custom field missing: %v", meta.Raw)
	}

	if strings.Contains(string(body), "---") {
		t.Fatalf("Parse() body still contains delimiters: %q", body)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "# Waveforms") {
		t.Fatalf("Parse() body = %q", body)
	}
}

func TestParseWithoutFrontMatter(t *testing.T) {
	source := "# No metadata here\n"

	meta, body, err := Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if meta.Title != "" {
		t.Fatalf("Parse() expected empty title, got %q", meta.Title)
	}
	if string(body) != source {
		t.Fatalf("Parse() body = %q, want unchanged source", body)
	}
}

func TestLoad(t *testing.T) {
	modified := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	fsys := fstest.MapFS{
		"docs/waveforms.md": &fstest.MapFile{
			Data:    []byte(sample),
			ModTime: modified,
		},
	}

	doc, err := Load(fsys, "docs/waveforms.md")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if doc.FilePath != "docs/waveforms.md" {
		t.Fatalf("Load() path = %q", doc.FilePath)
	}
	if doc.FrontMatter.Title != "Waveforms" {
		t.Fatalf("Load() title = %q", doc.FrontMatter.Title)
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatalf("Load() modified = %v", doc.LastModified)
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatal("Load() BodyHTML should stay empty until rendered")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(fstest.MapFS{}, "missing.md"); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}
