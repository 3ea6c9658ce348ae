package figref

import (
	"strings"
	"testing"
)

func TestParser_Extract(t *testing.T) {
	parser := NewParser("figure", "caption", "ref")

	content := `Before {{< ref "cos_wav" hyperlink=true >}} middle
{{< figure src="cos.png" label="cos_wav" text="A cosine" width=480 >}}
after`

	transformed, directives, err := parser.Extract(content)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	if len(directives) != 2 {
		t.Fatalf("Extract() expected 2 directives, got %d", len(directives))
	}

	for i, d := range directives {
		if d.Placeholder == "" {
			t.Fatalf("Extract() directive %d has no placeholder", i)
		}
		if !strings.Contains(transformed, d.Placeholder) {
			t.Fatalf("Extract() placeholder %q missing from %q", d.Placeholder, transformed)
		}
	}
	if directives[0].Placeholder == directives[1].Placeholder {
		t.Fatal("Extract() placeholders must be distinct per directive")
	}
	if strings.Contains(transformed, "{{<") {
		t.Fatalf("Extract() left a recognised tag behind: %q", transformed)
	}

	ref := directives[0]
	if ref.Name != "ref" {
		t.Fatalf("Extract() first directive = %q, want ref", ref.Name)
	}
	if ref.Params["param1"] != "cos_wav" {
		t.Fatalf("Extract() positional label = %v", ref.Params)
	}
	if ref.Params["hyperlink"] != "true" {
		t.Fatalf("Extract() hyperlink param = %v", ref.Params)
	}

	fig := directives[1]
	if fig.Name != "figure" {
		t.Fatalf("Extract() second directive = %q, want figure", fig.Name)
	}
	if fig.Params["label"] != "cos_wav" || fig.Params["src"] != "cos.png" {
		t.Fatalf("Extract() figure params = %v", fig.Params)
	}
	if fig.Params["width"] != "480" {
		t.Fatalf("Extract() bare value = %v", fig.Params["width"])
	}
}

func TestParser_QuotedValuesKeepSpaces(t *testing.T) {
	parser := NewParser("caption")

	directives, err := parser.Parse(`{{< caption label="x" text="hello there, figure" >}}`)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(directives) != 1 {
		t.Fatalf("Parse() expected 1 directive, got %d", len(directives))
	}
	if directives[0].Params["text"] != "hello there, figure" {
		t.Fatalf("Parse() text = %v", directives[0].Params["text"])
	}
}

func TestParser_UnrecognisedTagsPassThrough(t *testing.T) {
	parser := NewParser("caption")

	content := `{{< youtube id="abc" >}} and {{< caption "x" "y" >}}`
	transformed, directives, err := parser.Extract(content)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	if len(directives) != 1 || directives[0].Name != "caption" {
		t.Fatalf("Extract() directives = %v", directives)
	}
	if !strings.Contains(transformed, `{{< youtube id="abc" >}}`) {
		t.Fatalf("Extract() should leave foreign shortcodes untouched: %q", transformed)
	}
}

func TestParser_PositionalArguments(t *testing.T) {
	parser := NewParser("caption")

	directives, err := parser.Parse(`{{< caption "one_to_five" "One to five" center=true >}}`)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	params := directives[0].Params
	if params["param1"] != "one_to_five" {
		t.Fatalf("Parse() param1 = %v", params["param1"])
	}
	if params["param2"] != "One to five" {
		t.Fatalf("Parse() param2 = %v", params["param2"])
	}
	if params["center"] != "true" {
		t.Fatalf("Parse() center = %v", params["center"])
	}
}

func TestParser_EmptyQuotedValue(t *testing.T) {
	parser := NewParser("figure")

	directives, err := parser.Parse(`{{< figure src="p.png" alt="" >}}`)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if got, ok := directives[0].Params["alt"]; !ok || got != "" {
		t.Fatalf("Parse() alt = %v (present %v), want empty string", got, ok)
	}
}

func TestParser_LiteralMarkerInContent(t *testing.T) {
	parser := NewParser("caption")

	content := "<!-- figref:0 -->\n{{< caption \"x\" \"hello\" >}}"
	transformed, directives, err := parser.Extract(content)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	// Author content that spells out a marker must survive untouched and must
	// never collide with the placeholder generated for the real directive.
	if !strings.HasPrefix(transformed, "<!-- figref:0 -->") {
		t.Fatalf("Extract() disturbed literal marker: %q", transformed)
	}
	if directives[0].Placeholder == "<!-- figref:0 -->" {
		t.Fatalf("Extract() placeholder collides with author content: %q", directives[0].Placeholder)
	}
}

func TestParser_NoDirectives(t *testing.T) {
	parser := NewParser("caption")

	content := "plain text, no tags at all"
	transformed, directives, err := parser.Extract(content)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if transformed != content {
		t.Fatalf("Extract() altered plain content: %q", transformed)
	}
	if len(directives) != 0 {
		t.Fatalf("Extract() found phantom directives: %v", directives)
	}
}
