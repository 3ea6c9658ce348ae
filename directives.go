package figref

import (
	"fmt"
	"html/template"

	"github.com/goliatone/go-figref/internal/markup"
	"github.com/goliatone/go-figref/pkg/interfaces"
)

// DirectiveDefinition captures the metadata, validation schema, and handler
// for one directive the service renders.
type DirectiveDefinition struct {
	Name        string
	Description string
	// CreatesCaption marks directives whose invocations the pre-scan must
	// read labels from.
	CreatesCaption bool
	Schema         DirectiveSchema
	Handler        DirectiveHandler
}

// DirectiveSchema defines the contract for parameters accepted by a
// directive. Positional lists the parameter names that bare arguments map
// onto, in order.
type DirectiveSchema struct {
	Params     []DirectiveParam
	Positional []string
}

// DirectiveParam describes a single parameter, including optional custom
// validation.
type DirectiveParam struct {
	Name     string
	Type     DirectiveParamType
	Required bool
	Default  any
	Validate DirectiveValidator
}

// DirectiveParamType enumerates the supported parameter coercions.
type DirectiveParamType string

const (
	DirectiveParamString DirectiveParamType = "string"
	DirectiveParamInt    DirectiveParamType = "int"
	DirectiveParamBool   DirectiveParamType = "bool"
	DirectiveParamURL    DirectiveParamType = "url"
)

// DirectiveValidator allows definitions to perform custom validation.
type DirectiveValidator func(value any) error

// DirectiveHandler executes the directive against the document's caption
// registry with resolved parameters.
type DirectiveHandler func(registry interfaces.CaptionRegistry, params map[string]any) (template.HTML, error)

// BuiltInDefinitions returns the directive catalogue shipped with figref.
func BuiltInDefinitions() []DirectiveDefinition {
	return []DirectiveDefinition{
		figureDefinition(),
		captionDefinition(),
		refDefinition(),
	}
}

func figureDefinition() DirectiveDefinition {
	validateAlign := func(value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("figure align must be string")
		}
		switch str {
		case "", "default", "left", "center", "right":
			return nil
		default:
			return fmt.Errorf("figure align %q not supported", str)
		}
	}

	return DirectiveDefinition{
		Name:           "figure",
		Description:    "Figure block with a numbered, cross-referenceable caption",
		CreatesCaption: true,
		Schema: DirectiveSchema{
			Params: []DirectiveParam{
				{Name: "src", Type: DirectiveParamURL, Required: true},
				{Name: "alt", Type: DirectiveParamString, Default: ""},
				{Name: "label", Type: DirectiveParamString, Default: ""},
				{Name: "text", Type: DirectiveParamString, Default: ""},
				{Name: "center", Type: DirectiveParamBool, Default: false},
				{Name: "color", Type: DirectiveParamString, Default: ""},
				{Name: "align", Type: DirectiveParamString, Default: "", Validate: validateAlign},
				{Name: "width", Type: DirectiveParamInt, Default: 0},
			},
		},
		Handler: figureHandler,
	}
}

func captionDefinition() DirectiveDefinition {
	return DirectiveDefinition{
		Name:           "caption",
		Description:    "Inline numbered caption spliced directly into text flow",
		CreatesCaption: true,
		Schema: DirectiveSchema{
			Params: []DirectiveParam{
				{Name: "label", Type: DirectiveParamString, Required: true},
				{Name: "text", Type: DirectiveParamString, Required: true},
				{Name: "center", Type: DirectiveParamBool, Default: false},
				{Name: "color", Type: DirectiveParamString, Default: ""},
			},
			Positional: []string{"label", "text"},
		},
		Handler: captionHandler,
	}
}

func refDefinition() DirectiveDefinition {
	return DirectiveDefinition{
		Name:        "ref",
		Description: "Cross-reference to a captioned figure by label",
		Schema: DirectiveSchema{
			Params: []DirectiveParam{
				{Name: "label", Type: DirectiveParamString, Required: true},
				{Name: "hyperlink", Type: DirectiveParamBool, Default: false},
				{Name: "check", Type: DirectiveParamBool, Default: true},
			},
			Positional: []string{"label"},
		},
		Handler: refHandler,
	}
}

func figureHandler(reg interfaces.CaptionRegistry, params map[string]any) (template.HTML, error) {
	src, _ := params["src"].(string)
	alt, _ := params["alt"].(string)
	label, _ := params["label"].(string)
	text, _ := params["text"].(string)
	center, _ := params["center"].(bool)
	color, _ := params["color"].(string)
	align, _ := params["align"].(string)
	width, _ := params["width"].(int)

	img := markup.Image(src, alt, width)

	// A figure without a label carries a hard-coded caption: no anchor, no
	// number, the registry is bypassed entirely.
	if label == "" {
		return markup.Figure("", img, markup.PlainCaption(text), align), nil
	}

	req := CaptionRequest{Label: label, Text: text, Center: center, Color: color}
	if err := req.Validate(); err != nil {
		return "", err
	}

	m, err := reg.RegisterCaption(req.Label, req.Text, interfaces.CaptionOptions{
		Center: req.Center,
		Color:  req.Color,
	})
	if err != nil {
		return "", err
	}

	return markup.Figure(m.Anchor, img, m.CaptionText, align), nil
}

func captionHandler(reg interfaces.CaptionRegistry, params map[string]any) (template.HTML, error) {
	label, _ := params["label"].(string)
	text, _ := params["text"].(string)
	center, _ := params["center"].(bool)
	color, _ := params["color"].(string)

	req := CaptionRequest{Label: label, Text: text, Center: center, Color: color, Inline: true}
	if err := req.Validate(); err != nil {
		return "", err
	}

	m, err := reg.RegisterCaption(req.Label, req.Text, interfaces.CaptionOptions{
		Center: req.Center,
		Color:  req.Color,
	})
	if err != nil {
		return "", err
	}

	return m.Inline(), nil
}

func refHandler(reg interfaces.CaptionRegistry, params map[string]any) (template.HTML, error) {
	label, _ := params["label"].(string)
	hyperlink, _ := params["hyperlink"].(bool)
	check, _ := params["check"].(bool)

	req := ReferenceRequest{Label: label, Hyperlink: hyperlink, Check: check}
	if err := req.Validate(); err != nil {
		return "", err
	}

	out, err := reg.LookupReference(req.Label, interfaces.ReferenceOptions{
		Hyperlink:       req.Hyperlink,
		SkipExistsCheck: !req.Check,
	})
	if err != nil {
		return "", err
	}

	return template.HTML(out), nil
}
