package figref

import (
	"errors"
	"testing"
)

func TestValidator_ValidateDefinition(t *testing.T) {
	validator := NewValidator()

	for _, def := range BuiltInDefinitions() {
		if err := validator.ValidateDefinition(def); err != nil {
			t.Fatalf("ValidateDefinition(%q) unexpected error: %v", def.Name, err)
		}
	}

	if err := validator.ValidateDefinition(DirectiveDefinition{Name: " "}); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("ValidateDefinition() expected ErrInvalidDefinition for blank name, got %v", err)
	}

	noHandler := DirectiveDefinition{Name: "x"}
	if err := validator.ValidateDefinition(noHandler); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("ValidateDefinition() expected ErrInvalidDefinition for missing handler, got %v", err)
	}

	badPositional := refDefinition()
	badPositional.Schema.Positional = []string{"nonexistent"}
	if err := validator.ValidateDefinition(badPositional); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("ValidateDefinition() expected ErrInvalidDefinition for stray positional, got %v", err)
	}
}

func TestValidator_CoerceParams(t *testing.T) {
	validator := NewValidator()
	def := figureDefinition()

	params, err := validator.CoerceParams(def, map[string]any{
		"src":    "plot.png",
		"center": "true",
		"width":  "480",
	})
	if err != nil {
		t.Fatalf("CoerceParams() unexpected error: %v", err)
	}

	if params["center"] != true {
		t.Fatalf("CoerceParams() center = %v (%T)", params["center"], params["center"])
	}
	if params["width"] != 480 {
		t.Fatalf("CoerceParams() width = %v (%T)", params["width"], params["width"])
	}
	if params["color"] != "" {
		t.Fatalf("CoerceParams() default color = %v", params["color"])
	}
}

func TestValidator_CoerceParamsErrors(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		def      DirectiveDefinition
		supplied map[string]any
		want     error
	}{
		{
			name:     "unknown parameter",
			def:      refDefinition(),
			supplied: map[string]any{"label": "x", "bogus": "1"},
			want:     ErrUnknownParameter,
		},
		{
			name:     "missing required",
			def:      figureDefinition(),
			supplied: map[string]any{"label": "x"},
			want:     ErrMissingParameter,
		},
		{
			name:     "type mismatch",
			def:      figureDefinition(),
			supplied: map[string]any{"src": "p.png", "width": "lots"},
			want:     ErrParameterType,
		},
		{
			name:     "excess positional",
			def:      refDefinition(),
			supplied: map[string]any{"param1": "x", "param2": "y"},
			want:     ErrUnknownParameter,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := validator.CoerceParams(tc.def, tc.supplied); !errors.Is(err, tc.want) {
				t.Fatalf("CoerceParams() expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidator_PositionalMapping(t *testing.T) {
	validator := NewValidator()
	def := captionDefinition()

	params, err := validator.CoerceParams(def, map[string]any{
		"param1": "one_to_five",
		"param2": "One to five",
	})
	if err != nil {
		t.Fatalf("CoerceParams() unexpected error: %v", err)
	}
	if params["label"] != "one_to_five" || params["text"] != "One to five" {
		t.Fatalf("CoerceParams() positional mapping = %v", params)
	}
}

func TestValidator_NamedWinsOverPositional(t *testing.T) {
	validator := NewValidator()
	def := refDefinition()

	params, err := validator.CoerceParams(def, map[string]any{
		"param1": "positional",
		"label":  "named",
	})
	if err != nil {
		t.Fatalf("CoerceParams() unexpected error: %v", err)
	}
	if params["label"] != "named" {
		t.Fatalf("CoerceParams() label = %v, want named", params["label"])
	}
}

func TestValidator_CustomValidate(t *testing.T) {
	validator := NewValidator()
	def := figureDefinition()

	if _, err := validator.CoerceParams(def, map[string]any{
		"src":   "p.png",
		"align": "diagonal",
	}); err == nil {
		t.Fatal("CoerceParams() expected align validation error")
	}
}
