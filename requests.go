package figref

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CaptionRequest carries the arguments of one caption registration as
// resolved from a directive invocation or supplied programmatically.
type CaptionRequest struct {
	// Label is the author-chosen token identifying the figure.
	Label string `json:"label"`
	// Text is the author-supplied caption body, rendered after "Figure <N>:".
	Text string `json:"text"`
	// Center toggles the inline-block centering style on the caption span.
	Center bool `json:"center,omitempty"`
	// Color sets the caption font color; empty selects the default.
	Color string `json:"color,omitempty"`
	// Inline requests the concatenated single-string form of the markup.
	Inline bool `json:"inline,omitempty"`
}

// Validate ensures a label is present before the registry is touched.
func (r CaptionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label, validation.Required, validation.By(nonBlank("figref.caption.label_required", "caption label is required"))),
	)
}

// ReferenceRequest carries the arguments of one reference lookup.
type ReferenceRequest struct {
	// Label names the caption being referenced.
	Label string `json:"label"`
	// Hyperlink wraps the reference text in a link to the caption anchor.
	Hyperlink bool `json:"hyperlink,omitempty"`
	// Check requires the label to exist; disabling it is a documented escape
	// hatch with unspecified output for missing labels.
	Check bool `json:"check"`
}

// Validate ensures a label is present before the lookup runs.
func (r ReferenceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label, validation.Required, validation.By(nonBlank("figref.ref.label_required", "reference label is required"))),
	)
}

func nonBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		str, _ := value.(string)
		if strings.TrimSpace(str) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
