// Package markup builds the HTML fragments emitted by the caption registry
// and the figure directive. Output targets HTML only; labels and author text
// are escaped, styles are composed from fixed tokens plus the configured
// color value.
package markup

import (
	"html"
	"html/template"
	"strconv"
	"strings"
)

// DefaultColor is the caption font color used when none is configured.
const DefaultColor = "black"

// centerStyle stretches the caption span to the full container width so the
// text-align takes effect on inline placement.
const centerStyle = "text-align:center;display:inline-block;width:100%;"

// Anchor returns the empty named-anchor element keyed by label. References
// link against this anchor via "#label".
func Anchor(label string) template.HTML {
	return template.HTML(`<a name="` + html.EscapeString(label) + `"></a>`)
}

// CaptionText renders the numbered caption span: "Figure <N>: <text>" with
// the optional centering style and the configured font color.
func CaptionText(number int, text string, center bool, color string) template.HTML {
	var style strings.Builder
	if center {
		style.WriteString(centerStyle)
	}
	style.WriteString("color:")
	style.WriteString(html.EscapeString(resolveColor(color)))
	style.WriteString(";")

	var out strings.Builder
	out.WriteString(`<span style="`)
	out.WriteString(style.String())
	out.WriteString(`">`)
	out.WriteString(ReferenceText(number))
	out.WriteString(": ")
	out.WriteString(html.EscapeString(text))
	out.WriteString(`</span>`)
	return template.HTML(out.String())
}

// ReferenceText renders the plain textual reference for a figure number.
func ReferenceText(number int) string {
	return "Figure " + strconv.Itoa(number)
}

// ReferenceLink wraps the textual reference in a link to the caption anchor.
func ReferenceLink(label string, number int) string {
	return `<a href="#` + html.EscapeString(label) + `">` + ReferenceText(number) + `</a>`
}

// Image renders the figure image element. A width of zero omits the
// attribute.
func Image(src, alt string, width int) template.HTML {
	var out strings.Builder
	out.WriteString(`<img src="`)
	out.WriteString(html.EscapeString(src))
	out.WriteString(`" alt="`)
	out.WriteString(html.EscapeString(alt))
	out.WriteString(`"`)
	if width > 0 {
		out.WriteString(` width="`)
		out.WriteString(strconv.Itoa(width))
		out.WriteString(`"`)
	}
	out.WriteString(` loading="lazy" />`)
	return template.HTML(out.String())
}

// Figure wraps anchor, image, and caption in a figure/figcaption pairing.
// The anchor precedes the image, the caption follows it. A non-default align
// value becomes a container-level text-align style.
func Figure(anchor, img, caption template.HTML, align string) template.HTML {
	var out strings.Builder
	out.WriteString(`<figure class="figref figref--figure"`)
	if align = strings.TrimSpace(align); align != "" && align != "default" {
		out.WriteString(` style="text-align:`)
		out.WriteString(html.EscapeString(align))
		out.WriteString(`;"`)
	}
	out.WriteString(`>`)
	out.WriteString(string(anchor))
	out.WriteString(string(img))
	out.WriteString(`<figcaption>`)
	out.WriteString(string(caption))
	out.WriteString(`</figcaption></figure>`)
	return template.HTML(out.String())
}

// PlainCaption renders author text without an anchor or number, used for
// hard-coded captions that bypass the registry.
func PlainCaption(text string) template.HTML {
	return template.HTML(html.EscapeString(text))
}

func resolveColor(color string) string {
	if trimmed := strings.TrimSpace(color); trimmed != "" {
		return trimmed
	}
	return DefaultColor
}
