package components

import (
	"bytes"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Icon renders an iconify span. spec is "set--name extra classes", for example
// "lucide--users w-4 h-4".
func Icon(spec, ariaLabel string) g.Node {
	parts := strings.Fields(spec)
	if len(parts) == 0 {
		return nil
	}
	name := strings.Replace(parts[0], "--", ":", 1)
	classes := "iconify inline-block"
	if len(parts) > 1 {
		classes += " " + strings.Join(parts[1:], " ")
	}
	if ariaLabel != "" {
		return Span(Class(classes), g.Attr("data-icon", name), g.Attr("role", "img"), g.Attr("aria-label", ariaLabel))
	}
	return Span(Class(classes), g.Attr("data-icon", name), g.Attr("aria-hidden", "true"))
}

// Counter is a small icon + label pair used under the form and in the CTA.
func Counter(icon, label string) g.Node {
	return Div(
		Class("flex items-center"),
		Icon(icon+" w-4 h-4 mr-1.5 text-orange-500", ""),
		Span(g.Text(label)),
	)
}

// RenderString renders n to a string. The browser client uses it to swap panels.
func RenderString(n g.Node) (string, error) {
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
