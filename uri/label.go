package uri

import "strings"

// DefaultLabelWidth is the number of runes a menu label shows of a URI.
const DefaultLabelWidth = 50

const ellipsis = "…"

// Label shortens uri for display. It never feeds back into validation.
func Label(uri string, width int) string {
	if width <= 0 {
		width = DefaultLabelWidth
	}
	runes := []rune(uri)
	if len(runes) <= width {
		return uri
	}
	return string(runes[:width]) + ellipsis
}

// Browsable reports whether uri should be handed to a web browser.
func Browsable(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}
