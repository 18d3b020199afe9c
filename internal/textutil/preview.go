// Package textutil provides small text helpers for log-friendly output.
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PreviewLength is the default number of runes shown when logging a
// transcript snippet.
const PreviewLength = 80

// Preview collapses whitespace runs to single spaces, folds the text to NFC
// so combining marks render as single glyphs, and truncates the result to
// limit runes, appending an ellipsis when text was cut. A non-positive limit
// falls back to PreviewLength.
func Preview(text string, limit int) string {
	if limit <= 0 {
		limit = PreviewLength
	}
	collapsed := norm.NFC.String(strings.Join(strings.Fields(text), " "))
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	return string(runes[:limit]) + "..."
}
