package corrector

import (
	"slices"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

// ApplyCorrections replaces each span with its first suggestion, in order.
// Offsets are rune positions in the original text; later spans are shifted by
// the length change of earlier replacements. A match is skipped when it has
// no suggestion, falls outside the text, or its span was already rewritten.
func ApplyCorrections(text string, matches []models.Correction) string {
	runes := []rune(text)

	type pending struct {
		match    models.Correction
		original []rune
	}
	var queue []pending
	for _, m := range matches {
		if len(m.Replacements) == 0 || m.Offset < 0 || m.Length < 0 || m.Offset+m.Length > len(runes) {
			continue
		}
		original := make([]rune, m.Length)
		copy(original, runes[m.Offset:m.Offset+m.Length])
		queue = append(queue, pending{match: m, original: original})
	}

	shift := 0
	for _, p := range queue {
		from := p.match.Offset + shift
		to := from + p.match.Length
		if from < 0 || to > len(runes) || !slices.Equal(runes[from:to], p.original) {
			continue
		}
		replacement := []rune(p.match.Replacements[0])

		next := make([]rune, 0, len(runes)-p.match.Length+len(replacement))
		next = append(next, runes[:from]...)
		next = append(next, replacement...)
		next = append(next, runes[to:]...)
		runes = next

		shift += len(replacement) - p.match.Length
	}
	return string(runes)
}

// contextWindow returns up to radius runes around the span, as the context
// shown with a suggestion.
func contextWindow(runes []rune, offset, length, radius int) string {
	from := max(0, offset-radius)
	to := min(len(runes), offset+length+radius)
	return string(runes[from:to])
}
