package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeString trims, collapses inner whitespace runs and caps the result at maxLen
// runes so accented catalog terms are never cut mid-character.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Join(strings.FieldsFunc(input, unicode.IsSpace), " ")
	if maxLen <= 0 || utf8.RuneCountInString(cleaned) <= maxLen {
		return cleaned
	}
	runes := []rune(cleaned)
	return strings.TrimSpace(string(runes[:maxLen]))
}
