package dynamic

import (
	"strings"
	"unicode"
)

// ApplyModifier transforms an already-resolved value. Variants never
// trigger a second lookup; an unknown modifier returns the value as-is.
func ApplyModifier(value, modifier string) string {
	switch modifier {
	case "upper":
		return strings.ToUpper(value)
	case "lower":
		return strings.ToLower(value)
	case "title":
		return titleCase(value)
	default:
		return value
	}
}

// titleCase uppercases the first letter of every word, lowercasing the
// rest. A word boundary is any non-letter rune.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if !unicode.IsLetter(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
