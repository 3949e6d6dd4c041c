package grammar

import "strings"

// Pluralize applies English pluralization rules to a word. First match
// wins: sibilant endings take "es", consonant+y flips to "ies", f/fe
// endings flip to "ves", consonant+o takes "es", everything else "s".
func Pluralize(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)

	for _, suffix := range []string{"ss", "ch", "sh", "s", "x", "z"} {
		if strings.HasSuffix(lower, suffix) {
			return word + "es"
		}
	}
	if strings.HasSuffix(lower, "y") && len(word) > 1 && !isVowel(lower[len(lower)-2]) {
		return word[:len(word)-1] + "ies"
	}
	if strings.HasSuffix(lower, "fe") {
		return word[:len(word)-2] + "ves"
	}
	if strings.HasSuffix(lower, "f") {
		return word[:len(word)-1] + "ves"
	}
	if strings.HasSuffix(lower, "o") && len(word) > 1 && !isVowel(lower[len(lower)-2]) {
		return word + "es"
	}
	return word + "s"
}

// Possessive appends the English possessive marker: a bare apostrophe
// after a trailing s, 's otherwise.
func Possessive(word string) string {
	if word == "" {
		return ""
	}
	if strings.HasSuffix(strings.ToLower(word), "s") {
		return word + "'"
	}
	return word + "'s"
}

// ConjugateDeny returns the agreed form of deny for a party count.
func ConjugateDeny(count int) string {
	if count == 1 {
		return "denies"
	}
	return "deny"
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
