package resolver

import (
	"strings"
	"unicode"
)

// applyFilters runs the variable's name-transform filters in order.
// Filters only apply to string values; anything else passes through.
func applyFilters(value interface{}, filters []string) interface{} {
	s, ok := value.(string)
	if !ok || len(filters) == 0 {
		return value
	}
	for _, f := range filters {
		switch f {
		case "lower":
			s = strings.ToLower(s)
		case "upper":
			s = strings.ToUpper(s)
		case "trim":
			s = strings.TrimSpace(s)
		case "snake":
			s = strings.Join(splitWords(s), "_")
		case "kebab":
			s = strings.Join(splitWords(s), "-")
		case "camel":
			words := splitWords(s)
			for i := 1; i < len(words); i++ {
				words[i] = capitalize(words[i])
			}
			s = strings.Join(words, "")
		case "pascal":
			words := splitWords(s)
			for i := range words {
				words[i] = capitalize(words[i])
			}
			s = strings.Join(words, "")
		}
	}
	return s
}

// splitWords breaks an identifier-ish string into lowercase words at
// spaces, hyphens, underscores, and lower-to-upper case boundaries.
func splitWords(s string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = nil
		}
	}
	var prev rune
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_' || r == '.':
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	return words
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
