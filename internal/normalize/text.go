package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// connectors are Spanish connector words kept lower-case inside labels.
var connectors = map[string]bool{
	"de": true, "del": true, "y": true, "la": true, "el": true,
	"en": true, "por": true, "para": true, "con": true, "sin": true,
	"a": true, "al": true,
}

var honorificPrefix = regexp.MustCompile(`(?i)^(dr|dra)\.?\s+`)

// FormatLabel turns a raw upper/lower-cased label into its display form.
// Acronyms (all-uppercase short tokens) are preserved, connector words
// stay lower-case after the first token, everything else is capitalized.
func FormatLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	words := strings.Fields(trimmed)
	if len(words) == 1 {
		w := words[0]
		if isUpper(w) || len([]rune(w)) <= 3 {
			return strings.ToUpper(w)
		}
		return capitalize(w)
	}

	out := make([]string, len(words))
	for i, w := range words {
		lower := strings.ToLower(w)
		switch {
		case i > 0 && connectors[lower]:
			out[i] = lower
		case isUpper(w) && len([]rune(w)) <= 3:
			out[i] = strings.ToUpper(w)
		default:
			out[i] = capitalize(w)
		}
	}
	return strings.Join(out, " ")
}

// CleanCourtName strips honorific prefixes from a court name and fixes
// the capitalization idioms that appear in the source data. The cleaned
// name is what aggregation buckets group on, so spelling variants of
// the same court collapse together.
func CleanCourtName(raw string) string {
	name := strings.TrimSpace(raw)
	name = honorificPrefix.ReplaceAllString(name, "")
	return fixArticleCase(name)
}

// CleanOfficeName applies the same idiom fixes used for court names to
// a prosecutor's-office name.
func CleanOfficeName(raw string) string {
	return fixArticleCase(strings.TrimSpace(raw))
}

// fixArticleCase rewrites the all-caps article tokens the source data
// mixes into otherwise-cased names.
func fixArticleCase(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		switch w {
		case "LOS":
			words[i] = "Los"
		case "LO":
			words[i] = "Lo"
		}
	}
	return strings.Join(words, " ")
}

// isUpper reports whether s contains at least one cased rune and every
// cased rune is upper-case.
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
