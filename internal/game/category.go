package game

import "strings"

// categorySynonyms maps accepted category keys to the canonical names the
// question bank uses. Unaccented spellings map onto the accented ones so
// clients don't have to care about diacritics.
var categorySynonyms = map[string]string{
	"geografia":       "geografía",
	"geografía":       "geografía",
	"deportes":        "deportes",
	"historia":        "historia",
	"entretenimiento": "entretenimiento",
	"arte":            "arte",
	"ciencia":         "ciencia",
}

// NormalizeCategory lower-cases and trims a category and resolves known
// synonyms. Unrecognized categories pass through lower-cased; the bank
// simply finds no matches for them.
func NormalizeCategory(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := categorySynonyms[normalized]; ok {
		return canonical
	}
	return normalized
}
