package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Space collapses every run of Unicode whitespace to one space and trims the result.
func Space(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold applies full Unicode case folding, so "ДОМ" and "дом" compare equal.
func Fold(s string) string {
	// A Caser keeps state between calls; one per call keeps Fold safe for any caller.
	return cases.Fold().String(norm.NFC.String(s))
}

// Key builds the comparison form of a name, address or rubric name.
func Key(s string) string {
	return Fold(Space(s))
}

// UniqueStrings trims values, drops empties and duplicates, and keeps first-seen order.
func UniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		s := strings.TrimSpace(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
