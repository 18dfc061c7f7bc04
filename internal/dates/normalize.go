// Package dates parses Brazilian Portuguese date and period expressions.
// All functions are pure: the reference instant is always an argument, so
// callers (and tests) control "now".
package dates

import "strings"

var diacritics = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a',
	'é': 'e', 'ê': 'e', 'è': 'e', 'ë': 'e',
	'í': 'i', 'î': 'i', 'ì': 'i',
	'ó': 'o', 'ô': 'o', 'õ': 'o', 'ò': 'o', 'ö': 'o',
	'ú': 'u', 'û': 'u', 'ù': 'u', 'ü': 'u',
	'ç': 'c',
}

// Normalize lower-cases, strips diacritics and invisible Unicode (zero-width
// and directional controls), and collapses whitespace. Messages arrive from
// phone keyboards and copy-paste, so both kinds of noise are common.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\u200e', '\u200f', '\u2060', '\ufeff':
			continue
		}
		if rep, ok := diacritics[r]; ok {
			r = rep
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
