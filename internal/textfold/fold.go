// Package textfold reduces text to a case- and accent-insensitive form used
// for substring search.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s decomposed, stripped of combining marks and case-folded.
// "Amélie" and "AMELIE" both fold to "amelie".
func Fold(s string) string {
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
	return cases.Fold().String(s)
}

// Join folds every non-empty value and joins them with a separator that no
// search term can span.
func Join(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, Fold(v))
		}
	}
	return strings.Join(parts, "\x1f")
}

// ContainsPattern returns a LIKE pattern matching any text containing the
// folded term. Wildcards in the term are escaped with '\'.
func ContainsPattern(term string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range Fold(strings.TrimSpace(term)) {
		if r == '%' || r == '_' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
