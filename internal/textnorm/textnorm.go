// Package textnorm normalizes typed and displayed words for comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripMarks decomposes s (NFKD) and drops combining marks, so "ñ" becomes "n"
// and "ä" becomes "a".
func StripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lowercases s, strips diacritics and keeps only ASCII letters and the
// apostrophe.
func Fold(s string) string {
	s = strings.ToLower(StripMarks(s))
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= 'a' && ch <= 'z') || ch == '\'' {
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// Equal reports whether a and b are the same word after folding. Two words that
// fold to nothing are never equal.
func Equal(a, b string) bool {
	fa := Fold(a)
	if fa == "" {
		return false
	}
	return fa == Fold(b)
}
