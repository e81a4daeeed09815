package wordguess

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/verte-zerg/arupa/internal/dictionary"
)

// Word length bounds and the word used when no dictionary entry qualifies.
const (
	DefaultMinLen = 3
	DefaultMaxLen = 7
	FallbackWord  = "PERRO"
)

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// Candidates returns the words of field whose rune length lies in
// [minLen, maxLen].
func Candidates(dict dictionary.Dictionary, field dictionary.Field, minLen, maxLen int) []string {
	words := lo.Map(dict.Entries, func(e dictionary.Entry, _ int) string {
		return e.Word(field)
	})
	return lo.Filter(words, func(word string, _ int) bool {
		n := utf8.RuneCountInString(word)
		return n >= minLen && n <= maxLen
	})
}

// SelectTarget picks one qualifying word uniformly and upper-cases it. It
// returns FallbackWord when nothing qualifies.
func SelectTarget(dict dictionary.Dictionary, field dictionary.Field, minLen, maxLen int, picker Picker) string {
	candidates := Candidates(dict, field, minLen, maxLen)
	if len(candidates) == 0 || picker == nil {
		return FallbackWord
	}
	return strings.ToUpper(candidates[picker.Intn(len(candidates))])
}
