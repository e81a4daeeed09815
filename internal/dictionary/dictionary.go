// Package dictionary holds the bilingual word pairs shared by the games.
package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Default language tags for the source (Spanish) and target (Aymara) fields.
const (
	DefaultSourceLang = "es"
	DefaultTargetLang = "ay"
)

// ErrEmpty is returned when a dictionary source yields no usable entries.
var ErrEmpty = errors.New("dictionary is empty")

// Field selects one side of an entry.
type Field int

// Entry fields.
const (
	FieldSource Field = iota
	FieldTarget
)

// Entry is a single source/target word pair.
type Entry struct {
	Source string
	Target string
}

// Word returns the word stored in the given field.
func (e Entry) Word(f Field) string {
	if f == FieldSource {
		return e.Source
	}
	return e.Target
}

// Dictionary is an immutable list of word pairs keyed by two language tags.
type Dictionary struct {
	SourceLang string
	TargetLang string
	Entries    []Entry
	Skipped    int
}

// Parse decodes a JSON list of objects keyed by language tags, for example
// [{"es": "perro", "ay": "anu"}]. Entries missing either side are skipped.
func Parse(data []byte, sourceLang, targetLang string) (Dictionary, error) {
	if sourceLang == "" {
		sourceLang = DefaultSourceLang
	}
	if targetLang == "" {
		targetLang = DefaultTargetLang
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Dictionary{}, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	dict := Dictionary{SourceLang: sourceLang, TargetLang: targetLang}
	for _, item := range raw {
		src := stringField(item, sourceLang)
		tgt := stringField(item, targetLang)
		if src == "" || tgt == "" {
			dict.Skipped++
			continue
		}
		dict.Entries = append(dict.Entries, Entry{Source: src, Target: tgt})
	}
	if len(dict.Entries) == 0 {
		return dict, ErrEmpty
	}
	return dict, nil
}

func stringField(item map[string]any, key string) string {
	v, ok := item[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return strings.TrimSpace(s)
}

// Len returns the number of entries.
func (d Dictionary) Len() int {
	return len(d.Entries)
}

// FieldFor maps a language tag to the entry field holding words in that
// language. Unknown tags fall back to the target field.
func (d Dictionary) FieldFor(lang string) Field {
	if strings.EqualFold(lang, d.SourceLang) && !strings.EqualFold(lang, d.TargetLang) {
		return FieldSource
	}
	return FieldTarget
}

// Words returns every word of the given language, in dictionary order.
func (d Dictionary) Words(lang string) []string {
	field := d.FieldFor(lang)
	return lo.Map(d.Entries, func(e Entry, _ int) string {
		return e.Word(field)
	})
}

// Translate returns the source-language word for an entry whose source or
// target matches word case-insensitively.
func (d Dictionary) Translate(word string) (string, bool) {
	entry, ok := lo.Find(d.Entries, func(e Entry) bool {
		return strings.EqualFold(e.Target, word) || strings.EqualFold(e.Source, word)
	})
	if !ok {
		return "", false
	}
	return entry.Source, true
}

// MarshalJSON encodes the entries in the same shape Parse reads.
func (d Dictionary) MarshalJSON() ([]byte, error) {
	srcLang, tgtLang := d.SourceLang, d.TargetLang
	if srcLang == "" {
		srcLang = DefaultSourceLang
	}
	if tgtLang == "" {
		tgtLang = DefaultTargetLang
	}
	items := lo.Map(d.Entries, func(e Entry, _ int) map[string]string {
		return map[string]string{srcLang: e.Source, tgtLang: e.Target}
	})
	return json.Marshal(items)
}
