package falling

import (
	"strings"
	"unicode/utf8"
)

// MinWordLen is the shortest word, in runes, that the deck accepts.
const MinWordLen = 2

// FallbackWords is the deck used when no dictionary words are available.
var FallbackWords = []string{
	"hojas coca",
	"lliclla",
	"mandarina",
	"papa",
	"pinia",
	"platano",
	"queso",
	"vaso vino",
}

// Deck hands out words in a shuffled order and reshuffles after each pass.
type Deck struct {
	words  []string
	cursor int
	rnd    Rand
}

// NewDeck shuffles words into a deck. Words shorter than MinWordLen are
// dropped and an empty list selects FallbackWords.
func NewDeck(words []string, rnd Rand) *Deck {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(strings.TrimSpace(w)) >= MinWordLen {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, FallbackWords...)
	}
	d := &Deck{words: kept, rnd: rnd}
	d.shuffle()
	return d
}

// Len returns the number of words in the deck.
func (d *Deck) Len() int {
	return len(d.words)
}

// Next returns the word under the cursor and advances it.
func (d *Deck) Next() string {
	word := d.words[d.cursor%len(d.words)]
	d.cursor++
	if d.cursor >= len(d.words) {
		d.shuffle()
		d.cursor = 0
	}
	return word
}

func (d *Deck) shuffle() {
	if d.rnd == nil {
		return
	}
	for i := len(d.words) - 1; i > 0; i-- {
		j := d.rnd.Intn(i + 1)
		d.words[i], d.words[j] = d.words[j], d.words[i]
	}
}
