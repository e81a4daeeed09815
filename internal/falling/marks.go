package falling

import "github.com/verte-zerg/arupa/internal/textnorm"

// Mark is the render-only highlight of a letter while typing.
type Mark int

// Marks.
const (
	MarkNone Mark = iota
	MarkHit
	MarkMiss
)

// LetterMarks compares typed input with the active group letter by letter,
// left to right. Only letters of the active group are marked. The result
// never affects matching.
func (g *Game) LetterMarks(input string) map[int]Mark {
	marks := make(map[int]Mark)
	grp := g.active()
	if grp == nil {
		return marks
	}
	typed := []rune(textnorm.Fold(input))
	for i, l := range grp.sortedLetters() {
		switch {
		case i >= len(typed):
			marks[l.ID] = MarkNone
		case typed[i] == l.Char:
			marks[l.ID] = MarkHit
		default:
			marks[l.ID] = MarkMiss
		}
	}
	return marks
}
