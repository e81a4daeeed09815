package wordguess

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Attempts is the number of guesses allowed per session.
const Attempts = 5

var (
	// ErrInvalidLength is matched by every LengthError.
	ErrInvalidLength = errors.New("invalid guess length")
	// ErrFinished is returned when a guess is submitted after the session ended.
	ErrFinished = errors.New("session finished")
)

// LengthError reports a guess whose length differs from the target.
type LengthError struct {
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("guess must have %d letters, got %d", e.Want, e.Got)
}

// Is makes errors.Is(err, ErrInvalidLength) hold.
func (e *LengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

// Status is the session lifecycle state.
type Status int

// Session states. Won and Lost are terminal.
const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "in progress"
	}
}

// Cell is one grid position.
type Cell struct {
	Letter  rune
	Verdict Verdict
}

// KeyType enumerates the inputs a session reacts to.
type KeyType int

// Key types.
const (
	KeyLetter KeyType = iota
	KeyBackspace
	KeyEnter
)

// Key is a single keystroke.
type Key struct {
	Type KeyType
	Rune rune
}

// Letter builds a KeyLetter keystroke.
func Letter(r rune) Key {
	return Key{Type: KeyLetter, Rune: r}
}

// Session holds the grid and cursor for one target word.
type Session struct {
	target []rune
	rows   [Attempts][]Cell
	row    int
	col    int
	status Status
}

// NewSession starts a session for target, which is upper-cased.
func NewSession(target string) *Session {
	s := &Session{}
	s.Reset(target)
	return s
}

// Reset clears the grid and cursor and installs a new target.
func (s *Session) Reset(target string) {
	s.target = []rune(strings.ToUpper(target))
	for i := range s.rows {
		s.rows[i] = make([]Cell, len(s.target))
	}
	s.row = 0
	s.col = 0
	s.status = InProgress
}

// Target returns the upper-cased target word.
func (s *Session) Target() string {
	return string(s.target)
}

// Width returns the number of letters per row.
func (s *Session) Width() int {
	return len(s.target)
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// Cursor returns the active row and column.
func (s *Session) Cursor() (int, int) {
	return s.row, s.col
}

// Used returns how many guesses have been submitted.
func (s *Session) Used() int {
	return s.row
}

// Rows returns a copy of the grid.
func (s *Session) Rows() [][]Cell {
	out := make([][]Cell, len(s.rows))
	for i, row := range s.rows {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Submit evaluates guess against the target. A wrong-length guess and a
// guess after the session ended leave the session untouched.
func (s *Session) Submit(guess string) ([]Verdict, error) {
	if s.status != InProgress {
		return nil, ErrFinished
	}
	letters := []rune(strings.ToUpper(guess))
	if len(letters) != len(s.target) {
		return nil, &LengthError{Want: len(s.target), Got: len(letters)}
	}
	verdicts := Evaluate(s.target, letters)
	row := s.rows[s.row]
	for i, r := range letters {
		row[i] = Cell{Letter: r, Verdict: verdicts[i]}
	}
	switch {
	case AllCorrect(verdicts):
		s.status = Won
	case s.row+1 >= Attempts:
		s.status = Lost
	}
	s.row++
	s.col = 0
	return verdicts, nil
}

// Keystroke applies a single key to the active row. Enter submits the row
// and returns the submission error, if any. Keys are ignored once the
// session is over.
func (s *Session) Keystroke(k Key) error {
	if s.status != InProgress || len(s.target) == 0 {
		return nil
	}
	row := s.rows[s.row]
	switch k.Type {
	case KeyBackspace:
		if row[s.col].Letter != 0 {
			row[s.col].Letter = 0
		} else if s.col > 0 {
			s.col--
			row[s.col].Letter = 0
		}
	case KeyEnter:
		_, err := s.Submit(s.pendingGuess())
		return err
	case KeyLetter:
		r, ok := normalizeLetter(k.Rune)
		if !ok {
			return nil
		}
		row[s.col].Letter = r
		if s.col < len(row)-1 {
			s.col++
		}
	}
	return nil
}

func (s *Session) pendingGuess() string {
	var b strings.Builder
	for _, c := range s.rows[s.row] {
		if c.Letter != 0 {
			b.WriteRune(c.Letter)
		}
	}
	return b.String()
}

func normalizeLetter(r rune) (rune, bool) {
	switch {
	case r == '\'' || r == '’':
		return '\'', true
	case unicode.IsLetter(r):
		return unicode.ToUpper(r), true
	default:
		return 0, false
	}
}
