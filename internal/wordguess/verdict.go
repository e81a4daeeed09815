// Package wordguess implements the word-guessing game: target selection,
// two-pass guess evaluation and the bounded-attempts session state machine.
package wordguess

// Verdict classifies a single guessed letter.
type Verdict int

// Verdict values. Unset marks cells that have not been submitted yet.
const (
	Unset Verdict = iota
	Correct
	Present
	Absent
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return "unset"
	}
}

// Evaluate compares guess against target position by position. Exact matches
// are consumed first so that duplicate letters are never over-counted, then
// each remaining guess letter claims the first unclaimed occurrence in the
// target. It returns nil when the lengths differ.
func Evaluate(target, guess []rune) []Verdict {
	if len(target) != len(guess) {
		return nil
	}
	verdicts := make([]Verdict, len(guess))
	remaining := make([]rune, len(target))
	copy(remaining, target)
	pending := make([]rune, len(guess))
	copy(pending, guess)

	for i := range pending {
		if pending[i] == remaining[i] {
			verdicts[i] = Correct
			remaining[i] = 0
			pending[i] = 0
		}
	}
	for i, r := range pending {
		if r == 0 {
			continue
		}
		verdicts[i] = Absent
		for j, t := range remaining {
			if t == r {
				verdicts[i] = Present
				remaining[j] = 0
				break
			}
		}
	}
	return verdicts
}

// AllCorrect reports whether every verdict is Correct.
func AllCorrect(verdicts []Verdict) bool {
	if len(verdicts) == 0 {
		return false
	}
	for _, v := range verdicts {
		if v != Correct {
			return false
		}
	}
	return true
}
