package wordguess

import (
	"math/rand"
	"testing"
)

func TestEvaluateDuplicateLetters(t *testing.T) {
	cases := []struct {
		target string
		guess  string
		want   []Verdict
	}{
		{"CAT", "DOG", []Verdict{Absent, Absent, Absent}},
		{"CAT", "ACT", []Verdict{Present, Present, Correct}},
		{"CAT", "CAT", []Verdict{Correct, Correct, Correct}},
		{"PAPAS", "AAAPP", []Verdict{Present, Correct, Absent, Present, Present}},
		{"LLAMA", "ALLLL", []Verdict{Present, Correct, Present, Absent, Absent}},
		{"ÑANDU", "ANÑUD", []Verdict{Present, Present, Present, Present, Present}},
	}
	for _, tc := range cases {
		got := Evaluate([]rune(tc.target), []rune(tc.guess))
		if len(got) != len(tc.want) {
			t.Fatalf("%s/%s: expected %d verdicts, got %d", tc.target, tc.guess, len(tc.want), len(got))
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s/%s: position %d expected %s, got %s", tc.target, tc.guess, i, tc.want[i], got[i])
			}
		}
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	if got := Evaluate([]rune("CAT"), []rune("CATS")); got != nil {
		t.Fatalf("expected nil for mismatched lengths, got %v", got)
	}
}

func TestEvaluateMarksMinimumCount(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	alphabet := []rune("ABCD")
	for n := 0; n < 500; n++ {
		size := 3 + rnd.Intn(5)
		target := make([]rune, size)
		guess := make([]rune, size)
		for i := range target {
			target[i] = alphabet[rnd.Intn(len(alphabet))]
			guess[i] = alphabet[rnd.Intn(len(alphabet))]
		}
		verdicts := Evaluate(target, guess)
		for _, letter := range alphabet {
			marked := 0
			for i, v := range verdicts {
				if guess[i] == letter && (v == Correct || v == Present) {
					marked++
				}
			}
			want := min(countRune(target, letter), countRune(guess, letter))
			if marked != want {
				t.Fatalf("target %q guess %q letter %q: expected %d marks, got %d", string(target), string(guess), letter, want, marked)
			}
		}
		if !AllCorrect(Evaluate(target, target)) {
			t.Fatalf("expected %q against itself to be all correct", string(target))
		}
	}
}

func countRune(word []rune, r rune) int {
	count := 0
	for _, c := range word {
		if c == r {
			count++
		}
	}
	return count
}
