package compare

import (
	"reflect"
	"testing"
)

func TestAccuracy(t *testing.T) {
	cases := []struct {
		name string
		in   []Part
		want int
	}{
		{"empty sequence scores full credit", nil, 100},
		{"all matches", parts("match", "a", "match", "b"), 100},
		{"no matches", parts("add", "a", "remove", "b"), 0},
		// one match out of three parts; the denominator is the whole
		// sequence, not just the reference side
		{"misspelling", parts("match", "hello", "remove", "world", "add", "wrold"), 33},
		{"rounds half up", parts("match", "a", "add", "b", "add", "c", "add", "d",
			"add", "e", "add", "f", "add", "g", "add", "h"), 13}, // 12.5%
		{"two thirds", parts("match", "a", "match", "b", "remove", "c"), 67},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Accuracy(tc.in); got != tc.want {
				t.Fatalf("Accuracy = %d, want %d", got, tc.want)
			}
		})
	}
}

// Swapping a match for an add/remove pair, or downgrading a match in place,
// must never raise the score.
func TestAccuracyMonotonic(t *testing.T) {
	seq := parts("match", "a", "match", "b", "match", "c", "match", "d")
	prev := Accuracy(seq)
	for i := range seq {
		seq[i].Kind = Remove
		cur := Accuracy(seq)
		if cur >= prev {
			t.Fatalf("accuracy did not decrease: %d -> %d after downgrading part %d", prev, cur, i)
		}
		prev = cur
	}
	if prev != 0 {
		t.Fatalf("all-remove accuracy = %d, want 0", prev)
	}
}

func TestSuggestions(t *testing.T) {
	lex := Set{"paris": {}}
	seq := parts(
		"match", "We",
		"remove", "Marseille,", // missed, unregistered: suggest
		"remove", "Paris", // missed but registered already
		"remove", "-", // punctuation-only key
		"remove", "a", // single-letter key: too short to register
		"remove", "Marseille", // duplicate key
		"add", "Marsay",
	)
	got := Suggestions(seq, lex)
	want := []string{"marseille"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Suggestions = %v, want %v", got, want)
	}
	if got := Suggestions(nil, lex); got != nil {
		t.Fatalf("Suggestions(nil) = %v, want nil", got)
	}
}
