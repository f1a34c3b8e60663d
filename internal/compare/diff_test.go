package compare

import (
	"reflect"
	"testing"
)

func parts(kv ...string) []Part {
	if len(kv)%2 != 0 {
		panic("parts: want kind/text pairs")
	}
	out := make([]Part, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		out = append(out, Part{Kind: Kind(kv[i]), Text: kv[i+1]})
	}
	return out
}

func TestDiffBasic(t *testing.T) {
	cases := []struct {
		name      string
		attempt   string
		reference string
		lex       Set
		want      []Part
	}{
		{
			name: "both empty",
			want: []Part{},
		},
		{
			name:      "identical",
			attempt:   "hello world",
			reference: "hello world",
			want:      parts("match", "hello", "match", "world"),
		},
		{
			name:      "single misspelling",
			attempt:   "hello wrold",
			reference: "hello world",
			want:      parts("match", "hello", "remove", "world", "add", "wrold"),
		},
		{
			name:      "missing words listed before extra ones",
			attempt:   "the quick fox",
			reference: "the lazy dog",
			want: parts("match", "the", "remove", "lazy", "remove", "dog",
				"add", "quick", "add", "fox"),
		},
		{
			name:      "empty attempt",
			attempt:   "",
			reference: "only the reference",
			want:      parts("remove", "only", "remove", "the", "remove", "reference"),
		},
		{
			name:      "empty reference",
			attempt:   "all extra words",
			reference: "",
			want:      parts("add", "all", "add", "extra", "add", "words"),
		},
		{
			name:      "case and punctuation ignored",
			attempt:   "Hello, WORLD",
			reference: "hello world!",
			want:      parts("match", "hello", "match", "world!"),
		},
		{
			name:      "duplicate token stays adjacent",
			attempt:   "a a b",
			reference: "a b",
			want:      parts("add", "a", "match", "a", "match", "b"),
		},
		{
			name:      "standalone punctuation never an error",
			attempt:   "one two",
			reference: "one - two",
			want:      parts("match", "one", "match", "-", "match", "two"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Diff(tc.attempt, tc.reference, tc.lex)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Diff(%q, %q) = %v, want %v", tc.attempt, tc.reference, got, tc.want)
			}
		})
	}
}

func TestDiffProperNounFuzzy(t *testing.T) {
	lex := Set{"john": {}}
	got := Diff("I met jon yesterday", "I met John yesterday.", lex)
	want := parts("match", "I", "match", "met", "match", "John", "match", "yesterday.")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("diff = %v, want %v", got, want)
	}
	if acc := Accuracy(got); acc != 100 {
		t.Fatalf("accuracy = %d, want 100", acc)
	}
}

func TestDiffFuzzyOnlyForRegisteredWords(t *testing.T) {
	// "wrold" is within fuzzy range of "world" but plain words never match
	// fuzzily.
	got := Diff("wrold", "world", nil)
	want := parts("remove", "world", "add", "wrold")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("diff = %v, want %v", got, want)
	}
}

func TestDiffFuzzyBelowThreshold(t *testing.T) {
	// distance("smith", "jones")=5, maxLen=5, similarity 0: registration
	// alone is not enough.
	lex := Set{"jones": {}}
	got := Diff("smith", "jones", lex)
	want := parts("remove", "jones", "add", "smith")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("diff = %v, want %v", got, want)
	}
}

func TestDiffPunctuationIsNeverProperNoun(t *testing.T) {
	// A reference token with an empty key must not be fuzzy-matched even if
	// "" somehow ended up registered.
	lex := Set{"": {}}
	got := Diff("x", "... x", lex)
	want := parts("match", "...", "match", "x")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("diff = %v, want %v", got, want)
	}
}

// Reassembling by side must reproduce the two token sequences exactly.
func TestDiffReconstruction(t *testing.T) {
	cases := []struct{ attempt, reference string }{
		{"", ""},
		{"a a b", "a b"},
		{"the quick brown fox", "the slow brown dog jumps"},
		{"one two three", ""},
		{"", "just the reference side"},
		{"same same same", "same different same"},
	}
	for _, tc := range cases {
		got := Diff(tc.attempt, tc.reference, nil)
		var bySide [2][]string
		for _, p := range got {
			if p.Kind != Add {
				bySide[0] = append(bySide[0], p.Text)
			}
			if p.Kind != Remove {
				bySide[1] = append(bySide[1], p.Text)
			}
		}
		wantRef := Tokenize(tc.reference)
		wantAtt := Tokenize(tc.attempt)
		if !equalStrings(bySide[0], wantRef) {
			t.Errorf("diff(%q,%q): match+remove = %v, want %v", tc.attempt, tc.reference, bySide[0], wantRef)
		}
		if !equalStrings(bySide[1], wantAtt) {
			t.Errorf("diff(%q,%q): match+add = %v, want %v", tc.attempt, tc.reference, bySide[1], wantAtt)
		}
	}
}

func TestDiffIdempotent(t *testing.T) {
	lex := Set{"john": {}}
	a := Diff("I met jon", "I met John", lex)
	b := Diff("I met jon", "I met John", lex)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated calls differ: %v vs %v", a, b)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
