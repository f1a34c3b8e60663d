package compare

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   \t\n  ", []string{}},
		{"hello", []string{"hello"}},
		{"  hello   world  ", []string{"hello", "world"}},
		{"one\ttwo\nthree", []string{"one", "two", "three"}},
		{"don't stop, okay?", []string{"don't", "stop,", "okay?"}},
	}
	for _, tc := range cases {
		got := Tokenize(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"Hello", "hello"},
		{"world!", "world"},
		{"...", ""},
		{"don't", "dont"},
		{"snake_case", "snake_case"},
		{"R2-D2", "r2d2"},
		{"Köln,", "köln"},
		{"ПРИВЕТ!", "привет"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"jon", "john", 1},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	// jon/john: distance 1 over max length 4.
	if got := similarity("jon", "john"); got != 0.75 {
		t.Errorf("similarity(jon, john) = %v, want 0.75", got)
	}
	if got := similarity("", ""); got != 1 {
		t.Errorf("similarity of two empty strings = %v, want 1", got)
	}
	if got := similarity("abc", "abc"); got != 1 {
		t.Errorf("similarity of equal strings = %v, want 1", got)
	}
	if got := similarity("abc", "xyz"); got != 0 {
		t.Errorf("similarity of disjoint strings = %v, want 0", got)
	}
}
