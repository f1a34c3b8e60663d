package compare

import (
	"strings"
	"unicode"
)

// Tokenize splits text into whitespace-delimited words, preserving each
// word's surface form (punctuation included). Empty or all-whitespace
// input yields no tokens.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// Normalize produces the comparison key for a word: every rune that is not
// a letter, digit, or underscore is dropped and the rest is lowercased.
// A word made of punctuation only normalizes to "".
func Normalize(word string) string {
	out := make([]rune, 0, len(word))
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}
