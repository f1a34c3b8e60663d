// Package compare implements the dictation comparison engine: it aligns a
// typed attempt against a reference text word by word and classifies each
// word as matched, missing, or extra.
//
// Words are compared by normalized key (lowercase, punctuation stripped).
// Words registered in the caller's proper-noun lexicon match fuzzily: two
// keys match when their letter accuracy (1 - editDistance/maxLen) reaches
// 0.60, so "jon" still counts for "John". Alignment is a longest-common-
// subsequence dynamic program over the two token sequences; at a divergence
// the missing reference word is always reported before the extra typed one,
// which fixes which of several equally good alignments is shown to the user.
package compare

// Kind classifies one aligned word of a comparison.
type Kind string

const (
	// Match: the word appears on both sides (or differs only in punctuation).
	Match Kind = "match"
	// Add: the word was typed but is not in the reference.
	Add Kind = "add"
	// Remove: the word is in the reference but was not typed.
	Remove Kind = "remove"
)

// Part is one aligned word. Text is the reference's surface form for match
// and remove parts and the attempt's surface form for add parts.
type Part struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Lexicon is the membership test for registered proper nouns, keyed by
// normalized form. Implementations must treat the set as read-only for the
// duration of one Diff call.
type Lexicon interface {
	Contains(key string) bool
}

// fuzzyThreshold is the minimum letter accuracy for a proper-noun match.
// Fixed, not tunable: it is part of the comparison contract.
const fuzzyThreshold = 0.60

// Diff aligns the typed attempt against the reference text and returns the
// aligned words in reference order, with extra typed words interleaved at
// their aligned positions. Both inputs may be empty; the result is never an
// error. Parts whose word is pure punctuation are always reported as match:
// punctuation differences do not count against the writer.
func Diff(attempt, reference string, lex Lexicon) []Part {
	u := Tokenize(attempt)
	o := Tokenize(reference)
	n, m := len(u), len(o)

	uk := make([]string, n)
	for i, w := range u {
		uk[i] = Normalize(w)
	}
	ok := make([]string, m)
	for j, w := range o {
		ok[j] = Normalize(w)
	}

	isMatch := func(i, j int) bool {
		if uk[i] == ok[j] {
			return true
		}
		// Fuzzy matching applies only to registered proper nouns, and an
		// empty key is never looked up.
		if ok[j] == "" || lex == nil || !lex.Contains(ok[j]) {
			return false
		}
		return similarity(uk[i], ok[j]) >= fuzzyThreshold
	}

	// dp[i][j] = length of the longest matching subsequence of u[:i], o[:j],
	// stored row-major in a flat slice.
	w := m + 1
	dp := make([]int, (n+1)*w)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if isMatch(i-1, j-1) {
				dp[i*w+j] = dp[(i-1)*w+j-1] + 1
			} else if dp[(i-1)*w+j] >= dp[i*w+j-1] {
				dp[i*w+j] = dp[(i-1)*w+j]
			} else {
				dp[i*w+j] = dp[i*w+j-1]
			}
		}
	}

	// Backtrack from (n, m). The walk runs right to left and is reversed
	// below, so taking the attempt side on ties is what puts the missing
	// reference word ahead of the extra typed word at each divergence.
	// Callers depend on that order.
	parts := make([]Part, 0, n+m)
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && isMatch(i-1, j-1):
			parts = append(parts, Part{Kind: Match, Text: o[j-1]})
			i--
			j--
		case i > 0 && (j == 0 || dp[(i-1)*w+j] >= dp[i*w+j-1]):
			parts = append(parts, Part{Kind: Add, Text: u[i-1]})
			i--
		default:
			parts = append(parts, Part{Kind: Remove, Text: o[j-1]})
			j--
		}
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}

	// Punctuation-only words never surface as errors.
	for idx := range parts {
		if parts[idx].Kind != Match && Normalize(parts[idx].Text) == "" {
			parts[idx].Kind = Match
		}
	}
	return parts
}
