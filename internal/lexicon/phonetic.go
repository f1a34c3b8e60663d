package lexicon

import (
	"sort"

	"github.com/antzucaro/matchr"
)

// similarThreshold is the minimum Jaro-Winkler score for a non-phonetic
// near-duplicate; phonetic candidates (shared Double Metaphone code) use the
// lower phoneticThreshold.
const (
	similarThreshold  = 0.85
	phoneticThreshold = 0.70
)

// Similar returns the registered keys that sound or look like word, best
// match first. Candidates share a Double Metaphone code with word and score
// at least phoneticThreshold on Jaro-Winkler, or score at least
// similarThreshold outright. Used to warn before registering a near
// duplicate ("marseile" when "marseille" already exists).
func Similar(word string, entries []string) []string {
	key, err := normalizeKey(word)
	if err != nil {
		return nil
	}
	wp, ws := matchr.DoubleMetaphone(key)

	type scored struct {
		key   string
		score float64
	}
	var found []scored
	for _, e := range entries {
		if e == key {
			continue
		}
		score := matchr.JaroWinkler(key, e, false)
		ep, es := matchr.DoubleMetaphone(e)
		phonetic := codeOverlap(wp, ws, ep, es)
		if (phonetic && score >= phoneticThreshold) || score >= similarThreshold {
			found = append(found, scored{key: e, score: score})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].score > found[j].score })

	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.key
	}
	return out
}

func codeOverlap(ap, as, bp, bs string) bool {
	for _, a := range [2]string{ap, as} {
		if a == "" {
			continue
		}
		if a == bp || a == bs {
			return true
		}
	}
	return false
}
