package compare

// Set is a map-backed Lexicon for snapshots and tests.
type Set map[string]struct{}

func (s Set) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Suggestions lists normalized keys of missed reference words that could be
// registered as proper nouns: remove parts whose key is longer than one rune
// and not already in the lexicon. Each key appears once, in part order.
func Suggestions(parts []Part, lex Lexicon) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range parts {
		if p.Kind != Remove {
			continue
		}
		key := Normalize(p.Text)
		if len([]rune(key)) <= 1 {
			continue
		}
		if lex != nil && lex.Contains(key) {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
