// Package lexicon manages each user's proper-noun set: the normalized keys
// that the comparison engine is allowed to match fuzzily.
package lexicon

import (
	"context"
	"errors"

	"github.com/verbatim-app/verbatim/internal/compare"
)

// ErrKeyTooShort rejects entries whose normalized form is shorter than two
// characters; single letters and pure punctuation are never proper nouns.
var ErrKeyTooShort = errors.New("lexicon: key too short")

// Store persists proper-noun keys per user. Keys are stored normalized
// (compare.Normalize); Add is an idempotent set insertion.
type Store interface {
	// Add registers word's normalized key. It reports whether the key was
	// newly inserted; adding an existing key is a no-op.
	Add(ctx context.Context, userID, word string) (bool, error)
	Remove(ctx context.Context, userID, word string) error
	List(ctx context.Context, userID string) ([]string, error)
	// Snapshot returns a read-only membership set for one comparison call.
	Snapshot(ctx context.Context, userID string) (compare.Set, error)
}

func normalizeKey(word string) (string, error) {
	key := compare.Normalize(word)
	if len([]rune(key)) <= 1 {
		return "", ErrKeyTooShort
	}
	return key, nil
}
