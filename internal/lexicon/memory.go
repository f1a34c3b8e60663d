package lexicon

import (
	"context"
	"sort"
	"sync"

	"github.com/verbatim-app/verbatim/internal/compare"
)

type memoryStore struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{} // userID -> keys
}

// NewInMemoryStore is the store used in tests and single-process dev runs.
func NewInMemoryStore() Store {
	return &memoryStore{sets: map[string]map[string]struct{}{}}
}

func (m *memoryStore) Add(_ context.Context, userID, word string) (bool, error) {
	key, err := normalizeKey(word)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[userID]
	if !ok {
		set = map[string]struct{}{}
		m.sets[userID] = set
	}
	if _, exists := set[key]; exists {
		return false, nil
	}
	set[key] = struct{}{}
	return true, nil
}

func (m *memoryStore) Remove(_ context.Context, userID, word string) error {
	key := compare.Normalize(word)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets[userID], key)
	return nil
}

func (m *memoryStore) List(_ context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.sets[userID]))
	for k := range m.sets[userID] {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memoryStore) Snapshot(_ context.Context, userID string) (compare.Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(compare.Set, len(m.sets[userID]))
	for k := range m.sets[userID] {
		snap[k] = struct{}{}
	}
	return snap, nil
}
