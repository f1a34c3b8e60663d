package lexicon

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestMemoryStoreAddNormalizesAndDedupes(t *testing.T) {
	ctx := context.Background()
	st := NewInMemoryStore()

	added, err := st.Add(ctx, "u1", "John,")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !added {
		t.Fatalf("expected first add to insert")
	}

	// Same key through a different surface form: no-op.
	added, err = st.Add(ctx, "u1", "JOHN")
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if added {
		t.Fatalf("expected re-add to be a no-op")
	}

	keys, err := st.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"john"}) {
		t.Fatalf("list = %v, want [john]", keys)
	}
}

func TestMemoryStoreRejectsShortKeys(t *testing.T) {
	ctx := context.Background()
	st := NewInMemoryStore()
	for _, w := range []string{"", "a", "I,", "..."} {
		if _, err := st.Add(ctx, "u1", w); !errors.Is(err, ErrKeyTooShort) {
			t.Errorf("Add(%q) err = %v, want ErrKeyTooShort", w, err)
		}
	}
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	st := NewInMemoryStore()
	if _, err := st.Add(ctx, "u1", "marseille"); err != nil {
		t.Fatalf("add: %v", err)
	}
	snap, err := st.Snapshot(ctx, "u2")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Contains("marseille") {
		t.Fatalf("u2 snapshot should not see u1 keys")
	}
}

func TestMemoryStoreRemove(t *testing.T) {
	ctx := context.Background()
	st := NewInMemoryStore()
	if _, err := st.Add(ctx, "u1", "tolkien"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := st.Remove(ctx, "u1", "Tolkien!"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	keys, err := st.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("list = %v, want empty", keys)
	}
	// Removing an absent key is fine.
	if err := st.Remove(ctx, "u1", "tolkien"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestSimilar(t *testing.T) {
	entries := []string{"marseille", "tolkien", "paris"}

	got := Similar("marseile", entries)
	if len(got) == 0 || got[0] != "marseille" {
		t.Fatalf("Similar(marseile) = %v, want marseille first", got)
	}

	// Identical key is excluded: nothing to warn about.
	for _, k := range Similar("Paris", entries) {
		if k == "paris" {
			t.Fatalf("Similar must not report the word itself")
		}
	}

	// Nothing close to an unrelated word.
	if got := Similar("xylophone", entries); len(got) != 0 {
		t.Fatalf("Similar(xylophone) = %v, want none", got)
	}

	// Invalid keys produce no suggestions.
	if got := Similar("...", entries); got != nil {
		t.Fatalf("Similar(...) = %v, want nil", got)
	}
}
