package storage

import (
	"io"
	"strings"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	st, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	key, err := st.Put("exercises/ex-1/audio.ogg", strings.NewReader("not really ogg"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	rc, err := st.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "not really ogg" {
		t.Fatalf("content = %q", b)
	}

	if err := st.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(key); err == nil {
		t.Fatalf("expected get to fail after delete")
	}
	// deleting again is fine
	if err := st.Delete(key); err != nil {
		t.Fatalf("re-delete: %v", err)
	}
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	st, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := st.Put("../outside", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
	if _, err := st.Get("../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
}
