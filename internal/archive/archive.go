// Package archive packs a user's practice history into a portable zip:
// sessions.json, notes.json and lexicon.json. Archives move data between
// offline classroom installs and the hosted service.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/verbatim-app/verbatim/internal/lexicon"
	"github.com/verbatim-app/verbatim/internal/practice"
)

const (
	fileSessions = "sessions.json"
	fileNotes    = "notes.json"
	fileLexicon  = "lexicon.json"

	// archives are per-user, so one large list page covers everything
	exportPageLimit = 10000

	maxEntrySize = 32 << 20 // per-file decompression cap
)

// Export collects everything owned by userID into a zip.
func Export(ctx context.Context, userID string, store practice.Store, lex lexicon.Store) ([]byte, error) {
	sessions, err := store.ListSessions(ctx, practice.SessionListOpts{UserID: userID, Limit: exportPageLimit})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	notes, err := store.ListNotes(ctx, practice.NoteListOpts{UserID: userID, Limit: exportPageLimit})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	keys, err := lex.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list lexicon: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct {
		name string
		v    interface{}
	}{
		{fileSessions, sessions},
		{fileNotes, notes},
		{fileLexicon, keys},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f.v); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary reports what an import brought in.
type Summary struct {
	Sessions int `json:"sessions"`
	Notes    int `json:"notes"`
	Lexicon  int `json:"lexicon"`
}

// Import reads a zip produced by Export and merges it into the stores.
// Ownership is forced to userID regardless of what the archive claims, so
// an archive can be replayed into any account. Lexicon keys that are
// already present, or too short to register, are skipped silently.
func Import(ctx context.Context, userID string, r io.ReaderAt, size int64, store practice.Store, lex lexicon.Store) (Summary, error) {
	var sum Summary
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return sum, fmt.Errorf("open archive: %w", err)
	}
	for _, f := range zr.File {
		switch f.Name {
		case fileSessions:
			var sessions []practice.Session
			if err := decodeEntry(f, &sessions); err != nil {
				return sum, err
			}
			for _, s := range sessions {
				s.UserID = userID
				if err := store.PutSession(ctx, s); err != nil {
					return sum, fmt.Errorf("import session %s: %w", s.ID, err)
				}
				sum.Sessions++
			}
		case fileNotes:
			var notes []practice.Note
			if err := decodeEntry(f, &notes); err != nil {
				return sum, err
			}
			for _, n := range notes {
				n.UserID = userID
				if _, err := store.PutNote(ctx, n); err != nil {
					return sum, fmt.Errorf("import note %s: %w", n.ID, err)
				}
				sum.Notes++
			}
		case fileLexicon:
			var keys []string
			if err := decodeEntry(f, &keys); err != nil {
				return sum, err
			}
			for _, k := range keys {
				added, err := lex.Add(ctx, userID, k)
				if err != nil {
					continue
				}
				if added {
					sum.Lexicon++
				}
			}
		}
	}
	return sum, nil
}

func decodeEntry(f *zip.File, v interface{}) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	defer rc.Close()
	if err := json.NewDecoder(io.LimitReader(rc, maxEntrySize)).Decode(v); err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	return nil
}
