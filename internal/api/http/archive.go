package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/verbatim-app/verbatim/internal/archive"
	"github.com/verbatim-app/verbatim/internal/lexicon"
	"github.com/verbatim-app/verbatim/internal/practice"
	"github.com/verbatim-app/verbatim/internal/rbac"
)

// GET /export downloads the caller's sessions, notes and lexicon as a zip.
func ExportArchiveHandler(store practice.Store, lex lexicon.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		data, err := archive.Export(r.Context(), userID, store, lex)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		name := fmt.Sprintf("verbatim-%s-%s.zip", userID, time.Now().UTC().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		_, _ = w.Write(data)
	}
}

// POST /import accepts a previously exported zip (multipart file= or raw
// body) and replays it into the caller's account. Ownership in the archive
// is ignored; everything lands under the importing user.
func ImportArchiveHandler(store practice.Store, lex lexicon.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if f, _, err := r.FormFile("file"); err == nil {
			defer f.Close()
			if _, err := buf.ReadFrom(f); err != nil {
				http.Error(w, "read upload: "+err.Error(), 400)
				return
			}
		} else {
			if _, err := buf.ReadFrom(r.Body); err != nil {
				http.Error(w, "read body: "+err.Error(), 400)
				return
			}
		}
		if buf.Len() == 0 {
			http.Error(w, "empty archive", 400)
			return
		}

		userID := rbac.SubjectFromContext(r.Context())
		sum, err := archive.Import(r.Context(), userID, bytes.NewReader(buf.Bytes()), int64(buf.Len()), store, lex)
		if err != nil {
			http.Error(w, "bad archive: "+err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(sum)
	}
}
