package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/verbatim-app/verbatim/internal/practice"
	"github.com/verbatim-app/verbatim/internal/storage"
)

// MountAssets serves exercise audio. Uploading attaches the recording to
// its exercise so clients can stream it during practice.
func MountAssets(r chi.Router, bs storage.BlobStore, store practice.Store) {
	// POST /assets/{exerciseID}
	r.Post("/{exerciseID}", func(w http.ResponseWriter, r *http.Request) {
		exerciseID := chi.URLParam(r, "exerciseID")
		e, err := store.GetExerciseAdmin(r.Context(), exerciseID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		ext := ".bin"
		if i := strings.LastIndex(hdr.Filename, "."); i >= 0 {
			ext = hdr.Filename[i:]
		}
		key := "exercises/" + exerciseID + "/audio" + ext
		if _, err := bs.Put(key, f); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		e.AudioKey = key
		if err := store.PutExercise(r.Context(), e); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"key": key})
	})

	// GET /assets/*   -> returns the blob at whatever follows /assets/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")        // everything after /assets/
		key = strings.TrimPrefix(key, "/") // normalize
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found: "+err.Error(), http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", contentTypeForKey(key))
		_, _ = io.Copy(w, rc)
	})
}

func contentTypeForKey(key string) string {
	switch {
	case strings.HasSuffix(key, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(key, ".ogg"):
		return "audio/ogg"
	case strings.HasSuffix(key, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(key, ".m4a"):
		return "audio/mp4"
	case strings.HasSuffix(key, ".webm"):
		return "audio/webm"
	default:
		return "application/octet-stream"
	}
}
