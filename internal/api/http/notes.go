package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verbatim-app/verbatim/internal/practice"
	"github.com/verbatim-app/verbatim/internal/rbac"
)

// POST /notes and PUT /notes/{noteID} share a body shape.
type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func CreateNoteHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req noteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		now := time.Now().Unix()
		n := practice.Note{
			ID:        uuid.NewString(),
			UserID:    rbac.SubjectFromContext(r.Context()),
			Title:     strings.TrimSpace(req.Title),
			Body:      req.Body,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if n.Title == "" {
			n.Title = "Note " + time.Unix(now, 0).UTC().Format("2006-01-02")
		}
		saved, err := store.PutNote(r.Context(), n)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(saved)
	}
}

func UpdateNoteHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "noteID")
		n, err := store.GetNote(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		if n.UserID != rbac.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		var req noteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if strings.TrimSpace(req.Title) != "" {
			n.Title = strings.TrimSpace(req.Title)
		}
		n.Body = req.Body
		n.UpdatedAt = time.Now().Unix()
		saved, err := store.PutNote(r.Context(), n)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(saved)
	}
}

func GetNoteHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := store.GetNote(r.Context(), chi.URLParam(r, "noteID"))
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		if n.UserID != rbac.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(n)
	}
}

func DeleteNoteHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "noteID")
		n, err := store.GetNote(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		if n.UserID != rbac.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if err := store.DeleteNote(r.Context(), id); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /notes?q=...&limit=50&offset=0, always scoped to the caller.
func ListNotesHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListNotes(r.Context(), practice.NoteListOpts{
			UserID: rbac.SubjectFromContext(r.Context()),
			Q:      strings.TrimSpace(r.URL.Query().Get("q")),
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}
