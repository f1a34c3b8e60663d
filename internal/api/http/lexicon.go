package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verbatim-app/verbatim/internal/lexicon"
	"github.com/verbatim-app/verbatim/internal/rbac"
)

// GET /lexicon lists the caller's registered proper nouns.
func ListLexiconHandler(lex lexicon.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := lex.List(r.Context(), rbac.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Entries []string `json:"entries"`
		}{Entries: entries})
	}
}

// POST /lexicon  {"word": "Marseille"}
// The response flags near duplicates already registered so the client can
// ask before keeping both spellings.
func AddLexiconHandler(lex lexicon.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Word string `json:"word"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		userID := rbac.SubjectFromContext(r.Context())
		existing, err := lex.List(r.Context(), userID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		added, err := lex.Add(r.Context(), userID, req.Word)
		if err != nil {
			if errors.Is(err, lexicon.ErrKeyTooShort) {
				http.Error(w, err.Error(), 400)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(struct {
			Added   bool     `json:"added"`
			Similar []string `json:"similar,omitempty"`
		}{Added: added, Similar: lexicon.Similar(req.Word, existing)})
	}
}

// DELETE /lexicon/{word}
func RemoveLexiconHandler(lex lexicon.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := chi.URLParam(r, "word")
		if err := lex.Remove(r.Context(), rbac.SubjectFromContext(r.Context()), word); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
