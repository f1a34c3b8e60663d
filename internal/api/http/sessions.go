package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/verbatim-app/verbatim/internal/practice"
	"github.com/verbatim-app/verbatim/internal/rbac"
)

// POST /sessions  {"exercise_id": "..."} or {"reference_text": "..."}
func CreateSessionHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ExerciseID    string `json:"exercise_id"`
			ReferenceText string `json:"reference_text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.ExerciseID == "" && strings.TrimSpace(req.ReferenceText) == "" {
			http.Error(w, "exercise_id or reference_text required", 400)
			return
		}
		userID := rbac.SubjectFromContext(r.Context())
		s, err := store.NewSession(r.Context(), req.ExerciseID, userID, req.ReferenceText)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(s)
	}
}

// POST /sessions/{sessionID}/submit  {"attempt_text": "..."}
func SubmitSessionHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var req struct {
			AttemptText string `json:"attempt_text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		s, err := store.GetSession(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		if !ownsOrViewsAll(r, s.UserID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		s, err = store.Submit(r.Context(), id, req.AttemptText)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(s)
	}
}

func GetSessionHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := store.GetSession(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		if !ownsOrViewsAll(r, s.UserID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(s)
	}
}

func DeleteSessionHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := store.GetSession(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		if !ownsOrViewsAll(r, s.UserID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if err := store.DeleteSession(r.Context(), id); err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /sessions?exercise_id=...&user_id=...&status=...&limit=50&offset=0
// Callers without session:view-all only ever see their own sessions.
func ListSessionsHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := rbac.RoleFromContext(r.Context())
		sub := rbac.SubjectFromContext(r.Context())

		userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		if role != "admin" && role != "teacher" {
			userID = sub
		}

		list, err := store.ListSessions(r.Context(), practice.SessionListOpts{
			ExerciseID: strings.TrimSpace(r.URL.Query().Get("exercise_id")),
			UserID:     userID,
			Status:     strings.TrimSpace(r.URL.Query().Get("status")),
			Limit:      parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:     parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

// ownsOrViewsAll allows the owner plus any role with session:view-all.
func ownsOrViewsAll(r *http.Request, ownerID string) bool {
	role := rbac.RoleFromContext(r.Context())
	if role == "admin" || role == "teacher" {
		return true
	}
	return rbac.SubjectFromContext(r.Context()) == ownerID
}

