package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verbatim-app/verbatim/internal/practice"
	"github.com/verbatim-app/verbatim/internal/rbac"
)

func CreateExerciseHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e practice.Exercise
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(e.Reference) == "" {
			http.Error(w, "reference text required", http.StatusBadRequest)
			return
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Title == "" {
			e.Title = "Dictation " + time.Now().Format("2006-01-02")
		}
		e.CreatedBy = rbac.SubjectFromContext(r.Context())
		e.CreatedAt = time.Now().Unix()
		if err := store.PutExercise(r.Context(), e); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(e)
	}
}

// GET /exercises/{exerciseID}. Students get the exercise without its
// reference text; teachers and admins get the full record.
func GetExerciseHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "exerciseID")
		role := rbac.RoleFromContext(r.Context())
		var (
			e   practice.Exercise
			err error
		)
		if role == "teacher" || role == "admin" {
			e, err = store.GetExerciseAdmin(r.Context(), id)
		} else {
			e, err = store.GetExercise(r.Context(), id)
		}
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		_ = json.NewEncoder(w).Encode(e)
	}
}

// GET /exercises?q=...&limit=50&offset=0
func ListExercisesHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListExercises(r.Context(), practice.ExerciseListOpts{
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

func DeleteExerciseHandler(store practice.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "exerciseID")
		if err := store.DeleteExercise(r.Context(), id); err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
