package http

import (
	"encoding/json"
	"net/http"

	"github.com/verbatim-app/verbatim/internal/activity"
)

// GET /activity?limit=100 returns recent write operations, newest first.
func ActivityHandler(log *activity.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := log.Recent(r.Context(), parseIntDefault(r.URL.Query().Get("limit"), 100))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(events)
	}
}
