package http

import (
	"encoding/json"
	"net/http"

	"github.com/verbatim-app/verbatim/internal/compare"
	"github.com/verbatim-app/verbatim/internal/lexicon"
	"github.com/verbatim-app/verbatim/internal/rbac"
)

// POST /compare performs a stateless diff of an attempt against a
// reference text. It records nothing; the caller's personal lexicon is
// still consulted so results match what a submitted session would report.
func CompareHandler(lex lexicon.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ReferenceText string `json:"reference_text"`
			AttemptText   string `json:"attempt_text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		snap, err := lex.Snapshot(r.Context(), rbac.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		parts := compare.Diff(req.AttemptText, req.ReferenceText, snap)
		resp := struct {
			Parts       []compare.Part `json:"parts"`
			Accuracy    int            `json:"accuracy"`
			Suggestions []string       `json:"suggestions"`
		}{
			Parts:       parts,
			Accuracy:    compare.Accuracy(parts),
			Suggestions: compare.Suggestions(parts, snap),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
