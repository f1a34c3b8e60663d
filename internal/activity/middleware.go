package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verbatim-app/verbatim/internal/rbac"
)

// Audit records every successful write request after the handler runs.
// Reads are not logged.
func Audit(log *Log) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			if sw.status >= 400 {
				return
			}
			_ = log.Append(r.Context(), Event{
				UserID: rbac.SubjectFromContext(r.Context()),
				Type:   r.Method + " " + routePattern(r),
				Key:    r.URL.Path,
			})
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// routePattern reports the chi template ("/sessions/{sessionID}/submit")
// so events group by operation rather than by ID.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
