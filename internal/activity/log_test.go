package activity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/verbatim-app/verbatim/internal/activity"
	"github.com/verbatim-app/verbatim/internal/db"
	"github.com/verbatim-app/verbatim/internal/rbac"
)

func openTestDB(t *testing.T, name string) *activity.Log {
	t.Helper()
	h, err := db.Open(context.Background(), db.DriverSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return activity.NewLog(h)
}

func TestAppendAndRecent(t *testing.T) {
	log := openTestDB(t, "activity_recent")
	ctx := context.Background()

	for _, typ := range []string{"POST /sessions", "POST /sessions/{sessionID}/submit", "POST /notes"} {
		if err := log.Append(ctx, activity.Event{UserID: "s-1", Type: typ}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := log.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %d", len(events))
	}
	if events[0].Type != "POST /notes" {
		t.Fatalf("newest first, got %q", events[0].Type)
	}
}

func TestAuditSkipsReadsAndFailures(t *testing.T) {
	log := openTestDB(t, "activity_audit")

	var status int
	h := activity.Audit(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != 0 {
			w.WriteHeader(status)
		}
	}))
	serve := func(method string, code int) {
		status = code
		req := httptest.NewRequest(method, "/sessions", nil)
		req = req.WithContext(rbac.WithSubject(req.Context(), "s-1"))
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	serve(http.MethodGet, 0)                     // read, not logged
	serve(http.MethodPost, http.StatusForbidden) // failed write, not logged
	serve(http.MethodPost, 0)                    // implicit 200
	serve(http.MethodDelete, http.StatusNoContent)

	events, err := log.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 logged events, got %d", len(events))
	}
	for _, e := range events {
		if e.UserID != "s-1" {
			t.Fatalf("missing subject on %+v", e)
		}
	}
}
