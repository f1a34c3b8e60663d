package practice_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/verbatim-app/verbatim/internal/compare"
	"github.com/verbatim-app/verbatim/internal/lexicon"
	"github.com/verbatim-app/verbatim/internal/practice"
)

func seed(t *testing.T) (practice.Store, lexicon.Store) {
	t.Helper()
	lex := lexicon.NewInMemoryStore()
	st := practice.NewInMemoryStore(lex)
	err := st.PutExercise(context.Background(), practice.Exercise{
		ID:        "ex-1",
		Title:     "Meeting John",
		Reference: "I met John yesterday.",
		CreatedBy: "t1",
		CreatedAt: 100,
	})
	if err != nil {
		t.Fatalf("put exercise: %v", err)
	}
	return st, lex
}

func TestSessionFlow(t *testing.T) {
	ctx := context.Background()
	st, _ := seed(t)

	s, err := st.NewSession(ctx, "ex-1", "u1", "")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.Status != "in_progress" {
		t.Fatalf("status = %q, want in_progress", s.Status)
	}
	if s.Reference != "" {
		t.Fatalf("reference leaked before submission")
	}

	got, err := st.Submit(ctx, s.ID, "I met Jon yesterday")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Status != "submitted" {
		t.Fatalf("status = %q, want submitted", got.Status)
	}
	// "Jon" is not registered, so the name is a miss.
	if got.Accuracy != 60 {
		t.Fatalf("accuracy = %d, want 60", got.Accuracy)
	}
	if len(got.Suggestions) != 1 || got.Suggestions[0] != "john" {
		t.Fatalf("suggestions = %v, want [john]", got.Suggestions)
	}
	if got.Reference == "" {
		t.Fatalf("reference should be visible after submission")
	}

	// Submit is idempotent.
	again, err := st.Submit(ctx, s.ID, "something else entirely")
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if again.Attempt != got.Attempt || again.Accuracy != got.Accuracy {
		t.Fatalf("resubmit changed the result: %+v vs %+v", again, got)
	}
}

func TestSubmitUsesLexiconSnapshot(t *testing.T) {
	ctx := context.Background()
	st, lex := seed(t)
	if _, err := lex.Add(ctx, "u1", "John"); err != nil {
		t.Fatalf("lexicon add: %v", err)
	}

	s, err := st.NewSession(ctx, "ex-1", "u1", "")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	got, err := st.Submit(ctx, s.ID, "I met Jon yesterday")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// Registered proper noun: "Jon" fuzzy-matches "John."
	if got.Accuracy != 100 {
		t.Fatalf("accuracy = %d, want 100", got.Accuracy)
	}
	if len(got.Suggestions) != 0 {
		t.Fatalf("suggestions = %v, want none", got.Suggestions)
	}
	for _, p := range got.Parts {
		if p.Kind != compare.Match {
			t.Fatalf("part %v should be a match", p)
		}
	}
}

func TestFreePracticeSession(t *testing.T) {
	ctx := context.Background()
	st, _ := seed(t)

	s, err := st.NewSession(ctx, "", "u1", "the rain in spain")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	got, err := st.Submit(ctx, s.ID, "the rain in spain")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Accuracy != 100 {
		t.Fatalf("accuracy = %d, want 100", got.Accuracy)
	}
}

func TestNewSessionUnknownExercise(t *testing.T) {
	st, _ := seed(t)
	if _, err := st.NewSession(context.Background(), "nope", "u1", ""); err == nil {
		t.Fatalf("expected error for unknown exercise")
	}
}

func TestListSessionsFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	st, _ := seed(t)

	for i := 0; i < 3; i++ {
		s, err := st.NewSession(ctx, "ex-1", "u1", "")
		if err != nil {
			t.Fatalf("new session: %v", err)
		}
		if i == 0 {
			if _, err := st.Submit(ctx, s.ID, "x"); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}
	}
	if _, err := st.NewSession(ctx, "", "u2", "other text"); err != nil {
		t.Fatalf("new session: %v", err)
	}

	list, err := st.ListSessions(ctx, practice.SessionListOpts{UserID: "u1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d sessions for u1, want 3", len(list))
	}

	list, err = st.ListSessions(ctx, practice.SessionListOpts{UserID: "u1", Status: "submitted"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d submitted sessions, want 1", len(list))
	}

	list, err = st.ListSessions(ctx, practice.SessionListOpts{UserID: "u1", Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d sessions at offset 2, want 1", len(list))
	}
}

func TestNotesCRUD(t *testing.T) {
	ctx := context.Background()
	st, _ := seed(t)

	n, err := st.PutNote(ctx, practice.Note{UserID: "u1", Title: "liaison", Body: "silent consonant carries over"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if n.ID == "" || n.CreatedAt == 0 {
		t.Fatalf("note not initialized: %+v", n)
	}

	n.Body = "updated"
	upd, err := st.PutNote(ctx, n)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.CreatedAt != n.CreatedAt {
		t.Fatalf("update changed created_at")
	}

	got, err := st.GetNote(ctx, n.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Body != "updated" {
		t.Fatalf("body = %q, want updated", got.Body)
	}

	if err := st.DeleteNote(ctx, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.GetNote(ctx, n.ID); err == nil {
		t.Fatalf("expected error after delete")
	}
}

func TestListNotesPagination(t *testing.T) {
	ctx := context.Background()
	st, _ := seed(t)
	for i := 0; i < 5; i++ {
		if _, err := st.PutNote(ctx, practice.Note{UserID: "u1", Title: fmt.Sprintf("note %d", i)}); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	list, err := st.ListNotes(ctx, practice.NoteListOpts{UserID: "u1", Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d notes, want 2", len(list))
	}
	list, err = st.ListNotes(ctx, practice.NoteListOpts{UserID: "u1", Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d notes at offset 4, want 1", len(list))
	}
}

func TestListExercisesHidesReference(t *testing.T) {
	st, _ := seed(t)
	list, err := st.ListExercises(context.Background(), practice.ExerciseListOpts{Q: "john"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d exercises, want 1", len(list))
	}
	if list[0].Reference != "" {
		t.Fatalf("list leaked reference text")
	}
}
