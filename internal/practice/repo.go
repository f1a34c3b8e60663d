package practice

import "context"

type ExerciseListOpts struct {
	Q      string // substring match on title
	Limit  int
	Offset int
}

type SessionListOpts struct {
	ExerciseID string
	UserID     string
	Status     string // optional: in_progress|submitted
	Limit      int
	Offset     int
}

type NoteListOpts struct {
	UserID string
	Q      string // substring match on title
	Limit  int
	Offset int
}

type Store interface {
	PutExercise(ctx context.Context, e Exercise) error
	GetExercise(ctx context.Context, id string) (Exercise, error)      // student-safe (no reference text)
	GetExerciseAdmin(ctx context.Context, id string) (Exercise, error) // full, for teachers/export
	DeleteExercise(ctx context.Context, id string) error
	ListExercises(ctx context.Context, opts ExerciseListOpts) ([]Exercise, error)

	NewSession(ctx context.Context, exerciseID, userID, reference string) (Session, error)
	// Submit stores the attempt, runs the comparison against the user's
	// proper-noun snapshot and freezes the result. Submitting an already
	// submitted session returns it unchanged.
	Submit(ctx context.Context, sessionID, attempt string) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	// PutSession upserts a session verbatim; used by archive import.
	PutSession(ctx context.Context, s Session) error
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, opts SessionListOpts) ([]Session, error)

	PutNote(ctx context.Context, n Note) (Note, error)
	GetNote(ctx context.Context, id string) (Note, error)
	DeleteNote(ctx context.Context, id string) error
	ListNotes(ctx context.Context, opts NoteListOpts) ([]Note, error)
}
