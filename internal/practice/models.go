package practice

import "github.com/verbatim-app/verbatim/internal/compare"

// Exercise is a dictation assignment: a reference text plus an optional
// uploaded audio recording of it being read aloud.
type Exercise struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Reference string `json:"reference,omitempty"` // withheld from students until they submit
	AudioKey  string `json:"audio_key,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// Session is one practice run. Free-practice sessions carry their own
// reference text instead of pointing at an exercise. Parts, Accuracy and
// Suggestions are filled in on submit.
type Session struct {
	ID          string         `json:"id"`
	ExerciseID  string         `json:"exercise_id,omitempty"`
	UserID      string         `json:"user_id"`
	Status      string         `json:"status"` // in_progress|submitted
	Reference   string         `json:"reference,omitempty"`
	Attempt     string         `json:"attempt,omitempty"`
	Parts       []compare.Part `json:"parts,omitempty"`
	Accuracy    int            `json:"accuracy"`
	Suggestions []string       `json:"suggestions,omitempty"`
	StartedAt   int64          `json:"started_at,omitempty"`
	SubmittedAt int64          `json:"submitted_at,omitempty"`
}

// Note is a personal study note.
type Note struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at,omitempty"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}
