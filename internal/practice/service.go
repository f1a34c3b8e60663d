package practice

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verbatim-app/verbatim/internal/compare"
	"github.com/verbatim-app/verbatim/internal/lexicon"
)

type memoryStore struct {
	mu        sync.RWMutex
	exercises map[string]Exercise
	sessions  map[string]Session
	notes     map[string]Note
	lex       lexicon.Store
}

// NewInMemoryStore keeps everything in process memory; the lexicon store
// supplies the per-user proper-noun snapshot used when a session is
// submitted.
func NewInMemoryStore(lex lexicon.Store) Store {
	return &memoryStore{
		exercises: map[string]Exercise{},
		sessions:  map[string]Session{},
		notes:     map[string]Note{},
		lex:       lex,
	}
}

// finalize runs the comparison and freezes the session result.
func finalize(s *Session, attempt string, snap compare.Set, now int64) {
	parts := compare.Diff(attempt, s.Reference, snap)
	s.Attempt = attempt
	s.Parts = parts
	s.Accuracy = compare.Accuracy(parts)
	s.Suggestions = compare.Suggestions(parts, snap)
	s.Status = "submitted"
	s.SubmittedAt = now
}

func (m *memoryStore) PutExercise(_ context.Context, e Exercise) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exercises[e.ID] = e
	return nil
}

func (m *memoryStore) GetExercise(ctx context.Context, id string) (Exercise, error) {
	e, err := m.GetExerciseAdmin(ctx, id)
	if err != nil {
		return Exercise{}, err
	}
	// hide the dictation text from students until they submit
	e.Reference = ""
	return e, nil
}

func (m *memoryStore) GetExerciseAdmin(_ context.Context, id string) (Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.exercises[id]
	if !ok {
		return Exercise{}, errors.New("exercise not found")
	}
	return e, nil
}

func (m *memoryStore) DeleteExercise(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exercises[id]; !ok {
		return errors.New("exercise not found")
	}
	delete(m.exercises, id)
	return nil
}

func (m *memoryStore) ListExercises(_ context.Context, opts ExerciseListOpts) ([]Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Exercise{}
	for _, e := range m.exercises {
		if opts.Q != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(opts.Q)) {
			continue
		}
		e.Reference = ""
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, opts.Limit, opts.Offset), nil
}

func (m *memoryStore) NewSession(_ context.Context, exerciseID, userID, reference string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if exerciseID != "" {
		e, ok := m.exercises[exerciseID]
		if !ok {
			return Session{}, errors.New("exercise not found")
		}
		reference = e.Reference
	}
	s := Session{
		ID:         uuid.NewString(),
		ExerciseID: exerciseID,
		UserID:     userID,
		Status:     "in_progress",
		Reference:  reference,
		StartedAt:  time.Now().Unix(),
	}
	m.sessions[s.ID] = s
	return hideReference(s), nil
}

func (m *memoryStore) Submit(ctx context.Context, sessionID, attempt string) (Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return Session{}, errors.New("session not found")
	}
	if s.Status == "submitted" {
		return s, nil
	}
	snap, err := m.lex.Snapshot(ctx, s.UserID)
	if err != nil {
		return Session{}, err
	}
	finalize(&s, attempt, snap, time.Now().Unix())
	m.mu.Lock()
	m.sessions[sessionID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *memoryStore) GetSession(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, errors.New("session not found")
	}
	return hideReference(s), nil
}

func (m *memoryStore) PutSession(_ context.Context, s Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memoryStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) ListSessions(_ context.Context, opts SessionListOpts) ([]Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Session{}
	for _, s := range m.sessions {
		if opts.ExerciseID != "" && s.ExerciseID != opts.ExerciseID {
			continue
		}
		if opts.UserID != "" && s.UserID != opts.UserID {
			continue
		}
		if opts.Status != "" && s.Status != opts.Status {
			continue
		}
		out = append(out, hideReference(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt != out[j].StartedAt {
			return out[i].StartedAt > out[j].StartedAt
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, opts.Limit, opts.Offset), nil
}

func (m *memoryStore) PutNote(_ context.Context, n Note) (Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().Unix()
	if n.ID == "" {
		n.ID = uuid.NewString()
		n.CreatedAt = now
	} else if prev, ok := m.notes[n.ID]; ok {
		n.CreatedAt = prev.CreatedAt
		if n.UserID == "" {
			n.UserID = prev.UserID
		}
	} else {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	m.notes[n.ID] = n
	return n, nil
}

func (m *memoryStore) GetNote(_ context.Context, id string) (Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.notes[id]
	if !ok {
		return Note{}, errors.New("note not found")
	}
	return n, nil
}

func (m *memoryStore) DeleteNote(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[id]; !ok {
		return errors.New("note not found")
	}
	delete(m.notes, id)
	return nil
}

func (m *memoryStore) ListNotes(_ context.Context, opts NoteListOpts) ([]Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Note{}
	for _, n := range m.notes {
		if opts.UserID != "" && n.UserID != opts.UserID {
			continue
		}
		if opts.Q != "" && !strings.Contains(strings.ToLower(n.Title), strings.ToLower(opts.Q)) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, opts.Limit, opts.Offset), nil
}

// hideReference blanks the dictation text on sessions still in progress.
func hideReference(s Session) Session {
	if s.Status != "submitted" {
		s.Reference = ""
	}
	return s
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
