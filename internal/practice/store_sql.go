package practice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verbatim-app/verbatim/internal/lexicon"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	lex    lexicon.Store
}

func NewSQLStore(db *sql.DB, driver string, lex lexicon.Store) *SQLStore {
	return &SQLStore{db: db, driver: driver, lex: lex}
}

func (s *SQLStore) PutExercise(ctx context.Context, e Exercise) error {
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO exercises (id,title,reference,audio_key,created_by,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, reference=EXCLUDED.reference, audio_key=EXCLUDED.audio_key`,
		e.ID, e.Title, e.Reference, e.AudioKey, e.CreatedBy, e.CreatedAt)
	return err
}

func (s *SQLStore) GetExercise(ctx context.Context, id string) (Exercise, error) {
	e, err := s.GetExerciseAdmin(ctx, id)
	if err != nil {
		return Exercise{}, err
	}
	// Parity with the in-memory store: students never see the text up front.
	e.Reference = ""
	return e, nil
}

func (s *SQLStore) GetExerciseAdmin(ctx context.Context, id string) (Exercise, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,reference,audio_key,created_by,created_at FROM exercises WHERE id=$1`, id)
	var e Exercise
	if err := row.Scan(&e.ID, &e.Title, &e.Reference, &e.AudioKey, &e.CreatedBy, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exercise{}, errors.New("exercise not found")
		}
		return Exercise{}, err
	}
	return e, nil
}

func (s *SQLStore) DeleteExercise(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exercises WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("exercise not found")
	}
	return nil
}

func (s *SQLStore) ListExercises(ctx context.Context, opts ExerciseListOpts) ([]Exercise, error) {
	q := `SELECT id,title,audio_key,created_by,created_at FROM exercises`
	args := []interface{}{}
	if opts.Q != "" {
		q += ` WHERE lower(title) LIKE $1`
		args = append(args, "%"+strings.ToLower(opts.Q)+"%")
	}
	q += ` ORDER BY created_at DESC, id`
	q += limitOffset(opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Exercise{}
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Title, &e.AudioKey, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) NewSession(ctx context.Context, exerciseID, userID, reference string) (Session, error) {
	if exerciseID != "" {
		e, err := s.GetExerciseAdmin(ctx, exerciseID)
		if err != nil {
			return Session{}, err
		}
		reference = e.Reference
	}
	sess := Session{
		ID:         uuid.NewString(),
		ExerciseID: exerciseID,
		UserID:     userID,
		Status:     "in_progress",
		Reference:  reference,
		StartedAt:  time.Now().Unix(),
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO sessions (id,exercise_id,user_id,status,reference,attempt,parts_json,accuracy,suggestions_json,started_at)
		VALUES ($1,$2,$3,'in_progress',$4,'','[]',0,'[]',$5)`,
		sess.ID, sess.ExerciseID, sess.UserID, sess.Reference, sess.StartedAt)
	if err != nil {
		return Session{}, err
	}
	return hideReference(sess), nil
}

func (s *SQLStore) Submit(ctx context.Context, sessionID, attempt string) (Session, error) {
	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.Status == "submitted" {
		return sess, nil
	}
	snap, err := s.lex.Snapshot(ctx, sess.UserID)
	if err != nil {
		return Session{}, err
	}
	finalize(&sess, attempt, snap, time.Now().Unix())

	pj, err := json.Marshal(sess.Parts)
	if err != nil {
		return Session{}, err
	}
	sj, err := json.Marshal(sess.Suggestions)
	if err != nil {
		return Session{}, err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE sessions SET status='submitted', attempt=$1, parts_json=$2, accuracy=$3, suggestions_json=$4, submitted_at=$5 WHERE id=$6`,
		sess.Attempt, string(pj), sess.Accuracy, string(sj), sess.SubmittedAt, sessionID)
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *SQLStore) GetSession(ctx context.Context, id string) (Session, error) {
	sess, err := s.getSession(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return hideReference(sess), nil
}

// getSession returns the row as stored, reference included.
func (s *SQLStore) getSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,exercise_id,user_id,status,reference,attempt,parts_json,accuracy,suggestions_json,started_at,COALESCE(submitted_at,0)
		FROM sessions WHERE id=$1`, id)
	return scanSession(row)
}

func (s *SQLStore) PutSession(ctx context.Context, sess Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.StartedAt == 0 {
		sess.StartedAt = time.Now().Unix()
	}
	pj, err := json.Marshal(sess.Parts)
	if err != nil {
		return err
	}
	sj, err := json.Marshal(sess.Suggestions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO sessions (id,exercise_id,user_id,status,reference,attempt,parts_json,accuracy,suggestions_json,started_at,submitted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET status=EXCLUDED.status, reference=EXCLUDED.reference, attempt=EXCLUDED.attempt,
			parts_json=EXCLUDED.parts_json, accuracy=EXCLUDED.accuracy, suggestions_json=EXCLUDED.suggestions_json,
			submitted_at=EXCLUDED.submitted_at`,
		sess.ID, sess.ExerciseID, sess.UserID, sess.Status, sess.Reference, sess.Attempt,
		string(pj), sess.Accuracy, string(sj), sess.StartedAt, nullableInt(sess.SubmittedAt))
	return err
}

func (s *SQLStore) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("session not found")
	}
	return nil
}

func (s *SQLStore) ListSessions(ctx context.Context, opts SessionListOpts) ([]Session, error) {
	q := `SELECT id,exercise_id,user_id,status,reference,attempt,parts_json,accuracy,suggestions_json,started_at,COALESCE(submitted_at,0) FROM sessions`
	where := []string{}
	args := []interface{}{}
	add := func(cond, val string) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if opts.ExerciseID != "" {
		add("exercise_id=$%d", opts.ExerciseID)
	}
	if opts.UserID != "" {
		add("user_id=$%d", opts.UserID)
	}
	if opts.Status != "" {
		add("status=$%d", opts.Status)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += ` ORDER BY started_at DESC, id`
	q += limitOffset(opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, hideReference(sess))
	}
	return out, rows.Err()
}

func (s *SQLStore) PutNote(ctx context.Context, n Note) (Note, error) {
	now := time.Now().Unix()
	n.UpdatedAt = now
	if n.ID == "" {
		n.ID = uuid.NewString()
		n.CreatedAt = now
		_, err := s.db.ExecContext(ctx, `INSERT INTO notes (id,user_id,title,body,created_at,updated_at)
			VALUES ($1,$2,$3,$4,$5,$6)`, n.ID, n.UserID, n.Title, n.Body, n.CreatedAt, n.UpdatedAt)
		if err != nil {
			return Note{}, err
		}
		return n, nil
	}
	prev, err := s.GetNote(ctx, n.ID)
	if err != nil {
		// unknown ID supplied by an import: insert as-is
		if n.CreatedAt == 0 {
			n.CreatedAt = now
		}
		_, err := s.db.ExecContext(ctx, `INSERT INTO notes (id,user_id,title,body,created_at,updated_at)
			VALUES ($1,$2,$3,$4,$5,$6)`, n.ID, n.UserID, n.Title, n.Body, n.CreatedAt, n.UpdatedAt)
		if err != nil {
			return Note{}, err
		}
		return n, nil
	}
	n.CreatedAt = prev.CreatedAt
	if n.UserID == "" {
		n.UserID = prev.UserID
	}
	_, err = s.db.ExecContext(ctx, `UPDATE notes SET title=$1, body=$2, updated_at=$3 WHERE id=$4`,
		n.Title, n.Body, n.UpdatedAt, n.ID)
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

func (s *SQLStore) GetNote(ctx context.Context, id string) (Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,user_id,title,body,created_at,updated_at FROM notes WHERE id=$1`, id)
	var n Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Note{}, errors.New("note not found")
		}
		return Note{}, err
	}
	return n, nil
}

func (s *SQLStore) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("note not found")
	}
	return nil
}

func (s *SQLStore) ListNotes(ctx context.Context, opts NoteListOpts) ([]Note, error) {
	q := `SELECT id,user_id,title,body,created_at,updated_at FROM notes`
	where := []string{}
	args := []interface{}{}
	if opts.UserID != "" {
		args = append(args, opts.UserID)
		where = append(where, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if opts.Q != "" {
		args = append(args, "%"+strings.ToLower(opts.Q)+"%")
		where = append(where, fmt.Sprintf("lower(title) LIKE $%d", len(args)))
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += ` ORDER BY updated_at DESC, id`
	q += limitOffset(opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Note{}
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (Session, error) {
	var sess Session
	var pj, sj string
	if err := row.Scan(&sess.ID, &sess.ExerciseID, &sess.UserID, &sess.Status, &sess.Reference,
		&sess.Attempt, &pj, &sess.Accuracy, &sj, &sess.StartedAt, &sess.SubmittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, errors.New("session not found")
		}
		return Session{}, err
	}
	if err := json.Unmarshal([]byte(pj), &sess.Parts); err != nil {
		sess.Parts = nil
	}
	if err := json.Unmarshal([]byte(sj), &sess.Suggestions); err != nil {
		sess.Suggestions = nil
	}
	if len(sess.Parts) == 0 {
		sess.Parts = nil
	}
	if len(sess.Suggestions) == 0 {
		sess.Suggestions = nil
	}
	return sess, nil
}

func nullableInt(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

// limitOffset renders LIMIT/OFFSET inline; callers validate both as
// non-negative integers.
func limitOffset(limit, offset int) string {
	out := ""
	if limit > 0 {
		out += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset > 0 {
		out += fmt.Sprintf(" OFFSET %d", offset)
	}
	return out
}

var _ Store = (*SQLStore)(nil)
