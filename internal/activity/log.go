// Package activity keeps an append-only log of write operations so a
// teacher can see what happened in a classroom deployment.
package activity

import (
	"context"
	"database/sql"
	"strconv"
	"time"
)

type Event struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"` // e.g. "POST /sessions"
	Key       string `json:"key,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type Log struct{ db *sql.DB }

func NewLog(db *sql.DB) *Log { return &Log{db: db} }

func (l *Log) Append(ctx context.Context, e Event) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO event_log (user_id, typ, key, created_at) VALUES ($1,$2,$3,$4)`,
		e.UserID, e.Type, e.Key, time.Now().Unix())
	return err
}

// Recent returns the newest events, capped at limit.
func (l *Log) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, user_id, typ, key, created_at FROM event_log ORDER BY id DESC LIMIT `+strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Key, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
