package lexicon

import (
	"context"
	"database/sql"
	"time"

	"github.com/verbatim-app/verbatim/internal/compare"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Add(ctx context.Context, userID, word string) (bool, error) {
	key, err := normalizeKey(word)
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO lexicon (user_id, key, created_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id, key) DO NOTHING`,
		userID, key, time.Now().Unix())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLStore) Remove(ctx context.Context, userID, word string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM lexicon WHERE user_id=$1 AND key=$2`,
		userID, compare.Normalize(word))
	return err
}

func (s *SQLStore) List(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM lexicon WHERE user_id=$1 ORDER BY key`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (s *SQLStore) Snapshot(ctx context.Context, userID string) (compare.Set, error) {
	keys, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap := make(compare.Set, len(keys))
	for _, k := range keys {
		snap[k] = struct{}{}
	}
	return snap, nil
}
