package session

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLStore keeps session keys in the sessions table created by internal/db.
// Works against sqlite and postgres; the upsert below is understood by both.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Set(ctx context.Context, sid, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO sessions (sid,key,value,updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (sid,key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at`,
		sid, key, value, time.Now().Unix())
	return err
}

func (s *SQLStore) Get(ctx context.Context, sid, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM sessions WHERE sid=$1 AND key=$2`, sid, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLStore) Remove(ctx context.Context, sid, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE sid=$1 AND key=$2`, sid, key)
	return err
}

func (s *SQLStore) Clear(ctx context.Context, sid string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE sid=$1`, sid)
	return err
}
