package store

import (
	"context"
	"database/sql"

	"github.com/siherrmann/curriculab/helper"
	_ "modernc.org/sqlite"
)

// SQLiteStore is a KV backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path and ensures
// the kv table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, helper.NewError("open sqlite database", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create kv table", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get returns the value stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?;`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, helper.NewError("scan", err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`,
		key,
		value,
	)
	if err != nil {
		return helper.NewError("upsert kv row", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?;`, key)
	if err != nil {
		return helper.NewError("delete kv row", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
