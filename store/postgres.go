package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/curriculab/helper"
	loadSql "github.com/siherrmann/curriculab/sql"
)

// PostgresStore is a KV backed by PostgreSQL, accessed through the kv_* SQL
// functions.
type PostgresStore struct {
	db *helper.Database
}

// NewPostgresStore creates a new PostgreSQL-backed store.
// It loads the kv SQL functions and ensures the kv table exists.
// If force is true, it will reload the SQL functions even if they already exist.
func NewPostgresStore(db *helper.Database, force bool) (*PostgresStore, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	postgresStore := &PostgresStore{
		db: db,
	}

	err := loadSql.LoadKVSql(postgresStore.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load kv sql", err)
	}

	err = postgresStore.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized PostgresStore")

	return postgresStore, nil
}

// CreateTable creates the 'kv' table in the database.
// If the table already exists, it does not create it again.
func (s *PostgresStore) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.db.Instance.ExecContext(ctx, `SELECT init_kv();`)
	if err != nil {
		log.Panicf("error initializing kv table: %#v", err)
	}

	s.db.Logger.Info("Checked/created table kv")

	return nil
}

// Get returns the value stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM kv_get($1);`,
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, helper.NewError("scan", err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *PostgresStore) Set(ctx context.Context, key string, value string) error {
	_, err := s.db.Instance.ExecContext(
		ctx,
		`SELECT kv_set($1, $2);`,
		key,
		value,
	)
	if err != nil {
		return helper.NewError("set kv value", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Instance.ExecContext(
		ctx,
		`SELECT kv_delete($1);`,
		key,
	)
	if err != nil {
		return helper.NewError("delete kv value", err)
	}
	return nil
}
