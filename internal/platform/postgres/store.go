// Package postgres provides the PostgreSQL-backed implementation of the
// store.Repository interface. It is the reference backend: the schema it
// ships (see migrations) defines the portable persistence contract that
// any substituted backend must preserve.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/quiz-api/internal/store"
)

// Store implements store.Repository using a PostgreSQL database as the
// storage backend. It owns the storage handle: callers hold a Store, never
// the underlying *sql.DB.
type Store struct {
	db     store.DBTX
	sqlDB  *sql.DB // nil when the store is scoped to an open transaction
	logger *slog.Logger
}

// New creates a new PostgreSQL implementation of store.Repository.
// It accepts a database connection that should be initialized and managed
// by the caller. If logger is nil, the default logger is used.
func New(db *sql.DB, logger *slog.Logger) *Store {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		db:     db,
		sqlDB:  db,
		logger: logger.With(slog.String("component", "postgres_store")),
	}
}

// Ensure Store implements store.Repository
var _ store.Repository = (*Store)(nil)

// withTx returns a copy of the store scoped to the given transaction.
func (s *Store) withTx(tx *sql.Tx) *Store {
	return &Store{
		db:     tx,
		logger: s.logger,
	}
}

// RunInTransaction implements store.Repository.RunInTransaction.
// All repository calls made through the Repository passed to fn execute in
// one database transaction, committed when fn returns nil and rolled back
// when it returns an error. Only one transaction is modeled at a time:
// calling RunInTransaction on a transaction-scoped store fails.
func (s *Store) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, r store.Repository) error,
) error {
	if s.sqlDB == nil {
		return fmt.Errorf("%w: nested transactions are not supported", store.ErrTransactionFailed)
	}

	return store.RunInTransaction(ctx, s.sqlDB, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.withTx(tx))
	})
}

// nullString converts an optional string to its database representation.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// stringPtr converts a database null string back to an optional string.
func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
