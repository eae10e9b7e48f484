package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// InitDuckDB opens the database file at path, creating parent directories,
// and brings the schema up to SchemaVersion.
func InitDuckDB(path string) (*sql.DB, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if err := migrate(context.Background(), db, slog.Default()); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Repository is the local store for search history, browsing history,
// downloaded items and favourite authors.
type Repository struct {
	db     *sql.DB
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Repository)

// WithClock replaces the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

func NewRepository(db *sql.DB, opts ...Option) *Repository {
	r := &Repository{
		db:     db,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open initializes the database at path and returns a repository over it.
func Open(path string, opts ...Option) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return NewRepository(db, opts...), nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// timestamp returns the current time at the precision duckdb stores.
func (r *Repository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// write runs fn inside a single transaction.
func (r *Repository) write(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
