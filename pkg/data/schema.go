package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// SchemaVersion is the version written by migrate.
const SchemaVersion = 13

var schema = []string{
	`CREATE TABLE IF NOT EXISTS schema_info (
		version INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS doujinshi (
		id            BIGINT PRIMARY KEY,
		title         VARCHAR NOT NULL DEFAULT '',
		author        VARCHAR NOT NULL DEFAULT '',
		cover_url     VARCHAR NOT NULL DEFAULT '',
		url           VARCHAR NOT NULL DEFAULT '',
		is_downloaded BOOLEAN NOT NULL DEFAULT false,
		date          TIMESTAMP,
		gid           VARCHAR,
		token         VARCHAR,
		gdata_title   VARCHAR,
		rating        DOUBLE,
		category      VARCHAR,
		posted        BIGINT,
		file_count    INTEGER
	)`,
	// pages carry no key so a rewrite can delete and insert in one transaction
	`CREATE TABLE IF NOT EXISTS pages (
		doujinshi_id BIGINT NOT NULL,
		idx          INTEGER NOT NULL,
		thumb_url    VARCHAR NOT NULL DEFAULT '',
		url          VARCHAR NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS authors (
		name VARCHAR PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS author_covers (
		author   VARCHAR NOT NULL,
		position INTEGER NOT NULL,
		cover    VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS search_history (
		text VARCHAR PRIMARY KEY,
		date TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS browsing_history (
		id           BIGINT PRIMARY KEY,
		updated_at   TIMESTAMP NOT NULL,
		current_page INTEGER NOT NULL DEFAULT 0
	)`,
}

// migrate creates missing tables and records SchemaVersion.
func migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	var current int
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_info LIMIT 1`).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		current = 0
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	}

	if current >= SchemaVersion {
		return nil
	}

	if current > 0 && current < 8 {
		// Stores older than version 8 need no data changes.
		logger.Debug("no data migration required", "from", current)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_info`); err != nil {
		return fmt.Errorf("clear schema version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_info (version) VALUES (?)`, SchemaVersion); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	logger.Info("store schema migrated", "from", current, "to", SchemaVersion)
	return nil
}

// SchemaVersion reports the version recorded in the store.
func (r *Repository) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := r.db.QueryRowContext(ctx, `SELECT version FROM schema_info LIMIT 1`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}
