package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Authors returns favourite authors in alphabetical order with their covers
// in the order they were added.
func (r *Repository) Authors(ctx context.Context) ([]*Author, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.name, c.cover
		FROM authors a
		LEFT JOIN author_covers c ON c.author = a.name
		ORDER BY a.name, c.position`)
	if err != nil {
		return nil, fmt.Errorf("query authors: %w", err)
	}
	defer rows.Close()

	var out []*Author
	for rows.Next() {
		var (
			name  string
			cover sql.NullString
		)
		if err := rows.Scan(&name, &cover); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].Name != name {
			out = append(out, &Author{Name: name})
		}
		if cover.Valid {
			a := out[len(out)-1]
			a.Covers = append(a.Covers, cover.String)
		}
	}
	return out, rows.Err()
}

// SaveAuthor adds cover to the author called name, creating the author if
// needed. Saving the same cover twice has no effect.
func (r *Repository) SaveAuthor(ctx context.Context, name, cover string) error {
	return r.write(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM authors WHERE name = ?`, name).Scan(&exists)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx, `INSERT INTO authors (name) VALUES (?)`, name); err != nil {
				return fmt.Errorf("create author %q: %w", name, err)
			}
		case err != nil:
			return fmt.Errorf("look up author %q: %w", name, err)
		}

		var (
			duplicates int
			next       int
		)
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FILTER (WHERE cover = ?), COALESCE(MAX(position) + 1, 0)
			FROM author_covers WHERE author = ?`,
			cover, name,
		).Scan(&duplicates, &next)
		if err != nil {
			return fmt.Errorf("look up covers of %q: %w", name, err)
		}
		if duplicates > 0 {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO author_covers (author, position, cover) VALUES (?, ?, ?)`,
			name, next, cover,
		)
		if err != nil {
			return fmt.Errorf("add cover to %q: %w", name, err)
		}
		return nil
	})
}

// SaveAuthorOf favourites the author of d using its current cover.
func (r *Repository) SaveAuthorOf(ctx context.Context, d *Doujinshi) error {
	return r.SaveAuthor(ctx, d.Author, d.CoverURL)
}

func (r *Repository) DeleteAuthor(ctx context.Context, name string) error {
	return r.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM author_covers WHERE author = ?`, name); err != nil {
			return fmt.Errorf("delete covers of %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM authors WHERE name = ?`, name); err != nil {
			return fmt.Errorf("delete author %q: %w", name, err)
		}
		return nil
	})
}
