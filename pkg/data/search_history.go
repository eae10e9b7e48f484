package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SearchHistory returns every saved search, newest first.
func (r *Repository) SearchHistory(ctx context.Context) ([]*SearchHistory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT text, date FROM search_history ORDER BY date DESC, text`)
	if err != nil {
		return nil, fmt.Errorf("query search history: %w", err)
	}
	defer rows.Close()

	var out []*SearchHistory
	for rows.Next() {
		h := &SearchHistory{}
		if err := rows.Scan(&h.Text, &h.Date); err != nil {
			return nil, fmt.Errorf("scan search history: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// SaveSearchHistory records text as searched now. Repeating a search
// refreshes its timestamp instead of adding a second record; blank text is
// ignored.
func (r *Repository) SaveSearchHistory(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	now := r.timestamp()
	return r.write(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO search_history (text, date) VALUES (?, ?)
			ON CONFLICT (text) DO UPDATE SET date = excluded.date`,
			text, now,
		)
		if err != nil {
			return fmt.Errorf("save search history %q: %w", text, err)
		}
		return nil
	})
}

func (r *Repository) DeleteSearchHistory(ctx context.Context, text string) error {
	return r.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM search_history WHERE text = ?`, text); err != nil {
			return fmt.Errorf("delete search history %q: %w", text, err)
		}
		return nil
	})
}

func (r *Repository) DeleteAllSearchHistory(ctx context.Context) error {
	return r.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM search_history`); err != nil {
			return fmt.Errorf("delete search history: %w", err)
		}
		return nil
	})
}
