package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// MaxBrowsedDoujinshi bounds the result of BrowsedDoujinshi.
const MaxBrowsedDoujinshi = 30

// BrowsingHistory returns the history record for the item with id, or nil.
func (r *Repository) BrowsingHistory(ctx context.Context, id int64) (*BrowsingHistory, error) {
	h := &BrowsingHistory{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, updated_at, current_page FROM browsing_history WHERE id = ?`, id,
	).Scan(&h.ID, &h.UpdatedAt, &h.CurrentPage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get browsing history %d: %w", id, err)
	}
	return h, nil
}

// CreateBrowsingHistory records that d is being browsed. An existing record
// is kept as is; the item itself is stored unless a downloaded copy exists.
func (r *Repository) CreateBrowsingHistory(ctx context.Context, d *Doujinshi) error {
	now := r.timestamp()
	return r.write(ctx, func(tx *sql.Tx) error {
		var downloaded bool
		err := tx.QueryRowContext(ctx,
			`SELECT is_downloaded FROM doujinshi WHERE id = ?`, d.ID,
		).Scan(&downloaded)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("look up doujinshi %d: %w", d.ID, err)
		}
		if !downloaded {
			if err := saveDoujinshi(ctx, tx, d); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO browsing_history (id, updated_at, current_page) VALUES (?, ?, 0)
			ON CONFLICT (id) DO NOTHING`,
			d.ID, now,
		)
		if err != nil {
			return fmt.Errorf("create browsing history %d: %w", d.ID, err)
		}
		return nil
	})
}

// UpdateBrowsingHistory stores currentPage and stamps h as updated now.
func (r *Repository) UpdateBrowsingHistory(ctx context.Context, h *BrowsingHistory, currentPage int) error {
	now := r.timestamp()
	err := r.write(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO browsing_history (id, updated_at, current_page) VALUES (?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET updated_at = excluded.updated_at, current_page = excluded.current_page`,
			h.ID, now, currentPage,
		)
		if err != nil {
			return fmt.Errorf("update browsing history %d: %w", h.ID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	h.UpdatedAt = now
	h.CurrentPage = currentPage
	return nil
}

// BrowsedDoujinshi returns up to MaxBrowsedDoujinshi recently browsed items,
// most recently updated first. The results are copies and do not change when
// the store does.
func (r *Repository) BrowsedDoujinshi(ctx context.Context) ([]*Doujinshi, error) {
	list, err := r.queryDoujinshi(ctx,
		`SELECT `+selectColumns("d")+` FROM browsing_history h
		JOIN doujinshi d ON d.id = h.id
		ORDER BY h.updated_at DESC, h.id
		LIMIT ?`, MaxBrowsedDoujinshi)
	if err != nil {
		return nil, fmt.Errorf("list browsed doujinshi: %w", err)
	}
	return list, nil
}

// DeleteBrowsingHistory forgets the history record for id.
func (r *Repository) DeleteBrowsingHistory(ctx context.Context, id int64) error {
	return r.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM browsing_history WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete browsing history %d: %w", id, err)
		}
		return nil
	})
}
