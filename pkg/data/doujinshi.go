package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingMetadata is returned when an operation needs the remote
// metadata block and the item has none.
var ErrMissingMetadata = errors.New("doujinshi has no gallery metadata")

var doujinshiColumns = []string{
	"id", "title", "author", "cover_url", "url", "is_downloaded", "date",
	"gid", "token", "gdata_title", "rating", "category", "posted", "file_count",
}

func selectColumns(alias string) string {
	cols := make([]string, len(doujinshiColumns))
	for i, c := range doujinshiColumns {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// DownloadedPagePath is the location of a downloaded page image relative to
// the download directory.
func DownloadedPagePath(gid string, index int) string {
	return fmt.Sprintf("%s/%04d.jpg", gid, index)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDoujinshi(row rowScanner) (*Doujinshi, error) {
	var (
		d        Doujinshi
		date     sql.NullTime
		gid      sql.NullString
		token    sql.NullString
		title    sql.NullString
		rating   sql.NullFloat64
		category sql.NullString
		posted   sql.NullInt64
		count    sql.NullInt64
	)
	err := row.Scan(
		&d.ID, &d.Title, &d.Author, &d.CoverURL, &d.URL, &d.IsDownloaded, &date,
		&gid, &token, &title, &rating, &category, &posted, &count,
	)
	if err != nil {
		return nil, err
	}

	if date.Valid {
		d.Date = date.Time
	}
	if gid.Valid {
		d.GData = &GData{
			Gid:       gid.String,
			Token:     token.String,
			Title:     title.String,
			Rating:    rating.Float64,
			Category:  category.String,
			Posted:    posted.Int64,
			FileCount: int(count.Int64),
		}
	}
	return &d, nil
}

func (r *Repository) queryDoujinshi(ctx context.Context, query string, args ...any) ([]*Doujinshi, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var out []*Doujinshi
	for rows.Next() {
		d, err := scanDoujinshi(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, d := range out {
		if d.Pages, err = r.pages(ctx, d.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repository) pages(ctx context.Context, id int64) ([]Page, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT thumb_url, url FROM pages WHERE doujinshi_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.ThumbURL, &p.URL); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// saveDoujinshi inserts or replaces d and its pages.
func saveDoujinshi(ctx context.Context, tx *sql.Tx, d *Doujinshi) error {
	var (
		date                                any
		gid, token, title, category, posted any
		rating, count                       any
	)
	if !d.Date.IsZero() {
		date = d.Date
	}
	if g := d.GData; g != nil {
		gid, token, title, category = g.Gid, g.Token, g.Title, g.Category
		rating, posted, count = g.Rating, g.Posted, g.FileCount
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(doujinshiColumns)), ", ")
	_, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO doujinshi (`+strings.Join(doujinshiColumns, ", ")+`) VALUES (`+placeholders+`)`,
		d.ID, d.Title, d.Author, d.CoverURL, d.URL, d.IsDownloaded, date,
		gid, token, title, rating, category, posted, count,
	)
	if err != nil {
		return fmt.Errorf("save doujinshi %d: %w", d.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE doujinshi_id = ?`, d.ID); err != nil {
		return fmt.Errorf("clear pages of %d: %w", d.ID, err)
	}
	for i, p := range d.Pages {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pages (doujinshi_id, idx, thumb_url, url) VALUES (?, ?, ?, ?)`,
			d.ID, i, p.ThumbURL, p.URL,
		)
		if err != nil {
			return fmt.Errorf("save page %d of %d: %w", i, d.ID, err)
		}
	}
	return nil
}

// GetDoujinshi returns the stored item with id, or nil if there is none.
func (r *Repository) GetDoujinshi(ctx context.Context, id int64) (*Doujinshi, error) {
	list, err := r.queryDoujinshi(ctx,
		`SELECT `+selectColumns("d")+` FROM doujinshi d WHERE d.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get doujinshi %d: %w", id, err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// Downloaded returns downloaded items, most recently saved first.
func (r *Repository) Downloaded(ctx context.Context) ([]*Doujinshi, error) {
	list, err := r.queryDoujinshi(ctx,
		`SELECT `+selectColumns("d")+` FROM doujinshi d
		WHERE d.is_downloaded
		ORDER BY d.date DESC NULLS LAST, d.id`)
	if err != nil {
		return nil, fmt.Errorf("list downloaded: %w", err)
	}
	return list, nil
}

// SaveDownloadedDoujinshi marks d as downloaded and persists it before
// returning. Page thumbnails are repointed at the local page files and the
// cover at the first page.
func (r *Repository) SaveDownloadedDoujinshi(ctx context.Context, d *Doujinshi) error {
	if d.GData == nil {
		return fmt.Errorf("save downloaded %d: %w", d.ID, ErrMissingMetadata)
	}

	pages := make([]Page, len(d.Pages))
	for i, p := range d.Pages {
		pages[i] = Page{
			ThumbURL: DownloadedPagePath(d.GData.Gid, i),
			URL:      p.URL,
		}
	}
	d.Pages = pages
	if len(pages) > 0 {
		d.CoverURL = pages[0].ThumbURL
	}
	d.IsDownloaded = true
	d.Date = r.timestamp()

	err := r.write(ctx, func(tx *sql.Tx) error {
		return saveDoujinshi(ctx, tx, d)
	})
	if err != nil {
		return err
	}

	r.logger.Debug("saved downloaded doujinshi", "id", d.ID, "gid", d.GData.Gid, "pages", len(pages))
	return nil
}

// UpdateMetadata replaces the metadata block of the stored item id. The
// item keeps its gallery id, pages and download state.
func (r *Repository) UpdateMetadata(ctx context.Context, id int64, g *GData) error {
	if g == nil {
		return fmt.Errorf("update metadata %d: %w", id, ErrMissingMetadata)
	}
	return r.write(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE doujinshi
			SET token = ?, gdata_title = ?, rating = ?, category = ?, posted = ?, file_count = ?
			WHERE id = ?`,
			g.Token, g.Title, g.Rating, g.Category, g.Posted, g.FileCount, id,
		)
		if err != nil {
			return fmt.Errorf("update metadata %d: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("update metadata %d: %w", id, sql.ErrNoRows)
		}
		return nil
	})
}

// IsDoujinshiDownloaded reports whether a downloaded item with the given
// gallery id exists.
func (r *Repository) IsDoujinshiDownloaded(ctx context.Context, gid string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM doujinshi WHERE is_downloaded AND gid = ?`, gid,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check downloaded %q: %w", gid, err)
	}
	return n > 0, nil
}

// DeleteDoujinshi removes the item and its pages.
func (r *Repository) DeleteDoujinshi(ctx context.Context, id int64) error {
	return r.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE doujinshi_id = ?`, id); err != nil {
			return fmt.Errorf("delete pages of %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM doujinshi WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete doujinshi %d: %w", id, err)
		}
		return nil
	})
}
