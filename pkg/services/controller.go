package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/kerbaras/shinsi/pkg/sources"
)

var (
	ErrAlreadyDownloaded = errors.New("already downloaded")
	ErrNotDownloaded     = errors.New("not downloaded")
	ErrUnknownDoujinshi  = errors.New("unknown doujinshi")
)

// Exporter packages a downloaded item into a single file.
type Exporter interface {
	Export(d *data.Doujinshi, pagesDir, outputDir string) (string, error)
}

// Library coordinates the source, the store and the downloader for the
// CLI and the TUI.
type Library struct {
	source     sources.Source
	repo       Repository
	downloader *Downloader
	exporter   Exporter
	logger     *slog.Logger
}

func NewLibrary(source sources.Source, repo Repository, downloader *Downloader, exporter Exporter) *Library {
	return &Library{
		source:     source,
		repo:       repo,
		downloader: downloader,
		exporter:   exporter,
		logger:     slog.Default(),
	}
}

func (l *Library) Downloader() *Downloader {
	return l.downloader
}

// Add fetches the gallery at url and records it in the browsing history.
func (l *Library) Add(ctx context.Context, url string) (*data.Doujinshi, error) {
	d, err := l.source.Gallery(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch gallery: %w", err)
	}
	if err := l.repo.CreateBrowsingHistory(ctx, d); err != nil {
		return nil, err
	}
	l.logger.Info("gallery added", "id", d.ID, "title", d.Title, "pages", len(d.Pages))
	return d, nil
}

// Download fetches the gallery at url and downloads every page.
func (l *Library) Download(ctx context.Context, url string) (*data.Doujinshi, error) {
	d, err := l.Add(ctx, url)
	if err != nil {
		return nil, err
	}

	if d.GData == nil {
		return nil, fmt.Errorf("download %d: %w", d.ID, data.ErrMissingMetadata)
	}
	downloaded, err := l.repo.IsDoujinshiDownloaded(ctx, d.GData.Gid)
	if err != nil {
		return nil, err
	}
	if downloaded {
		return nil, fmt.Errorf("gallery %s: %w", d.GData.Gid, ErrAlreadyDownloaded)
	}

	if err := l.downloader.Download(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (l *Library) get(ctx context.Context, id int64) (*data.Doujinshi, error) {
	d, err := l.repo.GetDoujinshi(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("doujinshi %d: %w", id, ErrUnknownDoujinshi)
	}
	return d, nil
}

// Delete removes the item from the store and its pages from disk.
func (l *Library) Delete(ctx context.Context, id int64) error {
	d, err := l.get(ctx, id)
	if err != nil {
		return err
	}
	if err := l.repo.DeleteDoujinshi(ctx, id); err != nil {
		return err
	}
	if d.IsDownloaded && d.GData != nil {
		if err := l.downloader.RemoveFiles(d.GData.Gid); err != nil {
			return fmt.Errorf("remove pages of %d: %w", id, err)
		}
	}
	l.logger.Info("doujinshi deleted", "id", id)
	return nil
}

// Export writes the downloaded item id to outputDir and returns the file path.
func (l *Library) Export(ctx context.Context, id int64, outputDir string) (string, error) {
	d, err := l.get(ctx, id)
	if err != nil {
		return "", err
	}
	if !d.IsDownloaded {
		return "", fmt.Errorf("doujinshi %d: %w", id, ErrNotDownloaded)
	}
	return l.exporter.Export(d, l.downloader.Dir(), outputDir)
}

// Refresh fetches the current metadata of item id from the source and
// stores it. The refreshed item is returned.
func (l *Library) Refresh(ctx context.Context, id int64) (*data.Doujinshi, error) {
	d, err := l.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.GData == nil {
		return nil, fmt.Errorf("refresh %d: %w", id, data.ErrMissingMetadata)
	}

	g, err := l.source.Metadata(ctx, d.ID, d.GData.Token)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("refresh %d: %w", id, data.ErrMissingMetadata)
	}
	g.Gid = d.GData.Gid
	if err := l.repo.UpdateMetadata(ctx, id, g); err != nil {
		return nil, err
	}
	d.GData = g
	l.logger.Info("metadata refreshed", "id", id, "rating", g.Rating, "pages", g.FileCount)
	return d, nil
}

// FavouriteAuthor saves the author of item id with its cover.
func (l *Library) FavouriteAuthor(ctx context.Context, id int64) error {
	d, err := l.get(ctx, id)
	if err != nil {
		return err
	}
	if d.Author == "" {
		return fmt.Errorf("doujinshi %d has no author", id)
	}
	return l.repo.SaveAuthorOf(ctx, d)
}

// PageRef returns the image reference of page index of d: the local file
// for downloaded items, the resolved remote image otherwise.
func (l *Library) PageRef(ctx context.Context, d *data.Doujinshi, index int) (string, error) {
	if index < 0 || index >= len(d.Pages) {
		return "", fmt.Errorf("doujinshi %d has no page %d", d.ID, index)
	}
	if d.IsDownloaded && d.GData != nil {
		return data.DownloadedPagePath(d.GData.Gid, index), nil
	}
	return l.source.ImageURL(ctx, d.Pages[index].URL)
}
