package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/kerbaras/shinsi/pkg/sources"
)

// DownloadProgress represents the progress of a download operation
type DownloadProgress struct {
	DoujinshiID int64
	Title       string
	CurrentPage int
	TotalPages  int
	Status      string // "downloading", "processing", "complete", "error"
	Error       error
}

// Repository is the part of the store the services need.
type Repository interface {
	GetDoujinshi(ctx context.Context, id int64) (*data.Doujinshi, error)
	SaveDownloadedDoujinshi(ctx context.Context, d *data.Doujinshi) error
	IsDoujinshiDownloaded(ctx context.Context, gid string) (bool, error)
	DeleteDoujinshi(ctx context.Context, id int64) error
	CreateBrowsingHistory(ctx context.Context, d *data.Doujinshi) error
	SaveAuthorOf(ctx context.Context, d *data.Doujinshi) error
	UpdateMetadata(ctx context.Context, id int64, g *data.GData) error
}

// Fetcher returns the raw bytes behind an image reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Downloader stores every page of an item under <dir>/<gid>/ and then
// records the item as downloaded.
type Downloader struct {
	source       sources.Source
	repo         Repository
	fetcher      Fetcher
	downloadDir  string
	concurrency  int
	progressChan chan DownloadProgress
	logger       *slog.Logger
}

// NewDownloader creates a new Downloader instance
func NewDownloader(source sources.Source, repo Repository, fetcher Fetcher, downloadDir string, concurrency int) *Downloader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Downloader{
		source:       source,
		repo:         repo,
		fetcher:      fetcher,
		downloadDir:  downloadDir,
		concurrency:  concurrency,
		progressChan: make(chan DownloadProgress, 100),
		logger:       slog.Default(),
	}
}

func (d *Downloader) WithLogger(logger *slog.Logger) *Downloader {
	d.logger = logger
	return d
}

// GetProgressChannel returns the channel for receiving download progress updates
func (d *Downloader) GetProgressChannel() <-chan DownloadProgress {
	return d.progressChan
}

// Dir is the root directory downloaded pages are written to.
func (d *Downloader) Dir() string {
	return d.downloadDir
}

// Download fetches all pages of item and saves it as downloaded. Pages that
// already exist on disk are kept, so an interrupted download can resume.
func (d *Downloader) Download(ctx context.Context, item *data.Doujinshi) error {
	if item == nil {
		return fmt.Errorf("doujinshi cannot be nil")
	}
	if item.GData == nil {
		return fmt.Errorf("download %d: %w", item.ID, data.ErrMissingMetadata)
	}
	if len(item.Pages) == 0 {
		return fmt.Errorf("download %d: no pages", item.ID)
	}

	total := len(item.Pages)
	if err := os.MkdirAll(filepath.Join(d.downloadDir, item.GData.Gid), 0755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	d.logger.Info("download started", "id", item.ID, "gid", item.GData.Gid, "pages", total)
	d.sendProgress(DownloadProgress{DoujinshiID: item.ID, Title: item.Title, TotalPages: total, Status: "downloading"})

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		errs      []error
		completed int32
	)
	semaphore := make(chan struct{}, d.concurrency)

	for i, page := range item.Pages {
		wg.Add(1)
		go func(i int, page data.Page) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := d.downloadPage(ctx, item.GData.Gid, i, page); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("page %d: %w", i, err))
				mu.Unlock()
				return
			}

			done := atomic.AddInt32(&completed, 1)
			d.sendProgress(DownloadProgress{
				DoujinshiID: item.ID,
				Title:       item.Title,
				CurrentPage: int(done),
				TotalPages:  total,
				Status:      "downloading",
			})
		}(i, page)
	}
	wg.Wait()

	if len(errs) > 0 {
		err := errors.Join(errs...)
		d.logger.Error("download failed", "id", item.ID, "failed", len(errs), "error", err)
		d.sendProgress(DownloadProgress{DoujinshiID: item.ID, Title: item.Title, TotalPages: total, Status: "error", Error: err})
		return fmt.Errorf("download %d: %w", item.ID, err)
	}

	d.sendProgress(DownloadProgress{DoujinshiID: item.ID, Title: item.Title, CurrentPage: total, TotalPages: total, Status: "processing"})
	if err := d.repo.SaveDownloadedDoujinshi(ctx, item); err != nil {
		d.sendProgress(DownloadProgress{DoujinshiID: item.ID, Title: item.Title, TotalPages: total, Status: "error", Error: err})
		return fmt.Errorf("download %d: %w", item.ID, err)
	}

	d.logger.Info("download complete", "id", item.ID, "gid", item.GData.Gid)
	d.sendProgress(DownloadProgress{DoujinshiID: item.ID, Title: item.Title, CurrentPage: total, TotalPages: total, Status: "complete"})
	return nil
}

func (d *Downloader) downloadPage(ctx context.Context, gid string, index int, page data.Page) error {
	dest := filepath.Join(d.downloadDir, filepath.FromSlash(data.DownloadedPagePath(gid, index)))
	if _, err := os.Stat(dest); err == nil {
		return nil
	}

	imageURL, err := d.source.ImageURL(ctx, page.URL)
	if err != nil {
		return err
	}

	content, err := d.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return err
	}

	tmp := dest + ".part"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("move page into place: %w", err)
	}
	return nil
}

// RemoveFiles deletes the downloaded pages of the gallery gid.
func (d *Downloader) RemoveFiles(gid string) error {
	if gid == "" {
		return nil
	}
	return os.RemoveAll(filepath.Join(d.downloadDir, gid))
}

// sendProgress sends a progress update (non-blocking)
func (d *Downloader) sendProgress(progress DownloadProgress) {
	select {
	case d.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}
