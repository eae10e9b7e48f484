package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	metadataFunc func(ctx context.Context, gid int64, token string) (*data.GData, error)
	galleryFunc  func(ctx context.Context, url string) (*data.Doujinshi, error)
	imageURLFunc func(ctx context.Context, pageURL string) (string, error)
}

func (m *mockSource) Metadata(ctx context.Context, gid int64, token string) (*data.GData, error) {
	if m.metadataFunc != nil {
		return m.metadataFunc(ctx, gid, token)
	}
	return nil, nil
}

func (m *mockSource) Gallery(ctx context.Context, url string) (*data.Doujinshi, error) {
	if m.galleryFunc != nil {
		return m.galleryFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockSource) ImageURL(ctx context.Context, pageURL string) (string, error) {
	if m.imageURLFunc != nil {
		return m.imageURLFunc(ctx, pageURL)
	}
	return pageURL + ".jpg", nil
}

type mockFetcher struct {
	mu        sync.Mutex
	fetched   []string
	fetchFunc func(ctx context.Context, ref string) ([]byte, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, ref)
	m.mu.Unlock()
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, ref)
	}
	return []byte("image:" + ref), nil
}

func (m *mockFetcher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fetched)
}

type mockExporter struct {
	exportFunc func(d *data.Doujinshi, pagesDir, outputDir string) (string, error)
}

func (m *mockExporter) Export(d *data.Doujinshi, pagesDir, outputDir string) (string, error) {
	if m.exportFunc != nil {
		return m.exportFunc(d, pagesDir, outputDir)
	}
	return filepath.Join(outputDir, d.GData.Gid+".epub"), nil
}

func setupRepo(t *testing.T) *data.Repository {
	t.Helper()
	repo, err := data.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testGallery(id int64, pages int) *data.Doujinshi {
	gid := fmt.Sprintf("%d", id)
	d := &data.Doujinshi{
		ID:       id,
		Title:    fmt.Sprintf("(C99) [Circle (Artist)] Gallery %d [English]", id),
		Author:   "Artist",
		CoverURL: fmt.Sprintf("https://example.com/t/%d/cover.jpg", id),
		URL:      fmt.Sprintf("https://example.com/g/%s/abc123/", gid),
		GData: &data.GData{
			Gid:       gid,
			Token:     "abc123",
			Rating:    4.2,
			Category:  "Doujinshi",
			Posted:    1700000000,
			FileCount: pages,
		},
	}
	for i := 0; i < pages; i++ {
		d.Pages = append(d.Pages, data.Page{
			ThumbURL: fmt.Sprintf("https://example.com/t/%d/%d.jpg", id, i),
			URL:      fmt.Sprintf("https://example.com/s/%d-%d", id, i),
		})
	}
	return d
}
