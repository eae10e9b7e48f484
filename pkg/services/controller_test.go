package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T, source *mockSource) (*Library, *data.Repository, string) {
	t.Helper()
	repo := setupRepo(t)
	dir := t.TempDir()
	downloader := NewDownloader(source, repo, &mockFetcher{}, dir, 2)
	return NewLibrary(source, repo, downloader, &mockExporter{}), repo, dir
}

func galleryOf(item *data.Doujinshi) *mockSource {
	return &mockSource{
		galleryFunc: func(ctx context.Context, url string) (*data.Doujinshi, error) {
			return item.Clone(), nil
		},
	}
}

func TestLibraryAddRecordsBrowsingHistory(t *testing.T) {
	ctx := context.Background()
	lib, repo, _ := newTestLibrary(t, galleryOf(testGallery(11, 4)))

	d, err := lib.Add(ctx, "https://example.com/g/11/abc123/")
	require.NoError(t, err)
	assert.Equal(t, int64(11), d.ID)

	h, err := repo.BrowsingHistory(ctx, 11)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, 0, h.CurrentPage)

	browsed, err := repo.BrowsedDoujinshi(ctx)
	require.NoError(t, err)
	require.Len(t, browsed, 1)
	assert.False(t, browsed[0].IsDownloaded)
}

func TestLibraryAddSourceError(t *testing.T) {
	lib, _, _ := newTestLibrary(t, &mockSource{
		galleryFunc: func(ctx context.Context, url string) (*data.Doujinshi, error) {
			return nil, errors.New("boom")
		},
	})

	_, err := lib.Add(context.Background(), "https://example.com/g/1/x/")
	assert.ErrorContains(t, err, "boom")
}

func TestLibraryDownload(t *testing.T) {
	ctx := context.Background()
	lib, repo, dir := newTestLibrary(t, galleryOf(testGallery(12, 3)))

	d, err := lib.Download(ctx, "https://example.com/g/12/abc123/")
	require.NoError(t, err)
	assert.True(t, d.IsDownloaded)
	_, err = os.Stat(filepath.Join(dir, "12", "0002.jpg"))
	assert.NoError(t, err)

	downloaded, err := repo.Downloaded(ctx)
	require.NoError(t, err)
	require.Len(t, downloaded, 1)

	_, err = lib.Download(ctx, "https://example.com/g/12/abc123/")
	assert.ErrorIs(t, err, ErrAlreadyDownloaded)
}

func TestLibraryDeleteRemovesFiles(t *testing.T) {
	ctx := context.Background()
	lib, repo, dir := newTestLibrary(t, galleryOf(testGallery(13, 2)))

	_, err := lib.Download(ctx, "https://example.com/g/13/abc123/")
	require.NoError(t, err)

	require.NoError(t, lib.Delete(ctx, 13))

	stored, err := repo.GetDoujinshi(ctx, 13)
	require.NoError(t, err)
	assert.Nil(t, stored)
	_, err = os.Stat(filepath.Join(dir, "13"))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, lib.Delete(ctx, 13), ErrUnknownDoujinshi)
}

func TestLibraryExport(t *testing.T) {
	ctx := context.Background()
	lib, _, dir := newTestLibrary(t, galleryOf(testGallery(14, 2)))

	_, err := lib.Add(ctx, "https://example.com/g/14/abc123/")
	require.NoError(t, err)
	_, err = lib.Export(ctx, 14, t.TempDir())
	assert.ErrorIs(t, err, ErrNotDownloaded)

	var gotPagesDir string
	lib.exporter = &mockExporter{
		exportFunc: func(d *data.Doujinshi, pagesDir, outputDir string) (string, error) {
			gotPagesDir = pagesDir
			return filepath.Join(outputDir, "out.epub"), nil
		},
	}
	_, err = lib.Download(ctx, "https://example.com/g/14/abc123/")
	require.NoError(t, err)

	out := t.TempDir()
	path, err := lib.Export(ctx, 14, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "out.epub"), path)
	assert.Equal(t, dir, gotPagesDir)
}

func TestLibraryFavouriteAuthor(t *testing.T) {
	ctx := context.Background()
	item := testGallery(15, 1)
	lib, repo, _ := newTestLibrary(t, galleryOf(item))

	_, err := lib.Add(ctx, item.URL)
	require.NoError(t, err)
	require.NoError(t, lib.FavouriteAuthor(ctx, 15))

	authors, err := repo.Authors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Artist", authors[0].Name)
	assert.Equal(t, []string{item.CoverURL}, authors[0].Covers)

	assert.ErrorIs(t, lib.FavouriteAuthor(ctx, 999), ErrUnknownDoujinshi)
}

func TestLibraryPageRef(t *testing.T) {
	ctx := context.Background()
	item := testGallery(16, 2)
	lib, _, _ := newTestLibrary(t, galleryOf(item))

	ref, err := lib.PageRef(ctx, item, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/s/16-1.jpg", ref)

	item.IsDownloaded = true
	ref, err = lib.PageRef(ctx, item, 1)
	require.NoError(t, err)
	assert.Equal(t, "16/0001.jpg", ref)

	_, err = lib.PageRef(ctx, item, 2)
	assert.Error(t, err)
}

func TestLibraryRefresh(t *testing.T) {
	ctx := context.Background()
	item := testGallery(17, 2)
	source := galleryOf(item)
	var gotToken string
	source.metadataFunc = func(ctx context.Context, gid int64, token string) (*data.GData, error) {
		gotToken = token
		return &data.GData{Token: token, Rating: 4.9, Category: "Manga", FileCount: 2}, nil
	}
	lib, repo, _ := newTestLibrary(t, source)

	_, err := lib.Add(ctx, item.URL)
	require.NoError(t, err)

	d, err := lib.Refresh(ctx, 17)
	require.NoError(t, err)
	assert.Equal(t, "abc123", gotToken)
	assert.Equal(t, 4.9, d.GData.Rating)

	stored, err := repo.GetDoujinshi(ctx, 17)
	require.NoError(t, err)
	assert.Equal(t, "17", stored.GData.Gid)
	assert.Equal(t, "Manga", stored.GData.Category)

	_, err = lib.Refresh(ctx, 999)
	assert.ErrorIs(t, err, ErrUnknownDoujinshi)
}

func TestLibraryRefreshSourceError(t *testing.T) {
	ctx := context.Background()
	item := testGallery(18, 1)
	source := galleryOf(item)
	source.metadataFunc = func(ctx context.Context, gid int64, token string) (*data.GData, error) {
		return nil, errors.New("offline")
	}
	lib, repo, _ := newTestLibrary(t, source)

	_, err := lib.Add(ctx, item.URL)
	require.NoError(t, err)
	_, err = lib.Refresh(ctx, 18)
	assert.ErrorContains(t, err, "offline")

	stored, err := repo.GetDoujinshi(ctx, 18)
	require.NoError(t, err)
	assert.Equal(t, 4.2, stored.GData.Rating)
}
