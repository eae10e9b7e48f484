package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/kerbaras/shinsi/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressTracker(t *testing.T) {
	tracker := NewProgressTracker(80)

	require.NotNil(t, tracker)
	assert.Equal(t, 80, tracker.width)
	assert.Empty(t, tracker.downloads)
}

func TestUpdateRemovesCompleted(t *testing.T) {
	tracker := NewProgressTracker(80)

	progress := services.DownloadProgress{DoujinshiID: 1, Title: "Book", Status: "downloading", TotalPages: 10, CurrentPage: 5}
	tracker.Update(progress)
	assert.True(t, tracker.HasActive())
	assert.Len(t, tracker.downloads, 1)

	progress.CurrentPage = 6
	tracker.Update(progress)
	assert.Len(t, tracker.downloads, 1)
	assert.Equal(t, 6, tracker.downloads[1].CurrentPage)

	progress.Status = "complete"
	tracker.Update(progress)
	assert.False(t, tracker.HasActive())
}

func TestClear(t *testing.T) {
	tracker := NewProgressTracker(80)
	for i := int64(1); i <= 3; i++ {
		tracker.Update(services.DownloadProgress{DoujinshiID: i, Status: "downloading"})
	}
	assert.Len(t, tracker.downloads, 3)

	tracker.Clear()
	assert.False(t, tracker.HasActive())
}

func TestProgressViewEmpty(t *testing.T) {
	assert.Equal(t, "", NewProgressTracker(80).View())
}

func TestProgressViewWithProgress(t *testing.T) {
	tracker := NewProgressTracker(80)
	tracker.Update(services.DownloadProgress{
		DoujinshiID: 7,
		Title:       "(C99) [Circle] Summer Book",
		Status:      "downloading",
		TotalPages:  20,
		CurrentPage: 10,
	})

	view := tracker.View()
	assert.Contains(t, view, "Active Downloads")
	assert.Contains(t, view, "Summer Book")
	assert.Contains(t, view, "downloading")
	assert.Contains(t, view, "10/20")
}

func TestProgressViewOrdersByID(t *testing.T) {
	tracker := NewProgressTracker(80)
	tracker.Update(services.DownloadProgress{DoujinshiID: 2, Status: "downloading"})
	tracker.Update(services.DownloadProgress{DoujinshiID: 1, Status: "downloading"})

	view := tracker.View()
	assert.Less(t, strings.Index(view, "Gallery 1"), strings.Index(view, "Gallery 2"))
}

func TestProgressWithError(t *testing.T) {
	tracker := NewProgressTracker(80)
	tracker.Update(services.DownloadProgress{DoujinshiID: 1, Status: "error", Error: errors.New("download failed")})

	view := tracker.View()
	assert.Contains(t, view, "Error:")
	assert.Contains(t, view, "download failed")
}

func TestRenderProgressBar(t *testing.T) {
	assert.Equal(t, "", renderProgressBar(0, 0, 20))

	full := renderProgressBar(100, 100, 20)
	assert.Equal(t, 20, strings.Count(full, "█"))

	bar := SimpleProgress(25, 100, 40)
	filled := strings.Count(bar, "█")
	assert.Equal(t, 10, filled)
	assert.Equal(t, 30, strings.Count(bar, "░"))
}
