package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/services"
)

type ProgressTracker struct {
	downloads map[int64]*services.DownloadProgress
	width     int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		downloads: make(map[int64]*services.DownloadProgress),
		width:     width,
	}
}

// Update records progress for one item. Completed downloads are dropped.
func (p *ProgressTracker) Update(progress services.DownloadProgress) {
	if progress.Status == "complete" {
		delete(p.downloads, progress.DoujinshiID)
		return
	}
	prog := progress
	p.downloads[progress.DoujinshiID] = &prog
}

func (p *ProgressTracker) SetWidth(width int) {
	p.width = width
}

func (p *ProgressTracker) Clear() {
	p.downloads = make(map[int64]*services.DownloadProgress)
}

func (p *ProgressTracker) HasActive() bool {
	return len(p.downloads) > 0
}

func (p *ProgressTracker) View() string {
	if len(p.downloads) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Active Downloads"))
	b.WriteString("\n\n")

	ids := make([]int64, 0, len(p.downloads))
	for id := range p.downloads {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		progress := p.downloads[id]
		title := progress.Title
		if title == "" {
			title = fmt.Sprintf("Gallery %d", id)
		}

		b.WriteString(styles.TextStyle.Render(Truncate(title, p.width-4)))
		b.WriteString("\n")

		// Status and progress
		statusText := progress.Status
		if progress.TotalPages > 0 {
			percentage := float64(progress.CurrentPage) / float64(progress.TotalPages) * 100
			statusText = fmt.Sprintf("%s (%d/%d pages - %.0f%%)",
				progress.Status, progress.CurrentPage, progress.TotalPages, percentage)

			// Progress bar
			bar := renderProgressBar(progress.CurrentPage, progress.TotalPages, p.width-4)
			b.WriteString(bar)
			b.WriteString("\n")
		}

		statusStyle := styles.StatusStyle(progress.Status)
		b.WriteString(statusStyle.Render(statusText))
		b.WriteString("\n")

		if progress.Error != nil {
			errMsg := styles.StatusError.Render(fmt.Sprintf("Error: %s", progress.Error))
			b.WriteString(errMsg)
			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 {
		return ""
	}

	if width < 0 {
		width = 0
	}
	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
