package integrations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/shinsi/pkg/data"
)

// EPubBuilder packs the downloaded pages of an item into an EPub, one page
// per section.
type EPubBuilder struct{}

func NewEPubBuilder() *EPubBuilder {
	return &EPubBuilder{}
}

// Export reads the pages of d from pagesDir and writes <title>.epub into
// outputDir.
func (p *EPubBuilder) Export(d *data.Doujinshi, pagesDir, outputDir string) (string, error) {
	if d.GData == nil {
		return "", fmt.Errorf("export %d: %w", d.ID, data.ErrMissingMetadata)
	}
	if len(d.Pages) == 0 {
		return "", fmt.Errorf("export %d: no pages", d.ID)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	e, err := epub.NewEpub(d.Title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	if d.Author != "" {
		e.SetAuthor(d.Author)
	}
	if d.GData.Category != "" {
		e.SetDescription(d.GData.Category)
	}
	if lang, ok := d.Language(); ok {
		e.SetLang(languageCodes[lang])
	}

	for i := range d.Pages {
		imgPath := filepath.Join(pagesDir, filepath.FromSlash(data.DownloadedPagePath(d.GData.Gid, i)))
		if _, err := os.Stat(imgPath); err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}

		internalPath, err := e.AddImage(imgPath, "")
		if err != nil {
			return "", fmt.Errorf("failed to add page %d: %w", i, err)
		}

		title := fmt.Sprintf("Page %d", i+1)
		body := fmt.Sprintf(
			`<div class="page"><img src="%s" alt="%s" style="width:100%%;height:auto;"/></div>`,
			internalPath, title,
		)
		if _, err := e.AddSection(body, title, "", ""); err != nil {
			return "", fmt.Errorf("failed to add section: %w", err)
		}
	}

	name := sanitizeFilename(d.Title)
	if name == "" {
		name = d.GData.Gid
	}
	outputPath := filepath.Join(outputDir, name+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

var languageCodes = map[string]string{
	"english":    "en",
	"chinese":    "zh",
	"japanese":   "ja",
	"korean":     "ko",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"russian":    "ru",
	"thai":       "th",
	"vietnamese": "vi",
	"indonesian": "id",
	"polish":     "pl",
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
