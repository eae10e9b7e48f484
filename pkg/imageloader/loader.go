// Package imageloader fetches page and cover images and downsamples them
// for display.
package imageloader

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kerbaras/shinsi/pkg/utils"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Loader reads images from http(s) URLs or from paths relative to a local
// directory, and scales them down to a fixed width.
type Loader struct {
	api    *utils.API
	dir    string
	width  int
	logger *slog.Logger
}

// New returns a loader that downsamples to width. Relative references are
// resolved against dir.
func New(api *utils.API, dir string, width int) *Loader {
	return &Loader{api: api, dir: dir, width: width, logger: slog.Default()}
}

func (l *Loader) WithLogger(logger *slog.Logger) *Loader {
	l.logger = logger
	return l
}

// Fetch returns the raw bytes behind ref.
func (l *Loader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if isRemote(ref) {
		body, err := l.api.GetBytes(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", ref, err)
		}
		return body, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(filepath.Join(l.dir, filepath.FromSlash(ref)))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return raw, nil
}

// Load fetches, decodes and downsamples the image behind ref.
func (l *Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	raw, err := l.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := Downsample(img, l.width)
	l.logger.Debug("image loaded",
		"ref", ref,
		"format", format,
		"width", out.Bounds().Dx(),
		"height", out.Bounds().Dy(),
	)
	return out, nil
}

// Downsample scales img to width preserving its aspect ratio. The height is
// unbounded. Images already narrower than width are returned unchanged.
func Downsample(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || b.Dx() <= width {
		return img
	}

	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
