package imageloader

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerbaras/shinsi/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownsample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 800, 1200))

	out := Downsample(img, 200)
	assert.Equal(t, 200, out.Bounds().Dx())
	assert.Equal(t, 300, out.Bounds().Dy())
}

func TestDownsampleKeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 150, 5000))

	out := Downsample(img, 200)
	assert.Same(t, img, out)
}

func TestLoadRemote(t *testing.T) {
	raw := encodePNG(t, 400, 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(raw)
	}))
	defer srv.Close()

	l := New(utils.NewAPI(""), t.TempDir(), 200)
	img, err := l.Load(context.Background(), srv.URL+"/page.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 50), img.Bounds())
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "123"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "123", "0000.jpg"), encodePNG(t, 100, 100), 0644))

	l := New(utils.NewAPI(""), dir, 200)
	img, err := l.Load(context.Background(), "123/0000.jpg")
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestLoadInvalidImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.jpg"), []byte("not an image"), 0644))

	l := New(utils.NewAPI(""), dir, 200)
	_, err := l.Load(context.Background(), "bad.jpg")
	assert.Error(t, err)
}

func TestLoadCancelled(t *testing.T) {
	l := New(utils.NewAPI(""), t.TempDir(), 200)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Load(ctx, "anything.jpg")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSlotCancelsPrevious(t *testing.T) {
	var s Slot

	first, gen1 := s.Begin(context.Background())
	second, gen2 := s.Begin(context.Background())

	assert.ErrorIs(t, first.Err(), context.Canceled)
	assert.NoError(t, second.Err())
	assert.False(t, s.Current(gen1))
	assert.True(t, s.Current(gen2))

	s.Cancel()
	assert.ErrorIs(t, second.Err(), context.Canceled)
	assert.False(t, s.Current(gen2))
}
