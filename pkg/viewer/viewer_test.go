package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name      string
		container Size
		image     Size
		want      Size
	}{
		{"no image", Size{100, 200}, Size{}, Size{100, 200}},
		{"wide image in tall container", Size{100, 200}, Size{400, 400}, Size{100, 200}},
		{"tall image in wide container", Size{200, 100}, Size{100, 400}, Size{200, 100}},
		{"same aspect", Size{100, 200}, Size{50, 100}, Size{100, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitSize(tt.container, tt.image))
		})
	}
}

func TestFitSizeNeverSmallerThanContainer(t *testing.T) {
	container := Size{320, 480}
	for _, img := range []Size{{1, 1}, {1000, 10}, {10, 1000}, {320, 480}, {640, 480}} {
		got := FitSize(container, img)
		assert.GreaterOrEqual(t, got.W, container.W)
		assert.GreaterOrEqual(t, got.H, container.H)
	}
}

func TestCenterInsets(t *testing.T) {
	in := CenterInsets(Size{100, 200}, Size{60, 100})
	assert.Equal(t, Insets{Top: 50, Left: 20, Bottom: 50, Right: 20}, in)

	assert.Equal(t, Insets{}, CenterInsets(Size{100, 100}, Size{200, 300}))

	in = CenterInsets(Size{100, 100}, Size{200, 40})
	assert.Equal(t, Insets{Top: 30, Bottom: 30}, in)
}

func TestZoomRect(t *testing.T) {
	r := ZoomRect(Size{300, 600}, 2, Point{100, 100})
	assert.Equal(t, Size{150, 300}, r.Size)
	assert.Equal(t, Point{100, 100}, r.Center())
	assert.Equal(t, Point{25, -50}, r.Origin)
}

func TestZoomRectAtMinimumZoomMapsTapToCenter(t *testing.T) {
	v := New(Size{80, 40})
	p := Point{10, 30}

	r := v.ZoomRectAt(2, p)
	assert.Equal(t, Size{40, 20}, r.Size)
	assert.Equal(t, p, r.Center())
}

func TestDoubleTapTogglesZoom(t *testing.T) {
	v := New(Size{100, 200})

	v.DoubleTap(Point{50, 50})
	assert.Equal(t, MaxZoom/2, v.Zoom())
	assert.Equal(t, Point{50, 0}, v.Offset())
	assert.Equal(t, Rect{Origin: Point{25, 0}, Size: Size{50, 100}}, v.VisibleRect())

	v.DoubleTap(Point{10, 10})
	assert.Equal(t, MinZoom, v.Zoom())
	assert.Equal(t, Point{}, v.Offset())
}

func TestSetZoomClamps(t *testing.T) {
	v := New(Size{100, 100})

	v.SetZoom(10)
	assert.Equal(t, MaxZoom, v.Zoom())
	assert.Equal(t, Size{400, 400}, v.ContentSize())

	v.SetZoom(0.1)
	assert.Equal(t, MinZoom, v.Zoom())
}

func TestPanIsClamped(t *testing.T) {
	v := New(Size{100, 100})
	v.SetZoom(2)

	v.Pan(1000, 1000)
	assert.Equal(t, Point{100, 100}, v.Offset())

	v.Pan(-5000, -5000)
	assert.Equal(t, Point{0, 0}, v.Offset())

	v.Reset()
	v.Pan(30, 30)
	assert.Equal(t, Point{0, 0}, v.Offset(), "cannot pan at minimum zoom")
}

func TestImageRectIsAspectFit(t *testing.T) {
	v := New(Size{100, 200})
	v.SetImageSize(Size{400, 400})

	r := v.ImageRect()
	assert.Equal(t, Size{100, 100}, r.Size)
	assert.Equal(t, Point{0, 50}, r.Origin)
}

func TestLayoutRefitsAfterResize(t *testing.T) {
	v := New(Size{100, 100})
	v.SetImageSize(Size{50, 50})
	v.SetZoom(3)

	v.Layout(Size{200, 50})
	assert.Equal(t, Size{200, 50}, v.Frame())
	content := v.ContentSize()
	assert.Equal(t, Size{600, 150}, content)
	off := v.Offset()
	assert.GreaterOrEqual(t, off.X, 0.0)
	assert.LessOrEqual(t, off.X, content.W-200)
}
