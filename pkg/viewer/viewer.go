package viewer

import "math"

const (
	MinZoom = 1.0
	MaxZoom = 4.0
)

// Viewer tracks layout, zoom and scroll position for one page.
type Viewer struct {
	bounds    Size
	imageSize Size
	frame     Size
	zoom      float64
	offset    Point
	inset     Insets
}

func New(bounds Size) *Viewer {
	v := &Viewer{zoom: MinZoom}
	v.Layout(bounds)
	return v
}

func (v *Viewer) Bounds() Size      { return v.bounds }
func (v *Viewer) Frame() Size       { return v.frame }
func (v *Viewer) Zoom() float64     { return v.zoom }
func (v *Viewer) Offset() Point     { return v.offset }
func (v *Viewer) Insets() Insets    { return v.inset }
func (v *Viewer) ImageSize() Size   { return v.imageSize }
func (v *Viewer) ContentSize() Size { return v.frame.Scale(v.zoom) }

// SetImageSize replaces the displayed image and lays out again. A zero
// size means no image.
func (v *Viewer) SetImageSize(s Size) {
	v.imageSize = s
	v.Layout(v.bounds)
}

// Layout resizes the viewport and refits the image frame.
func (v *Viewer) Layout(bounds Size) {
	v.bounds = bounds
	v.frame = FitSize(bounds, v.imageSize)
	v.centerIfNeeded()
	v.clampOffset()
}

// ImageRect is where the image is drawn inside the frame: aspect-fit and
// centered.
func (v *Viewer) ImageRect() Rect {
	if v.imageSize.IsZero() || v.frame.IsZero() {
		return Rect{Size: v.frame}
	}
	scale := math.Min(v.frame.W/v.imageSize.W, v.frame.H/v.imageSize.H)
	size := v.imageSize.Scale(scale)
	return Rect{
		Origin: Point{(v.frame.W - size.W) / 2, (v.frame.H - size.H) / 2},
		Size:   size,
	}
}

// ToFrame converts a point in viewport coordinates into frame coordinates.
func (v *Viewer) ToFrame(p Point) Point {
	return Point{(p.X + v.offset.X) / v.zoom, (p.Y + v.offset.Y) / v.zoom}
}

// VisibleRect is the part of the frame currently in view.
func (v *Viewer) VisibleRect() Rect {
	return Rect{
		Origin: v.ToFrame(Point{}),
		Size:   v.bounds.Scale(1 / v.zoom),
	}
}

// ZoomRectAt returns the frame rect to show at scale around the viewport
// point p.
func (v *Viewer) ZoomRectAt(scale float64, p Point) Rect {
	return ZoomRect(v.frame, scale, v.ToFrame(p))
}

// SetZoom changes the zoom scale, keeping the viewport center fixed.
func (v *Viewer) SetZoom(scale float64) {
	scale = clampZoom(scale)
	center := v.ToFrame(Point{v.bounds.W / 2, v.bounds.H / 2})
	v.zoom = scale
	v.offset = Point{center.X*scale - v.bounds.W/2, center.Y*scale - v.bounds.H/2}
	v.centerIfNeeded()
	v.clampOffset()
}

// ZoomTo scales so rect fills the viewport and scrolls it into view.
func (v *Viewer) ZoomTo(rect Rect) {
	if rect.Size.IsZero() {
		return
	}
	scale := clampZoom(math.Min(v.bounds.W/rect.Size.W, v.bounds.H/rect.Size.H))
	c := rect.Center()
	v.zoom = scale
	v.offset = Point{c.X*scale - v.bounds.W/2, c.Y*scale - v.bounds.H/2}
	v.centerIfNeeded()
	v.clampOffset()
}

// DoubleTap toggles between the minimum zoom and half the maximum, zooming
// in around the tapped viewport point.
func (v *Viewer) DoubleTap(p Point) {
	if v.zoom == MinZoom {
		v.ZoomTo(v.ZoomRectAt(MaxZoom/2, p))
		return
	}
	v.SetZoom(MinZoom)
}

// Pan scrolls by dx, dy viewport units.
func (v *Viewer) Pan(dx, dy float64) {
	v.offset.X += dx
	v.offset.Y += dy
	v.clampOffset()
}

// Reset returns to the minimum zoom scrolled to the top-left.
func (v *Viewer) Reset() {
	v.zoom = MinZoom
	v.offset = Point{}
	v.centerIfNeeded()
	v.clampOffset()
}

func (v *Viewer) centerIfNeeded() {
	v.inset = CenterInsets(v.bounds, v.ContentSize())
}

func (v *Viewer) clampOffset() {
	content := v.ContentSize()
	v.offset.X = clamp(v.offset.X, -v.inset.Left, content.W-v.bounds.W+v.inset.Right)
	v.offset.Y = clamp(v.offset.Y, -v.inset.Top, content.H-v.bounds.H+v.inset.Bottom)
}

func clampZoom(scale float64) float64 {
	return clamp(scale, MinZoom, MaxZoom)
}

func clamp(x, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(hi, x))
}
