// Package viewer holds the zoom and pan state of a single page.
//
// Coordinates follow a scroll-view model. The image frame is laid out at
// zoom 1 with its origin at zero. The content size is the frame size
// multiplied by the zoom scale. The content offset is the position of the
// viewport's top-left corner within the content.
package viewer

import "math"

type Size struct {
	W, H float64
}

func (s Size) IsZero() bool { return s.W <= 0 || s.H <= 0 }

func (s Size) Scale(f float64) Size { return Size{s.W * f, s.H * f} }

type Point struct {
	X, Y float64
}

type Rect struct {
	Origin Point
	Size   Size
}

func (r Rect) Center() Point {
	return Point{r.Origin.X + r.Size.W/2, r.Origin.Y + r.Size.H/2}
}

type Insets struct {
	Top, Left, Bottom, Right float64
}

// FitSize scales image to fill container along its constrained dimension
// and then clamps the result so it is never smaller than container. A zero
// image yields container.
func FitSize(container, image Size) Size {
	if image.IsZero() || container.IsZero() {
		return container
	}

	var size Size
	if container.W/container.H < image.W/image.H {
		size = Size{container.W, container.W * image.H / image.W}
	} else {
		size = Size{container.H * image.W / image.H, container.H}
	}

	return Size{math.Max(container.W, size.W), math.Max(container.H, size.H)}
}

// CenterInsets returns symmetric insets that center content inside bounds
// in each dimension where content is smaller.
func CenterInsets(bounds, content Size) Insets {
	var in Insets
	if content.H < bounds.H {
		v := (bounds.H - content.H) / 2
		in.Top, in.Bottom = v, v
	}
	if content.W < bounds.W {
		h := (bounds.W - content.W) / 2
		in.Left, in.Right = h, h
	}
	return in
}

// ZoomRect returns the rect of frame-space to show at scale, centered on
// center, which must already be in frame coordinates.
func ZoomRect(frame Size, scale float64, center Point) Rect {
	size := Size{frame.W / scale, frame.H / scale}
	return Rect{
		Origin: Point{center.X - size.W/2, center.Y - size.H/2},
		Size:   size,
	}
}
