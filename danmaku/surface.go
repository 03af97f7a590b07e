package danmaku

import "image/color"

// Surface is the immediate-mode 2D canvas patterns draw on. The windowed
// viewer implements it on top of ebiten, the headless renderer on an
// in-memory RGBA image.
type Surface interface {
	// FillCircle draws a filled circle.
	FillCircle(center Vec2, radius float64, clr color.Color)

	// StrokeCircle draws a circle outline of the given line width.
	StrokeCircle(center Vec2, radius, width float64, clr color.Color)

	// StrokeLine draws a straight line segment.
	StrokeLine(from, to Vec2, width float64, clr color.Color)
}
