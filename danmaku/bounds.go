package danmaku

// Rect is an axis-aligned viewport in canvas coordinates. Bullets outside it
// are culled.
type Rect struct {
	Min Vec2
	Max Vec2
}

// Viewport returns the rectangle [0,width]x[0,height].
func Viewport(width, height float64) Rect {
	return Rect{Max: Vec2{X: width, Y: height}}
}

// Contains reports whether p lies inside r. Edges count as inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
