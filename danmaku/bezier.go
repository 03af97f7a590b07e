package danmaku

import "honnef.co/go/curve"

// arclenAccuracy is the tolerance, in pixels, for segment and ellipse
// lengths.
const arclenAccuracy = 1e-3

// CubicSegment is a single cubic Bézier segment.
type CubicSegment struct {
	P0 Vec2
	P1 Vec2
	P2 Vec2
	P3 Vec2
}

func toPoint(v Vec2) curve.Point   { return curve.Pt(v.X, v.Y) }
func fromPoint(p curve.Point) Vec2 { return Vec2{X: p.X, Y: p.Y} }

func (c CubicSegment) bez() curve.CubicBez {
	return curve.CubicBez{P0: toPoint(c.P0), P1: toPoint(c.P1), P2: toPoint(c.P2), P3: toPoint(c.P3)}
}

// Eval returns the point on the segment at parameter t in [0,1].
func (c CubicSegment) Eval(t float64) Vec2 {
	return fromPoint(c.bez().Eval(t))
}

// Arclen returns the segment's arc length.
func (c CubicSegment) Arclen() float64 {
	return c.bez().Arclen(arclenAccuracy)
}

// MirrorControl reflects control through anchor: anchor + (anchor - control).
func MirrorControl(anchor, control Vec2) Vec2 {
	return anchor.Add(anchor.Sub(control))
}

// smoothSegments builds the cubic segments of a smooth spline through
// points; see NewBezierPath for how controls are read.
func smoothSegments(points, controls []Vec2) []CubicSegment {
	segs := make([]CubicSegment, len(points)-1)
	for i := range segs {
		out := controls[i]
		if i > 0 {
			out = MirrorControl(points[i], controls[i])
		}
		segs[i] = CubicSegment{
			P0: points[i],
			P1: out,
			P2: controls[i+1],
			P3: points[i+1],
		}
	}
	return segs
}
