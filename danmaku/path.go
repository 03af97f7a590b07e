package danmaku

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// maxCoordinate bounds path coordinates and ellipse axes, in pixels.
const maxCoordinate = 1e7

// PathKind identifies the trajectory a source follows.
type PathKind int

const (
	PathStill PathKind = iota
	PathEllipse
	PathLine
	PathBezier
)

func (k PathKind) String() string {
	switch k {
	case PathStill:
		return "Still"
	case PathEllipse:
		return "Ellipse"
	case PathLine:
		return "Line"
	case PathBezier:
		return "Bezier"
	default:
		return fmt.Sprintf("PathKind(%d)", int(k))
	}
}

// ParsePathKind maps a kind name ("None", "Still", "Ellipse", "Line",
// "Bezier") to a PathKind. "None" and "" mean a still path.
func ParsePathKind(s string) (PathKind, error) {
	switch s {
	case "", "None", "Still":
		return PathStill, nil
	case "Ellipse":
		return PathEllipse, nil
	case "Line":
		return PathLine, nil
	case "Bezier":
		return PathBezier, nil
	}
	return PathStill, fmt.Errorf("%w: unknown path type %q", ErrInvalidPath, s)
}

// Path is a periodic, time-parameterized trajectory. It is a tagged union
// over PathKind; only the fields of the active kind are set. Time is
// measured in frames.
type Path struct {
	kind   PathKind
	period float64
	pause  int

	// Still
	position Vec2

	// Ellipse
	center    Vec2
	a, b      float64
	direction float64

	// Line and Bezier
	points   []Vec2
	controls []Vec2
	segments []CubicSegment
	table    *arcTable
}

// NewStillPath returns a path that stays at position forever.
func NewStillPath(position Vec2) *Path {
	return &Path{kind: PathStill, period: math.Inf(1), position: position}
}

// NewEllipsePath returns an ellipse around center with semi-axes a and b,
// completing one lap every period frames. direction is +1 or -1; any other
// sign is folded onto those.
func NewEllipsePath(center Vec2, a, b, period float64, direction int, pause int) (*Path, error) {
	if err := checkPeriod(period, pause); err != nil {
		return nil, err
	}
	if !inRange(center) || !inRange(Vec2{X: a, Y: b}) {
		return nil, fmt.Errorf("%w: ellipse center and axes must be finite and within ±%g", ErrInvalidPath, maxCoordinate)
	}
	dir := 1.0
	if direction < 0 {
		dir = -1
	}
	return &Path{
		kind:      PathEllipse,
		period:    period,
		pause:     pause,
		center:    center,
		a:         a,
		b:         b,
		direction: dir,
	}, nil
}

// NewLinePath returns an open polyline through points walked at constant
// speed, from the first point to the last in one period.
func NewLinePath(points []Vec2, period float64, pause int) (*Path, error) {
	if err := checkPeriod(period, pause); err != nil {
		return nil, err
	}
	if err := checkPoints(points, 2); err != nil {
		return nil, err
	}
	p := &Path{
		kind:   PathLine,
		period: period,
		pause:  pause,
		points: append([]Vec2(nil), points...),
	}
	eval := func(seg int, t float64) Vec2 {
		return p.points[seg].Lerp(p.points[seg+1], t)
	}
	// Straight segments need no inner samples: interpolating t is exact.
	p.table = newArcTable(len(p.points)-1, eval, func(int) int { return 1 })
	return p, nil
}

// NewBezierPath returns a smooth cubic spline through points, walked at
// constant speed. controls must have one handle per anchor, read as:
//
//   - controls[0] is the outgoing handle of the first anchor.
//   - controls[i], i > 0, is the incoming handle of anchor i. An interior
//     anchor leaves along MirrorControl(points[i], controls[i]), which keeps
//     the tangent continuous; the last anchor's handle is incoming only.
func NewBezierPath(points, controls []Vec2, period float64, pause int) (*Path, error) {
	if err := checkPeriod(period, pause); err != nil {
		return nil, err
	}
	if err := checkPoints(points, 2); err != nil {
		return nil, err
	}
	if len(controls) != len(points) {
		return nil, fmt.Errorf("%w: %d control points for %d anchors", ErrInvalidPath, len(controls), len(points))
	}
	if err := checkPoints(controls, 0); err != nil {
		return nil, err
	}
	p := &Path{
		kind:     PathBezier,
		period:   period,
		pause:    pause,
		points:   append([]Vec2(nil), points...),
		controls: append([]Vec2(nil), controls...),
	}
	p.segments = smoothSegments(p.points, p.controls)
	eval := func(seg int, t float64) Vec2 {
		return p.segments[seg].Eval(t)
	}
	p.table = newArcTable(len(p.segments), eval, func(seg int) int {
		return lengthSamples(p.segments[seg].Arclen())
	})
	return p, nil
}

func checkPeriod(period float64, pause int) error {
	if math.IsNaN(period) || period <= 0 || math.IsInf(period, 0) {
		return fmt.Errorf("%w: period must be a positive finite number of frames, got %g", ErrInvalidPath, period)
	}
	if pause < 0 {
		return fmt.Errorf("%w: pause must not be negative, got %d", ErrInvalidPath, pause)
	}
	// Sources pause when their frame counter lands on a multiple of the period.
	if pause > 0 && period != math.Trunc(period) {
		return fmt.Errorf("%w: a path with a pause needs a whole number of frames per period, got %g", ErrInvalidPath, period)
	}
	return nil
}

func checkPoints(points []Vec2, least int) error {
	if len(points) < least {
		return fmt.Errorf("%w: need at least %d points, got %d", ErrInvalidPath, least, len(points))
	}
	for i, pt := range points {
		if !inRange(pt) {
			return fmt.Errorf("%w: point %d %v is outside ±%g", ErrInvalidPath, i, pt, maxCoordinate)
		}
	}
	return nil
}

// inRange reports whether v is finite and within maxCoordinate on both axes.
func inRange(v Vec2) bool {
	return v.IsFinite() && math.Abs(v.X) <= maxCoordinate && math.Abs(v.Y) <= maxCoordinate
}

// Kind returns the path variant.
func (p *Path) Kind() PathKind { return p.kind }

// Period returns the number of frames in one cycle. Still paths return +Inf.
func (p *Path) Period() float64 { return p.period }

// Pause returns how many frames a source dwells at the cycle boundary.
func (p *Path) Pause() int { return p.pause }

// Points returns the anchors of a Line or Bezier path.
func (p *Path) Points() []Vec2 { return p.points }

// Controls returns the per-anchor handles of a Bezier path.
func (p *Path) Controls() []Vec2 { return p.controls }

// Length returns the length of one cycle. Still paths have length 0.
func (p *Path) Length() float64 {
	switch p.kind {
	case PathEllipse:
		a, b := math.Abs(p.a), math.Abs(p.b)
		if a == 0 || b == 0 {
			// Flat ellipse: a segment walked there and back.
			return 4 * max(a, b)
		}
		e := curve.NewEllipse(toPoint(p.center), curve.Vec(a, b), 0)
		return e.Perimeter(arclenAccuracy)
	case PathLine, PathBezier:
		return p.table.Length()
	default:
		return 0
	}
}

// PositionAt returns the position at time t (frames). t is taken modulo the
// period, so PositionAt(t) == PositionAt(t+k*Period()).
func (p *Path) PositionAt(t float64) Vec2 {
	switch p.kind {
	case PathStill:
		return p.position
	case PathEllipse:
		phase := 2 * math.Pi * p.direction * p.phase(t)
		s, c := math.Sincos(phase)
		return Vec2{X: p.center.X + p.a*c, Y: p.center.Y + p.b*s}
	case PathLine, PathBezier:
		return p.table.At(p.phase(t))
	default:
		panic(fmt.Sprintf("danmaku: unhandled path kind %v", p.kind))
	}
}

// phase returns t's position within the current cycle as a fraction in [0,1).
func (p *Path) phase(t float64) float64 {
	if !isFinite(t) {
		return 0
	}
	m := math.Mod(t, p.period)
	if m < 0 {
		m += p.period
	}
	f := m / p.period
	if f >= 1 {
		f = 0
	}
	return f
}

// Outline samples n+1 positions over one cycle, for drawing the path.
func (p *Path) Outline(n int) []Vec2 {
	if p.kind == PathStill || n < 1 {
		return []Vec2{p.PositionAt(0)}
	}
	out := make([]Vec2, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, p.PositionAt(p.period*float64(i)/float64(n)))
	}
	// The open variants end on their last anchor instead of wrapping.
	switch p.kind {
	case PathLine:
		out = append(out, p.points[len(p.points)-1])
	case PathBezier:
		out = append(out, p.segments[len(p.segments)-1].P3)
	default:
		out = append(out, out[0])
	}
	return out
}
