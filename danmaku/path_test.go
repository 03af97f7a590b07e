package danmaku

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustPath(t *testing.T, p *Path, err error) *Path {
	t.Helper()
	if err != nil {
		t.Fatalf("building path: %v", err)
	}
	return p
}

func testPaths(t *testing.T) map[string]*Path {
	t.Helper()
	ellipse, err := NewEllipsePath(Vec(100, 100), 50, 20, 40, 1, 0)
	mustPath(t, ellipse, err)
	line, err := NewLinePath([]Vec2{Vec(0, 0), Vec(100, 0), Vec(100, 100)}, 60, 0)
	mustPath(t, line, err)
	bezier, err := NewBezierPath(
		[]Vec2{Vec(0, 0), Vec(200, 0), Vec(400, 0)},
		[]Vec2{Vec(50, 100), Vec(150, -100), Vec(350, -100)},
		90, 0)
	mustPath(t, bezier, err)
	return map[string]*Path{
		"Still":   NewStillPath(Vec(7, 8)),
		"Ellipse": ellipse,
		"Line":    line,
		"Bezier":  bezier,
	}
}

func TestPathPeriodicity(t *testing.T) {
	for name, p := range testPaths(t) {
		t.Run(name, func(t *testing.T) {
			period := p.Period()
			if math.IsInf(period, 1) {
				period = 1000
			}
			for _, ts := range []float64{0, 7.5, 13, 29.25} {
				want := p.PositionAt(ts)
				for _, k := range []float64{1, 3, -2} {
					got := p.PositionAt(ts + k*period)
					if got.DistanceTo(want) > 1e-6 {
						t.Errorf("PositionAt(%g) = %v, PositionAt(%g) = %v", ts, want, ts+k*period, got)
					}
				}
			}
		})
	}
}

func TestEllipsePath(t *testing.T) {
	cw, err := NewEllipsePath(Vec(100, 100), 50, 20, 40, 1, 0)
	mustPath(t, cw, err)
	ccw, err := NewEllipsePath(Vec(100, 100), 50, 20, 40, -1, 0)
	mustPath(t, ccw, err)

	diff(t, Vec(150, 100), cw.PositionAt(0), approx)
	diff(t, Vec(100, 120), roundVec(cw.PositionAt(10)), approx)
	diff(t, Vec(100, 80), roundVec(ccw.PositionAt(10)), approx)
	diff(t, Vec(50, 100), roundVec(cw.PositionAt(20)), approx)
}

func roundVec(v Vec2) Vec2 {
	return Vec(math.Round(v.X*1e9)/1e9, math.Round(v.Y*1e9)/1e9)
}

func TestLinePathConstantSpeed(t *testing.T) {
	// Length 200 walked in 40 frames: 5 pixels per frame, corner included.
	p, err := NewLinePath([]Vec2{Vec(0, 0), Vec(100, 0), Vec(100, 100)}, 40, 0)
	mustPath(t, p, err)
	diff(t, 200.0, p.Length(), approx)

	prev := p.PositionAt(0)
	diff(t, Vec(0, 0), prev, approx)
	for i := 1; i < 40; i++ {
		cur := p.PositionAt(float64(i))
		if d := prev.DistanceTo(cur); math.Abs(d-5) > 1e-9 {
			t.Errorf("step %d moved %g, want 5", i, d)
		}
		prev = cur
	}
	diff(t, Vec(100, 0), roundVec(p.PositionAt(20)), approx)
}

func TestBezierPathConstantSpeed(t *testing.T) {
	p := testPaths(t)["Bezier"]
	const n = 50
	var steps []float64
	prev := p.PositionAt(0)
	for i := 1; i < n; i++ {
		cur := p.PositionAt(p.Period() * float64(i) / n)
		steps = append(steps, prev.DistanceTo(cur))
		prev = cur
	}
	mean := 0.0
	for _, s := range steps {
		mean += s
	}
	mean /= float64(len(steps))
	for i, s := range steps {
		if math.Abs(s-mean)/mean > 0.03 {
			t.Errorf("step %d moved %g, mean step is %g", i+1, s, mean)
		}
	}
}

func TestBezierPathEndpoints(t *testing.T) {
	p := testPaths(t)["Bezier"]
	diff(t, Vec(0, 0), p.PositionAt(0), approx)

	outline := p.Outline(16)
	diff(t, Vec(400, 0), outline[len(outline)-1], approx)
	if len(outline) != 17 {
		t.Errorf("outline has %d points, want 17", len(outline))
	}
}

func TestSmoothSegmentsMirror(t *testing.T) {
	points := []Vec2{Vec(0, 0), Vec(10, 0), Vec(20, 0)}
	controls := []Vec2{Vec(2, 5), Vec(8, -5), Vec(18, 5)}
	segs := smoothSegments(points, controls)

	want := []CubicSegment{
		{P0: Vec(0, 0), P1: Vec(2, 5), P2: Vec(8, -5), P3: Vec(10, 0)},
		{P0: Vec(10, 0), P1: Vec(12, 5), P2: Vec(18, 5), P3: Vec(20, 0)},
	}
	diff(t, want, segs, approx)

	// Tangents match on both sides of the shared anchor.
	in := segs[0].P3.Sub(segs[0].P2)
	out := segs[1].P1.Sub(segs[1].P0)
	diff(t, in, out, approx)
}

func TestCubicSegmentEval(t *testing.T) {
	c := CubicSegment{P0: Vec(0, 0), P1: Vec(0, 10), P2: Vec(10, 10), P3: Vec(10, 0)}
	diff(t, Vec(0, 0), c.Eval(0), approx)
	diff(t, Vec(10, 0), c.Eval(1), approx)
	diff(t, Vec(5, 7.5), c.Eval(0.5), approx)
}

func TestLinePathCoincidentPoints(t *testing.T) {
	t.Run("Repeated anchor", func(t *testing.T) {
		p, err := NewLinePath([]Vec2{Vec(10, 10), Vec(10, 10), Vec(50, 10)}, 10, 0)
		mustPath(t, p, err)
		for i := 0; i < 20; i++ {
			pos := p.PositionAt(float64(i) * 0.5)
			if !pos.IsFinite() {
				t.Fatalf("PositionAt(%g) = %v", float64(i)*0.5, pos)
			}
		}
		diff(t, Vec(10, 10), p.PositionAt(0), approx)
		diff(t, Vec(30, 10), p.PositionAt(5), approx)
	})
	t.Run("Zero length", func(t *testing.T) {
		p, err := NewLinePath([]Vec2{Vec(5, 5), Vec(5, 5)}, 10, 0)
		mustPath(t, p, err)
		for _, ts := range []float64{0, 3, 9.99} {
			diff(t, Vec(5, 5), p.PositionAt(ts))
		}
	})
	t.Run("Zero length Bezier", func(t *testing.T) {
		p, err := NewBezierPath([]Vec2{Vec(5, 5), Vec(5, 5)}, []Vec2{Vec(5, 5), Vec(5, 5)}, 10, 0)
		mustPath(t, p, err)
		diff(t, Vec(5, 5), p.PositionAt(4), approx)
	})
}

func TestStillPath(t *testing.T) {
	p := NewStillPath(Vec(3, 4))
	if !math.IsInf(p.Period(), 1) {
		t.Errorf("still period = %g, want +Inf", p.Period())
	}
	for _, ts := range []float64{0, 1, 1e9, -5} {
		diff(t, Vec(3, 4), p.PositionAt(ts))
	}
	diff(t, []Vec2{Vec(3, 4)}, p.Outline(10))
}

func TestPathValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Path, error)
	}{
		{"Zero period", func() (*Path, error) { return NewEllipsePath(Vec(0, 0), 1, 1, 0, 1, 0) }},
		{"NaN period", func() (*Path, error) { return NewEllipsePath(Vec(0, 0), 1, 1, math.NaN(), 1, 0) }},
		{"Negative pause", func() (*Path, error) { return NewLinePath([]Vec2{Vec(0, 0), Vec(1, 1)}, 10, -1) }},
		{"One line point", func() (*Path, error) { return NewLinePath([]Vec2{Vec(0, 0)}, 10, 0) }},
		{"NaN point", func() (*Path, error) { return NewLinePath([]Vec2{Vec(0, 0), Vec(math.NaN(), 0)}, 10, 0) }},
		{"Huge coordinates", func() (*Path, error) {
			return NewBezierPath([]Vec2{Vec(0, 0), Vec(1e15, 0)}, []Vec2{Vec(0, 10), Vec(1e15, 10)}, 60, 0)
		}},
		{"Huge ellipse", func() (*Path, error) { return NewEllipsePath(Vec(0, 0), 1e15, 1, 60, 1, 0) }},
		{"Fractional period with pause", func() (*Path, error) {
			return NewLinePath([]Vec2{Vec(0, 0), Vec(1, 1)}, 10.5, 3)
		}},
		{"Control count", func() (*Path, error) {
			return NewBezierPath([]Vec2{Vec(0, 0), Vec(1, 1)}, []Vec2{Vec(0, 0)}, 10, 0)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if !errors.Is(err, ErrInvalidPath) {
				t.Errorf("got error %v, want ErrInvalidPath", err)
			}
		})
	}
}

func TestParsePathKind(t *testing.T) {
	for name, want := range map[string]PathKind{
		"None": PathStill, "": PathStill, "Ellipse": PathEllipse, "Line": PathLine, "Bezier": PathBezier,
	} {
		got, err := ParsePathKind(name)
		if err != nil || got != want {
			t.Errorf("ParsePathKind(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParsePathKind("Spiral"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("unknown kind: got %v", err)
	}
}

func TestBezierPathLoopSegment(t *testing.T) {
	// The second segment has a one pixel chord but bulges far out.
	p, err := NewBezierPath(
		[]Vec2{Vec(0, 0), Vec(200, 0), Vec(201, 0)},
		[]Vec2{Vec(50, 0), Vec(150, 0), Vec(300, 200)},
		100, 0)
	mustPath(t, p, err)

	seg := p.segments[1]
	if seg.Arclen() < 150 {
		t.Fatalf("loop segment arc length %g, want well over its chord", seg.Arclen())
	}
	diff(t, p.segments[0].Arclen()+seg.Arclen(), p.Length(), cmpopts.EquateApprox(0.01, 0))

	const n = 100
	var steps []float64
	maxDist := 0.0
	prev := p.PositionAt(0)
	for i := 1; i < n; i++ {
		cur := p.PositionAt(p.Period() * float64(i) / n)
		steps = append(steps, prev.DistanceTo(cur))
		maxDist = max(maxDist, cur.DistanceTo(Vec(201, 0)))
		prev = cur
	}
	if maxDist < 50 {
		t.Errorf("source stayed within %g of the last anchor; it skipped the loop", maxDist)
	}
	// Steps are chords, so they run short where the loop turns sharply.
	mean := p.Length() / n
	for i, s := range steps {
		if math.Abs(s-mean)/mean > 0.2 {
			t.Errorf("step %d moved %g, mean step is %g", i+1, s, mean)
		}
	}

	outline := p.Outline(64)
	far := 0.0
	for _, pt := range outline {
		far = max(far, pt.DistanceTo(Vec(201, 0)))
	}
	if far < 50 {
		t.Errorf("outline stays within %g of the last anchor", far)
	}
}

func TestLengthSamples(t *testing.T) {
	for _, tt := range []struct {
		length float64
		want   int
	}{
		{0, minSegmentSamples},
		{1, minSegmentSamples},
		{100.2, 101},
		{1e12, maxSegmentSamples},
		{math.Inf(1), maxSegmentSamples},
		{math.NaN(), maxSegmentSamples},
	} {
		if got := lengthSamples(tt.length); got != tt.want {
			t.Errorf("lengthSamples(%g) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestEllipseLength(t *testing.T) {
	circle, err := NewEllipsePath(Vec(0, 0), 50, 50, 60, 1, 0)
	mustPath(t, circle, err)
	diff(t, 2*math.Pi*50, circle.Length(), cmpopts.EquateApprox(1e-3, 0))

	// Ramanujan's second approximation for a 50x20 ellipse.
	ellipse := testPaths(t)["Ellipse"]
	diff(t, 230.1311, ellipse.Length(), cmpopts.EquateApprox(1e-3, 0))

	flat, err := NewEllipsePath(Vec(0, 0), 30, 0, 60, 1, 0)
	mustPath(t, flat, err)
	diff(t, 120.0, flat.Length())
}

func TestBezierPathHandles(t *testing.T) {
	p, err := NewBezierPath(
		[]Vec2{Vec(0, 0), Vec(100, 0), Vec(200, 0)},
		[]Vec2{Vec(0, 40), Vec(80, 40), Vec(200, -40)},
		60, 0)
	mustPath(t, p, err)

	// First handle leaves anchor 0; the rest arrive at their anchors.
	diff(t, Vec(0, 40), p.segments[0].P1)
	diff(t, Vec(80, 40), p.segments[0].P2)
	diff(t, Vec(120, -40), p.segments[1].P1)
	diff(t, Vec(200, -40), p.segments[1].P2)
}
