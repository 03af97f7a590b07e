package danmaku

import (
	"math"
	"sort"
)

// arcDensity is the number of arc-length samples taken per unit of a
// segment's length when building a table for a curved path. Every curved
// segment gets between minSegmentSamples and maxSegmentSamples samples.
const (
	arcDensity        = 1.0
	minSegmentSamples = 16
	maxSegmentSamples = 4096
)

// segmentFunc evaluates segment seg of a piecewise curve at local parameter
// t in [0,1].
type segmentFunc func(seg int, t float64) Vec2

// arcSample is one entry of an arc-length table.
type arcSample struct {
	dist float64 // cumulative distance from the start of the curve
	t    float64 // local parameter within seg
	seg  int
}

// arcTable maps distance travelled along a piecewise curve back to the
// curve's native (segment, t) parameter, so the curve can be walked at
// constant speed. Line and Bezier paths share it.
type arcTable struct {
	eval    segmentFunc
	samples []arcSample
}

// newArcTable samples every segment samplesFor(seg) times (at least once)
// and records cumulative chord distance. Samples are monotone in dist.
func newArcTable(segments int, eval segmentFunc, samplesFor func(seg int) int) *arcTable {
	total := 0
	counts := make([]int, segments)
	for seg := range counts {
		counts[seg] = max(1, samplesFor(seg))
		total += counts[seg]
	}

	samples := make([]arcSample, 0, total+1)
	samples = append(samples, arcSample{})
	prev := eval(0, 0)
	dist := 0.0
	for seg, n := range counts {
		for j := 1; j <= n; j++ {
			t := float64(j) / float64(n)
			p := eval(seg, t)
			dist += prev.DistanceTo(p)
			samples = append(samples, arcSample{dist: dist, t: t, seg: seg})
			prev = p
		}
	}
	return &arcTable{eval: eval, samples: samples}
}

// lengthSamples returns how many samples a curved segment of the given
// length needs.
func lengthSamples(length float64) int {
	if !isFinite(length) {
		return maxSegmentSamples
	}
	n := math.Ceil(length * arcDensity)
	return int(max(minSegmentSamples, min(n, maxSegmentSamples)))
}

// Length returns the total sampled length of the curve.
func (a *arcTable) Length() float64 {
	return a.samples[len(a.samples)-1].dist
}

// At returns the point a fraction frac in [0,1] of the way along the curve,
// measured by distance.
func (a *arcTable) At(frac float64) Vec2 {
	total := a.Length()
	if total <= 0 || !isFinite(total) {
		return a.eval(0, 0)
	}
	target := frac * total

	// First sample strictly beyond the target; its predecessor brackets it.
	i := sort.Search(len(a.samples), func(i int) bool {
		return a.samples[i].dist > target
	})
	if i == 0 {
		return a.eval(0, 0)
	}
	if i == len(a.samples) {
		last := a.samples[len(a.samples)-1]
		return a.eval(last.seg, last.t)
	}

	lo, hi := a.samples[i-1], a.samples[i]
	span := hi.dist - lo.dist
	if span <= 0 {
		return a.eval(hi.seg, hi.t)
	}
	// The end of one segment is the start of the next.
	loT := lo.t
	if lo.seg != hi.seg {
		loT = 0
	}
	u := (target - lo.dist) / span
	return a.eval(hi.seg, loT+(hi.t-loT)*u)
}
