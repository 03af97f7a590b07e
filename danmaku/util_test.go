package danmaku

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

// recorder is a Surface that records what was drawn.
type recorder struct {
	fills   []Vec2
	alphas  []uint8
	circles []Vec2
	lines   [][2]Vec2
}

func (r *recorder) FillCircle(center Vec2, radius float64, clr color.Color) {
	r.fills = append(r.fills, center)
	r.alphas = append(r.alphas, color.NRGBAModel.Convert(clr).(color.NRGBA).A)
}

func (r *recorder) StrokeCircle(center Vec2, radius, width float64, clr color.Color) {
	r.circles = append(r.circles, center)
}

func (r *recorder) StrokeLine(from, to Vec2, width float64, clr color.Color) {
	r.lines = append(r.lines, [2]Vec2{from, to})
}
