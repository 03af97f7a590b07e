package danmaku

import (
	"image/color"
)

// Editor overlay styling.
var (
	colorEditorPath    = color.NRGBA{R: 90, G: 110, B: 150, A: 255}
	colorEditorAnchor  = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	colorEditorControl = color.NRGBA{R: 255, G: 170, B: 60, A: 255}
	colorEditorSource  = color.NRGBA{R: 120, G: 255, B: 160, A: 255}
)

const (
	editorOutlineSamples = 128
	editorAnchorRadius   = 5.0
	editorControlRadius  = 4.0
	editorSourceRadius   = 12.0
	editorSpokeLength    = 28.0
	editorLineWidth      = 1.5
)

// DrawEditor draws the pattern's static layout instead of its bullets: the
// path, its anchors and handles, and the source at its starting point on
// the path with the directions of its first volley.
func (p *Pattern) DrawEditor(s Surface) {
	path := p.source.Path()

	if path.Kind() != PathStill {
		outline := path.Outline(editorOutlineSamples)
		for i := 1; i < len(outline); i++ {
			s.StrokeLine(outline[i-1], outline[i], editorLineWidth, colorEditorPath)
		}
	}

	points := path.Points()
	controls := path.Controls()
	for i, c := range controls {
		s.StrokeLine(points[i], c, editorLineWidth, colorEditorControl)
		s.StrokeCircle(c, editorControlRadius, editorLineWidth, colorEditorControl)
		if i > 0 && i < len(controls)-1 {
			m := MirrorControl(points[i], c)
			s.StrokeLine(points[i], m, editorLineWidth, colorEditorControl)
		}
	}
	for _, pt := range points {
		s.FillCircle(pt, editorAnchorRadius, colorEditorAnchor)
	}

	// Where the source sits on its first frame.
	origin := path.PositionAt(0)
	s.StrokeCircle(origin, editorSourceRadius, editorLineWidth, colorEditorSource)
	angle := radians(p.params.InitAngle)
	step := spokeStep(radians(p.params.SpreadAngle), p.params.SpokeCount)
	for i := 0; i < p.params.SpokeCount; i++ {
		dir := VecFromAngle(angle + step*float64(i))
		s.StrokeLine(origin, origin.Add(dir.Scale(editorSpokeLength)), editorLineWidth, withAlpha(p.params.Color, 0.8))
	}
}
