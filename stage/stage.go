// Package stage loads pattern sets from scripts and steps them together.
package stage

import (
	_ "embed"
	"fmt"

	"makupct/danmaku"
)

// Demo is the built-in stage script used when no script is given.
//
//go:embed demo.js
var Demo string

// Stage is a set of patterns sharing one viewport.
type Stage struct {
	patterns []*danmaku.Pattern
	bounds   danmaku.Rect
	frame    int
}

// Build converts params from editor to canvas coordinates and builds one
// pattern per entry.
func Build(params []danmaku.Params, width, height float64) (*Stage, error) {
	s := &Stage{bounds: danmaku.Viewport(width, height)}
	for i, p := range params {
		pat, err := danmaku.NewPattern(p.ToCanvas(width, height))
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		s.patterns = append(s.patterns, pat)
	}
	return s, nil
}

// Update advances every pattern by one frame.
func (s *Stage) Update() {
	for _, p := range s.patterns {
		p.Update(s.bounds)
	}
	s.frame++
}

// Draw renders every pattern's bullets.
func (s *Stage) Draw(surface danmaku.Surface) {
	for _, p := range s.patterns {
		p.Draw(surface)
	}
}

// DrawEditor renders every pattern's editor overlay: paths, handles and
// source markers, without bullets.
func (s *Stage) DrawEditor(surface danmaku.Surface) {
	for _, p := range s.patterns {
		p.DrawEditor(surface)
	}
}

// Patterns returns the stage's patterns.
func (s *Stage) Patterns() []*danmaku.Pattern { return s.patterns }

// Bounds returns the viewport bullets are culled against.
func (s *Stage) Bounds() danmaku.Rect { return s.bounds }

// Frame returns the number of updates so far.
func (s *Stage) Frame() int { return s.frame }

// BulletCount returns the number of live bullets across all patterns.
func (s *Stage) BulletCount() int {
	n := 0
	for _, p := range s.patterns {
		n += len(p.Bullets())
	}
	return n
}

// Finished reports whether every pattern's duration has run out.
func (s *Stage) Finished() bool {
	for _, p := range s.patterns {
		if !p.Finished() {
			return false
		}
	}
	return true
}
