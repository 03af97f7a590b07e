package danmaku

import (
	"fmt"
	"math"
)

// closedFanEpsilon is how close a spread must be to a multiple of a full
// turn to be treated as one.
const closedFanEpsilon = 1e-9

// Pattern drives one Source: it waits StartDelay frames, then fires a
// radial volley every FireInterval frames for Duration frames.
//
// A pattern owns a private copy of its Params. To change configuration,
// call Rebuild between frames.
type Pattern struct {
	params Params
	source *Source

	startDelay   int
	duration     float64
	fireInterval int
	spokeCount   int
	spreadAngle  float64 // radians

	framesPassed int
	firingFrames int
}

// NewPattern validates params and builds a pattern from them.
func NewPattern(params Params) (*Pattern, error) {
	p := &Pattern{}
	if err := p.Rebuild(params); err != nil {
		return nil, err
	}
	return p, nil
}

// Rebuild replaces the pattern's configuration, discarding its bullets and
// restarting its timers. On error the pattern is left unchanged.
func (p *Pattern) Rebuild(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	params = params.Clone()
	path, err := params.BuildPath()
	if err != nil {
		return fmt.Errorf("building %v path: %w", params.Path.Kind, err)
	}

	source := NewSource(SourceConfig{
		Path:            path,
		Position:        Vec2{X: params.InitX, Y: params.InitY},
		Angle:           radians(params.InitAngle),
		RotationSpeed:   radians(params.RotationSpeed),
		ReversePeriod:   params.ReverseRotPeriod,
		SmoothReversing: params.SmoothReversing,
		StackLength:     params.StackLength,
		Bullet: BulletTemplate{
			LowerSpeed:         params.BulletLowerSpeed,
			UpperSpeed:         params.BulletUpperSpeed,
			Acceleration:       params.BulletAccel,
			MinSpeed:           params.BulletMinSpeed,
			MaxSpeed:           params.BulletMaxSpeed,
			LowerRotationSpeed: radians(params.BulletLowerRotSpeed),
			UpperRotationSpeed: radians(params.BulletUpperRotSpeed),
			MaxAngleChange:     radians(params.BulletMaxAngleChange),
			Radius:             params.BulletRadius,
			Lifespan:           params.BulletLifespan,
			Color:              params.Color,
		},
	})

	*p = Pattern{
		params:       params,
		source:       source,
		startDelay:   params.StartDelay,
		duration:     params.Duration,
		fireInterval: params.FireInterval,
		spokeCount:   params.SpokeCount,
		spreadAngle:  radians(params.SpreadAngle),
	}
	return nil
}

// Update advances the pattern by one frame. bounds is the viewport bullets
// are culled against.
func (p *Pattern) Update(bounds Rect) {
	if p.framesPassed >= p.startDelay {
		p.source.Update(bounds)
		if !p.source.Paused() && float64(p.framesPassed-p.startDelay) < p.duration {
			if p.firingFrames == 0 {
				p.Fire()
			}
			p.firingFrames = (p.firingFrames + 1) % p.fireInterval
		}
	}
	p.framesPassed++
}

// Fire emits one volley: SpokeCount stacks fanned over SpreadAngle, then
// returns the source to its unfanned angle.
func (p *Pattern) Fire() {
	step := spokeStep(p.spreadAngle, p.spokeCount)
	for i := 0; i < p.spokeCount; i++ {
		p.source.Fire()
		p.source.Rotate(step)
	}
	p.source.ResetAngle()
}

// spokeStep returns the angle between adjacent spokes. A spread that is a
// whole number of turns is a closed fan (n spokes, no duplicate at the
// seam); any other spread is an open fan whose first and last spokes sit on
// its edges.
func spokeStep(spread float64, n int) float64 {
	if n <= 1 {
		return 0
	}
	if isFullTurns(spread) {
		return spread / float64(n)
	}
	return spread / float64(n-1)
}

func isFullTurns(a float64) bool {
	r := math.Mod(math.Abs(a), 2*math.Pi)
	return r < closedFanEpsilon || 2*math.Pi-r < closedFanEpsilon
}

// Draw draws the pattern's bullets. Nothing is drawn once the pattern's
// duration has run out.
func (p *Pattern) Draw(s Surface) {
	if p.Finished() {
		return
	}
	p.source.Draw(s)
}

// Finished reports whether the pattern's duration has elapsed.
func (p *Pattern) Finished() bool {
	return float64(p.framesPassed-p.startDelay) >= p.duration
}

// Active reports whether the pattern is past its start delay and not
// finished.
func (p *Pattern) Active() bool {
	return p.framesPassed >= p.startDelay && !p.Finished()
}

// Source returns the pattern's bullet source.
func (p *Pattern) Source() *Source { return p.source }

// Bullets returns the live bullets of the pattern's source.
func (p *Pattern) Bullets() []Bullet { return p.source.Bullets() }

// FramesPassed returns the number of Update calls since construction.
func (p *Pattern) FramesPassed() int { return p.framesPassed }

// Params returns a copy of the parameters the pattern was built from.
func (p *Pattern) Params() Params { return p.params.Clone() }
