package danmaku

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// PathParams describes the path a pattern's source follows. Only the fields
// of the selected Kind are used.
type PathParams struct {
	// Kind selects the path variant
	Kind PathKind

	// Period is the number of frames per cycle (Ellipse, Line, Bezier)
	Period float64

	// Pause is the number of frames the source dwells at each cycle boundary
	Pause int

	// Center, XAxis and YAxis define an Ellipse
	Center Vec2
	XAxis  float64
	YAxis  float64

	// Direction is +1 or -1 for an Ellipse
	Direction int

	// Points are the anchors of a Line or Bezier path
	Points []Vec2

	// ControlPoints holds one handle per Bezier anchor
	ControlPoints []Vec2
}

// Params is the full configuration of a pattern. Angles are in degrees and
// times in frames; NewPattern converts angles to radians once.
type Params struct {
	// StartDelay is the number of frames before the pattern activates
	StartDelay int

	// FireInterval is the number of frames between volleys
	FireInterval int

	// Duration is how many frames after activation the pattern keeps firing
	// and drawing (+Inf: forever)
	Duration float64

	// StackLength is the number of bullets fired per spoke
	StackLength int

	// SpokeCount is the number of spokes in one volley
	SpokeCount int

	// SpreadAngle is the angle the spokes of a volley cover (degrees)
	SpreadAngle float64

	// InitAngle is the initial firing angle (degrees)
	InitAngle float64

	// InitX and InitY are the source's initial position
	InitX float64
	InitY float64

	// RotationSpeed is how fast the firing angle turns (degrees per frame)
	RotationSpeed float64

	// ReverseRotPeriod is the number of frames between rotation reversals
	// (+Inf: never)
	ReverseRotPeriod float64

	// SmoothReversing eases the rotation speed sinusoidally instead of
	// flipping it
	SmoothReversing bool

	// BulletLowerSpeed and BulletUpperSpeed bound the initial bullet speeds
	// across a stack (pixels per frame)
	BulletLowerSpeed float64
	BulletUpperSpeed float64

	// BulletAccel is added to a bullet's speed every frame
	BulletAccel float64

	// BulletMinSpeed and BulletMaxSpeed clamp bullet speed
	BulletMinSpeed float64
	BulletMaxSpeed float64

	// BulletLowerRotSpeed and BulletUpperRotSpeed bound bullet angular
	// velocities across a stack (degrees per frame)
	BulletLowerRotSpeed float64
	BulletUpperRotSpeed float64

	// BulletMaxAngleChange is the total a bullet may turn (degrees)
	BulletMaxAngleChange float64

	// BulletRadius is the drawn bullet radius in pixels
	BulletRadius float64

	// BulletLifespan is the number of frames a bullet lives (+Inf: until it
	// leaves the viewport)
	BulletLifespan float64

	// Color is the bullet color
	Color color.NRGBA

	// Path is the source's path; the zero value is a still path at
	// (InitX, InitY)
	Path PathParams
}

// DefaultParams returns the parameters of a plain ring burst: twenty spokes
// over a full circle every second, never stopping.
func DefaultParams() Params {
	return Params{
		StartDelay:           0,
		FireInterval:         60,
		Duration:             math.Inf(1),
		StackLength:          1,
		SpokeCount:           20,
		SpreadAngle:          360,
		InitAngle:            0,
		RotationSpeed:        0,
		ReverseRotPeriod:     math.Inf(1),
		SmoothReversing:      false,
		BulletLowerSpeed:     5,
		BulletUpperSpeed:     5,
		BulletAccel:          0,
		BulletMinSpeed:       math.Inf(-1),
		BulletMaxSpeed:       math.Inf(1),
		BulletLowerRotSpeed:  0,
		BulletUpperRotSpeed:  0,
		BulletMaxAngleChange: math.Inf(1),
		BulletRadius:         6,
		BulletLifespan:       math.Inf(1),
		Color:                DefaultBulletColor,
		Path:                 PathParams{Kind: PathStill},
	}
}

// Validate reports every out-of-range field. The returned error wraps
// ErrInvalidParams.
func (p Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...))
		}
	}
	notNaN := func(f float64) bool { return !math.IsNaN(f) }

	check(p.StartDelay >= 0, "start delay %d is negative", p.StartDelay)
	check(p.FireInterval >= 1, "fire interval must be at least 1 frame, got %d", p.FireInterval)
	check(notNaN(p.Duration) && p.Duration > 0, "duration must be positive, got %g", p.Duration)
	check(p.StackLength >= 1, "stack length must be at least 1, got %d", p.StackLength)
	check(p.SpokeCount >= 1, "spoke count must be at least 1, got %d", p.SpokeCount)
	check(isFinite(p.SpreadAngle), "spread angle must be finite, got %g", p.SpreadAngle)
	check(isFinite(p.InitAngle), "initial angle must be finite, got %g", p.InitAngle)
	check(isFinite(p.InitX) && isFinite(p.InitY), "initial position must be finite")
	check(isFinite(p.RotationSpeed), "rotation speed must be finite, got %g", p.RotationSpeed)
	check(notNaN(p.ReverseRotPeriod) && p.ReverseRotPeriod > 0, "reverse period must be positive, got %g", p.ReverseRotPeriod)
	check(isFinite(p.BulletLowerSpeed) && isFinite(p.BulletUpperSpeed), "bullet speeds must be finite")
	check(isFinite(p.BulletAccel), "bullet acceleration must be finite, got %g", p.BulletAccel)
	check(notNaN(p.BulletMinSpeed) && notNaN(p.BulletMaxSpeed) && p.BulletMinSpeed <= p.BulletMaxSpeed,
		"bullet speed clamp [%g, %g] is empty", p.BulletMinSpeed, p.BulletMaxSpeed)
	check(isFinite(p.BulletLowerRotSpeed) && isFinite(p.BulletUpperRotSpeed), "bullet rotation speeds must be finite")
	check(notNaN(p.BulletMaxAngleChange) && p.BulletMaxAngleChange >= 0, "bullet max angle change must not be negative, got %g", p.BulletMaxAngleChange)
	check(isFinite(p.BulletRadius) && p.BulletRadius >= 0, "bullet radius must be a non-negative number, got %g", p.BulletRadius)
	check(notNaN(p.BulletLifespan) && p.BulletLifespan > 0, "bullet lifespan must be positive, got %g", p.BulletLifespan)

	return errors.Join(errs...)
}

// BuildPath constructs the path described by p. Still paths sit at
// (InitX, InitY).
func (p Params) BuildPath() (*Path, error) {
	pp := p.Path
	switch pp.Kind {
	case PathStill:
		return NewStillPath(Vec2{X: p.InitX, Y: p.InitY}), nil
	case PathEllipse:
		return NewEllipsePath(pp.Center, pp.XAxis, pp.YAxis, pp.Period, pp.Direction, pp.Pause)
	case PathLine:
		return NewLinePath(pp.Points, pp.Period, pp.Pause)
	case PathBezier:
		return NewBezierPath(pp.Points, pp.ControlPoints, pp.Period, pp.Pause)
	default:
		return nil, fmt.Errorf("%w: unknown path kind %v", ErrInvalidPath, pp.Kind)
	}
}

// Clone returns a deep copy of p, so the copy shares no point slices.
func (p Params) Clone() Params {
	p.Path.Points = append([]Vec2(nil), p.Path.Points...)
	p.Path.ControlPoints = append([]Vec2(nil), p.Path.ControlPoints...)
	return p
}

// ToCanvas maps p from editor coordinates (origin at the center, y up) to
// canvas coordinates (origin top-left, y down) for a canvas of the given
// size. The result is a deep copy.
func (p Params) ToCanvas(width, height float64) Params {
	tr := func(v Vec2) Vec2 {
		return Vec2{X: v.X + width/2, Y: -v.Y + height/2}
	}
	out := p.Clone()
	pos := tr(Vec2{X: p.InitX, Y: p.InitY})
	out.InitX, out.InitY = pos.X, pos.Y
	out.Path.Center = tr(p.Path.Center)
	for i, pt := range out.Path.Points {
		out.Path.Points[i] = tr(pt)
	}
	for i, pt := range out.Path.ControlPoints {
		out.Path.ControlPoints[i] = tr(pt)
	}
	return out
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
