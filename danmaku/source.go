package danmaku

import (
	"image/color"
	"math"
)

// BulletTemplate describes the bullets a source fires. Speeds and angular
// velocities are spread from the lower to the upper bound across a stack.
type BulletTemplate struct {
	LowerSpeed   float64
	UpperSpeed   float64
	Acceleration float64
	MinSpeed     float64
	MaxSpeed     float64

	LowerRotationSpeed float64
	UpperRotationSpeed float64
	MaxAngleChange     float64

	Radius   float64
	Lifespan float64
	Color    color.NRGBA
}

// SourceConfig holds everything needed to build a Source. Angles are in
// radians, times in frames.
type SourceConfig struct {
	Path     *Path
	Position Vec2

	Angle           float64
	RotationSpeed   float64
	ReversePeriod   float64 // +Inf never reverses
	SmoothReversing bool

	Bullet      BulletTemplate
	StackLength int
}

// Source is a moving, rotating emitter. It owns the bullets it has fired and
// advances them every frame.
//
// A source is either running or paused. It pauses for Path.Pause() frames
// each time its frame counter lands on a multiple of the path period; while
// paused its bullets keep moving but its own position, rotation and frame
// counter stay frozen.
type Source struct {
	path     *Path
	position Vec2

	// angle is the current firing angle; baseAngle follows the continuous
	// rotation only, so bursts can fan out from it and return.
	angle     float64
	baseAngle float64

	rotationSpeed     float64
	baseRotationSpeed float64
	reversePeriod     float64
	smoothReversing   bool
	// reversePhase is framesPassed modulo two reversal periods.
	reversePhase float64

	template    BulletTemplate
	stackLength int
	bullets     []Bullet

	framesPassed int
	pauseFrames  int
	paused       bool
}

// NewSource builds a source from cfg. A nil path means the source stays at
// cfg.Position.
func NewSource(cfg SourceConfig) *Source {
	path := cfg.Path
	if path == nil {
		path = NewStillPath(cfg.Position)
	}
	return &Source{
		path:              path,
		position:          cfg.Position,
		angle:             cfg.Angle,
		baseAngle:         cfg.Angle,
		rotationSpeed:     cfg.RotationSpeed,
		baseRotationSpeed: cfg.RotationSpeed,
		reversePeriod:     cfg.ReversePeriod,
		smoothReversing:   cfg.SmoothReversing,
		template:          cfg.Bullet,
		stackLength:       max(1, cfg.StackLength),
	}
}

// Update advances every bullet, drops the ones that left bounds or expired,
// then moves and rotates the source unless it is paused.
func (s *Source) Update(bounds Rect) {
	for i := range s.bullets {
		s.bullets[i].Update()
	}

	alive := s.bullets[:0]
	for i := range s.bullets {
		b := &s.bullets[i]
		if bounds.Contains(b.Position) && !b.Expired() {
			alive = append(alive, *b)
		}
	}
	// Clear the tail so culled bullets don't linger in the backing array.
	clear(s.bullets[len(alive):])
	s.bullets = alive

	if s.paused {
		s.pauseFrames++
		if s.pauseFrames >= s.path.Pause() {
			s.pauseFrames = 0
			s.paused = false
		}
		return
	}

	s.position = s.path.PositionAt(float64(s.framesPassed))
	s.Rotate(s.rotationSpeed)
	s.baseAngle += s.rotationSpeed
	s.framesPassed++
	s.reverse()

	if s.path.Pause() > 0 && math.Mod(float64(s.framesPassed), s.path.Period()) == 0 {
		s.paused = true
	}
}

// reverse applies the rotation reversal for the frame just completed.
func (s *Source) reverse() {
	p := s.reversePeriod
	if math.IsInf(p, 1) || p <= 0 {
		return
	}
	if s.smoothReversing {
		s.reversePhase = math.Mod(s.reversePhase+1, 2*p)
		s.rotationSpeed = s.baseRotationSpeed * math.Sin(s.reversePhase/p*math.Pi)
		return
	}
	if math.Mod(float64(s.framesPassed), p) == 0 {
		s.rotationSpeed = -s.rotationSpeed
	}
}

// Fire emits one stack of bullets at the current position and firing angle.
func (s *Source) Fire() {
	t := s.template
	for i := 0; i < s.stackLength; i++ {
		frac := 0.0
		if s.stackLength > 1 {
			frac = float64(i) / float64(s.stackLength-1)
		}
		s.bullets = append(s.bullets, Bullet{
			Position:        s.position.Copy(),
			Speed:           t.LowerSpeed + (t.UpperSpeed-t.LowerSpeed)*frac,
			Acceleration:    t.Acceleration,
			MinSpeed:        t.MinSpeed,
			MaxSpeed:        t.MaxSpeed,
			Heading:         s.angle,
			AngularVelocity: t.LowerRotationSpeed + (t.UpperRotationSpeed-t.LowerRotationSpeed)*frac,
			MaxAngleChange:  t.MaxAngleChange,
			Radius:          t.Radius,
			Lifespan:        t.Lifespan,
			Color:           t.Color,
		})
	}
}

// Rotate turns the firing angle by delta radians.
func (s *Source) Rotate(delta float64) {
	s.angle += delta
}

// ResetAngle returns the firing angle to the continuously rotating base
// angle, discarding any fan-out applied with Rotate during a burst.
func (s *Source) ResetAngle() {
	s.angle = s.baseAngle
}

// Draw draws every live bullet in firing order.
func (s *Source) Draw(surface Surface) {
	for i := range s.bullets {
		s.bullets[i].Draw(surface)
	}
}

// Bullets returns the live bullets. The slice is owned by the source and is
// only valid until the next Update or Fire.
func (s *Source) Bullets() []Bullet { return s.bullets }

// Position returns the source's current position.
func (s *Source) Position() Vec2 { return s.position }

// Angle returns the current firing angle in radians.
func (s *Source) Angle() float64 { return s.angle }

// RotationSpeed returns the current rotation speed in radians per frame.
func (s *Source) RotationSpeed() float64 { return s.rotationSpeed }

// FramesPassed returns how many running frames the source has advanced.
func (s *Source) FramesPassed() int { return s.framesPassed }

// Paused reports whether the source is dwelling at a path boundary.
func (s *Source) Paused() bool { return s.paused }

// Path returns the source's path.
func (s *Source) Path() *Path { return s.path }
