package danmaku

import (
	"image/color"
	"math"
)

// Bullet is a single projectile. It moves along its heading at Speed pixels
// per frame, turning by AngularVelocity each frame until it has turned
// MaxAngleChange radians in total.
type Bullet struct {
	Position Vec2

	// Speed in pixels per frame, kept within [MinSpeed, MaxSpeed]
	Speed        float64
	Acceleration float64
	MinSpeed     float64
	MaxSpeed     float64

	// Heading in radians
	Heading float64

	// AngularVelocity in radians per frame
	AngularVelocity float64

	// MaxAngleChange is the total turn budget in radians; NetAngleChange is
	// how much of it has been used. NetAngleChange only grows and never
	// exceeds MaxAngleChange.
	MaxAngleChange float64
	NetAngleChange float64

	Radius float64

	// Lifespan in frames (may be +Inf); Age counts frames since firing.
	Lifespan float64
	Age      int

	Color color.NRGBA
}

// Update advances the bullet by one frame.
func (b *Bullet) Update() {
	// Position is integrated in place; bullets are the hot loop.
	b.Position.X += math.Cos(b.Heading) * b.Speed
	b.Position.Y += math.Sin(b.Heading) * b.Speed

	b.Speed += b.Acceleration
	if b.Speed > b.MaxSpeed {
		b.Speed = b.MaxSpeed
	} else if b.Speed < b.MinSpeed {
		b.Speed = b.MinSpeed
	}

	if b.NetAngleChange < b.MaxAngleChange {
		inc := math.Min(math.Abs(b.AngularVelocity), b.MaxAngleChange-b.NetAngleChange)
		b.Heading += math.Copysign(inc, b.AngularVelocity)
		b.NetAngleChange = math.Min(b.NetAngleChange+inc, b.MaxAngleChange)
	}

	b.Age++
}

// Expired reports whether the bullet has outlived its lifespan.
func (b *Bullet) Expired() bool {
	return float64(b.Age) >= b.Lifespan
}

// Alpha returns the fade factor: 1 when fired, decaying to 0 at the end of
// the lifespan.
func (b *Bullet) Alpha() float64 {
	return math.Sqrt(math.Max(0, 1-float64(b.Age)/b.Lifespan))
}

// Draw renders the bullet as a filled circle in its color, faded by Alpha.
func (b *Bullet) Draw(s Surface) {
	s.FillCircle(b.Position, b.Radius, withAlpha(b.Color, b.Alpha()))
}
