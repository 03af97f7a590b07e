package stage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"math"

	"makupct/danmaku"
)

// number is a float that also accepts "Infinity" and "-Infinity", which is
// how scripts spell unbounded limits once serialized.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case `"Infinity"`:
		*n = number(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*n = number(math.Inf(-1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = number(f)
	return nil
}

type point struct {
	X number `json:"x"`
	Y number `json:"y"`
}

type ellipseArgs struct {
	Pause     *int    `json:"pause"`
	Period    *number `json:"period"`
	XAxis     *number `json:"xAxis"`
	YAxis     *number `json:"yAxis"`
	CenterX   *number `json:"centerX"`
	CenterY   *number `json:"centerY"`
	Direction *int    `json:"direction"`
}

type lineArgs struct {
	Pause  *int    `json:"pause"`
	Period *number `json:"period"`
	Points []point `json:"points"`
}

type bezierArgs struct {
	Pause         *int    `json:"pause"`
	Period        *number `json:"period"`
	Points        []point `json:"points"`
	ControlPoints []point `json:"controlPoints"`
}

// patternArgs mirrors the object a stage script returns for one pattern.
// Missing fields keep their defaults.
type patternArgs struct {
	StartDelay           *int            `json:"startDelay"`
	FireInterval         *int            `json:"fireInterval"`
	Duration             *number         `json:"duration"`
	StackLength          *int            `json:"stackLength"`
	SpokeCount           *int            `json:"spokeCount"`
	InitAngle            *number         `json:"initAngle"`
	InitX                *number         `json:"initX"`
	InitY                *number         `json:"initY"`
	BulletLowerSpeed     *number         `json:"bulletLowerSpeed"`
	BulletUpperSpeed     *number         `json:"bulletUpperSpeed"`
	BulletAccel          *number         `json:"bulletAccel"`
	BulletMinSpeed       *number         `json:"bulletMinSpeed"`
	BulletMaxSpeed       *number         `json:"bulletMaxSpeed"`
	RotationSpeed        *number         `json:"rotationSpeed"`
	ReverseRotPeriod     *number         `json:"reverseRotPeriod"`
	SmoothReversing      *bool           `json:"smoothReversing"`
	SpreadAngle          *number         `json:"spreadAngle"`
	Color                json.RawMessage `json:"color"`
	BulletRadius         *number         `json:"bulletRadius"`
	BulletLowerRotSpeed  *number         `json:"bulletLowerRotSpeed"`
	BulletUpperRotSpeed  *number         `json:"bulletUpperRotSpeed"`
	BulletMaxAngleChange *number         `json:"bulletMaxAngleChange"`
	BulletLifeSpan       *number         `json:"bulletLifeSpan"`
	PathType             string          `json:"pathType"`
	EPParams             *ellipseArgs    `json:"EPParams"`
	LPParams             *lineArgs       `json:"LPParams"`
	BPParams             *bezierArgs     `json:"BPParams"`
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setNum(dst *float64, src *number) {
	if src != nil {
		*dst = float64(*src)
	}
}

func points(pts []point) []danmaku.Vec2 {
	out := make([]danmaku.Vec2, len(pts))
	for i, p := range pts {
		out[i] = danmaku.Vec(float64(p.X), float64(p.Y))
	}
	return out
}

// params merges the arguments onto danmaku.DefaultParams.
func (a patternArgs) params() (danmaku.Params, error) {
	p := danmaku.DefaultParams()

	setInt(&p.StartDelay, a.StartDelay)
	setInt(&p.FireInterval, a.FireInterval)
	setNum(&p.Duration, a.Duration)
	setInt(&p.StackLength, a.StackLength)
	setInt(&p.SpokeCount, a.SpokeCount)
	setNum(&p.InitAngle, a.InitAngle)
	setNum(&p.InitX, a.InitX)
	setNum(&p.InitY, a.InitY)
	setNum(&p.BulletLowerSpeed, a.BulletLowerSpeed)
	setNum(&p.BulletUpperSpeed, a.BulletUpperSpeed)
	setNum(&p.BulletAccel, a.BulletAccel)
	setNum(&p.BulletMinSpeed, a.BulletMinSpeed)
	setNum(&p.BulletMaxSpeed, a.BulletMaxSpeed)
	setNum(&p.RotationSpeed, a.RotationSpeed)
	setNum(&p.ReverseRotPeriod, a.ReverseRotPeriod)
	if a.SmoothReversing != nil {
		p.SmoothReversing = *a.SmoothReversing
	}
	setNum(&p.SpreadAngle, a.SpreadAngle)
	setNum(&p.BulletRadius, a.BulletRadius)
	setNum(&p.BulletLowerRotSpeed, a.BulletLowerRotSpeed)
	setNum(&p.BulletUpperRotSpeed, a.BulletUpperRotSpeed)
	setNum(&p.BulletMaxAngleChange, a.BulletMaxAngleChange)
	setNum(&p.BulletLifespan, a.BulletLifeSpan)

	if len(a.Color) > 0 && string(a.Color) != "null" {
		c, err := parseColor(a.Color)
		if err != nil {
			return p, err
		}
		p.Color = c
	}

	kind, err := danmaku.ParsePathKind(a.PathType)
	if err != nil {
		return p, err
	}
	p.Path = danmaku.PathParams{Kind: kind}
	switch kind {
	case danmaku.PathEllipse:
		e := a.EPParams
		if e == nil {
			return p, fmt.Errorf("%w: Ellipse path without EPParams", danmaku.ErrInvalidPath)
		}
		p.Path.Direction = 1
		setInt(&p.Path.Pause, e.Pause)
		setNum(&p.Path.Period, e.Period)
		setNum(&p.Path.XAxis, e.XAxis)
		setNum(&p.Path.YAxis, e.YAxis)
		setNum(&p.Path.Center.X, e.CenterX)
		setNum(&p.Path.Center.Y, e.CenterY)
		setInt(&p.Path.Direction, e.Direction)
	case danmaku.PathLine:
		l := a.LPParams
		if l == nil {
			return p, fmt.Errorf("%w: Line path without LPParams", danmaku.ErrInvalidPath)
		}
		setInt(&p.Path.Pause, l.Pause)
		setNum(&p.Path.Period, l.Period)
		p.Path.Points = points(l.Points)
	case danmaku.PathBezier:
		b := a.BPParams
		if b == nil {
			return p, fmt.Errorf("%w: Bezier path without BPParams", danmaku.ErrInvalidPath)
		}
		setInt(&p.Path.Pause, b.Pause)
		setNum(&p.Path.Period, b.Period)
		p.Path.Points = points(b.Points)
		p.Path.ControlPoints = points(b.ControlPoints)
	}
	return p, nil
}

// parseColor accepts a color name, a hex string or an {r, g, b} object.
func parseColor(raw json.RawMessage) (color.NRGBA, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return danmaku.ParseColor(s)
	}
	var rgb struct {
		R, G, B uint8
	}
	if err := json.Unmarshal(raw, &rgb); err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %s: %v", danmaku.ErrInvalidParams, raw, err)
	}
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}, nil
}
