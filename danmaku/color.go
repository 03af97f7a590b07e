package danmaku

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// DefaultBulletColor is the cyan used when a pattern doesn't pick a color.
var DefaultBulletColor = color.NRGBA{R: 28, G: 221, B: 255, A: 255}

// withAlpha returns c with its alpha scaled by a (0..1).
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	if math.IsNaN(a) || a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(math.Round(float64(c.A) * a))
	return c
}

// ParseColor parses "#rrggbb", "#rgb" or an SVG color name ("cyan",
// "orangered", ...). The result is always opaque.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("%w: empty color", ErrInvalidParams)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("%w: unknown color %q", ErrInvalidParams, s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: bad hex color %q", ErrInvalidParams, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: bad hex color %q: %v", ErrInvalidParams, s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
