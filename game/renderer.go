package game

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"makupct/danmaku"
	"makupct/raster"
	"makupct/stage"
)

const sourceSpriteSize = 32

// Renderer draws onto an ebiten image. It implements danmaku.Surface for
// whichever screen was last passed to Begin.
type Renderer struct {
	screen       *ebiten.Image
	sourceSprite *ebiten.Image
	spriteFailed bool
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Begin sets the image subsequent Surface calls draw to.
func (r *Renderer) Begin(screen *ebiten.Image) {
	r.screen = screen
}

// FillCircle implements danmaku.Surface.
func (r *Renderer) FillCircle(center danmaku.Vec2, radius float64, clr color.Color) {
	vector.DrawFilledCircle(r.screen, float32(center.X), float32(center.Y), float32(radius), clr, true)
}

// StrokeCircle implements danmaku.Surface.
func (r *Renderer) StrokeCircle(center danmaku.Vec2, radius, width float64, clr color.Color) {
	vector.StrokeCircle(r.screen, float32(center.X), float32(center.Y), float32(radius), float32(width), clr, true)
}

// StrokeLine implements danmaku.Surface.
func (r *Renderer) StrokeLine(from, to danmaku.Vec2, width float64, clr color.Color) {
	vector.StrokeLine(r.screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), float32(width), clr, true)
}

// DrawSources stamps the source marker sprite at every pattern's current
// source position.
func (r *Renderer) DrawSources(s *stage.Stage) {
	sprite := r.sprite()
	if sprite == nil {
		return
	}
	for _, p := range s.Patterns() {
		pos := p.Source().Position()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(pos.X-sourceSpriteSize/2, pos.Y-sourceSpriteSize/2)
		r.screen.DrawImage(sprite, op)
	}
}

// sprite lazily rasterizes the source marker; images are only created once
// the game loop is running.
func (r *Renderer) sprite() *ebiten.Image {
	if r.sourceSprite != nil || r.spriteFailed {
		return r.sourceSprite
	}
	img, err := raster.Icon(raster.SourceSVG, sourceSpriteSize, sourceSpriteSize)
	if err != nil {
		log.Printf("Failed to rasterize source marker: %v", err)
		r.spriteFailed = true
		return nil
	}
	r.sourceSprite = ebiten.NewImageFromImage(img)
	return r.sourceSprite
}
