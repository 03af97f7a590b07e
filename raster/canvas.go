// Package raster draws patterns into in-memory images, for screenshots and
// tests that have no window to draw to.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"makupct/danmaku"
)

// miterLimit only matters for miter joins; strokes here use round joins.
const miterLimit = 4

// Canvas is a danmaku.Surface backed by an RGBA image and an
// anti-aliasing rasterizer.
type Canvas struct {
	img    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Canvas{
		img:    img,
		filler: rasterx.NewFiller(width, height, scanner),
		dasher: rasterx.NewDasher(width, height, scanner),
	}
}

// Image returns the canvas's backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear fills the whole canvas with bg.
func (c *Canvas) Clear(bg color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// FillCircle implements danmaku.Surface.
func (c *Canvas) FillCircle(center danmaku.Vec2, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	c.filler.Clear()
	rasterx.AddCircle(center.X, center.Y, radius, c.filler)
	c.filler.SetColor(clr)
	c.filler.Draw()
}

// StrokeCircle implements danmaku.Surface.
func (c *Canvas) StrokeCircle(center danmaku.Vec2, radius, width float64, clr color.Color) {
	if radius <= 0 || width <= 0 {
		return
	}
	c.stroke(width)
	rasterx.AddCircle(center.X, center.Y, radius, c.dasher)
	c.dasher.SetColor(clr)
	c.dasher.Draw()
}

// StrokeLine implements danmaku.Surface.
func (c *Canvas) StrokeLine(from, to danmaku.Vec2, width float64, clr color.Color) {
	if width <= 0 {
		return
	}
	c.stroke(width)
	c.dasher.Start(rasterx.ToFixedP(from.X, from.Y))
	c.dasher.Line(rasterx.ToFixedP(to.X, to.Y))
	c.dasher.Stop(false)
	c.dasher.SetColor(clr)
	c.dasher.Draw()
}

func (c *Canvas) stroke(width float64) {
	c.dasher.Clear()
	c.dasher.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(miterLimit*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
}

// DrawIcon composites icon centered on center.
func (c *Canvas) DrawIcon(icon image.Image, center danmaku.Vec2) {
	b := icon.Bounds()
	at := image.Pt(int(center.X)-b.Dx()/2, int(center.Y)-b.Dy()/2)
	draw.Draw(c.img, image.Rectangle{Min: at, Max: at.Add(b.Size())}, icon, b.Min, draw.Over)
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := c.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
