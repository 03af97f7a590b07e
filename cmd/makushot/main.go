// Command makushot runs a stage without a window and writes the last frame
// to a PNG file.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"makupct/danmaku"
	"makupct/raster"
	"makupct/stage"
)

func main() {
	script := flag.String("script", "", "Stage script to run (default: built-in demo)")
	frames := flag.Int("frames", 240, "Number of frames to simulate before the snapshot")
	out := flag.String("out", "shot.png", "Output PNG file")
	width := flag.Int("width", 800, "Canvas width in pixels")
	height := flag.Int("height", 600, "Canvas height in pixels")
	editor := flag.Bool("editor", false, "Overlay paths, handles and source markers")
	background := flag.String("bg", "#0c0c18", "Background color (name or hex)")
	flag.Parse()

	bg, err := danmaku.ParseColor(*background)
	if err != nil {
		log.Fatalf("Bad background: %v", err)
	}

	canvas := stage.Canvas{Width: float64(*width), Height: float64(*height)}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runner := stage.NewRunner()
	var params []danmaku.Params
	if *script == "" {
		params, err = runner.Load(ctx, stage.Demo, canvas)
	} else {
		params, err = runner.LoadFile(ctx, *script, canvas)
	}
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	s, err := stage.Build(params, canvas.Width, canvas.Height)
	if err != nil {
		log.Fatalf("Failed to build stage: %v", err)
	}

	start := time.Now()
	for i := 0; i < *frames; i++ {
		s.Update()
	}
	log.Printf("Simulated %d frames in %v, %d bullets alive", *frames, time.Since(start), s.BulletCount())

	c := raster.NewCanvas(*width, *height)
	c.Clear(bg)
	s.Draw(c)
	if *editor {
		s.DrawEditor(c)
		drawSourceMarkers(c, s)
	}

	if err := c.SavePNG(*out); err != nil {
		log.Fatalf("Failed to write snapshot: %v", err)
	}
	log.Printf("Wrote %s", *out)
}

func drawSourceMarkers(c *raster.Canvas, s *stage.Stage) {
	icon, err := raster.Icon(raster.SourceSVG, 32, 32)
	if err != nil {
		log.Printf("Failed to rasterize source marker: %v", err)
		return
	}
	for _, p := range s.Patterns() {
		c.DrawIcon(icon, p.Source().Position())
	}
}
