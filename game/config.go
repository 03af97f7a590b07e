package game

import (
	"image/color"
	"time"

	"makupct/stage"
)

// Config holds viewer configuration
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// TPS is the number of simulation frames per second
	TPS int

	// ScriptPath is the stage script to load; empty runs the built-in demo
	ScriptPath string

	// EditorMode starts the viewer showing the static layout
	EditorMode bool

	// ShowHUD draws the debug text overlay
	ShowHUD bool

	// Background is the color the screen is cleared to each frame
	Background color.NRGBA

	// LoadTimeout bounds how long a stage script may run
	LoadTimeout time.Duration

	// Profile enables capturing CPU profiles when a tick runs slow
	Profile bool

	// ProfilesDir is where captured profiles are written
	ProfilesDir string

	// SlowTick is how long one Update may take before it counts as slow
	SlowTick time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  800,
		ScreenHeight: 600,
		TPS:          60,
		ShowHUD:      true,
		Background:   color.NRGBA{R: 12, G: 12, B: 24, A: 255},
		LoadTimeout:  2 * time.Second,
		ProfilesDir:  "profiles",
		SlowTick:     50 * time.Millisecond, // three frames at 60 TPS
	}
}

// Canvas returns the canvas handed to stage scripts.
func (c Config) Canvas() stage.Canvas {
	return stage.Canvas{Width: float64(c.ScreenWidth), Height: float64(c.ScreenHeight)}
}
