package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"makupct/danmaku"
	"makupct/stage"
)

// Loader produces the pattern parameters of a stage, in editor coordinates.
type Loader func(ctx context.Context) ([]danmaku.Params, error)

// ScriptLoader returns a Loader that runs the script at path, or the
// built-in demo when path is empty. The file is re-read on every load so
// edits show up on reload.
func ScriptLoader(runner *stage.Runner, path string, canvas stage.Canvas) Loader {
	return func(ctx context.Context) ([]danmaku.Params, error) {
		if path == "" {
			return runner.Load(ctx, stage.Demo, canvas)
		}
		return runner.LoadFile(ctx, path, canvas)
	}
}

// Game drives a stage from ebiten's loop: one stage frame per tick,
// update before draw.
type Game struct {
	config   Config
	load     Loader
	stage    *stage.Stage
	renderer *Renderer
	profiler *Profiler

	paused  bool
	editor  bool
	showHUD bool
}

// NewGame loads the stage and creates a new game instance
func NewGame(config Config, load Loader) (*Game, error) {
	g := &Game{
		config:   config,
		load:     load,
		renderer: NewRenderer(),
		editor:   config.EditorMode,
		showHUD:  config.ShowHUD,
	}
	if config.Profile {
		g.profiler = NewProfiler(config.ProfilesDir, config.SlowTick)
	}
	if err := g.reload(); err != nil {
		return nil, err
	}
	return g, nil
}

// reload rebuilds every pattern from the loader. On error the current
// stage is kept.
func (g *Game) reload() error {
	ctx, cancel := context.WithTimeout(context.Background(), g.config.LoadTimeout)
	defer cancel()

	params, err := g.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stage: %w", err)
	}
	s, err := stage.Build(params, float64(g.config.ScreenWidth), float64(g.config.ScreenHeight))
	if err != nil {
		return fmt.Errorf("failed to build stage: %w", err)
	}
	g.stage = s
	log.Printf("Loaded stage with %d patterns", len(s.Patterns()))
	return nil
}

// handle applies this tick's controls and reports whether the stage should
// advance a frame.
func (g *Game) handle(c Controls) bool {
	if c.ToggleHUD {
		g.showHUD = !g.showHUD
	}
	if c.TogglePause {
		g.paused = !g.paused
		if g.paused {
			log.Printf("Paused at frame %d", g.stage.Frame())
		} else {
			log.Printf("Resumed at frame %d", g.stage.Frame())
		}
	}
	if c.ToggleEditor {
		g.editor = !g.editor
		// Leaving the editor restarts the stage from its layout
		if !g.editor {
			c.Reload = true
		}
	}
	if c.Reload {
		if err := g.reload(); err != nil {
			log.Printf("Reload failed, keeping current stage: %v", err)
		}
	}

	if g.editor {
		return false
	}
	return !g.paused || c.Step
}

// Update updates the game state
func (g *Game) Update() error {
	start := time.Now()

	if g.handle(ReadControls()) {
		g.stage.Update()
	}

	if g.profiler != nil {
		g.profiler.Observe(time.Since(start), fmt.Sprintf("bullets%d", g.stage.BulletCount()))
	}
	return nil
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.config.Background)
	g.renderer.Begin(screen)

	if g.editor {
		g.stage.DrawEditor(g.renderer)
		g.renderer.DrawSources(g.stage)
	} else {
		g.stage.Draw(g.renderer)
	}

	if g.showHUD {
		ebitenutil.DebugPrint(screen, g.hudText())
	}
}

func (g *Game) hudText() string {
	mode := "running"
	switch {
	case g.editor:
		mode = "editor"
	case g.paused:
		mode = "paused"
	}
	return fmt.Sprintf("TPS: %.0f  FPS: %.0f  [%s]\nFrame: %d  Patterns: %d  Bullets: %d\n"+
		"Space pause  . step  E editor  R reload  F1 hud",
		ebiten.ActualTPS(), ebiten.ActualFPS(), mode,
		g.stage.Frame(), len(g.stage.Patterns()), g.stage.BulletCount())
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}

// Stage returns the stage currently being run.
func (g *Game) Stage() *stage.Stage { return g.stage }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// Editor reports whether the viewer shows the editor layout.
func (g *Game) Editor() bool { return g.editor }
