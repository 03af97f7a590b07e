package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"makupct/danmaku"
	"makupct/stage"
)

func ringParams() []danmaku.Params {
	p := danmaku.DefaultParams()
	p.SpokeCount = 6
	p.FireInterval = 5
	return []danmaku.Params{p}
}

func staticLoader(params []danmaku.Params) Loader {
	return func(context.Context) ([]danmaku.Params, error) { return params, nil }
}

func newTestGame(t *testing.T, config Config, load Loader) *Game {
	t.Helper()
	g, err := NewGame(config, load)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestNewGameBuildsStage(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), staticLoader(ringParams()))
	if n := len(g.Stage().Patterns()); n != 1 {
		t.Fatalf("got %d patterns, want 1", n)
	}
	// Editor origin maps to the screen center
	if got, want := g.Stage().Patterns()[0].Source().Position(), danmaku.Vec(400, 300); got != want {
		t.Errorf("source at %v, want %v", got, want)
	}
}

func TestNewGameLoadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewGame(DefaultConfig(), func(context.Context) ([]danmaku.Params, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want it to wrap %v", err, boom)
	}
}

func TestPauseAndStep(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), staticLoader(ringParams()))

	if !g.handle(Controls{}) {
		t.Fatal("running game should advance")
	}
	if g.handle(Controls{TogglePause: true}) {
		t.Error("pausing should stop the stage")
	}
	if !g.Paused() {
		t.Fatal("expected paused")
	}
	if g.handle(Controls{}) {
		t.Error("paused game should not advance")
	}
	if !g.handle(Controls{Step: true}) {
		t.Error("step should advance one frame while paused")
	}
	if !g.handle(Controls{TogglePause: true}) {
		t.Error("resuming should advance")
	}
}

func TestEditorFreezesAndRestarts(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), staticLoader(ringParams()))
	for i := 0; i < 3; i++ {
		if g.handle(Controls{}) {
			g.stage.Update()
		}
	}
	if g.Stage().Frame() != 3 {
		t.Fatalf("frame %d, want 3", g.Stage().Frame())
	}

	if g.handle(Controls{ToggleEditor: true}) || !g.Editor() {
		t.Fatal("editor mode should not advance")
	}
	if g.handle(Controls{Step: true}) {
		t.Error("step should not advance in editor mode")
	}

	g.handle(Controls{ToggleEditor: true})
	if g.Editor() {
		t.Fatal("expected editor mode off")
	}
	if g.Stage().Frame() != 0 {
		t.Errorf("leaving the editor should restart the stage, frame %d", g.Stage().Frame())
	}
}

func TestReloadKeepsStageOnError(t *testing.T) {
	fail := false
	load := func(context.Context) ([]danmaku.Params, error) {
		if fail {
			return nil, errors.New("syntax error")
		}
		return ringParams(), nil
	}
	g := newTestGame(t, DefaultConfig(), load)
	before := g.Stage()

	fail = true
	g.handle(Controls{Reload: true})
	if g.Stage() != before {
		t.Error("failed reload replaced the stage")
	}

	fail = false
	g.handle(Controls{Reload: true})
	if g.Stage() == before {
		t.Error("reload did not rebuild the stage")
	}
}

func TestReloadRejectsInvalidParams(t *testing.T) {
	p := danmaku.DefaultParams()
	p.SpokeCount = 0
	_, err := NewGame(DefaultConfig(), staticLoader([]danmaku.Params{p}))
	if !errors.Is(err, danmaku.ErrInvalidParams) {
		t.Errorf("got %v, want ErrInvalidParams", err)
	}
}

func TestToggleHUD(t *testing.T) {
	config := DefaultConfig()
	config.ShowHUD = false
	g := newTestGame(t, config, staticLoader(ringParams()))
	g.handle(Controls{ToggleHUD: true})
	if !g.showHUD {
		t.Error("expected HUD on")
	}
}

func TestScriptLoaderDemo(t *testing.T) {
	config := DefaultConfig()
	g := newTestGame(t, config, ScriptLoader(stage.NewRunner(), "", config.Canvas()))
	if len(g.Stage().Patterns()) == 0 {
		t.Error("demo stage has no patterns")
	}
}

func TestProfilerObserve(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProfiler(t.TempDir(), 50*time.Millisecond)
	p.now = func() time.Time { return now }

	if p.Observe(10*time.Millisecond, "fast") {
		t.Error("fast tick should not capture")
	}

	p.isProfiling = true
	if p.Observe(time.Second, "busy") {
		t.Error("should not capture while a capture is running")
	}

	p.isProfiling = false
	p.lastCaptureTime = now.Add(-time.Second)
	if p.Observe(time.Second, "cooldown") {
		t.Error("should not capture during cooldown")
	}
}
