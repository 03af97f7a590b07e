package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"makupct/game"
	"makupct/stage"
)

func main() {
	config := game.DefaultConfig()

	flag.StringVar(&config.ScriptPath, "script", "", "Stage script to run (default: built-in demo)")
	flag.IntVar(&config.ScreenWidth, "width", config.ScreenWidth, "Window width in pixels")
	flag.IntVar(&config.ScreenHeight, "height", config.ScreenHeight, "Window height in pixels")
	flag.IntVar(&config.TPS, "tps", config.TPS, "Simulation frames per second")
	flag.BoolVar(&config.EditorMode, "editor", config.EditorMode, "Start in editor mode")
	flag.BoolVar(&config.Profile, "profile", config.Profile, "Capture CPU profiles on slow ticks")
	flag.Parse()

	runner := stage.NewRunner()
	g, err := game.NewGame(config, game.ScriptLoader(runner, config.ScriptPath, config.Canvas()))
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Maku")
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
