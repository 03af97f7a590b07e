package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Controls is the set of viewer commands issued during one tick
type Controls struct {
	// TogglePause stops or resumes the simulation (Space)
	TogglePause bool

	// Step advances one frame while paused (Period or Right arrow)
	Step bool

	// ToggleEditor switches between the running stage and the static
	// editor layout (E)
	ToggleEditor bool

	// Reload reloads the stage script and restarts every pattern (R)
	Reload bool

	// ToggleHUD shows or hides the debug text (F1)
	ToggleHUD bool
}

// ReadControls polls the keyboard for keys pressed this tick.
func ReadControls() Controls {
	return Controls{
		TogglePause:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Step:         inpututil.IsKeyJustPressed(ebiten.KeyPeriod) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight),
		ToggleEditor: inpututil.IsKeyJustPressed(ebiten.KeyE),
		Reload:       inpututil.IsKeyJustPressed(ebiten.KeyR),
		ToggleHUD:    inpututil.IsKeyJustPressed(ebiten.KeyF1),
	}
}
