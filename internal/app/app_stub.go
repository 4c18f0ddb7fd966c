//go:build !ebiten

package app

import (
	"fmt"
	"log"

	"mad-pool/internal/core"
	"mad-pool/internal/render"
	"mad-pool/internal/sim"
)

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(*sim.Simulation, int, int, render.Options, string, *log.Logger, ...core.ParameterProvider) *Game {
	panic("app.New requires building with the 'ebiten' tag")
}

// SetTitle is a no-op placeholder.
func (g *Game) SetTitle(string) {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error {
	return fmt.Errorf("app.Game.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
