//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mad-pool/internal/core"
	"mad-pool/internal/render"
	"mad-pool/internal/sim"
	"mad-pool/internal/ui"
)

const titleEvery = 30

// Game adapts a simulation to the ebiten.Game interface.
type Game struct {
	sim     *sim.Simulation
	painter *render.Painter
	overlay *ui.Overlay
	opt     render.Options
	logger  *log.Logger

	w, h    int
	shotDir string
	title   string
	shoot   bool
}

// New constructs a Game drawing s at w*h logical pixels. Screenshots go to shotDir.
func New(s *sim.Simulation, w, h int, opt render.Options, shotDir string, logger *log.Logger, providers ...core.ParameterProvider) *Game {
	return &Game{
		sim:     s,
		painter: render.NewPainter(s.Snapshot(), w, h, opt),
		overlay: ui.NewOverlay(append([]core.ParameterProvider{s}, providers...)...),
		opt:     opt,
		logger:  logger,
		w:       w,
		h:       h,
		shotDir: shotDir,
		title:   "mad-pool",
	}
}

// SetTitle sets the window title prefix.
func (g *Game) SetTitle(title string) { g.title = title }

// Update runs one simulation frame.
func (g *Game) Update() error {
	g.overlay.Update()
	report, err := g.sim.Frame(pollEvents())
	if errors.Is(err, sim.ErrStopped) {
		return ebiten.Termination
	}
	if err != nil {
		return err
	}
	if wantsScreenshot(report) {
		g.shoot = true
	}
	if report.Frame%titleEvery == 0 {
		ebiten.SetWindowTitle(fmt.Sprintf("%s - %.0f TPS %.0f FPS", g.title, ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
	if g.sim.State() == sim.Stopped {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	g.painter.Draw(screen, snap)
	g.overlay.Draw(screen, ui.Stats{
		Frame: snap.Frame,
		Balls: len(snap.Balls),
		TPS:   ebiten.ActualTPS(),
		FPS:   ebiten.ActualFPS(),
	})
	if g.shoot {
		g.shoot = false
		path, err := SaveScreenshot(g.shotDir, snap, g.w, g.h, g.opt)
		if err != nil {
			g.logf("%v", err)
			return
		}
		g.logf("saved %s", path)
	}
}

// Layout returns the logical screen size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}

func (g *Game) logf(format string, args ...any) {
	if g.logger != nil {
		g.logger.Printf(format, args...)
	}
}

// pollEvents drains this tick's input. Closing the window and Q quit; Escape
// and P are forwarded as keys; clicks and touches become pointer presses.
func pollEvents() []sim.Event {
	var events []sim.Event
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		events = append(events, sim.Quit())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		events = append(events, sim.KeyDown(sim.KeyEscape))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		events = append(events, sim.KeyDown(sim.KeyP))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		events = append(events, sim.PointerDown(sim.ButtonPrimary, float64(x), float64(y)))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		events = append(events, sim.PointerDown(sim.ButtonPrimary, float64(x), float64(y)))
	}
	return events
}
