//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"mad-pool/internal/core"
)

const (
	panelPadding = 6
	lineHeight   = 14
	charWidth    = 7
)

// Overlay draws frame stats and the run parameters in the top-left corner.
// Tab toggles the parameter listing.
type Overlay struct {
	providers []core.ParameterProvider
	expanded  bool
}

// NewOverlay constructs an overlay listing the parameters of providers.
func NewOverlay(providers ...core.ParameterProvider) *Overlay {
	return &Overlay{providers: providers}
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.expanded = !o.expanded
	}
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, s Stats) {
	var lines []string
	if o.expanded {
		lines = Lines(s, o.providers...)
	} else {
		lines = Lines(s)
	}
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	w := float32(width*charWidth + 2*panelPadding)
	h := float32(len(lines)*lineHeight + 2*panelPadding)
	vector.DrawFilledRect(screen, 0, 0, w, h, color.RGBA{R: 16, G: 16, B: 20, A: 180}, false)

	face := basicfont.Face7x13
	for i, l := range lines {
		y := panelPadding + (i+1)*lineHeight - 3
		text.Draw(screen, l, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
}
