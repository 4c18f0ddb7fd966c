//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/draw"

	"mad-pool/internal/sim"
)

// Painter draws snapshots onto an ebiten screen. The cloth and cushions are
// static, so they are drawn once into a cached layer.
type Painter struct {
	w, h  int
	opt   Options
	table *ebiten.Image
}

// NewPainter prepares the static layer for a w*h screen from the first snapshot.
func NewPainter(s sim.Snapshot, w, h int, opt Options) *Painter {
	p := &Painter{w: w, h: h, opt: opt}
	p.table = ebiten.NewImage(w, h)

	cloth := image.NewRGBA(image.Rect(0, 0, w, h))
	if opt.Background != nil {
		draw.BiLinear.Scale(cloth, cloth.Bounds(), opt.Background, opt.Background.Bounds(), draw.Src, nil)
	} else {
		fillRGBA(cloth, opt.Clear)
	}
	p.table.WritePixels(cloth.Pix)

	t := newTransform(s.Bounds, w, h)
	width := float32(opt.LineWidth)
	if width < 1 {
		width = 1
	}
	for _, seg := range s.Segments {
		ax, ay := t.apply(seg.A)
		bx, by := t.apply(seg.B)
		vector.StrokeLine(p.table, ax, ay, bx, by, width, LineColor(seg.Line), true)
	}
	return p
}

// Draw blits the table layer and the live balls in s.
func (p *Painter) Draw(screen *ebiten.Image, s sim.Snapshot) {
	screen.DrawImage(p.table, &ebiten.DrawImageOptions{})
	t := newTransform(s.Bounds, p.w, p.h)
	for _, b := range s.Balls {
		x, y := t.apply(b.Position)
		vector.DrawFilledCircle(screen, x, y, float32(t.scale(b.Radius)), p.opt.Ball, true)
	}
}
