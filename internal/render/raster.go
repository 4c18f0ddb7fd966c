// Package render turns table geometry and simulation snapshots into images.
// The software path needs no display and backs headless frame dumps; the
// ebiten painter draws the same scene in the GUI build.
package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"mad-pool/internal/geom"
	"mad-pool/internal/sim"
	"mad-pool/internal/table"
)

// Options controls Rasterize.
type Options struct {
	// Background is scaled to fill the frame. Nil means Clear.
	Background image.Image
	Clear      color.RGBA
	// LineWidth is the cushion stroke width in pixels.
	LineWidth float64
	Ball      color.RGBA
	// CircleSides is the polygon resolution for balls.
	CircleSides int
}

// DefaultOptions returns dark cloth, 2px cushions and white balls.
func DefaultOptions() Options {
	return Options{
		Clear:       color.RGBA{R: 12, G: 60, B: 28, A: 255},
		LineWidth:   2,
		Ball:        color.RGBA{R: 240, G: 240, B: 235, A: 255},
		CircleSides: 24,
	}
}

// Rasterize draws s onto a new w*h image, mapping s.Bounds onto the frame.
func Rasterize(s sim.Snapshot, w, h int, opt Options) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return dst
	}
	if opt.Background != nil {
		draw.BiLinear.Scale(dst, dst.Bounds(), opt.Background, opt.Background.Bounds(), draw.Src, nil)
	} else {
		fillRGBA(dst, opt.Clear)
	}
	if opt.CircleSides < 3 {
		opt.CircleSides = 3
	}

	t := newTransform(s.Bounds, w, h)
	z := vector.NewRasterizer(w, h)
	half := math.Max(opt.LineWidth, 1) / 2
	for _, seg := range s.Segments {
		z.Reset(w, h)
		strokeSegment(z, t, seg.A, seg.B, half)
		z.Draw(dst, dst.Bounds(), image.NewUniform(LineColor(seg.Line)), image.Point{})
	}
	ball := image.NewUniform(opt.Ball)
	for _, b := range s.Balls {
		z.Reset(w, h)
		fillCircle(z, t, b.Position, b.Radius, opt.CircleSides)
		z.Draw(dst, dst.Bounds(), ball, image.Point{})
	}
	return dst
}

// BoundaryMask fills the closed polylines of lines with the even-odd rule:
// inside pixels are 0xff, everything else 0. Open chains are closed by their
// chord before filling.
func BoundaryMask(lines []geom.Polyline, bounds geom.Rect, w, h int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return dst
	}
	t := newTransform(bounds, w, h)
	z := vector.NewRasterizer(w, h)
	cov := image.NewAlpha(dst.Bounds())
	for _, pl := range lines {
		if len(pl) < 3 {
			continue
		}
		z.Reset(w, h)
		z.DrawOp = draw.Src
		x, y := t.apply(pl[0])
		z.MoveTo(x, y)
		for _, p := range pl[1:] {
			x, y = t.apply(p)
			z.LineTo(x, y)
		}
		z.ClosePath()
		z.Draw(cov, cov.Bounds(), image.Opaque, image.Point{})
		toggleMask(dst, cov)
	}
	return dst
}

// SegmentLines regroups consecutive segments of the same source line back into
// polylines.
func SegmentLines(segs []table.StaticSegment) []geom.Polyline {
	var out []geom.Polyline
	last := -1
	for _, s := range segs {
		n := len(out)
		if n == 0 || s.Line != last || out[n-1][len(out[n-1])-1] != s.A {
			out = append(out, geom.Polyline{s.A})
			last = s.Line
			n++
		}
		out[n-1] = append(out[n-1], s.B)
	}
	return out
}

// strokeSegment adds a quad of half-width half around a-b in pixel space.
func strokeSegment(z *vector.Rasterizer, t transform, a, b geom.Point, half float64) {
	ax, ay := t.apply(a)
	bx, by := t.apply(b)
	dx, dy := float64(bx-ax), float64(by-ay)
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := float32(-dy/l*half), float32(dx/l*half)
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

func fillCircle(z *vector.Rasterizer, t transform, c geom.Point, r float64, sides int) {
	cx, cy := t.apply(c)
	pr := t.scale(r)
	for i := 0; i < sides; i++ {
		a := 2 * math.Pi * float64(i) / float64(sides)
		x := cx + float32(pr*math.Cos(a))
		y := cy + float32(pr*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
			continue
		}
		z.LineTo(x, y)
	}
	z.ClosePath()
}
