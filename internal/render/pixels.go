package render

import (
	"image"
	"image/color"

	"mad-pool/internal/geom"
)

// LineColor returns the stroke colour for polyline i. The red component
// cycles by 30 per line so neighbouring cushions are told apart.
func LineColor(i int) color.RGBA {
	return color.RGBA{R: uint8((i * 30) % 256), G: 200, B: 90, A: 255}
}

// transform maps world coordinates (y up) onto a w*h pixel grid (y down).
type transform struct {
	min    geom.Point
	maxY   float64
	sx, sy float64
}

func newTransform(bounds geom.Rect, w, h int) transform {
	t := transform{min: bounds.Min, maxY: bounds.Max.Y, sx: 1, sy: 1}
	if bw := bounds.Width(); bw > 0 {
		t.sx = float64(w) / bw
	}
	if bh := bounds.Height(); bh > 0 {
		t.sy = float64(h) / bh
	} else {
		t.maxY = float64(h)
	}
	return t
}

func (t transform) apply(p geom.Point) (float32, float32) {
	return float32((p.X - t.min.X) * t.sx), float32((t.maxY - p.Y) * t.sy)
}

// scale converts a world length to pixels using the mean axis scale.
func (t transform) scale(d float64) float64 { return d * (t.sx + t.sy) / 2 }

// fillRGBA clears every pixel of dst to c.
func fillRGBA(dst *image.RGBA, c color.RGBA) {
	buf := dst.Pix
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// toggleMask flips every pixel of dst whose coverage in cov reaches half.
func toggleMask(dst *image.Gray, cov *image.Alpha) {
	for i, a := range cov.Pix {
		if a >= 0x80 {
			dst.Pix[i] ^= 0xff
		}
	}
}
