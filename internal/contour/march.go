// Package contour extracts threshold-crossing boundaries from a scalar field
// with marching squares.
package contour

import (
	"math"

	"mad-pool/internal/core"
	"mad-pool/internal/field"
	"mad-pool/internal/geom"
)

// Options controls the sampling lattice.
type Options struct {
	// Threshold separates inside (value > Threshold) from outside.
	Threshold float64
	// XSamples and YSamples are lattice points per axis, edges included. Zero
	// means one lattice point per world unit of the sampler bounds.
	XSamples int
	YSamples int
}

// lattice holds the sampled corner values and the world position of each
// lattice column and row.
type lattice struct {
	values    *core.FloatGrid
	xs, ys    []float64
	threshold float64
	crossings map[edge]geom.Point
}

// Trace samples s on a uniform lattice spanning its bounds and returns the
// boundary as polylines. Closed loops repeat their first vertex. Output is
// deterministic for a given field and options.
func Trace(s field.Sampler, opt Options) []geom.Polyline {
	lat := sampleLattice(s, opt)
	if lat == nil {
		return nil
	}
	adj := make(adjacency)
	w, h := lat.values.W, lat.values.H
	for j := 0; j < h-1; j++ {
		for i := 0; i < w-1; i++ {
			lat.marchCell(i, j, adj)
		}
	}
	return adj.chains(lat.crossing)
}

func sampleLattice(s field.Sampler, opt Options) *lattice {
	box := s.Bounds()
	if !(box.Width() > 0) || !(box.Height() > 0) {
		return nil
	}
	nx, ny := opt.XSamples, opt.YSamples
	if nx == 0 {
		nx = int(math.Ceil(box.Width())) + 1
	}
	if ny == 0 {
		ny = int(math.Ceil(box.Height())) + 1
	}
	if nx < 2 || ny < 2 {
		return nil
	}
	lat := &lattice{
		values:    core.NewFloatGrid(nx, ny),
		xs:        spread(box.Min.X, box.Max.X, nx),
		ys:        spread(box.Min.Y, box.Max.Y, ny),
		threshold: opt.Threshold,
		crossings: make(map[edge]geom.Point),
	}
	lat.values.Fill(func(i, j int) float64 {
		return s.Sample(geom.Pt(lat.xs[i], lat.ys[j]))
	})
	return lat
}

func spread(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	out[n-1] = hi
	return out
}

func (l *lattice) point(i, j int) geom.Point { return geom.Pt(l.xs[i], l.ys[j]) }

func (l *lattice) above(i, j int) bool { return l.values.At(i, j) > l.threshold }

// crossing returns the interpolated threshold crossing on e. Both cells that
// share an edge get the identical point.
func (l *lattice) crossing(e edge) geom.Point {
	if p, ok := l.crossings[e]; ok {
		return p
	}
	i1, j1 := e.i+1, e.j
	if e.vertical {
		i1, j1 = e.i, e.j+1
	}
	v0, v1 := l.values.At(e.i, e.j), l.values.At(i1, j1)
	t := 0.5
	if v1 != v0 {
		t = (l.threshold - v0) / (v1 - v0)
	}
	t = math.Max(0, math.Min(1, t))
	p := l.point(e.i, e.j).Lerp(l.point(i1, j1), t)
	l.crossings[e] = p
	return p
}

// marchCell classifies the four corners of cell (i, j) and links the crossed
// edges. Corners: a=(i,j) b=(i+1,j) c=(i,j+1) d=(i+1,j+1).
func (l *lattice) marchCell(i, j int, adj adjacency) {
	mask := 0
	if l.above(i, j) {
		mask |= 1
	}
	if l.above(i+1, j) {
		mask |= 2
	}
	if l.above(i, j+1) {
		mask |= 4
	}
	if l.above(i+1, j+1) {
		mask |= 8
	}

	bottom := edge{i: i, j: j}
	top := edge{i: i, j: j + 1}
	left := edge{vertical: true, i: i, j: j}
	right := edge{vertical: true, i: i + 1, j: j}

	switch mask {
	case 0x0, 0xF:
	case 0x1, 0xE:
		adj.link(left, bottom)
	case 0x2, 0xD:
		adj.link(bottom, right)
	case 0x4, 0xB:
		adj.link(left, top)
	case 0x8, 0x7:
		adj.link(top, right)
	case 0x3, 0xC:
		adj.link(left, right)
	case 0x5, 0xA:
		adj.link(bottom, top)
	case 0x6, 0x9:
		// Saddle: the mean of the corners decides whether the two above
		// corners are joined through the cell centre.
		centre := (l.values.At(i, j) + l.values.At(i+1, j) + l.values.At(i, j+1) + l.values.At(i+1, j+1)) / 4
		joinAD := (mask == 0x9) == (centre > l.threshold)
		if joinAD {
			adj.link(bottom, right)
			adj.link(left, top)
		} else {
			adj.link(left, bottom)
			adj.link(top, right)
		}
	}
}
