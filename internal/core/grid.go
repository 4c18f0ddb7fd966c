package core

// FloatGrid stores a 2D lattice of float64 samples in row-major order, row 0
// being the lowest y.
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
}

// At returns the sample at (i, j).
func (g *FloatGrid) At(i, j int) float64 { return g.data[j*g.W+i] }

// Fill populates every lattice point from f.
func (g *FloatGrid) Fill(f func(i, j int) float64) {
	for j := 0; j < g.H; j++ {
		for i := 0; i < g.W; i++ {
			g.data[j*g.W+i] = f(i, j)
		}
	}
}
