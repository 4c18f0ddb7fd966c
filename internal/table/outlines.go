package table

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"

	"mad-pool/internal/core"
)

func init() {
	core.RegisterOutline("rect", rectOutline)
	core.RegisterOutline("pool", poolOutline)
	core.RegisterOutline("worn", wornOutline)
}

// paint fills a greyscale image: white where inside reports true for the pixel
// centre, black elsewhere. Coordinates are image coordinates (y down).
func paint(size core.Size, inside func(x, y float64) bool) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size.W, size.H))
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if inside(float64(x)+0.5, float64(y)+0.5) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func margin(size core.Size) float64 {
	return math.Max(4, float64(min(size.W, size.H))/10)
}

func rectOutline(size core.Size, _ int64) image.Image {
	m := margin(size)
	w, h := float64(size.W), float64(size.H)
	return paint(size, func(x, y float64) bool {
		return x >= m && x <= w-m && y >= m && y <= h-m
	})
}

// poolOutline cuts six pockets into the cushion. The three bottom pockets run
// off the image so balls can drop out of the table.
func poolOutline(size core.Size, _ int64) image.Image {
	m := margin(size)
	w, h := float64(size.W), float64(size.H)
	r := m * 0.9
	top := []float64{m, w / 2, w - m}
	return paint(size, func(x, y float64) bool {
		if x >= m && x <= w-m && y >= m && y <= h-m {
			return true
		}
		for _, cx := range top {
			if math.Hypot(x-cx, y-m) <= r {
				return true
			}
			if math.Abs(x-cx) <= r && y >= h-m {
				return true
			}
		}
		return false
	})
}

// wornOutline wobbles every cushion with Perlin noise.
func wornOutline(size core.Size, seed int64) image.Image {
	m := margin(size)
	w, h := float64(size.W), float64(size.H)
	amp := m / 3
	noise := perlin.NewPerlin(2, 2, 3, seed)
	const freq = 1.0 / 40
	return paint(size, func(x, y float64) bool {
		left := m + amp*noise.Noise2D(y*freq, 0.5)
		right := w - m - amp*noise.Noise2D(y*freq, 1.5)
		bottom := h - m - amp*noise.Noise2D(x*freq, 2.5)
		top := m + amp*noise.Noise2D(x*freq, 3.5)
		return x >= left && x <= right && y >= top && y <= bottom
	})
}
