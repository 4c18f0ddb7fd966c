// Package field turns a raster image into a scalar occupancy field that can be
// sampled at arbitrary world coordinates.
package field

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"mad-pool/internal/geom"
)

// Empty is the value read for any point outside the image. It sits below every
// valid threshold, which must lie in (0, 1].
const Empty = 0.0

// Channel selects which per-pixel intensity feeds the field.
type Channel string

const (
	// ChannelLightness is HSL lightness, (max+min)/2 of the colour components.
	ChannelLightness Channel = "lightness"
	// ChannelLuminance is Rec. 601 luma.
	ChannelLuminance Channel = "luminance"
	// ChannelAlpha is the alpha channel.
	ChannelAlpha Channel = "alpha"
)

// ParseChannel maps a config string to a Channel.
func ParseChannel(s string) (Channel, error) {
	switch c := Channel(s); c {
	case ChannelLightness, ChannelLuminance, ChannelAlpha:
		return c, nil
	case "":
		return ChannelLightness, nil
	}
	return "", fmt.Errorf("unknown channel %q", s)
}

// Sampler is a read-only scalar field over a bounding box.
type Sampler interface {
	Sample(p geom.Point) float64
	Bounds() geom.Rect
}

// Image samples an image.Image. World y grows upward, so row 0 of the image is
// the top of the field.
type Image struct {
	img     image.Image
	origin  image.Point
	w, h    int
	channel Channel
	smooth  bool
}

// NewImage wraps img. When smooth is set, samples are bilinearly interpolated
// between pixel centres instead of taken from the nearest pixel.
func NewImage(img image.Image, ch Channel, smooth bool) *Image {
	b := img.Bounds()
	if ch == "" {
		ch = ChannelLightness
	}
	return &Image{img: img, origin: b.Min, w: b.Dx(), h: b.Dy(), channel: ch, smooth: smooth}
}

// Bounds returns the sampling box [0,w]x[0,h]. The far edges read as Empty.
func (f *Image) Bounds() geom.Rect {
	return geom.R(0, 0, float64(f.w), float64(f.h))
}

// Sample returns the field value at p in [0,1], or Empty outside the image.
func (f *Image) Sample(p geom.Point) float64 {
	if !p.Finite() || p.X < 0 || p.Y < 0 || p.X >= float64(f.w) || p.Y >= float64(f.h) {
		return Empty
	}
	if !f.smooth {
		return f.pixel(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	}
	u, v := p.X-0.5, p.Y-0.5
	i0, j0 := math.Floor(u), math.Floor(v)
	tx, ty := u-i0, v-j0
	x0, y0 := int(i0), int(j0)
	bottom := f.pixel(x0, y0)*(1-tx) + f.pixel(x0+1, y0)*tx
	top := f.pixel(x0, y0+1)*(1-tx) + f.pixel(x0+1, y0+1)*tx
	return bottom*(1-ty) + top*ty
}

// pixel reads the pixel at world column i and world row j (j=0 is the bottom).
func (f *Image) pixel(i, j int) float64 {
	if i < 0 || j < 0 || i >= f.w || j >= f.h {
		return Empty
	}
	c := f.img.At(f.origin.X+i, f.origin.Y+f.h-1-j)
	if c == nil {
		return Empty
	}
	v := Intensity(c, f.channel)
	if math.IsNaN(v) {
		return Empty
	}
	return v
}

// Intensity converts a colour to a [0,1] scalar for the given channel.
func Intensity(c color.Color, ch Channel) float64 {
	r, g, b, a := c.RGBA()
	fr, fg, fb := float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff
	switch ch {
	case ChannelAlpha:
		return float64(a) / 0xffff
	case ChannelLuminance:
		return 0.299*fr + 0.587*fg + 0.114*fb
	default:
		return (math.Max(fr, math.Max(fg, fb)) + math.Min(fr, math.Min(fg, fb))) / 2
	}
}

// Func adapts a plain function into a Sampler over box.
type Func struct {
	Box geom.Rect
	F   func(p geom.Point) float64
}

// Sample evaluates F, returning Empty outside Box or for non-finite results.
func (f Func) Sample(p geom.Point) float64 {
	if !f.Box.Contains(p) || f.F == nil {
		return Empty
	}
	v := f.F(p)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Empty
	}
	return v
}

// Bounds returns Box.
func (f Func) Bounds() geom.Rect { return f.Box }
