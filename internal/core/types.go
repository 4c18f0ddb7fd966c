package core

import (
	"image"
	"sort"
)

// Size describes the pixel dimensions of a table image or screen.
type Size struct {
	W int
	H int
}

// Outline renders a table outline of the requested size. Bright pixels are
// playable surface; dark or transparent pixels are cushion and void.
type Outline func(size Size, seed int64) image.Image

var outlines = map[string]Outline{}

// RegisterOutline adds a procedural outline generator under the provided name.
func RegisterOutline(name string, f Outline) {
	if name == "" || f == nil {
		return
	}
	outlines[name] = f
}

// Outlines exposes the registry of available outline generators.
func Outlines() map[string]Outline {
	return outlines
}

// OutlineNames returns the registered generator names in sorted order.
func OutlineNames() []string {
	names := make([]string, 0, len(outlines))
	for name := range outlines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
