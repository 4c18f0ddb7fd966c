package table

import (
	"fmt"

	"mad-pool/internal/contour"
	"mad-pool/internal/field"
	"mad-pool/internal/geom"
	"mad-pool/internal/simplify"
)

// Options configures the outline-to-geometry pipeline.
type Options struct {
	Threshold float64
	XSamples  int
	YSamples  int
	Tolerance float64
	Material  Material
}

// DefaultOptions mirrors the reference table setup.
func DefaultOptions() Options {
	return Options{
		Threshold: 0.99,
		XSamples:  99,
		YSamples:  99,
		Tolerance: 0.7,
		Material:  DefaultMaterial(),
	}
}

// Geometry is the immutable result of the startup pipeline.
type Geometry struct {
	Bounds   geom.Rect
	Lines    []geom.Polyline
	Segments []StaticSegment
}

// Extract traces, simplifies and builds the static geometry for s. A field
// with no crossings yields an empty Geometry and no error.
func Extract(s field.Sampler, opt Options) (Geometry, error) {
	traced := contour.Trace(s, contour.Options{
		Threshold: opt.Threshold,
		XSamples:  opt.XSamples,
		YSamples:  opt.YSamples,
	})
	lines := simplify.All(traced, opt.Tolerance)
	segs, err := Build(lines, opt.Material)
	if err != nil {
		return Geometry{}, fmt.Errorf("build table geometry: %w", err)
	}
	return Geometry{Bounds: s.Bounds(), Lines: lines, Segments: segs}, nil
}
