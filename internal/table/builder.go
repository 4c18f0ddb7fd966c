// Package table turns a table outline into static collision geometry.
package table

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"

	"mad-pool/internal/geom"
)

// ErrInvalidSegment reports a segment with a non-finite endpoint.
var ErrInvalidSegment = errors.New("invalid static segment")

// Material holds the physical attributes shared by every cushion segment.
type Material struct {
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Radius     float64 `yaml:"radius"`
}

// DefaultMaterial returns the cushion material of the reference table.
func DefaultMaterial() Material {
	return Material{Friction: 0.9, Elasticity: 0.95, Radius: 1}
}

// StaticSegment is one immutable cushion collider.
type StaticSegment struct {
	A, B     geom.Point
	Material Material
	// Line is the index of the polyline the segment came from.
	Line int
}

// Build emits one StaticSegment per consecutive vertex pair. Zero-length pairs
// are skipped. Any non-finite vertex rejects the whole set.
func Build(lines []geom.Polyline, m Material) ([]StaticSegment, error) {
	var segs []StaticSegment
	for li, pl := range lines {
		for i := 1; i < len(pl); i++ {
			a, b := pl[i-1], pl[i]
			if !a.Finite() || !b.Finite() {
				return nil, fmt.Errorf("%w: polyline %d vertex %d", ErrInvalidSegment, li, i)
			}
			if a == b {
				continue
			}
			segs = append(segs, StaticSegment{A: a, B: b, Material: m, Line: li})
		}
	}
	return segs, nil
}

// AddToSpace attaches every segment to the space's static body and returns the
// created shapes in the same order.
func AddToSpace(space *cp.Space, segs []StaticSegment) []*cp.Shape {
	shapes := make([]*cp.Shape, 0, len(segs))
	for _, s := range segs {
		shape := cp.NewSegment(space.StaticBody, vec(s.A), vec(s.B), s.Material.Radius)
		shape.SetFriction(s.Material.Friction)
		shape.SetElasticity(s.Material.Elasticity)
		shapes = append(shapes, space.AddShape(shape))
	}
	return shapes
}

func vec(p geom.Point) cp.Vector { return cp.Vector{X: p.X, Y: p.Y} }
