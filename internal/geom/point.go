package geom

import "math"

// Point is a 2D position or direction in world units.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

func (p Point) Scale(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

func (p Point) Dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (p Point) Cross(o Point) float64 { return p.X*o.Y - p.Y*o.X }

func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the euclidean distance between p and o.
func (p Point) Dist(o Point) float64 { return p.Sub(o).Length() }

// Lerp interpolates from p (t=0) to o (t=1).
func (p Point) Lerp(o Point, t float64) Point {
	return Point{X: p.X + (o.X-p.X)*t, Y: p.Y + (o.Y-p.Y)*t}
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// SegmentDistance returns the distance from p to the segment a-b. A zero-length
// segment degrades to the distance to a.
func SegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(a.Add(ab.Scale(t)))
}

// SegmentsIntersect reports whether segments p1-p2 and p3-p4 properly cross,
// that is, their interiors share a point. Touching endpoints do not count.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := p4.Sub(p3).Cross(p1.Sub(p3))
	d2 := p4.Sub(p3).Cross(p2.Sub(p3))
	d3 := p2.Sub(p1).Cross(p3.Sub(p1))
	d4 := p2.Sub(p1).Cross(p4.Sub(p1))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
