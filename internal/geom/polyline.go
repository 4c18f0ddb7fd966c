package geom

import "math"

// Polyline is an ordered chain of vertices in boundary traversal order. A
// closed loop repeats its first vertex as its last.
type Polyline []Point

// Closed reports whether the polyline is a loop (at least three distinct
// vertices with first == last).
func (pl Polyline) Closed() bool {
	return len(pl) >= 4 && pl[0] == pl[len(pl)-1]
}

// Segments returns the number of line segments in the chain.
func (pl Polyline) Segments() int {
	if len(pl) < 2 {
		return 0
	}
	return len(pl) - 1
}

// Length returns the summed length of all segments.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl); i++ {
		total += pl[i-1].Dist(pl[i])
	}
	return total
}

// Bounds returns the axis-aligned bounding box of the vertices. An empty
// polyline yields a zero Rect.
func (pl Polyline) Bounds() Rect {
	if len(pl) == 0 {
		return Rect{}
	}
	r := Rect{Min: pl[0], Max: pl[0]}
	for _, p := range pl[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Clone returns a copy that shares no storage with pl.
func (pl Polyline) Clone() Polyline {
	return append(Polyline(nil), pl...)
}

// SelfIntersects reports whether any two non-adjacent segments cross.
func (pl Polyline) SelfIntersects() bool {
	n := pl.Segments()
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 && pl.Closed() {
				continue
			}
			if SegmentsIntersect(pl[i], pl[i+1], pl[j], pl[j+1]) {
				return true
			}
		}
	}
	return false
}

// DistanceTo returns the smallest distance from p to any segment of pl.
func (pl Polyline) DistanceTo(p Point) float64 {
	switch len(pl) {
	case 0:
		return math.Inf(1)
	case 1:
		return p.Dist(pl[0])
	}
	best := math.Inf(1)
	for i := 1; i < len(pl); i++ {
		best = math.Min(best, SegmentDistance(p, pl[i-1], pl[i]))
	}
	return best
}

// Rect is an axis-aligned box with Min at the lower left.
type Rect struct {
	Min, Max Point
}

// R builds a Rect from its corner coordinates.
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: Point{X: math.Min(x0, x1), Y: math.Min(y0, y1)}, Max: Point{X: math.Max(x0, x1), Y: math.Max(y0, y1)}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
