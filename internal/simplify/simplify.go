// Package simplify reduces polylines with the Douglas-Peucker algorithm.
package simplify

import "mad-pool/internal/geom"

// Polyline returns pl reduced so that no discarded vertex lies farther than
// tolerance from the simplified chain. Endpoints are always kept. A closed
// loop is split at the vertex farthest from its start, each half is reduced
// independently and the result is still closed. A loop that would reduce to
// fewer than four vertices is smaller than tolerance and is returned unchanged,
// so the result is stable under repeated simplification.
func Polyline(pl geom.Polyline, tolerance float64) geom.Polyline {
	out, _ := reduceChain(pl, tolerance)
	return out
}

// All simplifies every polyline in lines. Chains that end up with fewer than
// two vertices or no extent, and loops smaller than tolerance, are dropped.
func All(lines []geom.Polyline, tolerance float64) []geom.Polyline {
	out := make([]geom.Polyline, 0, len(lines))
	for _, pl := range lines {
		s, collapsed := reduceChain(pl, tolerance)
		if collapsed || len(s) < 2 {
			continue
		}
		if b := s.Bounds(); b.Width() == 0 && b.Height() == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

// reduceChain simplifies pl and reports whether a closed loop collapsed below
// four vertices, in which case the returned chain is a copy of pl.
func reduceChain(pl geom.Polyline, tolerance float64) (geom.Polyline, bool) {
	if len(pl) < 3 {
		return pl.Clone(), false
	}
	if tolerance < 0 {
		tolerance = 0
	}
	keep := make([]bool, len(pl))
	last := len(pl) - 1
	keep[0], keep[last] = true, true

	closed := pl.Closed()
	if closed {
		split := farthestFrom(pl, 0, last)
		keep[split] = true
		reduce(pl, 0, split, tolerance, keep)
		reduce(pl, split, last, tolerance, keep)
	} else {
		reduce(pl, 0, last, tolerance, keep)
	}

	out := make(geom.Polyline, 0, len(pl))
	for i, p := range pl {
		if keep[i] {
			out = append(out, p)
		}
	}
	if closed && len(out) < 4 {
		return pl.Clone(), true
	}
	return out, false
}

func reduce(pl geom.Polyline, first, last int, tolerance float64, keep []bool) {
	if last-first < 2 {
		return
	}
	idx, dist := -1, 0.0
	a, b := pl[first], pl[last]
	for i := first + 1; i < last; i++ {
		if d := geom.SegmentDistance(pl[i], a, b); d > dist {
			idx, dist = i, d
		}
	}
	if idx < 0 || dist <= tolerance {
		return
	}
	keep[idx] = true
	reduce(pl, first, idx, tolerance, keep)
	reduce(pl, idx, last, tolerance, keep)
}

// farthestFrom returns the index in (first, last) of the vertex farthest from
// pl[first].
func farthestFrom(pl geom.Polyline, first, last int) int {
	idx, dist := first+1, -1.0
	for i := first + 1; i < last; i++ {
		if d := pl[i].Dist(pl[first]); d > dist {
			idx, dist = i, d
		}
	}
	return idx
}
