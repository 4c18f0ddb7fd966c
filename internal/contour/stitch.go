package contour

import (
	"sort"

	"mad-pool/internal/geom"
)

// edge identifies a lattice edge: horizontal edges run from (i,j) to (i+1,j),
// vertical edges from (i,j) to (i,j+1).
type edge struct {
	vertical bool
	i, j     int
}

func (e edge) less(o edge) bool {
	if e.j != o.j {
		return e.j < o.j
	}
	if e.i != o.i {
		return e.i < o.i
	}
	return !e.vertical && o.vertical
}

// adjacency links crossing edges. Every edge borders at most two cells, so
// each node has at most two neighbours.
type adjacency map[edge][]edge

func (a adjacency) link(e0, e1 edge) {
	a[e0] = append(a[e0], e1)
	a[e1] = append(a[e1], e0)
}

func (a adjacency) sortedNodes() []edge {
	nodes := make([]edge, 0, len(a))
	for e := range a {
		nodes = append(nodes, e)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].less(nodes[j]) })
	return nodes
}

// chains joins linked edges into maximal polylines. Open chains start at their
// smallest endpoint, loops at their smallest node; chains are emitted in the
// order of those start nodes.
func (a adjacency) chains(pos func(edge) geom.Point) []geom.Polyline {
	nodes := a.sortedNodes()
	visited := make(map[edge]bool, len(nodes))
	var out []geom.Polyline

	walk := func(start edge) []edge {
		path := []edge{start}
		visited[start] = true
		cur := start
		for {
			next, ok := edge{}, false
			for _, n := range a[cur] {
				if !visited[n] {
					if !ok || n.less(next) {
						next, ok = n, true
					}
				}
			}
			if !ok {
				return path
			}
			visited[next] = true
			path = append(path, next)
			cur = next
		}
	}

	for _, e := range nodes {
		if visited[e] || len(a[e]) != 1 {
			continue
		}
		// nodes are sorted, so e is the smaller end of its chain
		path := walk(e)
		if pl := toPolyline(path, pos, false); pl != nil {
			out = append(out, pl)
		}
	}
	for _, e := range nodes {
		if visited[e] {
			continue
		}
		path := walk(e)
		closed := len(path) > 2 && contains(a[path[len(path)-1]], e)
		if pl := toPolyline(path, pos, closed); pl != nil {
			out = append(out, pl)
		}
	}
	return out
}

func contains(list []edge, e edge) bool {
	for _, n := range list {
		if n == e {
			return true
		}
	}
	return false
}

// toPolyline resolves positions and drops consecutive duplicates, which appear
// when a lattice value equals the threshold exactly.
func toPolyline(path []edge, pos func(edge) geom.Point, closed bool) geom.Polyline {
	pl := make(geom.Polyline, 0, len(path)+1)
	for _, e := range path {
		p := pos(e)
		if len(pl) > 0 && pl[len(pl)-1] == p {
			continue
		}
		pl = append(pl, p)
	}
	if closed {
		for len(pl) > 1 && pl[len(pl)-1] == pl[0] {
			pl = pl[:len(pl)-1]
		}
		if len(pl) < 3 {
			return nil
		}
		return append(pl, pl[0])
	}
	if len(pl) < 2 {
		return nil
	}
	return pl
}
