package sim

import (
	"github.com/jakecoffman/cp"

	"mad-pool/internal/geom"
)

// BallID identifies a live ball for its whole lifetime. IDs are never reused.
type BallID uint64

// Ball is a read-only copy of a ball's state.
type Ball struct {
	ID       BallID
	Position geom.Point
	Velocity geom.Point
	Radius   float64
}

type entity struct {
	id     BallID
	body   *cp.Body
	shape  *cp.Shape
	radius float64
}

func (e *entity) view() Ball {
	p, v := e.body.Position(), e.body.Velocity()
	return Ball{ID: e.id, Position: geom.Pt(p.X, p.Y), Velocity: geom.Pt(v.X, v.Y), Radius: e.radius}
}

// registry is the single owner of ball membership. add and remove touch the
// physics space and the tracked set together, so neither can hold a ball the
// other lacks.
type registry struct {
	space  *cp.Space
	byID   map[BallID]*entity
	order  []*entity // spawn order, oldest first
	nextID BallID
}

func newRegistry(space *cp.Space) *registry {
	return &registry{space: space, byID: make(map[BallID]*entity), nextID: 1}
}

func (r *registry) add(pos geom.Point, spec BallSpec) *entity {
	moment := cp.MomentForCircle(spec.Mass, 0, spec.Radius, cp.Vector{})
	body := r.space.AddBody(cp.NewBody(spec.Mass, moment))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := r.space.AddShape(cp.NewCircle(body, spec.Radius, cp.Vector{}))
	shape.SetFriction(spec.Friction)
	shape.SetElasticity(spec.Elasticity)

	e := &entity{id: r.nextID, body: body, shape: shape, radius: spec.Radius}
	r.nextID++
	r.byID[e.id] = e
	r.order = append(r.order, e)
	return e
}

// removeWhere drops every entity matching pred and returns their final state.
func (r *registry) removeWhere(pred func(*entity) bool) []Ball {
	var gone []Ball
	kept := r.order[:0]
	for _, e := range r.order {
		if !pred(e) {
			kept = append(kept, e)
			continue
		}
		gone = append(gone, e.view())
		r.space.RemoveShape(e.shape)
		r.space.RemoveBody(e.body)
		delete(r.byID, e.id)
	}
	for i := len(kept); i < len(r.order); i++ {
		r.order[i] = nil
	}
	r.order = kept
	return gone
}

func (r *registry) removeOldest() (Ball, bool) {
	if len(r.order) == 0 {
		return Ball{}, false
	}
	oldest := r.order[0].id
	gone := r.removeWhere(func(e *entity) bool { return e.id == oldest })
	return gone[0], true
}

func (r *registry) len() int { return len(r.order) }

func (r *registry) views() []Ball {
	out := make([]Ball, len(r.order))
	for i, e := range r.order {
		out[i] = e.view()
	}
	return out
}
