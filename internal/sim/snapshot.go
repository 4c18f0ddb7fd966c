package sim

import (
	"fmt"
	"strconv"

	"mad-pool/internal/core"
	"mad-pool/internal/geom"
	"mad-pool/internal/table"
)

// Snapshot is what a renderer sees after a frame. Segments and Lines are
// shared with the simulation and must not be modified; Balls is a copy.
type Snapshot struct {
	Frame    uint64
	State    State
	Bounds   geom.Rect
	Lines    []geom.Polyline
	Segments []table.StaticSegment
	Balls    []Ball
}

// Snapshot captures the current state for rendering.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Frame:    s.frame,
		State:    s.state,
		Bounds:   s.geometry.Bounds,
		Lines:    s.geometry.Lines,
		Segments: s.geometry.Segments,
		Balls:    s.balls.views(),
	}
}

// Parameters describes the run for overlays.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	c := s.cfg
	maxBalls := "unbounded"
	if c.MaxBalls > 0 {
		maxBalls = strconv.Itoa(c.MaxBalls) + " (" + string(c.Limit) + ")"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Clock",
			Params: []core.Parameter{
				core.FloatParam("dt", "Timestep", c.Dt),
				core.IntParam("steps_per_frame", "Steps per frame", c.StepsPerFrame),
				core.StringParam("frame", "Frame", strconv.FormatUint(s.frame, 10)),
			},
		},
		{
			Name: "World",
			Params: []core.Parameter{
				core.StringParam("gravity", "Gravity", fmt.Sprintf("(%g, %g)", c.Gravity.X, c.Gravity.Y)),
				core.FloatParam("despawn_y", "Despawn below", c.DespawnY),
				core.IntParam("segments", "Cushion segments", len(s.geometry.Segments)),
			},
		},
		{
			Name: "Balls",
			Params: []core.Parameter{
				core.IntParam("live", "Live", s.balls.len()),
				core.StringParam("max_balls", "Limit", maxBalls),
				core.FloatParam("ball.radius", "Radius", c.Ball.Radius),
			},
		},
	}}
}
