// Package sim drives the billiard table: it owns the physics space, the live
// balls and the Running/Stopped frame loop.
package sim

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"

	"mad-pool/internal/geom"
	"mad-pool/internal/table"
)

var (
	// ErrStopped is returned by Frame and SpawnBall once the simulation stopped.
	ErrStopped = errors.New("simulation stopped")
	// ErrBallLimit is returned by SpawnBall under LimitReject when the table is full.
	ErrBallLimit = errors.New("ball limit reached")
)

// State is the loop state. Stopped is terminal.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

// FrameReport describes what one Frame changed.
type FrameReport struct {
	Frame     uint64
	Spawned   []Ball
	Despawned []Ball // fell below DespawnY this frame, with their final state
	Evicted   []Ball // removed to respect MaxBalls under LimitEvictOldest
	Keys      []Key  // key presses the simulation did not consume
	Ignored   int    // malformed events dropped
}

// Simulation is single-threaded: every method must be called from the goroutine
// that runs the frame loop.
type Simulation struct {
	cfg      Config
	space    *cp.Space
	geometry table.Geometry
	statics  []*cp.Shape
	balls    *registry
	state    State
	frame    uint64
	evicted  []Ball
	logger   *log.Logger
}

// New builds the physics world and attaches the static geometry once. A nil
// logger disables logging.
func New(cfg Config, geo table.Geometry, logger *log.Logger) (*Simulation, error) {
	if cfg.Limit == "" {
		cfg.Limit = LimitUnbounded
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, s := range geo.Segments {
		if !s.A.Finite() || !s.B.Finite() {
			return nil, fmt.Errorf("segment %d: %w", i, table.ErrInvalidSegment)
		}
	}

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: cfg.Gravity.X, Y: cfg.Gravity.Y})
	space.Iterations = uint(cfg.Iterations)

	s := &Simulation{
		cfg:      cfg,
		space:    space,
		geometry: geo,
		balls:    newRegistry(space),
		logger:   logger,
	}
	s.statics = table.AddToSpace(space, geo.Segments)
	s.logf("table ready: %d polylines, %d segments", len(geo.Lines), len(geo.Segments))
	return s, nil
}

func (s *Simulation) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// State reports whether the loop is still running.
func (s *Simulation) State() State { return s.state }

// FrameCount returns the number of completed frames.
func (s *Simulation) FrameCount() uint64 { return s.frame }

// Stop moves the simulation to Stopped. It is idempotent.
func (s *Simulation) Stop() {
	if s.state != Stopped {
		s.state = Stopped
		s.logf("stopped after %d frames with %d balls live", s.frame, s.balls.len())
	}
}

// ScreenToWorld converts a screen position (y down) to world coordinates.
func (s *Simulation) ScreenToWorld(x, y float64) geom.Point {
	return geom.Pt(x, s.cfg.ScreenHeight-y)
}

// SpawnBall adds one ball at world position (x, y) to the space and the
// registry together.
func (s *Simulation) SpawnBall(x, y float64) (BallID, error) {
	if s.state == Stopped {
		return 0, ErrStopped
	}
	p := geom.Pt(x, y)
	if !p.Finite() {
		return 0, fmt.Errorf("spawn at %v: non-finite position", p)
	}
	if s.cfg.MaxBalls > 0 && s.balls.len() >= s.cfg.MaxBalls {
		switch s.cfg.Limit {
		case LimitReject:
			s.logf("spawn at (%.1f, %.1f) rejected: %d balls live", x, y, s.balls.len())
			return 0, ErrBallLimit
		case LimitEvictOldest:
			if b, ok := s.balls.removeOldest(); ok {
				s.evicted = append(s.evicted, b)
			}
		}
	}
	return s.balls.add(p, s.cfg.Ball).id, nil
}

// Frame advances exactly one frame: physics steps, the full input batch, then
// the despawn pass.
func (s *Simulation) Frame(events []Event) (FrameReport, error) {
	if s.state == Stopped {
		return FrameReport{}, ErrStopped
	}

	for i := 0; i < s.cfg.StepsPerFrame; i++ {
		s.space.Step(s.cfg.Dt)
	}

	rep := FrameReport{Frame: s.frame}
	for _, ev := range events {
		s.handle(ev, &rep)
	}

	rep.Despawned = s.balls.removeWhere(func(e *entity) bool {
		return e.body.Position().Y < s.cfg.DespawnY
	})
	rep.Evicted, s.evicted = s.evicted, nil
	s.frame++
	return rep, nil
}

func (s *Simulation) handle(ev Event, rep *FrameReport) {
	if !ev.valid() {
		rep.Ignored++
		s.logf("frame %d: ignoring malformed event %+v", s.frame, ev)
		return
	}
	switch ev.Kind {
	case EventQuit:
		s.Stop()
	case EventKeyDown:
		if ev.Key == KeyEscape {
			s.Stop()
			return
		}
		rep.Keys = append(rep.Keys, ev.Key)
	case EventPointerDown:
		if ev.Button != ButtonPrimary || s.state == Stopped {
			return
		}
		w := s.ScreenToWorld(ev.X, ev.Y)
		id, err := s.SpawnBall(w.X, w.Y)
		if err != nil {
			return
		}
		if e, ok := s.balls.byID[id]; ok {
			rep.Spawned = append(rep.Spawned, e.view())
		}
	}
}

// Balls returns a copy of every live ball in spawn order.
func (s *Simulation) Balls() []Ball { return s.balls.views() }

// Ball looks up a live ball.
func (s *Simulation) Ball(id BallID) (Ball, bool) {
	e, ok := s.balls.byID[id]
	if !ok {
		return Ball{}, false
	}
	return e.view(), true
}

// LiveBalls returns the number of tracked balls.
func (s *Simulation) LiveBalls() int { return s.balls.len() }

// WorldCounts counts the dynamic bodies and the non-static shapes held by the
// physics space.
func (s *Simulation) WorldCounts() (bodies, shapes int) {
	s.space.EachBody(func(b *cp.Body) {
		if b != s.space.StaticBody {
			bodies++
		}
	})
	s.space.EachShape(func(sh *cp.Shape) {
		if sh.Body() != s.space.StaticBody {
			shapes++
		}
	})
	return bodies, shapes
}

// MaxSpeed returns the highest live ball speed, 0 with no balls.
func (s *Simulation) MaxSpeed() float64 {
	best := 0.0
	for _, b := range s.balls.views() {
		best = math.Max(best, b.Velocity.Length())
	}
	return best
}
