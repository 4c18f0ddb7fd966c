package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"mad-pool/internal/geom"
	"mad-pool/internal/table"
)

func newTestSim(t *testing.T, cfg Config, geo table.Geometry) *Simulation {
	t.Helper()
	s, err := New(cfg, geo, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func assertConsistent(t *testing.T, s *Simulation, want int) {
	t.Helper()
	bodies, shapes := s.WorldCounts()
	if s.LiveBalls() != want || bodies != want || shapes != want {
		t.Fatalf("registry=%d bodies=%d shapes=%d, expected %d each", s.LiveBalls(), bodies, shapes, want)
	}
}

func floorGeometry() table.Geometry {
	lines := []geom.Polyline{{geom.Pt(-1000, 0), geom.Pt(1000, 0)}}
	segs, _ := table.Build(lines, table.DefaultMaterial())
	return table.Geometry{Bounds: geom.R(-1000, 0, 1000, 600), Lines: lines, Segments: segs}
}

func TestSpawnAndFallRestoresRegistries(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), table.Geometry{})
	assertConsistent(t, s, 0)

	const n = 7
	for i := 0; i < n; i++ {
		if _, err := s.SpawnBall(float64(i*40), 300); err != nil {
			t.Fatalf("SpawnBall: %v", err)
		}
	}
	assertConsistent(t, s, n)

	removed := 0
	for frame := 0; frame < 600 && s.LiveBalls() > 0; frame++ {
		rep, err := s.Frame(nil)
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		removed += len(rep.Despawned)
		bodies, shapes := s.WorldCounts()
		if bodies != s.LiveBalls() || shapes != s.LiveBalls() {
			t.Fatalf("frame %d: registries diverged", frame)
		}
	}
	if removed != n {
		t.Fatalf("expected %d despawns, got %d", n, removed)
	}
	assertConsistent(t, s, 0)
}

func TestDespawnOnCrossingFrame(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), table.Geometry{})
	id, err := s.SpawnBall(100, 500)
	if err != nil {
		t.Fatalf("SpawnBall: %v", err)
	}

	for frame := 0; frame < 1000; frame++ {
		rep, err := s.Frame(nil)
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		if b, ok := s.Ball(id); ok {
			if b.Position.Y < -100 {
				t.Fatalf("frame %d: ball at y=%f still live past the threshold", frame, b.Position.Y)
			}
			continue
		}
		if len(rep.Despawned) != 1 || rep.Despawned[0].ID != id {
			t.Fatalf("frame %d: ball vanished without a despawn report", frame)
		}
		if y := rep.Despawned[0].Position.Y; y >= -100 {
			t.Fatalf("frame %d: ball despawned early at y=%f", frame, y)
		}
		assertConsistent(t, s, 0)
		return
	}
	t.Fatal("ball never crossed the despawn threshold")
}

func TestIdleThousandFrames(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), table.Geometry{})
	if err := s.Run(context.Background(), NewScript(1000), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.State() != Stopped {
		t.Fatal("script quit should stop the loop")
	}
	if s.FrameCount() != 1000 {
		t.Fatalf("expected 1000 frames, got %d", s.FrameCount())
	}
	assertConsistent(t, s, 0)
}

func TestPointerSpawnConvertsScreenCoordinates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScreenHeight = 600
	s := newTestSim(t, cfg, table.Geometry{})

	rep, err := s.Frame([]Event{
		PointerDown(ButtonPrimary, 100, 100),
		PointerDown(Button(3), 50, 50),
		PointerDown(ButtonPrimary, math.NaN(), 10),
		{Kind: EventKind(42)},
		KeyDown(KeyP),
	})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(rep.Spawned) != 1 {
		t.Fatalf("expected one spawn, got %d", len(rep.Spawned))
	}
	if p := rep.Spawned[0].Position; p != geom.Pt(100, 500) {
		t.Fatalf("spawned at %v, expected (100,500)", p)
	}
	if rep.Ignored != 2 {
		t.Fatalf("expected 2 malformed events ignored, got %d", rep.Ignored)
	}
	if len(rep.Keys) != 1 || rep.Keys[0] != KeyP {
		t.Fatalf("unhandled keys %v", rep.Keys)
	}
	assertConsistent(t, s, 1)
}

func TestEscapeStops(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), table.Geometry{})
	rep, err := s.Frame([]Event{KeyDown(KeyEscape), PointerDown(ButtonPrimary, 10, 10)})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if s.State() != Stopped {
		t.Fatal("escape should stop the simulation")
	}
	if len(rep.Spawned) != 0 {
		t.Fatal("no spawns after the stop event")
	}
	if _, err := s.Frame(nil); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, err := s.SpawnBall(0, 0); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped from SpawnBall, got %v", err)
	}
	if s.FrameCount() != 1 {
		t.Fatalf("the stopping frame should complete, count=%d", s.FrameCount())
	}
}

func TestQuitEvent(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), table.Geometry{})
	if _, err := s.Frame([]Event{Quit()}); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if s.State() != Stopped {
		t.Fatal("quit should stop the simulation")
	}
}

func TestLimitReject(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBalls = 2
	cfg.Limit = LimitReject
	s := newTestSim(t, cfg, table.Geometry{})
	for i := 0; i < 2; i++ {
		if _, err := s.SpawnBall(0, 100); err != nil {
			t.Fatalf("SpawnBall %d: %v", i, err)
		}
	}
	if _, err := s.SpawnBall(0, 100); !errors.Is(err, ErrBallLimit) {
		t.Fatalf("expected ErrBallLimit, got %v", err)
	}
	assertConsistent(t, s, 2)
}

func TestLimitEvictOldest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBalls = 2
	cfg.Limit = LimitEvictOldest
	s := newTestSim(t, cfg, table.Geometry{})
	first, _ := s.SpawnBall(0, 100)
	s.SpawnBall(50, 100)
	third, err := s.SpawnBall(100, 100)
	if err != nil {
		t.Fatalf("SpawnBall: %v", err)
	}
	if _, ok := s.Ball(first); ok {
		t.Fatal("oldest ball should have been evicted")
	}
	if _, ok := s.Ball(third); !ok {
		t.Fatal("new ball missing")
	}
	assertConsistent(t, s, 2)

	rep, _ := s.Frame(nil)
	if len(rep.Evicted) != 1 || rep.Evicted[0].ID != first {
		t.Fatalf("expected eviction of %d reported, got %+v", first, rep.Evicted)
	}
	if rep, _ = s.Frame(nil); len(rep.Evicted) != 0 {
		t.Fatal("evictions must be reported once")
	}
}

func TestUnboundedIgnoresMaxBalls(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBalls = 1
	s := newTestSim(t, cfg, table.Geometry{})
	for i := 0; i < 5; i++ {
		if _, err := s.SpawnBall(float64(i), 0); err != nil {
			t.Fatalf("SpawnBall: %v", err)
		}
	}
	assertConsistent(t, s, 5)
}

func TestFloorHoldsBall(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), floorGeometry())
	id, _ := s.SpawnBall(0, 100)
	for i := 0; i < 300; i++ {
		if _, err := s.Frame(nil); err != nil {
			t.Fatalf("Frame: %v", err)
		}
	}
	b, ok := s.Ball(id)
	if !ok {
		t.Fatal("ball fell through the static floor")
	}
	if b.Position.Y < 0 {
		t.Fatalf("ball below the floor at y=%f", b.Position.Y)
	}
}

func TestStepsPerFrame(t *testing.T) {
	one := newTestSim(t, DefaultConfig(), table.Geometry{})
	cfg := DefaultConfig()
	cfg.StepsPerFrame = 2
	cfg.Dt = one.Config().Dt / 2
	two := newTestSim(t, cfg, table.Geometry{})

	a, _ := one.SpawnBall(0, 400)
	b, _ := two.SpawnBall(0, 400)
	one.Frame(nil)
	two.Frame(nil)
	ba, _ := one.Ball(a)
	bb, _ := two.Ball(b)
	if math.Abs(ba.Velocity.Y-bb.Velocity.Y) > 1e-9 {
		t.Fatalf("same simulated time should give equal velocity: %f vs %f", ba.Velocity.Y, bb.Velocity.Y)
	}
	if bb.Position.Y >= 400 {
		t.Fatal("ball should have fallen")
	}
}

type failingRenderer struct{ after int }

func (f *failingRenderer) Render(Snapshot) error {
	f.after--
	if f.after < 0 {
		return errors.New("disk full")
	}
	return nil
}

func TestRunStopsOnRenderError(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), table.Geometry{})
	script := NewScript(0).At(0, PointerDown(ButtonPrimary, 10, 10)).At(2, PointerDown(ButtonPrimary, 20, 10))
	err := s.Run(context.Background(), script, &failingRenderer{after: 2})
	if err == nil {
		t.Fatal("expected render error")
	}
	if s.State() != Stopped {
		t.Fatal("render failure should stop the loop")
	}
	if s.FrameCount() != 3 {
		t.Fatalf("failing frame should have completed, count=%d", s.FrameCount())
	}
	assertConsistent(t, s, 2)
}

func TestRunHonoursCancellation(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), table.Geometry{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, nil, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.State() != Stopped || s.FrameCount() != 0 {
		t.Fatal("cancelled run should stop before the first frame")
	}
}

func TestSnapshotCopiesBalls(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), floorGeometry())
	s.SpawnBall(5, 50)
	snap := s.Snapshot()
	if len(snap.Balls) != 1 || len(snap.Segments) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	snap.Balls[0].Position = geom.Pt(-1, -1)
	if s.Balls()[0].Position == geom.Pt(-1, -1) {
		t.Fatal("snapshot balls must be copies")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0
	if _, err := New(cfg, table.Geometry{}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	bad := table.Geometry{Segments: []table.StaticSegment{{A: geom.Pt(0, 0), B: geom.Pt(math.Inf(1), 0)}}}
	if _, err := New(DefaultConfig(), bad, nil); !errors.Is(err, table.ErrInvalidSegment) {
		t.Fatalf("expected ErrInvalidSegment, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	mutations := map[string]func(*Config){
		"steps":      func(c *Config) { c.StepsPerFrame = 0 },
		"iterations": func(c *Config) { c.Iterations = 0 },
		"gravity":    func(c *Config) { c.Gravity = geom.Pt(math.NaN(), 0) },
		"radius":     func(c *Config) { c.Ball.Radius = 0 },
		"mass":       func(c *Config) { c.Ball.Mass = -1 },
		"max":        func(c *Config) { c.MaxBalls = -3 },
		"friction":   func(c *Config) { c.Ball.Friction = math.NaN() },
		"elasticity": func(c *Config) { c.Ball.Elasticity = math.Inf(1) },
		"policy":     func(c *Config) { c.Limit = "lifo" },
	}
	for name, mutate := range mutations {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestParametersListLiveBalls(t *testing.T) {
	s := newTestSim(t, DefaultConfig(), table.Geometry{})
	s.SpawnBall(0, 0)
	found := false
	for _, g := range s.Parameters().Groups {
		for _, p := range g.Params {
			if p.Key == "live" && p.Value == "1" {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("parameters should report one live ball")
	}
}
