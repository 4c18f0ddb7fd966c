package main

import (
	"context"
	"fmt"
	"image"

	"mad-pool/internal/config"
	"mad-pool/internal/core"
	"mad-pool/internal/sim"
	"mad-pool/internal/table"
)

type setting struct {
	threshold float64
	tolerance float64
}

func (s setting) String() string {
	return fmt.Sprintf("threshold=%.3g tolerance=%.3g", s.threshold, s.tolerance)
}

type result struct {
	setting
	lines    int
	segments int
	crossing int
	leaked   int
	err      error
}

func (r result) String() string {
	return fmt.Sprintf("lines=%d segments=%d crossing=%d leaked=%d %s",
		r.lines, r.segments, r.crossing, r.leaked, r.setting)
}

// evaluate extracts the table with s applied over base and drops balls into
// it. Balls that despawn within frames count as leaked. The img is only read,
// so one decoded outline is shared by every worker.
func evaluate(base config.Config, img image.Image, s setting, balls, frames int) result {
	res := result{setting: s}
	cfg := base
	cfg.Threshold, cfg.Tolerance = s.threshold, s.tolerance
	if err := cfg.Validate(); err != nil {
		res.err = err
		return res
	}
	geo, err := table.Extract(cfg.Field(img), cfg.TableOptions())
	if err != nil {
		res.err = err
		return res
	}
	res.lines, res.segments = len(geo.Lines), len(geo.Segments)
	for _, pl := range geo.Lines {
		if pl.SelfIntersects() {
			res.crossing++
		}
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	world, err := sim.New(cfg.SimConfig(h), geo, nil)
	if err != nil {
		res.err = err
		return res
	}
	rng := core.NewRNG(cfg.Seed)
	script := sim.NewScript(uint64(frames))
	for i := 0; i < balls; i++ {
		x := rng.Range(0.3*float64(w), 0.7*float64(w))
		y := rng.Range(0.3*float64(h), 0.6*float64(h))
		script.At(uint64(i), sim.PointerDown(sim.ButtonPrimary, x, y))
	}
	var spawned int
	seen := make(map[sim.BallID]bool)
	counter := rendererFunc(func(snap sim.Snapshot) error {
		for _, b := range snap.Balls {
			if !seen[b.ID] {
				seen[b.ID] = true
				spawned++
			}
		}
		return nil
	})
	if err := world.Run(context.Background(), script, counter); err != nil {
		res.err = err
		return res
	}
	res.leaked = spawned - world.LiveBalls()
	return res
}

type rendererFunc func(sim.Snapshot) error

func (f rendererFunc) Render(s sim.Snapshot) error { return f(s) }
