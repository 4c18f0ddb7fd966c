package main

import (
	"log"

	"mad-pool/internal/core"
	"mad-pool/internal/sim"
)

// dropScript schedules drops pointer presses dropEvery frames apart inside the
// upper middle of a w*h screen, and quits after frames.
func dropScript(rng *core.RNG, w, h, drops int, dropEvery, frames uint64) *sim.Script {
	script := sim.NewScript(frames)
	if dropEvery == 0 {
		dropEvery = 1
	}
	for i := 0; i < drops; i++ {
		x := rng.Range(0.25*float64(w), 0.75*float64(w))
		y := rng.Range(0.25*float64(h), 0.5*float64(h))
		script.At(uint64(i)*dropEvery, sim.PointerDown(sim.ButtonPrimary, x, y))
	}
	return script
}

// chain fans one snapshot out to several renderers, stopping at the first error.
type chain []sim.Renderer

func (c chain) Render(s sim.Snapshot) error {
	for _, r := range c {
		if err := r.Render(s); err != nil {
			return err
		}
	}
	return nil
}

// progress counts balls entering and leaving the table and logs periodically.
type progress struct {
	sim    *sim.Simulation
	every  uint64
	logger *log.Logger
	pacer  *core.FixedStep

	live      map[sim.BallID]bool
	spawned   int
	despawned int
	peak      int
}

func newProgress(s *sim.Simulation, every uint64, logger *log.Logger) *progress {
	return &progress{sim: s, every: every, logger: logger, live: make(map[sim.BallID]bool)}
}

func (p *progress) Render(s sim.Snapshot) error {
	if p.pacer != nil {
		p.pacer.Wait()
	}
	now := make(map[sim.BallID]bool, len(s.Balls))
	for _, b := range s.Balls {
		now[b.ID] = true
		if !p.live[b.ID] {
			p.spawned++
		}
	}
	for id := range p.live {
		if !now[id] {
			p.despawned++
		}
	}
	p.live = now
	if len(now) > p.peak {
		p.peak = len(now)
	}
	if p.every > 0 && s.Frame%p.every == 0 {
		p.logger.Printf("frame %d: %d live, %d spawned, %d despawned, max speed %.1f",
			s.Frame, len(now), p.spawned, p.despawned, p.sim.MaxSpeed())
	}
	return nil
}

func (p *progress) summary() {
	bodies, shapes := p.sim.WorldCounts()
	p.logger.Printf("done after %d frames (%s): %d spawned, %d despawned, %d live (peak %d), world holds %d bodies / %d shapes",
		p.sim.FrameCount(), p.sim.State(), p.spawned, p.despawned, len(p.live), p.peak, bodies, shapes)
}
