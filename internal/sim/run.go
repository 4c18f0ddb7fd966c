package sim

import (
	"context"
	"fmt"
)

// Renderer consumes one snapshot per frame.
type Renderer interface {
	Render(Snapshot) error
}

// Run loops Frame until the simulation stops or ctx is cancelled. ctx is only
// checked between frames. A nil source means no input; a nil renderer skips
// drawing. A render error stops the simulation after its frame has completed.
func (s *Simulation) Run(ctx context.Context, in InputSource, out Renderer) error {
	for s.state == Running {
		if err := ctx.Err(); err != nil {
			s.Stop()
			return err
		}
		var events []Event
		if in != nil {
			events = in.Poll()
		}
		if _, err := s.Frame(events); err != nil {
			return err
		}
		if out == nil {
			continue
		}
		if err := out.Render(s.Snapshot()); err != nil {
			s.Stop()
			return fmt.Errorf("render frame %d: %w", s.frame-1, err)
		}
	}
	return nil
}
