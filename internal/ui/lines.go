// Package ui builds the text overlay shown over the table.
package ui

import (
	"fmt"

	"mad-pool/internal/core"
)

// Stats is the per-frame header of the overlay.
type Stats struct {
	Frame uint64
	Balls int
	TPS   float64
	FPS   float64
}

// Lines formats the header followed by every parameter group of providers.
func Lines(s Stats, providers ...core.ParameterProvider) []string {
	out := []string{
		fmt.Sprintf("frame %d  balls %d", s.Frame, s.Balls),
		fmt.Sprintf("tps %.1f  fps %.1f", s.TPS, s.FPS),
	}
	for _, p := range providers {
		if p == nil {
			continue
		}
		for _, g := range p.Parameters().Groups {
			out = append(out, "", "["+g.Name+"]")
			for _, param := range g.Params {
				out = append(out, fmt.Sprintf("%-16s %s", param.Label, param.Value))
			}
		}
	}
	return out
}
