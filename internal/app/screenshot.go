// Package app connects the simulation to a window: input polling, drawing and
// the screenshot key.
package app

import (
	"fmt"
	"path/filepath"

	"mad-pool/internal/render"
	"mad-pool/internal/sim"
)

// ScreenshotName is the file name used for a frame's screenshot.
func ScreenshotName(frame uint64) string {
	return fmt.Sprintf("pool_%06d.png", frame)
}

// SaveScreenshot rasterizes s at w*h into dir and returns the file path.
func SaveScreenshot(dir string, s sim.Snapshot, w, h int, opt render.Options) (string, error) {
	path := filepath.Join(dir, ScreenshotName(s.Frame))
	if err := render.WritePNG(path, render.Rasterize(s, w, h, opt)); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// wantsScreenshot reports whether the frame left a P press unconsumed.
func wantsScreenshot(r sim.FrameReport) bool {
	for _, k := range r.Keys {
		if k == sim.KeyP {
			return true
		}
	}
	return false
}
