package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"mad-pool/internal/sim"
)

// FrameDumper is a sim.Renderer that writes every Every-th frame as a PNG.
type FrameDumper struct {
	Dir     string
	Every   uint64
	Width   int
	Height  int
	Options Options

	written int
}

// NewFrameDumper creates dir and returns a dumper for w*h frames.
func NewFrameDumper(dir string, every uint64, w, h int, opt Options) (*FrameDumper, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	if every == 0 {
		every = 1
	}
	return &FrameDumper{Dir: dir, Every: every, Width: w, Height: h, Options: opt}, nil
}

// Render implements sim.Renderer.
func (d *FrameDumper) Render(s sim.Snapshot) error {
	if s.Frame%d.Every != 0 {
		return nil
	}
	path := filepath.Join(d.Dir, fmt.Sprintf("frame_%06d.png", s.Frame))
	if err := WritePNG(path, Rasterize(s, d.Width, d.Height, d.Options)); err != nil {
		return err
	}
	d.written++
	return nil
}

// Written reports how many frames were saved.
func (d *FrameDumper) Written() int { return d.written }

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
