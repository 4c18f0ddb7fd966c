package app

import (
	"os"
	"path/filepath"
	"testing"

	"mad-pool/internal/geom"
	"mad-pool/internal/render"
	"mad-pool/internal/sim"
)

func TestScreenshotName(t *testing.T) {
	if got := ScreenshotName(42); got != "pool_000042.png" {
		t.Fatalf("ScreenshotName=%s", got)
	}
}

func TestSaveScreenshot(t *testing.T) {
	dir := t.TempDir()
	snap := sim.Snapshot{Frame: 7, Bounds: geom.R(0, 0, 20, 10)}
	path, err := SaveScreenshot(dir, snap, 20, 10, render.DefaultOptions())
	if err != nil {
		t.Fatalf("SaveScreenshot: %v", err)
	}
	if path != filepath.Join(dir, "pool_000007.png") {
		t.Fatalf("unexpected path %s", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("screenshot not written: %v", err)
	}
}

func TestSaveScreenshotMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")
	if _, err := SaveScreenshot(dir, sim.Snapshot{}, 4, 4, render.DefaultOptions()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestWantsScreenshot(t *testing.T) {
	if !wantsScreenshot(sim.FrameReport{Keys: []sim.Key{sim.KeyP}}) {
		t.Fatal("P should request a screenshot")
	}
	if wantsScreenshot(sim.FrameReport{}) {
		t.Fatal("no keys, no screenshot")
	}
}
