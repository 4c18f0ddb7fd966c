package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"mad-pool/internal/field"
	"mad-pool/internal/geom"
	"mad-pool/internal/sim"
	"mad-pool/internal/table"
)

func square(x0, y0, x1, y1 float64) geom.Polyline {
	return geom.Polyline{geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1), geom.Pt(x0, y0)}
}

func countOn(m *image.Gray) int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestLineColorCycles(t *testing.T) {
	if LineColor(0).R != 0 || LineColor(1).R != 30 || LineColor(9).R != 14 {
		t.Fatalf("unexpected red cycle %v %v %v", LineColor(0), LineColor(1), LineColor(9))
	}
}

func TestBoundaryMaskFillsSquare(t *testing.T) {
	m := BoundaryMask([]geom.Polyline{square(10, 10, 30, 30)}, geom.R(0, 0, 40, 40), 40, 40)
	if got := countOn(m); got != 400 {
		t.Fatalf("expected 400 inside pixels, got %d", got)
	}
	if m.GrayAt(20, 20).Y != 0xff || m.GrayAt(5, 5).Y != 0 {
		t.Fatal("inside/outside pixels wrong")
	}
}

func TestBoundaryMaskEvenOdd(t *testing.T) {
	lines := []geom.Polyline{square(0, 0, 40, 40), square(10, 10, 30, 30)}
	m := BoundaryMask(lines, geom.R(0, 0, 40, 40), 40, 40)
	if m.GrayAt(20, 20).Y != 0 {
		t.Fatal("nested loop should cut a hole")
	}
	if m.GrayAt(5, 5).Y != 0xff {
		t.Fatal("ring should be filled")
	}
	if got := countOn(m); got != 1600-400 {
		t.Fatalf("expected 1200 ring pixels, got %d", got)
	}
}

func TestSegmentLinesRegroups(t *testing.T) {
	lines := []geom.Polyline{square(0, 0, 4, 4), {geom.Pt(10, 10), geom.Pt(12, 10), geom.Pt(12, 14)}}
	segs, err := table.Build(lines, table.DefaultMaterial())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := SegmentLines(segs)
	if len(got) != 2 || len(got[0]) != 5 || len(got[1]) != 3 {
		t.Fatalf("unexpected regrouping %v", got)
	}
	if !got[0].Closed() || got[1].Closed() {
		t.Fatal("closure not preserved")
	}
}

func TestRoundTripThroughMask(t *testing.T) {
	const n = 60
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := 15; y < 45; y++ {
		for x := 15; x < 45; x++ {
			img.SetGray(x, y, color.Gray{Y: 0xff})
		}
	}
	opt := table.DefaultOptions()
	opt.XSamples, opt.YSamples = 0, 0

	first, err := table.Extract(field.NewImage(img, field.ChannelLightness, false), opt)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	mask := BoundaryMask(SegmentLines(first.Segments), first.Bounds, n, n)
	second, err := table.Extract(field.NewImage(mask, field.ChannelLightness, false), opt)
	if err != nil {
		t.Fatalf("Extract mask: %v", err)
	}
	if len(first.Lines) != 1 || len(second.Lines) != 1 {
		t.Fatalf("expected one loop each, got %d and %d", len(first.Lines), len(second.Lines))
	}
	const tol = 1.5
	for _, p := range second.Lines[0] {
		if d := first.Lines[0].DistanceTo(p); d > tol {
			t.Fatalf("re-traced vertex %v is %.2f from the original boundary", p, d)
		}
	}
	for _, p := range first.Lines[0] {
		if d := second.Lines[0].DistanceTo(p); d > tol {
			t.Fatalf("original vertex %v is %.2f from the re-traced boundary", p, d)
		}
	}
}

func nearColor(a, b color.RGBA) bool {
	d := func(x, y uint8) bool {
		diff := int(x) - int(y)
		return diff >= -1 && diff <= 1
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func testSnapshot() sim.Snapshot {
	return sim.Snapshot{
		Bounds: geom.R(0, 0, 100, 100),
		Segments: []table.StaticSegment{
			{A: geom.Pt(10, 50), B: geom.Pt(90, 50), Material: table.DefaultMaterial(), Line: 1},
		},
		Balls: []sim.Ball{{ID: 1, Position: geom.Pt(50, 80), Radius: 5}},
	}
}

func TestRasterizeDrawsScene(t *testing.T) {
	opt := DefaultOptions()
	img := Rasterize(testSnapshot(), 100, 100, opt)
	if got := img.RGBAAt(50, 50); got != LineColor(1) {
		t.Fatalf("cushion pixel %v, want %v", got, LineColor(1))
	}
	if got := img.RGBAAt(50, 20); got != opt.Ball {
		t.Fatalf("ball pixel %v, want %v", got, opt.Ball)
	}
	if got := img.RGBAAt(5, 5); got != opt.Clear {
		t.Fatalf("cloth pixel %v, want %v", got, opt.Clear)
	}
}

func TestRasterizeScalesBackground(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{R: 200, A: 255}
	fillRGBA(bg, red)
	opt := DefaultOptions()
	opt.Background = bg
	img := Rasterize(sim.Snapshot{Bounds: geom.R(0, 0, 10, 10)}, 10, 10, opt)
	if got := img.RGBAAt(7, 3); !nearColor(got, red) {
		t.Fatalf("background pixel %v, want %v", got, red)
	}
}

func TestNearColorTolerance(t *testing.T) {
	if !nearColor(color.RGBA{R: 200, A: 255}, color.RGBA{R: 199, A: 255}) {
		t.Fatal("off-by-one channels should match")
	}
	if nearColor(color.RGBA{R: 0, A: 255}, color.RGBA{R: 255, A: 255}) {
		t.Fatal("0 and 255 must not match")
	}
}

func TestRasterizeEmptyFrame(t *testing.T) {
	img := Rasterize(testSnapshot(), 0, 0, DefaultOptions())
	if !img.Bounds().Empty() {
		t.Fatalf("expected empty image, got %v", img.Bounds())
	}
}

func TestFrameDumperWritesEveryNth(t *testing.T) {
	dir := t.TempDir()
	d, err := NewFrameDumper(filepath.Join(dir, "frames"), 2, 32, 24, DefaultOptions())
	if err != nil {
		t.Fatalf("NewFrameDumper: %v", err)
	}
	s := testSnapshot()
	for f := uint64(1); f <= 4; f++ {
		s.Frame = f
		if err := d.Render(s); err != nil {
			t.Fatalf("Render frame %d: %v", f, err)
		}
	}
	if d.Written() != 2 {
		t.Fatalf("expected 2 frames written, got %d", d.Written())
	}
	f, err := os.Open(filepath.Join(dir, "frames", "frame_000004.png"))
	if err != nil {
		t.Fatalf("open dump: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Fatalf("unexpected dump size %v", b)
	}
	if _, err := os.Stat(filepath.Join(dir, "frames", "frame_000003.png")); !os.IsNotExist(err) {
		t.Fatal("odd frame should not be written")
	}
}
