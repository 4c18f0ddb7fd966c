// Command tablegen writes a procedural table outline as a PNG that the other
// commands accept through -image.
package main

import (
	"flag"
	"fmt"
	"log"

	"mad-pool/internal/config"
	"mad-pool/internal/core"
	"mad-pool/internal/render"
)

func main() {
	flags := config.Bind(flag.CommandLine)
	out := flag.String("out", "table.png", "output PNG path")
	mask := flag.String("mask", "", "also write the boundary rebuilt from the extracted segments")
	list := flag.Bool("list", false, "print the registered outlines and exit")
	flag.Parse()

	if *list {
		for _, name := range core.OutlineNames() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	img, err := cfg.TableImage()
	if err != nil {
		log.Fatalf("outline: %v", err)
	}
	if err := render.WritePNG(*out, img); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%dx%d)", *out, img.Bounds().Dx(), img.Bounds().Dy())

	if *mask == "" {
		return
	}
	_, geo, err := cfg.Table()
	if err != nil {
		log.Fatalf("table: %v", err)
	}
	b := img.Bounds()
	m := render.BoundaryMask(render.SegmentLines(geo.Segments), geo.Bounds, b.Dx(), b.Dy())
	if err := render.WritePNG(*mask, m); err != nil {
		log.Fatal(err)
	}
	length := 0.0
	for i, pl := range geo.Lines {
		length += pl.Length()
		r := pl.Bounds()
		log.Printf("cushion %d: %d vertices, closed=%t, spans (%.1f,%.1f)-(%.1f,%.1f)",
			i, len(pl), pl.Closed(), r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
	}
	log.Printf("wrote %s from %d segments, total cushion length %.1f", *mask, len(geo.Segments), length)
}
