//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"mad-pool/internal/app"
	"mad-pool/internal/config"
	"mad-pool/internal/render"
	"mad-pool/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := config.Bind(flag.CommandLine)
	shots := flag.String("shots", ".", "directory for P screenshots")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	img, geo, err := cfg.Table()
	if err != nil {
		log.Fatalf("table: %v", err)
	}
	bg, err := cfg.BackgroundImage()
	if err != nil {
		log.Fatalf("background: %v", err)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	logger := log.New(os.Stderr, "pool: ", log.LstdFlags)
	s, err := sim.New(cfg.SimConfig(h), geo, logger)
	if err != nil {
		log.Fatalf("simulation: %v", err)
	}

	opt := render.DefaultOptions()
	opt.Background = bg
	game := app.New(s, w, h, opt, *shots, logger, cfg)

	ebiten.SetWindowTitle("mad-pool")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
