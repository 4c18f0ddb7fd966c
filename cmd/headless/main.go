// Command headless runs the table without a window: it drops balls from a
// seeded script, steps a fixed number of frames and logs what happened.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"mad-pool/internal/config"
	"mad-pool/internal/core"
	"mad-pool/internal/render"
	"mad-pool/internal/sim"
)

func main() {
	flags := config.Bind(flag.CommandLine)
	frames := flag.Uint64("frames", 600, "frames to run before quitting")
	drops := flag.Int("drops", 20, "balls to drop")
	dropEvery := flag.Uint64("drop-every", 15, "frames between drops")
	logEvery := flag.Uint64("log-every", 60, "frames between progress lines")
	dumpDir := flag.String("dump", "", "directory for PNG frame dumps (empty disables)")
	dumpEvery := flag.Uint64("dump-every", 10, "frames between PNG dumps")
	realtime := flag.Bool("realtime", false, "pace frames at the configured tps")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	img, geo, err := cfg.Table()
	if err != nil {
		log.Fatalf("table: %v", err)
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	logger := log.New(os.Stderr, "sim: ", log.LstdFlags)
	s, err := sim.New(cfg.SimConfig(h), geo, logger)
	if err != nil {
		log.Fatalf("simulation: %v", err)
	}

	script := dropScript(core.NewRNG(cfg.Seed), w, h, *drops, *dropEvery, *frames)
	prog := newProgress(s, *logEvery, log.Default())
	if *realtime {
		prog.pacer = core.NewFixedStep(cfg.TPS)
		log.Printf("pacing frames %s apart", prog.pacer.Step())
	}
	renderers := chain{prog}
	if *dumpDir != "" {
		opt := render.DefaultOptions()
		if opt.Background, err = cfg.BackgroundImage(); err != nil {
			log.Fatalf("background: %v", err)
		}
		dumper, err := render.NewFrameDumper(*dumpDir, *dumpEvery, w, h, opt)
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		renderers = append(renderers, dumper)
		defer func() { log.Printf("wrote %d frames to %s", dumper.Written(), *dumpDir) }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("table %dx%d: %d polylines, %d segments; dropping %d balls over %d frames",
		w, h, len(geo.Lines), len(geo.Segments), *drops, *frames)
	err = s.Run(ctx, script, renderers)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("run: %v", err)
	}
	prog.summary()
}
