// Command sweep evaluates the geometry pipeline over a grid of thresholds and
// simplification tolerances: how many segments each setting produces, whether
// any polyline crosses itself, and how many test balls leak off the table.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"mad-pool/internal/config"
)

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func main() {
	flags := config.Bind(flag.CommandLine)
	thresholds := flag.String("thresholds", "0.25,0.5,0.75,0.99", "comma separated thresholds")
	tolerances := flag.String("tolerances", "0,0.35,0.7,1.5,3", "comma separated simplification tolerances")
	frames := flag.Int("frames", 300, "frames per leak test")
	balls := flag.Int("balls", 16, "balls per leak test")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 10, "results to print")
	flag.Parse()

	base, err := flags.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ths, err := parseFloats(*thresholds)
	if err != nil {
		log.Fatalf("thresholds: %v", err)
	}
	tols, err := parseFloats(*tolerances)
	if err != nil {
		log.Fatalf("tolerances: %v", err)
	}
	img, err := base.TableImage()
	if err != nil {
		log.Fatalf("table: %v", err)
	}

	var sets []setting
	for _, th := range ths {
		for _, tol := range tols {
			sets = append(sets, setting{threshold: th, tolerance: tol})
		}
	}
	fmt.Printf("Sweeping %d settings (%d workers, %d balls, %d frames)\n", len(sets), *workers, *balls, *frames)

	jobs := make(chan setting)
	results := make(chan result)
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- evaluate(base, img, s, *balls, *frames)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for _, s := range sets {
			jobs <- s
		}
		close(jobs)
	}()

	start := time.Now()
	var all []result
	for res := range results {
		if res.err != nil {
			fmt.Printf("%s: %v\n", res.setting, res.err)
			continue
		}
		all = append(all, res)
	}
	rank(all)

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		fmt.Printf("%2d) %s\n", i+1, all[i])
	}
}

// rank orders results: fewest crossing polylines, then fewest leaks, then
// fewest segments.
func rank(all []result) {
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.crossing != b.crossing {
			return a.crossing < b.crossing
		}
		if a.leaked != b.leaked {
			return a.leaked < b.leaked
		}
		return a.segments < b.segments
	})
}
