// Command netris-soak plays many headless games with a random bot and checks
// the board invariants after every tick.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/plus3/netris/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := config.BindFlags(flag.CommandLine)
	games := flag.Int("games", 8, "number of games to play")
	ticks := flag.Int("ticks", 36000, "frames per game")
	workers := flag.Int("workers", runtime.NumCPU(), "games played in parallel")
	quiet := flag.Bool("quiet", false, "hide the progress bar")
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "netris-soak:", err)
		return 2
	}
	logger, closer, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "netris-soak:", err)
		return 2
	}
	defer closer.Close()

	if *games < 1 || *ticks < 1 || *workers < 1 {
		fmt.Fprintln(os.Stderr, "netris-soak: -games, -ticks and -workers must be positive")
		return 2
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	logger.Info("soak started", "games", *games, "ticks", *ticks, "workers", *workers, "seed", seed)

	bar := pb.StartNew(*games * *ticks)
	if *quiet {
		bar.SetWriter(io.Discard)
	}

	jobs := make(chan int)
	results := make([]gameResult, *games)
	wg := new(sync.WaitGroup)
	for range min(*workers, *games) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = soak(seed+uint64(i), *ticks, cfg.Tuning(), bar)
				if err := results[i].Violation; err != nil {
					logger.Error("invariant violated", "err", err)
				}
			}
		}()
	}
	for i := range *games {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(bar.StartTime())
	bar.Finish()

	report := newReport(results, min(*workers, *games), seed, *ticks, elapsed)
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("report failed", "err", err)
		return 1
	}
	if len(report.Violations) > 0 {
		return 1
	}
	return 0
}
