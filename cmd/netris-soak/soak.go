package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/game"
)

// frame is the simulated frame length handed to every tick.
const frame = time.Second / 60

// progressStep is how many ticks pass between progress bar updates.
const progressStep = 100

type gameResult struct {
	Seed      uint64
	Ticks     int
	Rounds    int
	Lines     int
	MaxLevel  int
	Scores    []float64
	TickTimes []float64
	Violation error
}

// soak plays one game for ticks frames, checking the board after every tick.
func soak(seed uint64, ticks int, tuning board.Tuning, bar *pb.ProgressBar) gameResult {
	rng := rand.New(rand.NewPCG(seed, seed>>1))
	player := &bot{rng: rand.New(rand.NewPCG(seed, 1))}
	s := game.NewSession(game.Options{Tuning: tuning, Rand: rng, Input: player})
	b := s.Board()
	player.board = b

	res := gameResult{Seed: seed, TickTimes: make([]float64, 0, ticks)}
	prev := b.State()
	for res.Ticks < ticks {
		start := time.Now()
		s.Tick(frame)
		res.TickTimes = append(res.TickTimes, float64(time.Since(start).Microseconds()))
		res.Ticks++
		if res.Ticks%progressStep == 0 {
			bar.Add(progressStep)
		}

		if err := b.CheckInvariants(); err != nil {
			res.Violation = fmt.Errorf("seed %d tick %d: %w", seed, res.Ticks, err)
			break
		}
		res.MaxLevel = max(res.MaxLevel, b.Level())
		state := b.State()
		if state == board.Trapped && prev != board.Trapped {
			res.Rounds++
			res.Lines += b.Lines()
			res.Scores = append(res.Scores, float64(b.Score()))
		}
		prev = state
	}
	bar.Add(ticks - res.Ticks/progressStep*progressStep)
	return res
}
