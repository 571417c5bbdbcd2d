// Package beepaudio plays netris themes through the gopxl/beep speaker. It is
// the backend for frontends that do not run inside Ebiten.
package beepaudio

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/netris/audio"
)

// loop streams a rendered melody forever.
type loop struct {
	samples [][2]float64
	pos     int
}

func newLoop(mono []float64) *loop {
	l := &loop{samples: make([][2]float64, len(mono))}
	for i, v := range mono {
		l.samples[i] = [2]float64{v, v}
	}
	return l
}

func (l *loop) Stream(buf [][2]float64) (int, bool) {
	if len(l.samples) == 0 {
		clear(buf)
		return len(buf), true
	}
	for i := range buf {
		buf[i] = l.samples[l.pos]
		l.pos = (l.pos + 1) % len(l.samples)
	}
	return len(buf), true
}

func (l *loop) Err() error { return nil }

// deck streams the selected loop, or silence, and never drains so the
// speaker keeps it registered.
type deck struct {
	current *loop
}

func (d *deck) Stream(buf [][2]float64) (int, bool) {
	if d.current == nil {
		clear(buf)
		return len(buf), true
	}
	return d.current.Stream(buf)
}

func (d *deck) Err() error { return nil }

// Jukebox switches the speaker's single deck between theme loops.
type Jukebox struct {
	lock   func()
	unlock func()
	logger *slog.Logger
	ctrl   *beep.Ctrl
	deck   *deck
	loops  map[audio.Theme]*loop
}

var _ audio.Jukebox = (*Jukebox)(nil)

// New initializes the speaker, renders every built-in theme and starts the
// (silent) deck.
func New(synth audio.Synth, logger *slog.Logger) (*Jukebox, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sr := beep.SampleRate(synth.SampleRate)
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("beepaudio: speaker init: %w", err)
	}

	loops := make(map[audio.Theme]*loop)
	for _, t := range audio.Themes() {
		loops[t] = newLoop(synth.Render(audio.Builtin(t)))
		logger.Debug("theme rendered", "theme", t, "samples", len(loops[t].samples))
	}

	j := newJukebox(loops, speaker.Lock, speaker.Unlock, logger)
	speaker.Play(j.ctrl)
	return j, nil
}

func newJukebox(loops map[audio.Theme]*loop, lock, unlock func(), logger *slog.Logger) *Jukebox {
	d := &deck{}
	return &Jukebox{
		lock:   lock,
		unlock: unlock,
		logger: logger,
		ctrl:   &beep.Ctrl{Streamer: d, Paused: true},
		deck:   d,
		loops:  loops,
	}
}

func (j *Jukebox) Play(t audio.Theme) {
	l, ok := j.loops[t]
	if !ok {
		j.logger.Warn("unknown theme", "theme", t)
		return
	}
	j.lock()
	l.pos = 0
	j.deck.current = l
	j.ctrl.Paused = false
	j.unlock()
}

func (j *Jukebox) Pause() {
	j.lock()
	j.ctrl.Paused = true
	j.unlock()
}

func (j *Jukebox) Resume() {
	j.lock()
	j.ctrl.Paused = j.deck.current == nil
	j.unlock()
}

func (j *Jukebox) Stop() {
	j.lock()
	j.deck.current = nil
	j.ctrl.Paused = true
	j.unlock()
}

// Close silences the speaker. The speaker itself stays initialized for the
// life of the process.
func (j *Jukebox) Close() error {
	j.Stop()
	speaker.Clear()
	return nil
}
