// Package ebitenaudio plays netris themes through Ebiten's audio context.
package ebitenaudio

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/netris/audio"
)

// player is the part of *eaudio.Player the jukebox drives.
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	SetPosition(offset time.Duration) error
	Close() error
}

// Jukebox keeps one infinite-loop player per theme.
type Jukebox struct {
	mu      sync.Mutex
	logger  *slog.Logger
	players map[audio.Theme]player
	current player
}

var _ audio.Jukebox = (*Jukebox)(nil)

// New renders every built-in theme with synth and prepares a looping player
// for each. The Ebiten audio context is created on first use.
func New(synth audio.Synth, logger *slog.Logger) (*Jukebox, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx := eaudio.CurrentContext()
	if ctx == nil {
		ctx = eaudio.NewContext(synth.SampleRate)
	} else if ctx.SampleRate() != synth.SampleRate {
		return nil, fmt.Errorf("ebitenaudio: context runs at %d Hz, synth at %d Hz", ctx.SampleRate(), synth.SampleRate)
	}

	players := make(map[audio.Theme]player)
	for _, t := range audio.Themes() {
		pcm := audio.RenderPCM16(synth, audio.Builtin(t))
		loop := eaudio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		p, err := ctx.NewPlayer(loop)
		if err != nil {
			for _, made := range players {
				made.Close()
			}
			return nil, fmt.Errorf("ebitenaudio: player for %s theme: %w", t, err)
		}
		players[t] = p
		logger.Debug("theme rendered", "theme", t, "bytes", len(pcm))
	}
	return newJukebox(players, logger), nil
}

func newJukebox(players map[audio.Theme]player, logger *slog.Logger) *Jukebox {
	return &Jukebox{logger: logger, players: players}
}

func (j *Jukebox) Play(t audio.Theme) {
	j.mu.Lock()
	defer j.mu.Unlock()

	p, ok := j.players[t]
	if !ok {
		j.logger.Warn("unknown theme", "theme", t)
		return
	}
	if j.current != nil && j.current != p {
		j.current.Pause()
	}
	if err := p.SetPosition(0); err != nil {
		j.logger.Warn("rewinding theme", "theme", t, "err", err)
	}
	p.Play()
	j.current = p
}

func (j *Jukebox) Pause() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.current != nil {
		j.current.Pause()
	}
}

func (j *Jukebox) Resume() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.current != nil && !j.current.IsPlaying() {
		j.current.Play()
	}
}

func (j *Jukebox) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.current != nil {
		j.current.Pause()
		j.current = nil
	}
}

func (j *Jukebox) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var firstErr error
	for t, p := range j.players {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("ebitenaudio: closing %s theme: %w", t, err)
		}
	}
	j.players = nil
	j.current = nil
	return firstErr
}
