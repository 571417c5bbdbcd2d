// Package config loads netris settings from YAML. Every field has a default
// in the embedded default.yaml; files only need to name what they change.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/plus3/netris/audio"
	"github.com/plus3/netris/board"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Seed     uint64         `yaml:"seed"`
	Board    BoardConfig    `yaml:"board"`
	Window   WindowConfig   `yaml:"window"`
	Terminal TerminalConfig `yaml:"terminal"`
	Audio    AudioConfig    `yaml:"audio"`
	Log      LogConfig      `yaml:"log"`
}

type BoardConfig struct {
	FallInterval     time.Duration `yaml:"fall_interval"`
	FallStepPerLevel time.Duration `yaml:"fall_step_per_level"`
	FallFloor        time.Duration `yaml:"fall_floor"`
	RepeatInterval   time.Duration `yaml:"repeat_interval"`
	FadeStep         uint8         `yaml:"fade_step"`
	PointsPerLine    int           `yaml:"points_per_line"`
	LinesPerLevel    int           `yaml:"lines_per_level"`
	LevelsPerSkin    int           `yaml:"levels_per_skin"`
}

type WindowConfig struct {
	Title    string `yaml:"title"`
	CellSize int    `yaml:"cell_size"`
	TPS      int    `yaml:"tps"`
}

type TerminalConfig struct {
	// Tick is the frame interval of the terminal loop.
	Tick time.Duration `yaml:"tick"`
	// HoldWindow is how long a key counts as held after its last event.
	HoldWindow time.Duration `yaml:"hold_window"`
}

type AudioConfig struct {
	Mute   bool    `yaml:"mute"`
	Volume float64 `yaml:"volume"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives log output instead of the frontend's default writer.
	File string `yaml:"file"`
}

// Default returns the embedded defaults.
func Default() Config {
	var c Config
	if err := decode(bytes.NewReader(defaultYAML), &c); err != nil {
		panic("config: embedded defaults: " + err.Error())
	}
	return c
}

// Parse reads YAML from r on top of the defaults and validates the result.
// Unknown keys are errors.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	if err := decode(r, &c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load parses the file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func decode(r io.Reader, c *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec.Decode(c)
}

// Validate reports the first setting a session cannot run with.
func (c Config) Validate() error {
	b := c.Board
	switch {
	case b.FallInterval <= 0:
		return fmt.Errorf("%w: board.fall_interval must be positive", ErrInvalid)
	case b.FallStepPerLevel < 0, b.FallFloor < 0:
		return fmt.Errorf("%w: board fall step and floor must not be negative", ErrInvalid)
	case b.RepeatInterval <= 0:
		return fmt.Errorf("%w: board.repeat_interval must be positive", ErrInvalid)
	case b.FadeStep == 0:
		return fmt.Errorf("%w: board.fade_step must be at least 1", ErrInvalid)
	case b.PointsPerLine < 0:
		return fmt.Errorf("%w: board.points_per_line must not be negative", ErrInvalid)
	case b.LinesPerLevel <= 0, b.LevelsPerSkin <= 0:
		return fmt.Errorf("%w: board lines and levels per step must be positive", ErrInvalid)
	case c.Window.CellSize < 4:
		return fmt.Errorf("%w: window.cell_size %d is too small", ErrInvalid, c.Window.CellSize)
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: window.tps must be positive", ErrInvalid)
	case c.Terminal.Tick <= 0, c.Terminal.HoldWindow <= 0:
		return fmt.Errorf("%w: terminal tick and hold_window must be positive", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %.2f is outside 0..1", ErrInvalid, c.Audio.Volume)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q is not text or json", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Tuning converts the board settings, keeping the default skins and colors.
func (c Config) Tuning() board.Tuning {
	t := board.DefaultTuning()
	t.FallInterval = c.Board.FallInterval
	t.FallStepPerLevel = c.Board.FallStepPerLevel
	t.FallFloor = c.Board.FallFloor
	t.RepeatInterval = c.Board.RepeatInterval
	t.FadeStep = c.Board.FadeStep
	t.PointsPerLine = c.Board.PointsPerLine
	t.LinesPerLevel = c.Board.LinesPerLevel
	t.LevelsPerSkin = c.Board.LevelsPerSkin
	return t
}

// Rand returns a generator seeded from Seed, or nil for the shared random
// source when Seed is zero.
func (c Config) Rand() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(c.Seed, 0))
}

// Synth returns the default voice at the configured volume.
func (c Config) Synth() audio.Synth {
	s := audio.DefaultSynth()
	s.Volume = c.Audio.Volume
	return s
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, s)
	}
	return l, nil
}

// Logger builds the configured slog logger writing to w, or to log.file when
// set. The returned closer releases the file and is never nil.
func (c Config) Logger(w io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	var closer io.Closer = nopCloser{}
	if c.Log.File != "" {
		f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("config: log file: %w", err)
		}
		w, closer = f, f
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if c.Log.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
