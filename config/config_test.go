package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plus3/netris/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchBoardTuning(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	want := board.DefaultTuning()
	got := c.Tuning()
	assert.Equal(t, want.FallInterval, got.FallInterval)
	assert.Equal(t, want.FallStepPerLevel, got.FallStepPerLevel)
	assert.Equal(t, want.RepeatInterval, got.RepeatInterval)
	assert.Equal(t, want.FadeStep, got.FadeStep)
	assert.Equal(t, want.PointsPerLine, got.PointsPerLine)
	assert.Equal(t, want.LinesPerLevel, got.LinesPerLevel)
	assert.Equal(t, want.LevelsPerSkin, got.LevelsPerSkin)
	assert.Equal(t, want.Skins, got.Skins)
	assert.Zero(t, got.FallFloor)
}

func TestParseOverlaysDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader("board:\n  fall_interval: 500ms\nlog:\n  format: json\n"))
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, c.Board.FallInterval)
	assert.Equal(t, 50*time.Millisecond, c.Board.RepeatInterval, "untouched keys keep defaults")
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "Netris", c.Window.Title)
}

func TestParseEmptyInputIsDefault(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"unknown key", "board:\n  gravity: 2\n", false},
		{"bare integer duration", "board:\n  fall_interval: 1000\n", false},
		{"zero fade step", "board:\n  fade_step: 0\n", true},
		{"negative floor", "board:\n  fall_floor: -1s\n", true},
		{"tiny cells", "window:\n  cell_size: 2\n", true},
		{"loud", "audio:\n  volume: 1.5\n", true},
		{"bad level", "log:\n  level: chatty\n", true},
		{"bad format", "log:\n  format: xml\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netris.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 42\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), c.Seed)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestFlagsOverrideOnlyWhatIsSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netris.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\nwindow:\n  cell_size: 32\n"), 0o644))

	fs := flag.NewFlagSet("netris", flag.ContinueOnError)
	f := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-fall", "750ms", "-mute"}))

	c, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), c.Seed, "unset flags keep file values")
	assert.Equal(t, 32, c.Window.CellSize)
	assert.Equal(t, 750*time.Millisecond, c.Board.FallInterval)
	assert.True(t, c.Audio.Mute)
}

func TestFlagsAreValidated(t *testing.T) {
	fs := flag.NewFlagSet("netris", flag.ContinueOnError)
	f := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-volume", "3"}))

	_, err := f.Load()
	assert.ErrorIs(t, err, ErrInvalid)

	unparsed := BindFlags(flag.NewFlagSet("x", flag.ContinueOnError))
	_, err = unparsed.Load()
	assert.Error(t, err)
}

func TestLoggerHonorsLevelAndFormat(t *testing.T) {
	c := Default()
	c.Log.Level = "warn"
	c.Log.Format = "json"

	var buf bytes.Buffer
	logger, closer, err := c.Logger(&buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":1`)
}

func TestLoggerWritesToFile(t *testing.T) {
	c := Default()
	c.Log.File = filepath.Join(t.TempDir(), "netris.log")

	logger, closer, err := c.Logger(os.Stderr)
	require.NoError(t, err)
	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(c.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestRandIsSeeded(t *testing.T) {
	c := Default()
	assert.Nil(t, c.Rand(), "zero seed uses the shared source")

	c.Seed = 42
	a, b := c.Rand(), c.Rand()
	for range 8 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}
