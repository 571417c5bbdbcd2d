package config

import (
	"flag"
	"fmt"
	"time"
)

// Flags binds the command-line overrides shared by the netris binaries.
// Flags the user did not set leave the file's values alone.
type Flags struct {
	set *flag.FlagSet

	path      string
	seed      uint64
	fall      time.Duration
	cellSize  int
	mute      bool
	volume    float64
	logLevel  string
	logFormat string
	logFile   string
}

// BindFlags registers the overrides on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{set: fs}
	fs.StringVar(&f.path, "config", "", "YAML config file; defaults apply when empty")
	fs.Uint64Var(&f.seed, "seed", 0, "piece randomizer seed, 0 for random")
	fs.DurationVar(&f.fall, "fall", 0, "base fall interval")
	fs.IntVar(&f.cellSize, "cell", 0, "cell size in pixels")
	fs.BoolVar(&f.mute, "mute", false, "disable music")
	fs.Float64Var(&f.volume, "volume", 0, "music volume, 0..1")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "text or json")
	fs.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	return f
}

// Load reads the config file named by -config and applies every flag that
// was set explicitly. Call it after parsing the flag set.
func (f *Flags) Load() (Config, error) {
	if !f.set.Parsed() {
		return Config{}, fmt.Errorf("config: flags not parsed")
	}
	c, err := Load(f.path)
	if err != nil {
		return Config{}, err
	}

	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed":
			c.Seed = f.seed
		case "fall":
			c.Board.FallInterval = f.fall
		case "cell":
			c.Window.CellSize = f.cellSize
		case "mute":
			c.Audio.Mute = f.mute
		case "volume":
			c.Audio.Volume = f.volume
		case "log-level":
			c.Log.Level = f.logLevel
		case "log-format":
			c.Log.Format = f.logFormat
		case "log-file":
			c.Log.File = f.logFile
		}
	})

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
