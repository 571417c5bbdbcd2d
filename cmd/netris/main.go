// Command netris plays netris in an Ebiten window.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/netris/assets"
	"github.com/plus3/netris/audio"
	"github.com/plus3/netris/audio/ebitenaudio"
	"github.com/plus3/netris/config"
	"github.com/plus3/netris/debugui"
	debugui_ebiten "github.com/plus3/netris/debugui/ebiten"
	"github.com/plus3/netris/ecs"
	"github.com/plus3/netris/game"
	"github.com/plus3/netris/render"
)

// tileSize is the pixel size of one atlas tile.
const tileSize = 16

type netrisGame struct {
	session  *game.Session
	renderer *render.Renderer
	imgui    *debugui_ebiten.ImguiBackend
	tick     time.Duration
	width    int
	height   int
}

func (g *netrisGame) Update() error {
	tick := func() { g.session.Tick(g.tick) }
	if g.imgui != nil {
		g.imgui.Frame(tick)
	} else {
		tick()
	}
	if g.session.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

func (g *netrisGame) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session.Board())
	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

func (g *netrisGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "netris:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := config.BindFlags(flag.CommandLine)
	debug := flag.Bool("debug", false, "show the ImGui debug windows")
	sheet := flag.String("sheet", "", "PNG tile sheet to use instead of the generated one")
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		return err
	}
	logger, closer, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	var fsys fs.FS
	name := assets.SheetName
	if *sheet != "" {
		fsys, name = os.DirFS(filepath.Dir(*sheet)), filepath.Base(*sheet)
	}
	images := assets.NewImageCache(fsys, tileSize, assets.WithLogger[*ebiten.Image](logger))
	atlas, err := images.Get(name)
	if err != nil {
		return fmt.Errorf("loading tile sheet: %w", err)
	}

	var jukebox audio.Jukebox = audio.Silent{}
	if !cfg.Audio.Mute {
		jb, err := ebitenaudio.New(cfg.Synth(), logger)
		if err != nil {
			logger.Warn("music disabled", "err", err)
		} else {
			defer jb.Close()
			jukebox = jb
		}
	}

	kb := &keyboard{}
	session := game.NewSession(game.Options{
		Tuning:  cfg.Tuning(),
		Rand:    cfg.Rand(),
		Input:   kb,
		Jukebox: jukebox,
		Logger:  logger,
	})

	renderer := render.NewRenderer(atlas, tileSize, cfg.Window.CellSize)
	g := &netrisGame{
		session:  session,
		renderer: renderer,
		tick:     time.Second / time.Duration(cfg.Window.TPS),
	}
	g.width, g.height = renderer.ScreenSize(session.Board().Size())

	if *debug {
		g.imgui = debugui_ebiten.NewImguiBackend(cfg.Window.Title+" (debug)", max(g.width, 1280), max(g.height, 720))
		attachDebugUI(session, kb)
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(g.width, g.height)
	}
	ebiten.SetTPS(cfg.Window.TPS)

	logger.Info("window opened", "width", g.width, "height", g.height, "debug", *debug, slog.Uint64("seed", cfg.Seed))
	return ebiten.RunGame(g)
}

func attachDebugUI(session *game.Session, kb *keyboard) {
	storage := session.Storage()
	debugui.RegisterComponents(storage.Registry())
	debugui.SpawnWindows(storage)
	ecs.ReadSingleton[game.DebugState](storage).Visible = true

	scheduler := session.Scheduler()
	scheduler.Register(&debugui.ImguiSystem{})
	scheduler.Register(&debugui.WindowSystem{Scheduler: scheduler})

	kb.captured = func() bool {
		s := ecs.ReadSingleton[debugui.ImguiInputState](storage)
		return s != nil && s.WantCaptureKeyboard
	}
}
