package ebiten_test

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/netris/assets"
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/debugui"
	debugui_ebiten "github.com/plus3/netris/debugui/ebiten"
	"github.com/plus3/netris/game"
	"github.com/plus3/netris/render"
)

// Game implements ebiten.Game around a netris session with the ImGui overlay.
type Game struct {
	session  *game.Session
	renderer *render.Renderer
	imgui    *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Systems defer their ImGui calls into the frame opened here.
	g.imgui.Frame(func() {
		g.session.Tick(time.Second / 60)
	})
	if g.session.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session.Board())
	g.imgui.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("netris debug", 1280, 720)

	session := game.NewSession(game.Options{Tuning: board.DefaultTuning()})
	storage := session.Storage()
	debugui.RegisterComponents(storage.Registry())
	debugui.SpawnWindows(storage)

	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Hello")
			imgui.Text("Hello from the session!")
			imgui.End()
		},
	})

	session.Scheduler().Register(&debugui.ImguiSystem{})
	session.Scheduler().Register(&debugui.WindowSystem{Scheduler: session.Scheduler()})

	atlas := ebiten.NewImageFromImage(assets.Atlas(16))
	g := &Game{
		session:  session,
		renderer: render.NewRenderer(atlas, 16, 24),
		imgui:    backend,
	}
	if err := ebiten.RunGame(g); err != nil {
		panic(err)
	}
}
