package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/ecs/debugui"
	debugui_ebiten "github.com/plus3/blockfit/ecs/debugui/ebiten"
)

type Game struct {
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	g.backend.Get().BeginFrame()
	g.scheduler.Once(1.0 / 60.0)
	g.backend.Get().EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)
	debugui.RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend("debugui", 1280, 720))
	ecs.NewSingleton(storage, debugui.ImguiInputState{})

	storage.Spawn(debugui.ImguiItem{Render: func() {
		imgui.Begin("Hello")
		imgui.Text("rendered from an entity")
		imgui.End()
	}})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	game := &Game{
		scheduler: scheduler,
		backend:   ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage),
	}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
