package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/ecs/debugui"
	debugui_ebiten "github.com/plus3/blockfit/ecs/debugui/ebiten"
	"github.com/plus3/blockfit/internal/ui"
)

const tickSeconds = 1.0 / 60.0

// Game adapts the ECS world to ebiten.Game.
type Game struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Imgui     *ecs.Singleton[debugui_ebiten.ImguiBackend]

	game     *ecs.Singleton[ui.Game]
	layout   *ecs.Singleton[ui.Layout]
	pointer  *ecs.Singleton[ui.Pointer]
	controls *ecs.Singleton[ui.Controls]
	drag     *ecs.Singleton[ui.Drag]
	flashes  *ecs.Query[struct{ *ui.Flash }]

	touch    ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID
}

func (g *Game) bind() {
	g.game = ecs.NewSingleton[ui.Game](g.Storage)
	g.layout = ecs.NewSingleton[ui.Layout](g.Storage)
	g.pointer = ecs.NewSingleton[ui.Pointer](g.Storage)
	g.controls = ecs.NewSingleton[ui.Controls](g.Storage)
	g.drag = ecs.NewSingleton[ui.Drag](g.Storage)
	g.flashes = ecs.NewQuery[struct{ *ui.Flash }](g.Storage)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.Imgui != nil {
		g.Imgui.Get().BeginFrame()
		defer g.Imgui.Get().EndFrame()
	}

	g.readPointer()
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && !g.imguiWants(false) {
		g.controls.Get().Restart = true
	}

	g.Scheduler.Once(tickSeconds)
	return nil
}

// readPointer folds the mouse and the first active touch into the Pointer
// singleton.
func (g *Game) readPointer() {
	p := g.pointer.Get()
	p.Pressed, p.Released = false, false

	if g.imguiWants(true) && !g.drag.Get().Active {
		return
	}

	if g.touching {
		if inpututil.IsTouchJustReleased(g.touch) {
			g.touching = false
			p.Down, p.Released = false, true
			return
		}
		x, y := ebiten.TouchPosition(g.touch)
		p.X, p.Y = float64(x), float64(y)
		return
	}

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		g.touch, g.touching = g.touchIDs[0], true
		x, y := ebiten.TouchPosition(g.touch)
		p.X, p.Y = float64(x), float64(y)
		p.Down, p.Pressed = true, true
		return
	}

	x, y := ebiten.CursorPosition()
	p.X, p.Y = float64(x), float64(y)
	p.Down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.Pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	p.Released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

func (g *Game) imguiWants(mouse bool) bool {
	var state *debugui.ImguiInputState
	if !g.Storage.ReadSingleton(&state) {
		return false
	}
	if mouse {
		return state.WantCaptureMouse
	}
	return state.WantCaptureKeyboard
}

func (g *Game) Draw(screen *ebiten.Image) {
	draw(screen, g.game.Get(), g.layout.Get(), g.drag.Get(), g.flashes)
	if g.Imgui != nil {
		g.Imgui.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Imgui != nil {
		g.Imgui.Get().Layout(outsideWidth, outsideHeight)
	}

	layout := g.layout.Get()
	if layout.Width != outsideWidth || layout.Height != outsideHeight {
		*layout = ui.NewLayout(outsideWidth, outsideHeight, layout.BoardSize, layout.HandSize)
	}
	return outsideWidth, outsideHeight
}
