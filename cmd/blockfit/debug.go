package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/ecs/debugui"
	"github.com/plus3/blockfit/internal/ui"
)

func spawnDebugWindows(world *ecs.Storage, scheduler *ecs.Scheduler) {
	stats := &debugui.StatsWindow{
		Storage:   world,
		Scheduler: scheduler,
		History:   debugui.NewFrameHistory(120),
	}
	world.Spawn(stats.Item(func() float64 { return 1 / max(ebiten.ActualTPS(), 1) }))
	world.Spawn(debugui.ImguiItem{Render: func() { renderSessionWindow(world) }})
}

func renderSessionWindow(world *ecs.Storage) {
	var game *ui.Game
	var drag *ui.Drag
	var controls *ui.Controls
	if !world.ReadSingleton(&game) || !world.ReadSingleton(&drag) || !world.ReadSingleton(&controls) {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	snap := game.Snap
	imgui.Text(fmt.Sprintf("Score: %d  Best: %d", snap.Score, snap.Best))
	imgui.Text(fmt.Sprintf("Hand #%d, %d unplaced", snap.Generation, snap.Unplaced()))
	imgui.Text(fmt.Sprintf("Pending clear: %d cells", len(snap.Pending)))
	imgui.Text(fmt.Sprintf("Refill pending: %t", snap.RefillPending))
	imgui.Text(fmt.Sprintf("Game over: %t", snap.GameOver))

	imgui.Separator()
	if drag.Active {
		imgui.Text(fmt.Sprintf("Dragging slot %d at (%d, %d), valid %t", drag.Slot, drag.Row, drag.Col, drag.Valid))
	} else {
		imgui.Text("Not dragging")
	}
	last := game.Last
	imgui.Text(fmt.Sprintf("Last drop: +%d, %d lines", last.PlacementScore+last.Clear.ScoreDelta, last.Clear.Lines()))

	if imgui.TreeNodeStr("Hand") {
		for _, piece := range snap.Hand {
			imgui.BulletText(fmt.Sprintf("%d %s %s placed=%t", piece.Slot, piece.Shape.Name(), piece.ID[:8], piece.Placed))
		}
		imgui.TreePop()
	}

	imgui.Separator()
	if imgui.Button("Restart") {
		controls.Restart = true
	}
	imgui.SameLine()
	if imgui.Button("Commit clear") {
		game.Snap = game.Session.CommitClear()
	}
	imgui.SameLine()
	if imgui.Button("Refill") {
		game.Snap = game.Session.Refill()
	}

	imgui.End()
}
