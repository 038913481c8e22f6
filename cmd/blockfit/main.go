package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/ecs/debugui"
	debugui_ebiten "github.com/plus3/blockfit/ecs/debugui/ebiten"
	"github.com/plus3/blockfit/internal/blockfit"
	"github.com/plus3/blockfit/internal/envconfig"
	"github.com/plus3/blockfit/internal/storage"
	"github.com/plus3/blockfit/internal/ui"
	"go.uber.org/zap"
)

const (
	windowWidth  = 480
	windowHeight = 800
)

func main() {
	if err := envconfig.Load(); err != nil {
		log.Fatal(err)
	}

	logLevel := flag.String("log-level", envconfig.String("LOG_LEVEL", "info"), "debug, info, warn or error.")
	seed := flag.Uint64("seed", envconfig.Uint64("SEED", 0), "Piece generator seed. Zero picks one at random.")
	clearDelay := flag.Duration("clear-delay", envconfig.Duration("CLEAR_DELAY", blockfit.DefaultClearDelay), "How long cleared cells flash before they empty.")
	refillDelay := flag.Duration("refill-delay", envconfig.Duration("REFILL_DELAY", blockfit.DefaultRefillDelay), "Pause before a new hand is dealt.")
	bestPath := flag.String("best-file", envconfig.String("BEST_FILE", ""), "Best score file. Defaults to the user config dir.")
	debug := flag.Bool("debug", envconfig.Bool("DEBUG", false), "Show the ImGui debug windows.")
	flag.Parse()

	logger, err := envconfig.NewLogger(*logLevel)
	if err != nil {
		log.Fatalf("invalid log level: %v", err)
	}
	defer logger.Sync()

	if *bestPath == "" {
		if *bestPath, err = storage.DefaultPath(); err != nil {
			logger.Warn("best score will not persist", zap.Error(err))
		}
	}

	cfg := blockfit.DefaultConfig()
	cfg.Seed = *seed
	cfg.ClearDelay = *clearDelay
	cfg.RefillDelay = *refillDelay
	cfg.DeferCommit = true
	cfg.DeferRefill = true

	opts := []blockfit.Option{blockfit.WithLogger(logger)}
	if *bestPath != "" {
		opts = append(opts, blockfit.WithBestScoreStore(storage.NewFileStore(*bestPath)))
	}
	session := blockfit.NewSession(cfg, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	snap, err := session.Start(ctx)
	cancel()
	if err != nil {
		logger.Fatal("starting session", zap.Error(err))
	}
	logger.Info("session started", zap.Int("best", snap.Best), zap.Uint64("seed", cfg.Seed))

	registry := ecs.NewComponentRegistry()
	ui.RegisterComponents(registry)
	debugui.RegisterComponents(registry)
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)
	world := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(world)

	ui.Install(world, scheduler, session, ui.NewLayout(windowWidth, windowHeight, cfg.BoardSize, cfg.HandSize), logger)

	game := &Game{
		Storage:   world,
		Scheduler: scheduler,
	}

	if *debug {
		backend := debugui_ebiten.NewImguiBackend("blockfit", windowWidth, windowHeight)
		game.Imgui = ecs.NewSingleton(world, backend)
		ecs.NewSingleton(world, debugui.ImguiInputState{})
		scheduler.Register(&debugui.ImguiSystem{})
		spawnDebugWindows(world, scheduler)
	} else {
		ebiten.SetWindowSize(windowWidth, windowHeight)
		ebiten.SetWindowTitle("blockfit")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game.bind()
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game loop", zap.Error(err))
	}
}
