package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/internal/autoplay"
	"github.com/plus3/blockfit/internal/blockfit"
	"github.com/plus3/blockfit/internal/storage"
	"github.com/plus3/blockfit/internal/ui"
	"go.uber.org/zap"
)

// Layout the pilot plays on. Any size works since input never leaves the
// process.
const (
	screenWidth  = 480
	screenHeight = 800
)

type simConfig struct {
	Games    int
	Strategy string
	Seed     uint64
	DeltaT   float64
	MaxTicks int
	Deferred bool
}

// simulation is one headless world with the pilot installed.
type simulation struct {
	cfg       simConfig
	scheduler *ecs.Scheduler
	game      *ecs.Singleton[ui.Game]
	controls  *ecs.Singleton[ui.Controls]
	tally     *ecs.Singleton[autoplay.Tally]
}

func newSimulation(ctx context.Context, cfg simConfig, log *zap.Logger) (*simulation, error) {
	strategy, err := autoplay.New(cfg.Strategy, rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1|1)))
	if err != nil {
		return nil, err
	}

	gameCfg := blockfit.DefaultConfig()
	gameCfg.Seed = cfg.Seed
	gameCfg.DeferCommit = cfg.Deferred
	gameCfg.DeferRefill = cfg.Deferred

	session := blockfit.NewSession(gameCfg,
		blockfit.WithLogger(log),
		blockfit.WithBestScoreStore(&storage.MemoryStore{}),
	)
	if _, err := session.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	registry := ecs.NewComponentRegistry()
	ui.RegisterComponents(registry)
	world := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(world)

	scheduler.Register(autoplay.NewPilot(world, strategy))
	ui.Install(world, scheduler, session, ui.NewLayout(screenWidth, screenHeight, gameCfg.BoardSize, gameCfg.HandSize), log)

	return &simulation{
		cfg:       cfg,
		scheduler: scheduler,
		game:      ecs.NewSingleton[ui.Game](world),
		controls:  ecs.NewSingleton[ui.Controls](world),
		tally:     ecs.NewSingleton[autoplay.Tally](world),
	}, nil
}

// playGame runs until game over or MaxTicks and restarts afterwards.
func (s *simulation) playGame(ctx context.Context, index int, update *Stats) (GameResult, error) {
	*s.tally.Get() = autoplay.Tally{}

	ticks := 0
	for !s.game.Get().Snap.GameOver && ticks < s.cfg.MaxTicks {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		start := time.Now()
		s.scheduler.Once(s.cfg.DeltaT)
		update.Samples = append(update.Samples, time.Since(start))
		ticks++
	}

	// The pilot records a drop on the tick after it lands.
	s.scheduler.Once(s.cfg.DeltaT)

	snap := s.game.Get().Snap
	tally := *s.tally.Get()
	result := GameResult{
		Index:     index,
		Score:     snap.Score,
		Hands:     snap.Generation,
		Moves:     tally.Moves,
		Rejected:  tally.Rejected,
		Lines:     tally.Lines,
		Cleared:   tally.ClearedCells,
		BestTurn:  tally.BestTurn,
		Ticks:     ticks,
		Truncated: !snap.GameOver,
	}

	s.controls.Get().Restart = true
	s.scheduler.Once(s.cfg.DeltaT)
	return result, nil
}

func run(ctx context.Context, cfg simConfig, log *zap.Logger) (*Report, error) {
	sim, err := newSimulation(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Games:    cfg.Games,
		Strategy: cfg.Strategy,
		Seed:     cfg.Seed,
		Deferred: cfg.Deferred,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	startTime := time.Now()
	for i := 1; i <= cfg.Games; i++ {
		result, err := sim.playGame(ctx, i, &report.UpdateTime)
		if err != nil {
			return nil, err
		}
		log.Info("game finished",
			zap.Int("game", i),
			zap.Int("score", result.Score),
			zap.Int("moves", result.Moves),
			zap.Bool("truncated", result.Truncated),
		)
		report.Results = append(report.Results, result)
	}

	report.TotalTime = time.Since(startTime)
	report.TotalTicks = sim.scheduler.Ticks()
	report.Best = sim.game.Get().Snap.Best
	report.Systems = sim.scheduler.GetStats().Systems
	report.UpdateTime.Finalize()
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report, nil
}
