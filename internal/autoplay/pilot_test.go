package autoplay_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/internal/autoplay"
	"github.com/plus3/blockfit/internal/blockfit"
	"github.com/plus3/blockfit/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPilotPlaysThroughPointer(t *testing.T) {
	tests := []struct {
		name     string
		deferred bool
	}{
		{"immediate", false},
		{"deferred", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := blockfit.DefaultConfig()
			cfg.Seed = 11
			cfg.DeferCommit = tt.deferred
			cfg.DeferRefill = tt.deferred
			cfg.ClearDelay = 50 * time.Millisecond
			cfg.RefillDelay = 50 * time.Millisecond

			log := zaptest.NewLogger(t)
			session := blockfit.NewSession(cfg, blockfit.WithLogger(log))
			_, err := session.Start(context.Background())
			require.NoError(t, err)

			registry := ecs.NewComponentRegistry()
			ui.RegisterComponents(registry)
			storage := ecs.NewStorage(registry)
			scheduler := ecs.NewScheduler(storage)

			scheduler.Register(autoplay.NewPilot(storage, autoplay.Greedy{}))
			ui.Install(storage, scheduler, session, ui.NewLayout(480, 800, cfg.BoardSize, cfg.HandSize), log)

			game := ecs.NewSingleton[ui.Game](storage)
			for i := 0; i < 600 && !game.Get().Snap.GameOver; i++ {
				scheduler.Once(1.0 / 60)
			}

			tally := ecs.NewSingleton[autoplay.Tally](storage).Get()
			assert.Zero(t, tally.Rejected, "every carried piece lands where it was aimed")
			assert.GreaterOrEqual(t, tally.Moves, 5)

			snap := game.Get().Snap
			assert.GreaterOrEqual(t, snap.Score, tally.Moves)
			assert.Equal(t, snap.Score, snap.Best)
		})
	}
}
