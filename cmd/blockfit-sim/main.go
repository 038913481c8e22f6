package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/plus3/blockfit/internal/autoplay"
	"github.com/plus3/blockfit/internal/envconfig"
	"go.uber.org/zap"
)

func main() {
	if err := envconfig.Load(); err != nil {
		log.Fatal(err)
	}

	cfg := simConfig{}
	flag.IntVar(&cfg.Games, "games", envconfig.Int("GAMES", 10), "Number of games to play.")
	flag.StringVar(&cfg.Strategy, "strategy", envconfig.String("STRATEGY", "greedy"), "Move strategy: "+strings.Join(autoplay.Names(), ", ")+".")
	flag.Uint64Var(&cfg.Seed, "seed", envconfig.Uint64("SEED", 1), "Seed for the piece generator and the random strategy.")
	flag.Float64Var(&cfg.DeltaT, "dt", 1.0/60, "Simulated seconds per tick.")
	flag.IntVar(&cfg.MaxTicks, "max-ticks", envconfig.Int("MAX_TICKS", 100000), "Tick limit per game.")
	flag.BoolVar(&cfg.Deferred, "deferred", envconfig.Bool("DEFERRED", false), "Run clears and refills through the UI timers.")
	logLevel := flag.String("log-level", envconfig.String("LOG_LEVEL", "warn"), "debug, info, warn or error.")
	flag.Parse()

	logger, err := envconfig.NewLogger(*logLevel)
	if err != nil {
		log.Fatalf("invalid log level: %v", err)
	}
	defer logger.Sync()

	if cfg.Games < 1 || cfg.MaxTicks < 1 || cfg.DeltaT <= 0 {
		logger.Fatal("games, max-ticks and dt must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting autoplay", zap.Int("games", cfg.Games), zap.String("strategy", cfg.Strategy), zap.Uint64("seed", cfg.Seed))
	report, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("autoplay failed", zap.Error(err))
	}

	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println()
}
