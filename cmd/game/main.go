package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/TR-Jackson/collisions-game/internal/config"
	"github.com/TR-Jackson/collisions-game/internal/logging"
	"github.com/TR-Jackson/collisions-game/internal/loop"
	"github.com/TR-Jackson/collisions-game/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	ticks := flag.Int("ticks", 0, "stop after this many ticks (0 = until game over)")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	pilotName := flag.String("pilot", "random", "input source: idle, random or evade")
	realtime := flag.Bool("realtime", false, "pace ticks at the configured tick interval")
	flag.Parse()

	if err := run(*configPath, *ticks, *seed, *pilotName, *realtime); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, ticks int, seed int64, pilotName string, realtime bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logging.NewStderr(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pilot, err := loop.PilotByName(pilotName, seed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game := session.New(cfg, rand.New(rand.NewSource(seed)), session.WithLogger(log))
	opts := loop.Options{MaxTicks: ticks, Logger: log}
	if realtime {
		opts.Interval = cfg.Timing.TickInterval
	}
	r := loop.NewRunner(game, pilot, opts)
	log.Info("starting", zap.String("run_id", r.ID()), zap.Int64("seed", seed), zap.String("pilot", pilotName))

	sum, err := r.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("run %s: %s after %d ticks, level %d, score %d\n",
		sum.RunID, sum.Outcome, sum.Ticks, sum.Level, sum.Score)
	return nil
}
