// Headless runs the sandbox simulation without a window for a fixed number
// of ticks, optionally under a profiler.
//
//	go build ./cmd/headless
//	./headless -ticks 6000 -profile cpu
//	go tool pprof -http=":8000" ./headless cpu.pprof
package main

import (
	"flag"
	"log"
	"time"

	"github.com/milk9111/glaze2d/config"
	"github.com/milk9111/glaze2d/ecs/system"
	"github.com/milk9111/glaze2d/sandbox"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults when empty)")
	ticks := flag.Int("ticks", 3600, "number of fixed steps to run")
	mode := flag.String("profile", "", "profile to record: cpu, mem or empty for none")
	out := flag.String("out", ".", "directory profiles are written to")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	sim, err := sandbox.New(cfg, logger)
	if err != nil {
		logger.Fatal("sandbox setup failed", zap.Error(err))
	}

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*out), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(*out), profile.NoShutdownHook).Stop()
	case "":
	default:
		logger.Fatal("unknown profile mode", zap.String("profile", *mode))
	}

	counts := make(map[string]int)
	start := time.Now()
	for i := 0; i < *ticks; i++ {
		sim.Step()
		for _, evt := range sim.Engine.Events().Peek() {
			counts[evt.Type]++
		}
	}
	wall := time.Since(start)

	logger.Info("headless run finished",
		zap.Int("ticks", *ticks),
		zap.Duration("wall", wall),
		zap.Duration("per_tick", wall/time.Duration(max(*ticks, 1))),
		zap.Float64("simulated_ms", sim.Timestamp()),
		zap.Int("entities", sim.Engine.EntityCount()),
		zap.Int("proxies", sim.Core.World.Broadphase.Len()),
		zap.Int("contacts", counts[system.EventContactBegin]),
		zap.Int("spawned", counts[system.EventSpawned]),
		zap.Int("destroyed", counts[system.EventDestroyed]),
	)
}
