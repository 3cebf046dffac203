package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/worldkit/ecs"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ecs-stress:", err)
		os.Exit(1)
	}

	log, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ecs-stress:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	w := ecs.NewWorld(ecs.WithLogger(log))

	expired := 0
	ecs.Subscribe(w, func(entityExpired) { expired++ })

	w.RegisterSystem(&PromoteSystem{})
	w.RegisterSystem(&MovementSystem{})
	w.RegisterSystem(&DecaySystem{rng: rng})
	w.RegisterSystem(&ChurnSystem{rng: rng, rate: cfg.Sim.ChurnRate})
	w.RegisterSystem(&ClockSystem{})
	w.RegisterSystem(&FrameCounterSystem{})

	log.Info("populating world", zap.Int("entities", cfg.Sim.Entities))
	for i := 0; i < cfg.Sim.Entities; i++ {
		if _, err := spawnEntity(w, rng); err != nil {
			log.Fatal("spawn failed", zap.Error(err))
		}
	}
	w.Init()

	report := &Report{
		Duration: cfg.Sim.Duration,
		Entities: cfg.Sim.Entities,
		TickRate: cfg.Sim.TickRate,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation",
		zap.Duration("duration", cfg.Sim.Duration),
		zap.Duration("tick", cfg.Sim.TickRate))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sim.Duration)
	defer cancel()

	start := time.Now()
	w.Run(ctx, cfg.Sim.TickRate)

	report.TotalTime = time.Since(start)
	report.FinalEntities = w.EntityCount()
	report.Expired = expired
	report.Scheduler = w.Stats()
	if clock, err := ecs.GetWorldComponent[WorldClock](w); err == nil {
		report.TotalTicks = clock.Frames
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished",
		zap.Int("ticks", report.TotalTicks),
		zap.Int("live_entities", report.FinalEntities),
		zap.Int("expired", expired))

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("report generation failed", zap.Error(err))
	}
}

func buildLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	zcfg.Level = level
	return zcfg.Build()
}
