package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config drives the stress run. Values come from an optional TOML file with
// flag overrides on top.
type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Logging LoggingConfig `toml:"logging"`
	Profile string        `toml:"profile"` // off, cpu, mem
}

type SimConfig struct {
	Entities  int           `toml:"entities"`
	Duration  time.Duration `toml:"duration"`
	TickRate  time.Duration `toml:"tick_rate"`
	ChurnRate float64       `toml:"churn_rate"` // fraction of entities recycled per tick
}

type LoggingConfig struct {
	Development bool   `toml:"development"`
	Level       string `toml:"level"`
}

func defaultConfig() Config {
	return Config{
		Sim: SimConfig{
			Entities:  10000,
			Duration:  10 * time.Second,
			TickRate:  time.Millisecond,
			ChurnRate: 0.01,
		},
		Logging: LoggingConfig{
			Development: false,
			Level:       "info",
		},
		Profile: "off",
	}
}

// loadConfig resolves the effective config: defaults, then the TOML file named
// by -config (if any), then explicitly-set flags.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	configPath := flag.String("config", "", "Path to a TOML config file.")
	entities := flag.Int("entities", cfg.Sim.Entities, "Initial number of entities.")
	duration := flag.Duration("duration", cfg.Sim.Duration, "Total run duration.")
	tickRate := flag.Duration("tick", cfg.Sim.TickRate, "Tick interval.")
	churn := flag.Float64("churn", cfg.Sim.ChurnRate, "Fraction of entities recycled per tick.")
	profileMode := flag.String("profile", cfg.Profile, "Profiling mode: off, cpu, or mem.")
	dev := flag.Bool("dev", cfg.Logging.Development, "Use development logging.")
	flag.Parse()

	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", *configPath, err)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "entities":
			cfg.Sim.Entities = *entities
		case "duration":
			cfg.Sim.Duration = *duration
		case "tick":
			cfg.Sim.TickRate = *tickRate
		case "churn":
			cfg.Sim.ChurnRate = *churn
		case "profile":
			cfg.Profile = *profileMode
		case "dev":
			cfg.Logging.Development = *dev
		}
	})

	if cfg.Sim.Entities <= 0 {
		return cfg, fmt.Errorf("entities must be positive, got %d", cfg.Sim.Entities)
	}
	if cfg.Sim.ChurnRate < 0 || cfg.Sim.ChurnRate > 1 {
		return cfg, fmt.Errorf("churn_rate must be in [0,1], got %g", cfg.Sim.ChurnRate)
	}
	switch cfg.Profile {
	case "off", "cpu", "mem":
	default:
		return cfg, fmt.Errorf("unknown profile mode %q", cfg.Profile)
	}
	return cfg, nil
}
