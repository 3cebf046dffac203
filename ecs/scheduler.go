package ecs

import (
	"reflect"
	"time"
)

// SchedulerStats is a point-in-time summary of system execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Logic           []SystemStats
	Render          []SystemStats
}

// SystemStats holds execution statistics for a single registered system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newSystemStats(sys System) *systemStatsInternal {
	t := reflect.TypeOf(sys)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return &systemStatsInternal{
		name:        t.Name(),
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

func (s *systemStatsInternal) export() SystemStats {
	avg := time.Duration(0)
	if s.executionCount > 0 {
		avg = s.totalDuration / time.Duration(s.executionCount)
	}
	return SystemStats{
		Name:           s.name,
		ExecutionCount: s.executionCount,
		MinDuration:    s.minDuration,
		MaxDuration:    s.maxDuration,
		AvgDuration:    avg,
		LastDuration:   s.lastDuration,
		TotalDuration:  s.totalDuration,
	}
}

// Scheduler keeps two ordered rosters, one for logic systems and one for
// render systems, and drives their hooks in registration order. Systems are
// never removed once registered.
type Scheduler struct {
	logic       []System
	render      []RenderSystem
	logicStats  []*systemStatsInternal
	renderStats []*systemStatsInternal
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register classifies sys by render capability, invokes its Init hook with w
// as context, then appends it to the matching roster.
func (s *Scheduler) Register(w *World, sys System) {
	sys.Init(w)
	if rs, ok := sys.(RenderSystem); ok {
		s.render = append(s.render, rs)
		s.renderStats = append(s.renderStats, newSystemStats(sys))
		return
	}
	s.logic = append(s.logic, sys)
	s.logicStats = append(s.logicStats, newSystemStats(sys))
}

// Init sweeps every system's Init hook, logic roster first then render roster,
// in registration order.
func (s *Scheduler) Init(w *World) {
	for _, sys := range s.logic {
		sys.Init(w)
	}
	for _, sys := range s.render {
		sys.Init(w)
	}
}

// Update sweeps the Update hook of every logic system in registration order.
func (s *Scheduler) Update(w *World, dt float64) {
	for i, sys := range s.logic {
		start := time.Now()
		sys.Update(w, dt)
		s.logicStats[i].record(time.Since(start))
	}
}

// Render sweeps the Render hook of every render system in registration order.
func (s *Scheduler) Render(w *World) {
	for i, sys := range s.render {
		start := time.Now()
		sys.Render(w)
		s.renderStats[i].record(time.Since(start))
	}
}

// Len returns the total number of registered systems.
func (s *Scheduler) Len() int {
	return len(s.logic) + len(s.render)
}

// Stats returns execution statistics for every registered system.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: s.Len(),
		Logic:       make([]SystemStats, len(s.logicStats)),
		Render:      make([]SystemStats, len(s.renderStats)),
	}
	for i, internal := range s.logicStats {
		stats.Logic[i] = internal.export()
		stats.TotalExecutions += internal.executionCount
	}
	for i, internal := range s.renderStats {
		stats.Render[i] = internal.export()
		stats.TotalExecutions += internal.executionCount
	}
	return stats
}
