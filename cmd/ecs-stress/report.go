package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/worldkit/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Entities int
	TickRate time.Duration

	// Results
	TotalTicks    int
	TotalTime     time.Duration
	FinalEntities int
	Expired       int
	Scheduler     *ecs.SchedulerStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Tick Rate:** {{.TickRate}}

## Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **Final Live Entities:** {{.FinalEntities}}
- **Entities Expired:** {{.Expired}}
- **System Executions:** {{.Scheduler.TotalExecutions}}

## Per-System Timing
{{range .Scheduler.Logic}}- {{.Name}} (logic): avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}
{{end}}{{range .Scheduler.Render}}- {{.Name}} (render): avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
