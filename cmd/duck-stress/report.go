package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/duckpond/pond"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Ducks    int
	Workers  int

	// Results
	TotalTime      time.Duration
	UpdateTime     Stats
	Runner         *pond.RunnerStats
	Scene          pond.SceneStats
	GCPauseMetrics bool
	Memory         Memory
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// DucksPerSecond is the number of duck updates performed per wall-clock second.
func (r *Report) DucksPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(len(r.UpdateTime.Samples)) * float64(r.Ducks+1) / r.TotalTime.Seconds()
}

// Memory is the change in heap usage over a run.
type Memory struct {
	HeapStart, HeapEnd uint64
	Allocated          uint64
	Collections        uint32
	Pause              time.Duration
}

// MemoryBetween summarises two runtime samples taken around a run.
func MemoryBetween(start, end *runtime.MemStats) Memory {
	return Memory{
		HeapStart:   start.HeapAlloc,
		HeapEnd:     end.HeapAlloc,
		Allocated:   end.TotalAlloc - start.TotalAlloc,
		Collections: end.NumGC - start.NumGC,
		Pause:       time.Duration(end.PauseTotalNs - start.PauseTotalNs),
	}
}

// HeapDelta is signed since the heap may shrink after a collection.
func (m Memory) HeapDelta() int64 {
	return int64(m.HeapEnd) - int64(m.HeapStart)
}

const reportTemplate = `
# Duck Stress Report

{{.Ducks}} wandering ducks and the player for {{.Duration}} on {{.Workers}} worker(s).

| ticks | wall time | duck updates/s | avg tick | min tick | max tick |
|---|---|---|---|---|---|
| {{len .UpdateTime.Samples}} | {{.TotalTime}} | {{printf "%.0f" .DucksPerSecond}} | {{.UpdateTime.Avg}} | {{.UpdateTime.Min}} | {{.UpdateTime.Max}} |
{{with .Runner}}
## Stages

| stage | runs | avg | max |
|---|---|---|---|
{{range .Stages}}| {{.Name}} | {{.Count}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}{{end}}
## Pond at {{.Scene.Time.Format "15:04:05"}}

{{.Scene.Labeled}} labeled.
{{range $kind, $count := .Scene.Behaviors}}- {{$kind}}: {{$count}}
{{end}}
## Memory

heap {{.Memory.HeapStart}} -> {{.Memory.HeapEnd}} bytes ({{.Memory.HeapDelta}}), {{.Memory.Allocated}} allocated, {{.Memory.Collections}} collections
{{if .GCPauseMetrics}}GC pause total: {{.Memory.Pause}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
