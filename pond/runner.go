package pond

import (
	"context"
	"reflect"
	"time"
)

// RunnerStats provides statistics about ticks executed by a Runner.
type RunnerStats struct {
	Ticks  int64
	Stages []StageStats
}

// StageStats provides timing statistics for one stage of a tick: the scene
// update itself or one observer.
type StageStats struct {
	Name          string
	Count         int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type stageStatsInternal struct {
	name          string
	count         int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

func newStageStats(name string) *stageStatsInternal {
	return &stageStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (s *stageStatsInternal) record(d time.Duration) {
	s.count++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

// Runner drives a scene tick by tick and notifies observers in registration
// order after each tick.
type Runner struct {
	scene     *Scene
	observers []Observer
	tick      int64

	sceneStats    *stageStatsInternal
	observerStats []*stageStatsInternal
}

func NewRunner(scene *Scene) *Runner {
	return &Runner{
		scene:      scene,
		sceneStats: newStageStats("Scene"),
	}
}

// Scene returns the driven scene.
func (r *Runner) Scene() *Scene {
	return r.scene
}

// SetScene replaces the driven scene, for example after loading a snapshot.
// The tick count and stage statistics carry on.
func (r *Runner) SetScene(scene *Scene) {
	r.scene = scene
}

// Observe registers an observer called after every tick.
func (r *Runner) Observe(o Observer) {
	r.observers = append(r.observers, o)
	r.observerStats = append(r.observerStats, newStageStats(observerName(o)))
}

func observerName(o Observer) string {
	t := reflect.TypeOf(o)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// Once runs one tick with the given delta time and input. Observers still
// run when queued commands fail; the error is on the frame and returned.
func (r *Runner) Once(dt float64, in Input) error {
	keys := Capture(in)

	start := time.Now()
	err := r.scene.Update(dt, keys)
	r.sceneStats.record(time.Since(start))

	r.tick++
	frame := &Frame{
		Tick:      r.tick,
		DeltaTime: dt,
		Input:     keys,
		Scene:     r.scene,
		Err:       err,
	}

	for i, o := range r.observers {
		start := time.Now()
		o.Observe(frame)
		r.observerStats[i].record(time.Since(start))
	}
	return err
}

// Run ticks the scene at the given interval until the context is cancelled.
// Each tick uses the wall-clock time since the previous one and the input
// currently reported by src; a nil src runs with Neutral input. Command
// errors reach observers through Frame.Err.
func (r *Runner) Run(ctx context.Context, interval time.Duration, src InputSource) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now

			var in Input = Neutral
			if src != nil {
				in = src.Input()
			}
			_ = r.Once(dt, in)
		}
	}
}

// Stats returns timing statistics for every stage.
func (r *Runner) Stats() *RunnerStats {
	stats := &RunnerStats{
		Ticks:  r.tick,
		Stages: make([]StageStats, 0, len(r.observerStats)+1),
	}

	for _, internal := range append([]*stageStatsInternal{r.sceneStats}, r.observerStats...) {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.count > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.count)
		} else {
			minDuration = 0
		}

		stats.Stages = append(stats.Stages, StageStats{
			Name:          internal.name,
			Count:         internal.count,
			MinDuration:   minDuration,
			MaxDuration:   internal.maxDuration,
			AvgDuration:   avgDuration,
			LastDuration:  internal.lastDuration,
			TotalDuration: internal.totalDuration,
		})
	}

	return stats
}
