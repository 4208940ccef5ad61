package pond_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/duckpond/pond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickCounter struct {
	frames []pond.Frame
}

func (c *tickCounter) Observe(f *pond.Frame) {
	c.frames = append(c.frames, *f)
}

func TestRunnerOnce(t *testing.T) {
	scene := newScene(t, 0)
	runner := pond.NewRunner(scene)
	assert.Same(t, scene, runner.Scene())

	counter := &tickCounter{}
	var labels []string
	runner.Observe(counter)
	runner.Observe(pond.ObserverFunc(func(f *pond.Frame) {
		labels = append(labels, f.Scene.Player.Label)
	}))

	runner.Once(0.1, pond.KeysOf(pond.Signal))
	runner.Once(0.1, pond.Neutral)

	require.Len(t, counter.frames, 2)
	assert.Equal(t, int64(1), counter.frames[0].Tick)
	assert.Equal(t, 0.1, counter.frames[0].DeltaTime)
	assert.Equal(t, pond.KeysOf(pond.Signal), counter.frames[0].Input)
	assert.Equal(t, []string{"Quack", "Quack"}, labels, "observers see the finished tick")

	stats := runner.Stats()
	assert.Equal(t, int64(2), stats.Ticks)
	require.Len(t, stats.Stages, 3)
	assert.Equal(t, "Scene", stats.Stages[0].Name)
	assert.Equal(t, "tickCounter", stats.Stages[1].Name)
	for _, stage := range stats.Stages {
		assert.Equal(t, int64(2), stage.Count)
		assert.LessOrEqual(t, stage.MinDuration, stage.MaxDuration)
		assert.Equal(t, stage.TotalDuration/2, stage.AvgDuration)
	}
}

func TestRunnerStatsBeforeFirstTick(t *testing.T) {
	runner := pond.NewRunner(newScene(t, 0))
	stats := runner.Stats()
	require.Len(t, stats.Stages, 1)
	assert.Equal(t, time.Duration(0), stats.Stages[0].MinDuration)
	assert.Equal(t, time.Duration(0), stats.Stages[0].AvgDuration)
}

func TestRunnerRunStopsOnCancel(t *testing.T) {
	scene := newScene(t, 0)
	runner := pond.NewRunner(scene)
	counter := &tickCounter{}
	runner.Observe(counter)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx, time.Millisecond, pond.InputFunc(func() pond.Input {
			return pond.KeysOf(pond.Forward)
		}))
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	assert.NotEmpty(t, counter.frames)
	assert.Equal(t, pond.KeysOf(pond.Forward), counter.frames[0].Input)
	assert.Less(t, scene.Player.Pose.Position.X(), 0.0, "forward input moved the player")
}

func TestRunnerSetScene(t *testing.T) {
	first := newScene(t, 0)
	second := newScene(t, 0)
	runner := pond.NewRunner(first)
	counter := &tickCounter{}
	runner.Observe(counter)

	runner.Once(0.1, pond.Neutral)
	runner.SetScene(second)
	runner.Once(0.1, pond.KeysOf(pond.Signal))

	assert.Same(t, second, runner.Scene())
	require.Len(t, counter.frames, 2)
	assert.Same(t, second, counter.frames[1].Scene)
	assert.Equal(t, int64(2), counter.frames[1].Tick)
	assert.Equal(t, "", first.Player.Label)
	assert.Equal(t, "Quack", second.Player.Label)
}
