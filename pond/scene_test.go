package pond_test

import (
	"fmt"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/plus3/duckpond/pond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newScene(t testing.TB, seed uint64) *pond.Scene {
	t.Helper()
	cfg := pond.DefaultSceneConfig()
	cfg.Start = epoch
	cfg.Seed = seed
	scene, err := pond.NewScene(cfg)
	require.NoError(t, err)
	return scene
}

func TestNewScene(t *testing.T) {
	scene := newScene(t, 0)

	require.NotNil(t, scene.Player)
	assert.Equal(t, pond.PlayerId, scene.Player.Id)
	assert.Empty(t, scene.Player.Label)
	assert.IsType(t, &pond.PlayerControlled{}, scene.Player.Behavior())
	assert.Equal(t, 0, scene.Len())
	assert.Equal(t, epoch, scene.Time)

	cfg := pond.DefaultSceneConfig()
	cfg.TimeScale = 0
	_, err := pond.NewScene(cfg)
	assert.ErrorIs(t, err, pond.ErrInvalidTimeScale)

	cfg = pond.DefaultSceneConfig()
	cfg.Tuning.TopSpeed = -1
	_, err = pond.NewScene(cfg)
	assert.ErrorIs(t, err, pond.ErrInvalidTuning)
}

func TestSceneClockScalesElapsedTime(t *testing.T) {
	scene := newScene(t, 0)

	scene.Update(1.5, pond.Neutral)
	assert.Equal(t, epoch.Add(90*time.Second), scene.Time)

	scene.Update(-1, pond.Neutral)
	scene.Update(0, pond.Neutral)
	scene.Update(math.NaN(), pond.Neutral)
	assert.Equal(t, epoch.Add(90*time.Second), scene.Time)
}

func TestSceneIgnoresUnrepresentableElapsedTime(t *testing.T) {
	scene := newScene(t, 0)
	before := scene.PlayerPose()

	for _, dt := range []float64{1e12, math.MaxFloat64, math.Inf(1)} {
		require.NoError(t, scene.Update(dt, pond.KeysOf(pond.Forward)))
		assert.Equal(t, epoch, scene.Time, "dt %v", dt)
	}
	assert.Equal(t, before, scene.PlayerPose())
}

func TestSetPlayerRejectsAutonomousId(t *testing.T) {
	scene := newScene(t, 0)
	player := scene.Player
	d, err := scene.Spawn("Huey", pond.NewPose(1, 1, 0, 1))
	require.NoError(t, err)

	assert.ErrorIs(t, scene.SetPlayer(d), pond.ErrDuplicateDuck)
	assert.Same(t, player, scene.Player)

	other, err := scene.NewDuck("Dewey", pond.NewPose(0, 0, 0, 1), &recorder{})
	require.NoError(t, err)
	require.NoError(t, scene.SetPlayer(other))
	assert.Same(t, other, scene.Player)
	assert.NotEqual(t, d.Id, other.Id)
}

func TestSceneInputReachesOnlyPlayer(t *testing.T) {
	scene := newScene(t, 0)
	player := &recorder{}
	scene.Player.SetBehavior(player)

	ducks := make([]*recorder, 3)
	for i := range ducks {
		ducks[i] = &recorder{}
		d, err := scene.NewDuck("d", pond.NewPose(0, 0, 0, 1), ducks[i])
		require.NoError(t, err)
		require.NoError(t, scene.Add(d))
	}

	held := pond.KeysOf(pond.Forward, pond.Signal)
	scene.Update(0.25, held)

	assert.Equal(t, held, player.last)
	for _, r := range ducks {
		assert.Equal(t, 1, r.updates)
		assert.Equal(t, pond.Neutral, r.last)
		assert.Equal(t, []float64{0.25}, r.dts)
	}
}

func TestSceneFrameRateIndependentWander(t *testing.T) {
	stepped := newScene(t, 11)
	whole := newScene(t, 11)

	a, err := stepped.Spawn("Huey", pond.NewPose(4, -2, 0.3, 1))
	require.NoError(t, err)
	b, err := whole.Spawn("Huey", pond.NewPose(4, -2, 0.3, 1))
	require.NoError(t, err)

	for range 10 {
		stepped.Update(0.1, pond.Neutral)
	}
	whole.Update(1.0, pond.Neutral)

	assert.InDelta(t, b.Pose.Position.X(), a.Pose.Position.X(), 1e-9)
	assert.InDelta(t, b.Pose.Position.Z(), a.Pose.Position.Z(), 1e-9)
	assert.InDelta(t, b.Pose.Heading, a.Pose.Heading, 1e-9)
	assert.WithinDuration(t, whole.Time, stepped.Time, time.Millisecond)
}

func TestSceneParallelMatchesSerial(t *testing.T) {
	serial := newScene(t, 5)
	parallel := newScene(t, 5)
	parallel.SetWorkers(4)
	assert.Equal(t, 4, parallel.Workers())

	for i := range 64 {
		pose := pond.NewPose(float64(i), float64(-i), float64(i)*0.1, 1)
		_, err := serial.Spawn("d", pose)
		require.NoError(t, err)
		_, err = parallel.Spawn("d", pose)
		require.NoError(t, err)
	}

	in := pond.KeysOf(pond.Forward, pond.TurnRight)
	for range 120 {
		serial.Update(1.0/60, in)
		parallel.Update(1.0/60, in)
	}

	want := slices.Collect(serial.All())
	got := slices.Collect(parallel.All())
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Id, got[i].Id)
		assert.Equal(t, want[i].Pose, got[i].Pose)
	}
}

func TestSceneSpawnPlacements(t *testing.T) {
	scene := newScene(t, 0)

	spawned, err := scene.SpawnPlacements([]pond.Placement{
		{Name: "Huey", X: 1, Z: 2, Heading: 0, Scale: 1},
		{Name: "Dewey", X: 3, Z: 4, Heading: 1, Scale: 0},
		{Name: "Louie", X: 5, Z: 6, Heading: 2, Scale: 0.5},
	})

	assert.ErrorIs(t, err, pond.ErrInvalidScale)
	assert.ErrorContains(t, err, "Dewey")
	require.Len(t, spawned, 2)
	assert.Equal(t, 2, scene.Len())

	assert.Equal(t, "Huey", spawned[0].Label)
	assert.Equal(t, pond.NewPose(1, 2, 0, 1), spawned[0].Pose)
	assert.Equal(t, "Louie", spawned[1].Label)
	assert.IsType(t, &pond.Wander{}, spawned[1].Behavior())
}

func TestSceneLookupAndRemove(t *testing.T) {
	scene := newScene(t, 0)
	var ids []pond.DuckId
	for _, name := range []string{"a", "b", "c", "d"} {
		d, err := scene.Spawn(name, pond.NewPose(0, 0, 0, 1))
		require.NoError(t, err)
		ids = append(ids, d.Id)
	}
	assert.Equal(t, []pond.DuckId{2, 3, 4, 5}, ids)

	player, ok := scene.Duck(pond.PlayerId)
	require.True(t, ok)
	assert.Same(t, scene.Player, player)

	assert.True(t, scene.Remove(ids[1]))
	assert.False(t, scene.Remove(ids[1]))
	assert.False(t, scene.Remove(pond.PlayerId), "the player is not removable")

	_, ok = scene.Duck(ids[1])
	assert.False(t, ok)
	for _, id := range []pond.DuckId{ids[0], ids[2], ids[3]} {
		d, ok := scene.Duck(id)
		require.True(t, ok)
		assert.Equal(t, id, d.Id)
	}
	assert.Equal(t, 3, scene.Len())

	var labels []string
	for d := range scene.All() {
		labels = append(labels, d.Label)
	}
	assert.Equal(t, []string{"", "a", "d", "c"}, labels)
}

func TestSceneAddKeepsIds(t *testing.T) {
	scene := newScene(t, 0)

	d, err := scene.NewDuck("x", pond.NewPose(0, 0, 0, 1), &recorder{})
	require.NoError(t, err)
	d.Id = 40
	require.NoError(t, scene.Add(d))
	assert.Equal(t, pond.DuckId(41), scene.NextId())

	dup, err := scene.NewDuck("y", pond.NewPose(0, 0, 0, 1), &recorder{})
	require.NoError(t, err)
	dup.Id = 40
	assert.ErrorIs(t, scene.Add(dup), pond.ErrDuplicateDuck)

	dup.Id = pond.PlayerId
	assert.ErrorIs(t, scene.Add(dup), pond.ErrDuplicateDuck)
}

func TestSceneCollectStats(t *testing.T) {
	scene := newScene(t, 0)
	_, err := scene.Spawn("a", pond.NewPose(0, 0, 0, 1))
	require.NoError(t, err)
	_, err = scene.Spawn("b", pond.NewPose(0, 0, 0, 1))
	require.NoError(t, err)

	stats := scene.CollectStats()
	assert.Equal(t, 3, stats.DuckCount)
	assert.Equal(t, map[string]int{"player": 1, "wander": 2}, stats.Behaviors)
	assert.Equal(t, 2, stats.Labeled)
	assert.Equal(t, epoch, stats.Time)
}

func BenchmarkSceneUpdate(b *testing.B) {
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			scene := newScene(b, 1)
			scene.SetWorkers(workers)
			for i := range 10000 {
				if _, err := scene.Spawn("d", pond.NewPose(float64(i), 0, 0, 1)); err != nil {
					b.Fatal(err)
				}
			}
			for b.Loop() {
				scene.Update(1.0/60, pond.Neutral)
			}
		})
	}
}
