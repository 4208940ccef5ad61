package host_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/duckpond/config"
	"github.com/plus3/duckpond/internal/host"
	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/pond/placement"
	"github.com/plus3/duckpond/pond/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneUsesBuiltInLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 3
	cfg.TimeScale = time.Second

	scene, err := host.Scene(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, len(placement.Default()), scene.Len())
	assert.Equal(t, 3, scene.Workers())
	assert.Equal(t, time.Second, scene.TimeScale)
}

func TestSceneFromPlacementFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ducks.csv")
	require.NoError(t, os.WriteFile(path, []byte("Huey;1,1;0;1\nbad\n"), 0o644))
	cfg := config.Default()
	cfg.Placements = path

	scene, err := host.Scene(cfg, nil)
	require.Error(t, err, "the bad line is reported")
	require.NotNil(t, scene)
	assert.Equal(t, 1, scene.Len())

	cfg.Placements = filepath.Join(t.TempDir(), "missing.csv")
	_, err = host.Scene(cfg, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSceneRestoresSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Snapshot = filepath.Join(t.TempDir(), "pond.json.gz")

	fresh, err := host.Scene(cfg, nil)
	require.NoError(t, err, "a missing snapshot starts a new scene")
	_, err = fresh.Spawn("Extra", pond.NewPose(0, 0, 0, 1))
	require.NoError(t, err)
	require.NoError(t, snapshot.Save(cfg.Snapshot, fresh))

	cfg.Workers = 2
	restored, err := host.Scene(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, fresh.Len(), restored.Len())
	assert.Equal(t, 2, restored.Workers())

	require.NoError(t, os.WriteFile(cfg.Snapshot, []byte("not gzip"), 0o644))
	_, err = host.Scene(cfg, nil)
	assert.Error(t, err)
}
