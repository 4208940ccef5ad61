// Package host builds the scene the duckpond programs start from.
package host

import (
	"errors"
	"fmt"
	"os"

	"github.com/plus3/duckpond/config"
	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/pond/placement"
	"github.com/plus3/duckpond/pond/snapshot"
)

// SceneConfig maps host settings onto a scene configuration.
func SceneConfig(cfg config.Config, res pond.Resources) pond.SceneConfig {
	sc := pond.DefaultSceneConfig()
	sc.Resources = res
	sc.TimeScale = cfg.TimeScale
	sc.Seed = cfg.Seed
	sc.Workers = cfg.Workers
	return sc
}

// Scene restores cfg.Snapshot when that file exists. Otherwise it creates a
// scene and spawns cfg.Placements, or the built-in layout when none is set.
// Placement lines that fail to parse or spawn are reported in the returned
// error alongside a usable scene.
func Scene(cfg config.Config, res pond.Resources) (*pond.Scene, error) {
	if cfg.Snapshot != "" {
		scene, err := snapshot.Load(cfg.Snapshot, res)
		switch {
		case err == nil:
			scene.SetWorkers(cfg.Workers)
			return scene, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("restore %s: %w", cfg.Snapshot, err)
		}
	}

	scene, err := pond.NewScene(SceneConfig(cfg, res))
	if err != nil {
		return nil, err
	}

	placements := placement.Default()
	var loadErr error
	if cfg.Placements != "" {
		placements, loadErr = placement.Load(cfg.Placements)
		if placements == nil && loadErr != nil {
			return nil, loadErr
		}
	}
	_, spawnErr := scene.SpawnPlacements(placements)
	return scene, errors.Join(loadErr, spawnErr)
}
