package main

import (
	"flag"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/duckpond/config"
	"github.com/plus3/duckpond/internal/host"
	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/pond/debugui"
	debugui_ebiten "github.com/plus3/duckpond/pond/debugui/ebiten"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	FieldOfView  = 60 // degrees, vertical
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.StringVar(&cfg.Placements, "placements", cfg.Placements, "Placement file; empty uses the built-in pond.")
	flag.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "Snapshot file restored on start and written with F5.")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for wandering paths.")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Goroutines updating wandering ducks.")
	flag.Parse()
	if cfg.Snapshot == "" {
		cfg.Snapshot = "duckpond.json.gz"
	}

	backend := debugui_ebiten.NewImguiBackend("Duck Pond", ScreenWidth, ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	catalog := newCatalog()
	scene, err := host.Scene(cfg, catalog)
	if scene == nil {
		log.Fatalf("Failed to create scene: %v", err)
	}
	if err != nil {
		log.Printf("Some ducks were skipped: %v", err)
	}
	log.Printf("Pond ready with %d ducks", scene.Len())

	runner := pond.NewRunner(scene)
	camera := pond.NewFollowCamera()
	runner.Observe(camera)

	game := &Game{
		runner:   runner,
		camera:   camera,
		backend:  backend,
		catalog:  catalog,
		snapshot: cfg.Snapshot,
		width:    ScreenWidth,
		height:   ScreenHeight,
	}
	game.overlay = debugui.NewDebugOverlay(runner, func(p mgl64.Vec3) (mgl64.Vec2, bool) {
		return camera.Project(p, game.projection(), game.width, game.height)
	})

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
