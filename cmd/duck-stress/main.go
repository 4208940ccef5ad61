package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/duckpond/pond"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	duckCount := flag.Int("ducks", 10000, "The number of wandering ducks to spawn.")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Goroutines updating wandering ducks.")
	radius := flag.Float64("radius", 200, "Ducks are placed uniformly within this distance of the origin.")
	seed := flag.Uint64("seed", 1, "Seed for placements and paths.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting duck stress test...")

	cfg := pond.DefaultSceneConfig()
	cfg.Seed = *seed
	cfg.Workers = *workers
	scene, err := pond.NewScene(cfg)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}
	runner := pond.NewRunner(scene)
	camera := pond.NewFollowCamera()
	runner.Observe(camera)

	log.Printf("Spawning %d ducks...\n", *duckCount)
	rng := rand.New(rand.NewPCG(*seed, *seed))
	placements := make([]pond.Placement, *duckCount)
	for i := range placements {
		r := *radius * math.Sqrt(rng.Float64())
		a := rng.Float64() * 2 * math.Pi
		placements[i] = pond.Placement{
			Name:    fmt.Sprintf("duck-%d", i),
			X:       r * math.Cos(a),
			Z:       r * math.Sin(a),
			Heading: rng.Float64() * 2 * math.Pi,
			Scale:   0.5 + rng.Float64(),
		}
	}
	if _, err := scene.SpawnPlacements(placements); err != nil {
		log.Fatalf("Failed to spawn ducks: %v", err)
	}
	log.Println("Spawning complete.")

	report := &Report{
		Duration:       *duration,
		Ducks:          *duckCount,
		Workers:        scene.Workers(),
		GCPauseMetrics: *gcPauseMetrics,
	}

	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	// The player circles and quacks so every code path stays busy.
	in := pond.KeysOf(pond.Forward, pond.TurnLeft, pond.Signal)
	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			runner.Once(deltaTime.Seconds(), in)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Runner = runner.Stats()
	report.Scene = scene.CollectStats()
	runtime.ReadMemStats(&memEnd)
	report.Memory = MemoryBetween(&memStart, &memEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
