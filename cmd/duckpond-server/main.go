package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plus3/duckpond/config"
	"github.com/plus3/duckpond/internal/host"
	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/pond/snapshot"
	"github.com/plus3/duckpond/stream"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address.")
	flag.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "Snapshot restored on start and written on shutdown.")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	scene, err := host.Scene(cfg, nil)
	if scene == nil {
		log.Fatalf("Failed to create scene: %v", err)
	}
	if err != nil {
		log.Printf("Scene created with errors: %v", err)
	}
	log.Printf("Pond ready: %d ducks, seed %d", scene.Len(), scene.Seed())

	hub := stream.NewHub(cfg.BroadcastEvery)
	runner := pond.NewRunner(scene)
	runner.Observe(hub)
	runner.Observe(pond.ObserverFunc(func(f *pond.Frame) {
		if f.Err != nil {
			log.Printf("Tick %d: %v", f.Tick, f.Err)
		}
	}))

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	server := &http.Server{Addr: cfg.Addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		runner.Run(ctx, cfg.TickInterval(), hub)
		return nil
	})
	g.Go(func() error {
		log.Printf("Listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped: %v", err)
	}

	if cfg.Snapshot != "" {
		if err := snapshot.Save(cfg.Snapshot, runner.Scene()); err != nil {
			log.Fatalf("Failed to save snapshot: %v", err)
		}
		log.Printf("Saved %s", cfg.Snapshot)
	}
}
