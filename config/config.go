// Package config loads host settings from the environment, optionally seeded
// from .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvAddr           = "DUCKPOND_ADDR"
	EnvTickRate       = "DUCKPOND_TICK_RATE"
	EnvBroadcastEvery = "DUCKPOND_BROADCAST_EVERY"
	EnvPlacements     = "DUCKPOND_PLACEMENTS"
	EnvSnapshot       = "DUCKPOND_SNAPSHOT"
	EnvTimeScale      = "DUCKPOND_TIME_SCALE"
	EnvSeed           = "DUCKPOND_SEED"
	EnvWorkers        = "DUCKPOND_WORKERS"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	// Addr is where the spectator server listens.
	Addr string
	// TickRate is how many times per second the scene advances.
	TickRate int
	// BroadcastEvery sends the scene to spectators every n ticks.
	BroadcastEvery int
	// Placements is a placement file spawned into a new scene. Empty uses
	// the host's built-in layout.
	Placements string
	// Snapshot is restored on start when it exists and written on shutdown.
	Snapshot string

	TimeScale time.Duration
	Seed      uint64
	Workers   int
}

func Default() Config {
	return Config{
		Addr:           ":8080",
		TickRate:       60,
		BroadcastEvery: 3,
		TimeScale:      time.Minute,
		Workers:        1,
	}
}

// TickInterval is the time between ticks.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalid, EnvAddr))
	}
	if c.TickRate <= 0 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("%w: %s must be in 1..1000, got %d", ErrInvalid, EnvTickRate, c.TickRate))
	}
	if c.BroadcastEvery <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, EnvBroadcastEvery, c.BroadcastEvery))
	}
	if c.TimeScale <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, EnvTimeScale, c.TimeScale))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, EnvWorkers, c.Workers))
	}
	return errors.Join(errs...)
}

// Load reads the given .env files into the environment, without overriding
// variables that are already set, and builds a Config from the defaults and
// the DUCKPOND_* variables. Missing files are ignored; with no files a .env in
// the working directory is tried.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the defaults and the DUCKPOND_* variables.
func FromEnv() (Config, error) {
	c := Default()
	var errs []error

	if v, ok := os.LookupEnv(EnvAddr); ok {
		c.Addr = v
	}
	c.Placements = os.Getenv(EnvPlacements)
	c.Snapshot = os.Getenv(EnvSnapshot)

	parse := func(name string, fn func(string) error) {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			return
		}
		if err := fn(v); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalid, name, err))
		}
	}
	parse(EnvTickRate, func(v string) (err error) {
		c.TickRate, err = strconv.Atoi(v)
		return err
	})
	parse(EnvBroadcastEvery, func(v string) (err error) {
		c.BroadcastEvery, err = strconv.Atoi(v)
		return err
	})
	parse(EnvTimeScale, func(v string) (err error) {
		c.TimeScale, err = time.ParseDuration(v)
		return err
	})
	parse(EnvSeed, func(v string) (err error) {
		c.Seed, err = strconv.ParseUint(v, 10, 64)
		return err
	})
	parse(EnvWorkers, func(v string) (err error) {
		c.Workers, err = strconv.Atoi(v)
		return err
	})

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
