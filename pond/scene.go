package pond

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/kamstrup/intmap"
	"golang.org/x/sync/errgroup"
)

// PlayerId is the id given to the player duck of a new scene.
const PlayerId DuckId = 1

// SceneConfig configures a new Scene.
type SceneConfig struct {
	// Resources resolves duck assets. Nil runs headless with empty handles.
	Resources Resources
	// Tuning drives the player duck.
	Tuning Tuning
	// Start is the initial simulated time. Zero means now.
	Start time.Time
	// TimeScale is the simulated time that passes per second of update time.
	TimeScale time.Duration
	// Seed derives the paths of spawned autonomous ducks.
	Seed uint64
	// Workers above one updates autonomous ducks in parallel batches.
	Workers int
}

// DefaultSceneConfig runs one simulated minute per second, single threaded.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Tuning:    DefaultTuning(),
		TimeScale: time.Minute,
		Workers:   1,
	}
}

// Scene owns the player duck, the autonomous ducks and the simulated clock.
// It is not safe for concurrent use; one goroutine drives Update and queues
// structural changes made from elsewhere through Commands.
type Scene struct {
	Player    *Duck
	Time      time.Time
	TimeScale time.Duration

	ducks  []*Duck
	slots  *intmap.Map[DuckId, int]
	nextId DuckId

	seed      uint64
	workers   int
	resources Resources
	commands  *Commands
}

// NewScene creates a scene holding only the player duck, unlabeled at the
// origin.
func NewScene(cfg SceneConfig) (*Scene, error) {
	if cfg.TimeScale <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeScale, cfg.TimeScale)
	}
	control, err := NewPlayerControlled(cfg.Tuning)
	if err != nil {
		return nil, err
	}
	start := cfg.Start
	if start.IsZero() {
		start = time.Now()
	}

	s := &Scene{
		Time:      start,
		TimeScale: cfg.TimeScale,
		slots:     intmap.New[DuckId, int](64),
		nextId:    PlayerId,
		seed:      cfg.Seed,
		resources: cfg.Resources,
		commands:  newCommands(),
	}
	s.SetWorkers(cfg.Workers)

	player, err := s.NewDuck("", NewPose(0, 0, 0, 1), control)
	if err != nil {
		return nil, err
	}
	if err := s.SetPlayer(player); err != nil {
		return nil, err
	}
	return s, nil
}

// Update advances the clock by dt scaled by TimeScale, then every duck by dt.
// The player receives in, autonomous ducks receive Neutral. Commands queued
// before or during the tick are applied afterwards and the returned error
// joins those that could not be. Non-positive dt, and dt so large the clock
// cannot represent it, advances nothing.
func (s *Scene) Update(dt float64, in Input) error {
	if dt > 0 {
		if scaled := dt * float64(s.TimeScale); scaled < maxScaledTick {
			s.Time = s.Time.Add(time.Duration(scaled))
			s.Player.Update(dt, in)
			s.updateDucks(dt)
		}
	}
	return s.commands.Flush(s)
}

// maxScaledTick is 2^63 nanoseconds, the first value a Duration cannot hold.
const maxScaledTick = float64(math.MaxInt64)

func (s *Scene) updateDucks(dt float64) {
	if s.workers <= 1 || len(s.ducks) < 2*s.workers {
		for _, d := range s.ducks {
			d.Update(dt, Neutral)
		}
		return
	}

	batch := (len(s.ducks) + s.workers - 1) / s.workers
	var g errgroup.Group
	for start := 0; start < len(s.ducks); start += batch {
		part := s.ducks[start:min(start+batch, len(s.ducks))]
		g.Go(func() error {
			for _, d := range part {
				d.Update(dt, Neutral)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// SetWorkers sets how many goroutines update autonomous ducks.
func (s *Scene) SetWorkers(n int) {
	s.workers = max(n, 1)
}

func (s *Scene) Workers() int {
	return s.workers
}

// NewDuck builds a duck with the scene's resources without adding it.
func (s *Scene) NewDuck(label string, pose Pose, behavior Behavior) (*Duck, error) {
	return NewDuck(label, pose, behavior, s.resources)
}

// SetPlayer replaces the player duck. A zero id is assigned the next free one;
// an id already used by an autonomous duck is rejected.
func (s *Scene) SetPlayer(d *Duck) error {
	if d.Id == 0 {
		d.Id = s.allocateId()
	} else {
		if _, ok := s.slots.Get(d.Id); ok {
			return fmt.Errorf("%w: %d", ErrDuplicateDuck, d.Id)
		}
		s.reserveId(d.Id)
	}
	s.Player = d
	return nil
}

// Add inserts an autonomous duck, assigning an id when it has none.
func (s *Scene) Add(d *Duck) error {
	if d.Id == 0 {
		d.Id = s.allocateId()
	} else {
		if _, ok := s.Duck(d.Id); ok {
			return fmt.Errorf("%w: %d", ErrDuplicateDuck, d.Id)
		}
		s.reserveId(d.Id)
	}
	s.slots.Put(d.Id, len(s.ducks))
	s.ducks = append(s.ducks, d)
	return nil
}

// Spawn adds an autonomous duck that wanders from pose.
func (s *Scene) Spawn(label string, pose Pose) (*Duck, error) {
	id := s.nextId
	d, err := s.NewDuck(label, pose, WanderFrom(pose, s.duckSeed(id)))
	if err != nil {
		return nil, err
	}
	d.Id = id
	if err := s.Add(d); err != nil {
		return nil, err
	}
	return d, nil
}

// SpawnPlacements spawns a wandering duck per placement. Invalid entries are
// skipped and reported together; the valid ones are still spawned.
func (s *Scene) SpawnPlacements(placements []Placement) ([]*Duck, error) {
	spawned := make([]*Duck, 0, len(placements))
	var errs []error
	for i, p := range placements {
		d, err := s.Spawn(p.Name, p.Pose())
		if err != nil {
			errs = append(errs, fmt.Errorf("placement %d (%s): %w", i, p.Name, err))
			continue
		}
		spawned = append(spawned, d)
	}
	return spawned, errors.Join(errs...)
}

// Remove deletes an autonomous duck. The last duck takes its slot.
func (s *Scene) Remove(id DuckId) bool {
	slot, ok := s.slots.Get(id)
	if !ok {
		return false
	}
	last := len(s.ducks) - 1
	if slot != last {
		moved := s.ducks[last]
		s.ducks[slot] = moved
		s.slots.Put(moved.Id, slot)
	}
	s.ducks[last] = nil
	s.ducks = s.ducks[:last]
	s.slots.Del(id)
	return true
}

// Duck finds a duck, the player included, by id.
func (s *Scene) Duck(id DuckId) (*Duck, bool) {
	if s.Player != nil && s.Player.Id == id {
		return s.Player, true
	}
	slot, ok := s.slots.Get(id)
	if !ok {
		return nil, false
	}
	return s.ducks[slot], true
}

// Len is the number of autonomous ducks.
func (s *Scene) Len() int {
	return len(s.ducks)
}

// Ducks iterates the autonomous ducks.
func (s *Scene) Ducks() iter.Seq[*Duck] {
	return func(yield func(*Duck) bool) {
		for _, d := range s.ducks {
			if !yield(d) {
				return
			}
		}
	}
}

// All iterates every duck, player first.
func (s *Scene) All() iter.Seq[*Duck] {
	return func(yield func(*Duck) bool) {
		if s.Player != nil && !yield(s.Player) {
			return
		}
		for _, d := range s.ducks {
			if !yield(d) {
				return
			}
		}
	}
}

// PlayerPose returns a copy of the player's pose for cameras and other
// read-only consumers.
func (s *Scene) PlayerPose() Pose {
	return s.Player.Pose
}

// Commands returns the buffer of changes applied after the next tick.
func (s *Scene) Commands() *Commands {
	return s.commands
}

// NextId is the id the next added duck without one will receive.
func (s *Scene) NextId() DuckId {
	return s.nextId
}

// SetNextId raises the id the next added duck will receive to at least id.
// Ids are never handed out twice, so it cannot be lowered.
func (s *Scene) SetNextId(id DuckId) {
	if id > s.nextId {
		s.nextId = id
	}
}

// Seed is the seed autonomous duck paths are derived from.
func (s *Scene) Seed() uint64 {
	return s.seed
}

// SetBehavior swaps the behavior of any duck immediately. Use Commands to
// swap from inside a tick.
func (s *Scene) SetBehavior(id DuckId, b Behavior) error {
	d, ok := s.Duck(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrDuckNotFound, id)
	}
	d.SetBehavior(b)
	return nil
}

func (s *Scene) allocateId() DuckId {
	id := s.nextId
	s.nextId++
	return id
}

func (s *Scene) reserveId(id DuckId) {
	if id >= s.nextId {
		s.nextId = id + 1
	}
}

// duckSeed mixes the scene seed with a duck id (splitmix64 finalizer).
func (s *Scene) duckSeed(id DuckId) uint64 {
	z := s.seed + uint64(id)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
