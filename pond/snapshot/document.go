// Package snapshot saves and restores whole scenes.
//
// A Document is plain data: it captures every duck's pose, label, id and
// behavior state together with the scene clock, so a restored scene continues
// exactly where the saved one stopped.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/duckpond/pond"
)

// Version is the document version written by Capture.
const Version = 1

var (
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	ErrUnknownBehavior    = errors.New("snapshot: unknown behavior")
)

// Behavior kinds stored in documents.
const (
	KindPlayer = "player"
	KindWander = "wander"
)

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

type Pose struct {
	Position Vec3    `json:"position"`
	Heading  float64 `json:"heading"`
	Scale    float64 `json:"scale"`
}

// Player is the state of a PlayerControlled behavior.
type Player struct {
	Tuning         pond.Tuning `json:"tuning"`
	Speed          float64     `json:"speed"`
	TurnRate       float64     `json:"turnRate"`
	Clock          float64     `json:"clock"`
	StatusDeadline float64     `json:"statusDeadline"`
	StatusArmed    bool        `json:"statusArmed"`
}

// Wander is the state of a Wander behavior. The path is rebuilt from its
// origin, heading and seed and advanced to Progress.
type Wander struct {
	Origin   Vec2    `json:"origin"`
	Heading  float64 `json:"heading"`
	Seed     uint64  `json:"seed"`
	Progress float64 `json:"progress"`
}

type Behavior struct {
	Kind   string  `json:"kind"`
	Player *Player `json:"player,omitempty"`
	Wander *Wander `json:"wander,omitempty"`
}

type Duck struct {
	Id       pond.DuckId `json:"id"`
	Label    string      `json:"label"`
	Pose     Pose        `json:"pose"`
	Behavior Behavior    `json:"behavior"`
}

type Document struct {
	Version   int         `json:"version"`
	Time      time.Time   `json:"time"`
	TimeScale string      `json:"timeScale"`
	Seed      uint64      `json:"seed"`
	NextId    pond.DuckId `json:"nextId"`
	Player    Duck        `json:"player"`
	Ducks     []Duck      `json:"ducks"`
}

// Capture records the scene. It fails on ducks driven by behaviors it
// cannot describe.
func Capture(scene *pond.Scene) (*Document, error) {
	doc := &Document{
		Version:   Version,
		Time:      scene.Time,
		TimeScale: scene.TimeScale.String(),
		Seed:      scene.Seed(),
		NextId:    scene.NextId(),
		Ducks:     make([]Duck, 0, scene.Len()),
	}

	player, err := captureDuck(scene.Player)
	if err != nil {
		return nil, err
	}
	doc.Player = player

	for d := range scene.Ducks() {
		duck, err := captureDuck(d)
		if err != nil {
			return nil, err
		}
		doc.Ducks = append(doc.Ducks, duck)
	}
	return doc, nil
}

func captureDuck(d *pond.Duck) (Duck, error) {
	duck := Duck{
		Id:    d.Id,
		Label: d.Label,
		Pose: Pose{
			Position: Vec3{d.Pose.Position.X(), d.Pose.Position.Y(), d.Pose.Position.Z()},
			Heading:  d.Pose.Heading,
			Scale:    d.Pose.Scale,
		},
	}

	switch b := d.Behavior().(type) {
	case *pond.PlayerControlled:
		duck.Behavior = Behavior{Kind: KindPlayer, Player: &Player{
			Tuning:         b.Tuning,
			Speed:          b.Speed,
			TurnRate:       b.TurnRate,
			Clock:          b.Clock,
			StatusDeadline: b.StatusDeadline,
			StatusArmed:    b.StatusArmed,
		}}
	case *pond.Wander:
		origin := b.Spline.Origin()
		duck.Behavior = Behavior{Kind: KindWander, Wander: &Wander{
			Origin:   Vec2{origin.X(), origin.Y()},
			Heading:  b.Spline.InitialHeading(),
			Seed:     b.Spline.Seed(),
			Progress: b.Spline.Progress(),
		}}
	default:
		return Duck{}, fmt.Errorf("%w: duck %d is driven by %T", ErrUnknownBehavior, d.Id, b)
	}
	return duck, nil
}

// Restore builds a new scene from the document, resolving duck assets
// through res.
func (doc *Document) Restore(res pond.Resources) (*pond.Scene, error) {
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	timeScale, err := time.ParseDuration(doc.TimeScale)
	if err != nil {
		return nil, fmt.Errorf("snapshot: time scale: %w", err)
	}

	cfg := pond.DefaultSceneConfig()
	cfg.Resources = res
	cfg.Start = doc.Time
	cfg.TimeScale = timeScale
	cfg.Seed = doc.Seed
	if doc.Player.Behavior.Player != nil {
		cfg.Tuning = doc.Player.Behavior.Player.Tuning
	}
	scene, err := pond.NewScene(cfg)
	if err != nil {
		return nil, err
	}

	player, err := doc.Player.restore(scene)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	if err := scene.SetPlayer(player); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	for _, dd := range doc.Ducks {
		d, err := dd.restore(scene)
		if err != nil {
			return nil, fmt.Errorf("duck %d: %w", dd.Id, err)
		}
		if err := scene.Add(d); err != nil {
			return nil, err
		}
	}
	scene.SetNextId(doc.NextId)
	return scene, nil
}

func (dd Duck) restore(scene *pond.Scene) (*pond.Duck, error) {
	behavior, err := dd.Behavior.restore()
	if err != nil {
		return nil, err
	}
	p := dd.Pose
	pose := pond.Pose{
		Position: mgl64.Vec3{p.Position.X, p.Position.Y, p.Position.Z},
		Heading:  p.Heading,
		Scale:    p.Scale,
	}
	d, err := scene.NewDuck(dd.Label, pose, behavior)
	if err != nil {
		return nil, err
	}
	d.Id = dd.Id
	return d, nil
}

func (b Behavior) restore() (pond.Behavior, error) {
	switch {
	case b.Kind == KindPlayer && b.Player != nil:
		control, err := pond.NewPlayerControlled(b.Player.Tuning)
		if err != nil {
			return nil, err
		}
		control.Speed = b.Player.Speed
		control.TurnRate = b.Player.TurnRate
		control.Clock = b.Player.Clock
		control.StatusDeadline = b.Player.StatusDeadline
		control.StatusArmed = b.Player.StatusArmed
		return control, nil
	case b.Kind == KindWander && b.Wander != nil:
		w := b.Wander
		spline := pond.NewSpline(mgl64.Vec2{w.Origin.X, w.Origin.Z}, w.Heading, w.Seed)
		spline.Advance(w.Progress)
		return pond.NewWander(spline), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBehavior, b.Kind)
	}
}
