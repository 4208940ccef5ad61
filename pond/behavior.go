package pond

import "github.com/go-gl/mathgl/mgl64"

// Behavior moves a duck. It is the only code that changes a duck's pose, and
// it reads nothing but the duck it is given, so ducks can be updated in any
// order or in parallel.
type Behavior interface {
	// Update advances the duck by dt seconds. Non-positive dt is a no-op.
	Update(d *Duck, dt float64, in Input)

	// Reset drops all accumulated state, returning the behavior to the state
	// it had when constructed.
	Reset()
}

// Wander moves a duck along a Spline, ignoring input.
type Wander struct {
	Spline *Spline
}

func NewWander(spline *Spline) *Wander {
	return &Wander{Spline: spline}
}

// WanderFrom starts a wandering path at the duck's current pose.
func WanderFrom(p Pose, seed uint64) *Wander {
	return NewWander(NewSpline(p.Ground(), p.Heading, seed))
}

func (w *Wander) Update(d *Duck, dt float64, _ Input) {
	if !(dt > 0) {
		return
	}
	w.Spline.Advance(dt)
	pos := w.Spline.Position()
	d.Pose.Position = mgl64.Vec3{pos.X(), 0, pos.Y()}
	d.Pose.Heading = w.Spline.Heading()
}

func (w *Wander) Reset() {
	w.Spline.Reset()
}

// BehaviorName is a short label for the behavior's kind.
func BehaviorName(b Behavior) string {
	switch b.(type) {
	case *PlayerControlled:
		return "player"
	case *Wander:
		return "wander"
	case nil:
		return "none"
	default:
		return "custom"
	}
}
