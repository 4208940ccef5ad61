package pond

import "github.com/go-gl/mathgl/mgl64"

// DuckId identifies a duck within a scene. Zero means unassigned.
type DuckId uint64

// Duck is a simulated mobile entity: a pose, a label, drawing handles, and
// exactly one active Behavior.
type Duck struct {
	Id    DuckId
	Label string
	Pose  Pose

	Mesh    Handle
	Texture Handle

	behavior Behavior
}

// NewDuck creates a duck driven by behavior, resolving its assets through res.
// A nil res leaves the handles empty.
func NewDuck(label string, pose Pose, behavior Behavior, res Resources) (*Duck, error) {
	if behavior == nil {
		panic("pond: duck requires a behavior")
	}
	if err := pose.Validate(); err != nil {
		return nil, err
	}
	mesh, texture, err := loadDuckAssets(res)
	if err != nil {
		return nil, err
	}
	return &Duck{
		Label:    label,
		Pose:     pose,
		Mesh:     mesh,
		Texture:  texture,
		behavior: behavior,
	}, nil
}

// Update advances the duck through its behavior.
func (d *Duck) Update(dt float64, in Input) {
	d.behavior.Update(d, dt, in)
}

// Behavior returns the active behavior.
func (d *Duck) Behavior() Behavior {
	return d.behavior
}

// Detacher is implemented by behaviors that leave state on the duck which
// must be undone when they are swapped out.
type Detacher interface {
	Detach(d *Duck)
}

// SetBehavior installs b after resetting it. Nothing carries over from the
// previous behavior; one implementing Detacher is detached first.
func (d *Duck) SetBehavior(b Behavior) {
	if b == nil {
		panic("pond: duck requires a behavior")
	}
	if old, ok := d.behavior.(Detacher); ok {
		old.Detach(d)
	}
	b.Reset()
	d.behavior = b
}

// LabelAnchor is where the duck's label is drawn.
func (d *Duck) LabelAnchor() mgl64.Vec3 {
	return d.Pose.LabelAnchor()
}
