package pond

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// labelLift is the height of a duck's label above its position, in units of its scale.
const labelLift = 1.5

var (
	// Up is the vertical axis of the pond.
	Up = mgl64.Vec3{0, 1, 0}

	// nose is the direction a duck faces at heading zero.
	nose = mgl64.Vec3{-1, 0, 0}
)

// Pose is the position, heading and scale of a duck. Position.Y() is the
// ground level and stays at zero for ducks driven by the built-in behaviors.
type Pose struct {
	Position mgl64.Vec3
	Heading  float64
	Scale    float64
}

// NewPose places a duck on the ground at (x, z).
func NewPose(x, z, heading, scale float64) Pose {
	return Pose{
		Position: mgl64.Vec3{x, 0, z},
		Heading:  heading,
		Scale:    scale,
	}
}

// Validate rejects poses that cannot be simulated.
func (p Pose) Validate() error {
	if !(p.Scale > 0) || math.IsInf(p.Scale, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, p.Scale)
	}
	for i, v := range p.Position {
		if !finite(v) {
			return fmt.Errorf("%w: position[%d] %v", ErrNotFinite, i, v)
		}
	}
	if !finite(p.Heading) {
		return fmt.Errorf("%w: heading %v", ErrNotFinite, p.Heading)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Forward returns the unit vector the pose is facing, a rotation of the
// heading-zero direction about the vertical axis.
func (p Pose) Forward() mgl64.Vec3 {
	return Facing(p.Heading)
}

// LabelAnchor is where a duck's label floats: above the position, lifted
// proportionally to the scale.
func (p Pose) LabelAnchor() mgl64.Vec3 {
	return p.Position.Add(Up.Mul(labelLift * p.Scale))
}

// Ground returns the horizontal (x, z) components of the position.
func (p Pose) Ground() mgl64.Vec2 {
	return mgl64.Vec2{p.Position.X(), p.Position.Z()}
}

// Facing returns the direction a duck with the given heading (radians) faces.
func Facing(heading float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(heading).Mul3x1(nose)
}

// groundDirection is Facing projected on the (x, z) plane.
func groundDirection(heading float64) mgl64.Vec2 {
	f := Facing(heading)
	return mgl64.Vec2{f.X(), f.Z()}
}
