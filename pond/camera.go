package pond

import "github.com/go-gl/mathgl/mgl64"

// FollowCamera frames a duck from behind and above. It only reads the pose it
// is given.
type FollowCamera struct {
	TargetHeight float64 // look-at point above the duck
	Distance     float64 // how far behind the look-at point the eye sits
	Lift         float64 // extra eye height above the look-at point

	Target  mgl64.Vec3
	Eye     mgl64.Vec3
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Up      mgl64.Vec3
	View    mgl64.Mat4
}

// NewFollowCamera uses the classic framing: four units above the duck, ten
// behind, one higher.
func NewFollowCamera() *FollowCamera {
	return &FollowCamera{
		TargetHeight: 4,
		Distance:     10,
		Lift:         1,
		View:         mgl64.Ident4(),
	}
}

// Follow recomputes the view for a pose.
func (c *FollowCamera) Follow(p Pose) {
	facing := p.Forward()
	c.Target = p.Position.Add(Up.Mul(c.TargetHeight))
	c.Eye = c.Target.Sub(facing.Mul(c.Distance)).Add(Up.Mul(c.Lift))
	c.Forward = c.Target.Sub(c.Eye).Normalize()
	c.Right = c.Forward.Cross(Up).Normalize()
	c.Up = c.Right.Cross(c.Forward).Normalize()
	c.View = mgl64.LookAtV(c.Eye, c.Eye.Add(c.Forward), c.Up)
}

// Observe follows the scene's player after every tick.
func (c *FollowCamera) Observe(f *Frame) {
	c.Follow(f.Scene.PlayerPose())
}

// Project maps a world point to screen pixels, origin top left, through the
// view and proj matrices. It reports false for points behind the eye.
func (c *FollowCamera) Project(p mgl64.Vec3, proj mgl64.Mat4, width, height int) (mgl64.Vec2, bool) {
	clip := proj.Mul4(c.View).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl64.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl64.Vec2{
		(ndc.X() + 1) / 2 * float64(width),
		(1 - ndc.Y()) / 2 * float64(height),
	}, true
}
