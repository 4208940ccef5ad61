package pond_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/duckpond/pond"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-9), "want %v, got %v", want, got)
}

func TestFollowCameraFramesFromBehind(t *testing.T) {
	cam := pond.NewFollowCamera()
	cam.Follow(pond.NewPose(5, 2, 0, 1))

	assertVec(t, mgl64.Vec3{5, 4, 2}, cam.Target)
	// Heading zero faces -x, so the eye sits ten units toward +x and one higher.
	assertVec(t, mgl64.Vec3{15, 5, 2}, cam.Eye)
	assertVec(t, mgl64.Vec3{-10, -1, 0}.Normalize(), cam.Forward)

	assert.InDelta(t, 0, cam.Forward.Dot(cam.Up), 1e-9)
	assert.InDelta(t, 0, cam.Forward.Dot(cam.Right), 1e-9)
	assert.Greater(t, cam.Up.Y(), 0.0)

	// The target lands straight ahead of the eye in view space.
	target := cam.View.Mul4x1(cam.Target.Vec4(1))
	assert.InDelta(t, 0, target.X(), 1e-9)
	assert.InDelta(t, 0, target.Y(), 1e-9)
	assert.Less(t, target.Z(), 0.0)
}

func TestFollowCameraTracksPlayer(t *testing.T) {
	scene := newScene(t, 0)
	runner := pond.NewRunner(scene)
	cam := pond.NewFollowCamera()
	runner.Observe(cam)

	scene.Player.Pose.Heading = math.Pi / 2
	runner.Once(0.5, pond.KeysOf(pond.Forward))

	pose := scene.PlayerPose()
	assertVec(t, pose.Position.Add(mgl64.Vec3{0, 4, 0}), cam.Target)
	assertVec(t, cam.Target.Sub(pose.Forward().Mul(10)).Add(mgl64.Vec3{0, 1, 0}), cam.Eye)
}

func TestFollowCameraProject(t *testing.T) {
	cam := pond.NewFollowCamera()
	pose := pond.NewPose(2, -3, 1, 1)
	cam.Follow(pose)
	proj := mgl64.Perspective(mgl64.DegToRad(60), 16.0/9.0, 0.1, 500)

	center, ok := cam.Project(cam.Target, proj, 1280, 720)
	assert.True(t, ok)
	assert.InDelta(t, 640, center.X(), 1e-6)
	assert.InDelta(t, 360, center.Y(), 1e-6)

	duck, ok := cam.Project(pose.Position, proj, 1280, 720)
	assert.True(t, ok)
	assert.InDelta(t, 640, duck.X(), 1e-6)
	assert.Greater(t, duck.Y(), center.Y(), "the duck sits below the look-at point")

	_, ok = cam.Project(cam.Eye.Sub(pose.Forward()), proj, 1280, 720)
	assert.False(t, ok)
}
