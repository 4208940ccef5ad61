package pond

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// epicycle is one rotating term of a Spline, in the spline's local frame.
type epicycle struct {
	radius float64
	rate   float64 // radians per second, signed
	phase  float64
}

func (e epicycle) angle(t float64) float64 {
	return e.rate*t + e.phase
}

// tangentAngle is the direction of the term's velocity. A negative rate turns
// the velocity around.
func (e epicycle) tangentAngle(t float64) float64 {
	a := e.angle(t)
	if e.rate < 0 {
		a += math.Pi
	}
	return a
}

func (e epicycle) speed() float64 {
	return e.radius * math.Abs(e.rate)
}

// Spline generates a wandering path for autonomous ducks. The path is a sum
// of circular terms: a dominant loop plus smaller wobbles whose combined speed
// stays below the loop's, so the direction of travel never strays more than
// 90 degrees from the loop's tangent. Position and heading are pure functions
// of progress, origin, initial heading and seed.
type Spline struct {
	origin  mgl64.Vec2
	heading float64
	seed    uint64

	progress float64

	terms [3]epicycle
	base  float64 // rotation from the local frame to headings
	start float64 // local tangent angle at progress zero
}

// NewSpline starts a path at origin (x, z) facing heading. The path shape is
// drawn once from seed.
func NewSpline(origin mgl64.Vec2, heading float64, seed uint64) *Spline {
	s := &Spline{
		origin:  origin,
		heading: heading,
		seed:    seed,
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	sign := func() float64 {
		if rng.IntN(2) == 0 {
			return -1
		}
		return 1
	}

	radius := 3 + 3*rng.Float64()
	speed := 0.8 + 0.8*rng.Float64()
	loopRate := sign() * speed / radius
	s.terms[0] = epicycle{radius: radius, rate: loopRate, phase: 2 * math.Pi * rng.Float64()}

	wobbles := [2]struct{ share, lo, hi float64 }{
		{share: 0.15 + 0.2*rng.Float64(), lo: 2.3, hi: 3.7},
		{share: 0.05 + 0.2*rng.Float64(), lo: 4.1, hi: 6.3},
	}
	for i, w := range wobbles {
		rate := sign() * math.Abs(loopRate) * (w.lo + (w.hi-w.lo)*rng.Float64())
		s.terms[i+1] = epicycle{
			radius: w.share * speed / math.Abs(rate),
			rate:   rate,
			phase:  2 * math.Pi * rng.Float64(),
		}
	}

	s.start = s.localHeading(0)
	s.base = heading - s.start
	return s
}

// Advance moves along the path by dt seconds. Non-positive dt is ignored.
func (s *Spline) Advance(dt float64) {
	if !(dt > 0) {
		return
	}
	s.progress += dt
}

// Reset returns to the start of the path.
func (s *Spline) Reset() {
	s.progress = 0
}

// Position is the current point on the path as (x, z).
func (s *Spline) Position() mgl64.Vec2 {
	return s.PositionAt(s.progress)
}

// Heading is the current direction of travel in radians.
func (s *Spline) Heading() float64 {
	return s.HeadingAt(s.progress)
}

// PositionAt evaluates the path at an arbitrary progress.
func (s *Spline) PositionAt(t float64) mgl64.Vec2 {
	var local mgl64.Vec2
	for _, e := range s.terms {
		a := e.angle(t)
		local[0] += e.radius * (math.Sin(a) - math.Sin(e.phase))
		local[1] += e.radius * (math.Cos(e.phase) - math.Cos(a))
	}

	// A local direction at angle b maps to the heading base+b.
	fwd := groundDirection(s.base)
	left := groundDirection(s.base + math.Pi/2)
	return s.origin.Add(fwd.Mul(local[0])).Add(left.Mul(local[1]))
}

// HeadingAt evaluates the direction of travel at an arbitrary progress.
func (s *Spline) HeadingAt(t float64) float64 {
	return s.base + s.localHeading(t)
}

// localHeading is the tangent angle in the local frame, unwrapped around the
// dominant loop so it never jumps by a full turn.
func (s *Spline) localHeading(t float64) float64 {
	var v mgl64.Vec2
	for _, e := range s.terms {
		a := e.angle(t)
		v[0] += e.radius * e.rate * math.Cos(a)
		v[1] += e.radius * e.rate * math.Sin(a)
	}
	ref := s.terms[0].tangentAngle(t)
	return ref + math.Remainder(math.Atan2(v[1], v[0])-ref, 2*math.Pi)
}

// MaxSpeed bounds the distance travelled per second of progress.
func (s *Spline) MaxSpeed() float64 {
	var sum float64
	for _, e := range s.terms {
		sum += e.speed()
	}
	return sum
}

func (s *Spline) Origin() mgl64.Vec2 {
	return s.origin
}

func (s *Spline) InitialHeading() float64 {
	return s.heading
}

func (s *Spline) Seed() uint64 {
	return s.seed
}

// Progress is the accumulated path time in seconds.
func (s *Spline) Progress() float64 {
	return s.progress
}
