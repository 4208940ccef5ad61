package pond

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// statusEpsilon absorbs rounding when the behavior clock is summed from many
// small steps.
const statusEpsilon = 1e-9

// Tuning holds the constants of player-controlled movement.
type Tuning struct {
	TopSpeed         float64 // units per second, per unit of scale
	BoostedTopSpeed  float64 // forward limit while Boost is held
	Acceleration     float64
	TopTurnRate      float64 // radians per second
	TurnAcceleration float64
	Damping          float64 // fraction of speed shed per second without input

	StatusText    string
	StatusTimeout float64 // seconds the status text stays up after the last Signal
}

// DefaultTuning matches the classic duck controls.
func DefaultTuning() Tuning {
	return Tuning{
		TopSpeed:         4,
		BoostedTopSpeed:  8,
		Acceleration:     8,
		TopTurnRate:      math.Pi / 2,
		TurnAcceleration: 2 * math.Pi,
		Damping:          4,
		StatusText:       "Quack",
		StatusTimeout:    2,
	}
}

// Validate rejects tunings the integrator cannot honor.
func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"TopSpeed", t.TopSpeed},
		{"BoostedTopSpeed", t.BoostedTopSpeed},
		{"Acceleration", t.Acceleration},
		{"TopTurnRate", t.TopTurnRate},
		{"TurnAcceleration", t.TurnAcceleration},
		{"StatusTimeout", t.StatusTimeout},
	}
	for _, f := range positive {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, f.name, f.value)
		}
	}
	if t.BoostedTopSpeed < t.TopSpeed {
		return fmt.Errorf("%w: BoostedTopSpeed %v below TopSpeed %v", ErrInvalidTuning, t.BoostedTopSpeed, t.TopSpeed)
	}
	if !(t.Damping >= 0) || math.IsInf(t.Damping, 0) {
		return fmt.Errorf("%w: Damping must be non-negative, got %v", ErrInvalidTuning, t.Damping)
	}
	return nil
}

// PlayerControlled drives a duck from input: accelerating, turning, damping
// when idle, and showing a status label for a while after Signal.
//
// Forward wins over Backward and TurnLeft over TurnRight when both are held.
type PlayerControlled struct {
	Tuning Tuning

	Speed    float64
	TurnRate float64

	// Clock is the time this behavior has been updated for. The status label
	// is cleared once Clock reaches StatusDeadline.
	Clock          float64
	StatusDeadline float64
	StatusArmed    bool
}

func NewPlayerControlled(t Tuning) (*PlayerControlled, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &PlayerControlled{Tuning: t}, nil
}

func (p *PlayerControlled) Update(d *Duck, dt float64, in Input) {
	if !(dt > 0) {
		return
	}
	if in == nil {
		in = Neutral
	}
	t := &p.Tuning
	decay := mgl64.Clamp(1-t.Damping*dt, 0, 1)
	p.Clock += dt

	switch {
	case in.Down(Forward):
		p.Speed += t.Acceleration * dt
	case in.Down(Backward):
		p.Speed -= t.Acceleration * dt
	default:
		p.Speed *= decay
	}

	switch {
	case in.Down(TurnLeft):
		p.TurnRate += t.TurnAcceleration * dt
	case in.Down(TurnRight):
		p.TurnRate -= t.TurnAcceleration * dt
	default:
		p.TurnRate *= decay
	}

	if in.Down(Signal) {
		d.Label = t.StatusText
		p.StatusDeadline = p.Clock + t.StatusTimeout
		p.StatusArmed = true
	} else if p.StatusArmed && p.Clock >= p.StatusDeadline-statusEpsilon {
		d.Label = ""
		p.StatusArmed = false
	}

	top := t.TopSpeed
	if in.Down(Boost) {
		top = t.BoostedTopSpeed
	}
	p.Speed = mgl64.Clamp(p.Speed, -t.TopSpeed, top)
	p.TurnRate = mgl64.Clamp(p.TurnRate, -t.TopTurnRate, t.TopTurnRate)

	step := d.Pose.Forward().Mul(p.Speed * d.Pose.Scale * dt)
	d.Pose.Position = d.Pose.Position.Add(step)
	d.Pose.Heading += p.TurnRate * dt
}

func (p *PlayerControlled) Reset() {
	p.Speed = 0
	p.TurnRate = 0
	p.Clock = 0
	p.StatusDeadline = 0
	p.StatusArmed = false
}

// Detach clears a status label that is still waiting for its deadline.
func (p *PlayerControlled) Detach(d *Duck) {
	if p.StatusArmed {
		d.Label = ""
		p.StatusArmed = false
	}
}

// StatusRemaining is the time left before the status label clears, or zero.
func (p *PlayerControlled) StatusRemaining() float64 {
	if !p.StatusArmed {
		return 0
	}
	return math.Max(0, p.StatusDeadline-p.Clock)
}
