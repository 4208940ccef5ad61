package pond

import "strings"

// Control is one of the inputs a host can report as held down.
type Control uint8

const (
	Forward Control = iota
	Backward
	TurnLeft
	TurnRight
	Boost
	Signal

	controlCount
)

var controlNames = [controlCount]string{
	Forward:   "forward",
	Backward:  "backward",
	TurnLeft:  "turn-left",
	TurnRight: "turn-right",
	Boost:     "boost",
	Signal:    "signal",
}

func (c Control) String() string {
	if c < controlCount {
		return controlNames[c]
	}
	return "unknown"
}

// Controls lists every control in declaration order.
func Controls() []Control {
	out := make([]Control, 0, controlCount)
	for c := Control(0); c < controlCount; c++ {
		out = append(out, c)
	}
	return out
}

// Input answers whether a control is held during the current tick. Behaviors
// only query it while updating and never keep it.
type Input interface {
	Down(c Control) bool
}

// Keys is a bit set of held controls and the simplest Input.
type Keys uint8

// Neutral holds nothing. Autonomous ducks always receive it.
const Neutral Keys = 0

// KeysOf returns the set holding the given controls.
func KeysOf(controls ...Control) Keys {
	var k Keys
	for _, c := range controls {
		k = k.With(c)
	}
	return k
}

// Capture copies any Input into a Keys value.
func Capture(in Input) Keys {
	if k, ok := in.(Keys); ok {
		return k
	}
	var k Keys
	if in == nil {
		return k
	}
	for c := Control(0); c < controlCount; c++ {
		if in.Down(c) {
			k = k.With(c)
		}
	}
	return k
}

func (k Keys) Down(c Control) bool {
	return c < controlCount && k&(1<<c) != 0
}

// With returns k with c held.
func (k Keys) With(c Control) Keys {
	if c >= controlCount {
		return k
	}
	return k | 1<<c
}

// Without returns k with c released.
func (k Keys) Without(c Control) Keys {
	if c >= controlCount {
		return k
	}
	return k &^ (1 << c)
}

func (k Keys) String() string {
	if k == Neutral {
		return "none"
	}
	var names []string
	for c := Control(0); c < controlCount; c++ {
		if k.Down(c) {
			names = append(names, c.String())
		}
	}
	return strings.Join(names, "+")
}

// InputSource supplies the input for the next tick.
type InputSource interface {
	Input() Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Input

func (f InputFunc) Input() Input {
	return f()
}
