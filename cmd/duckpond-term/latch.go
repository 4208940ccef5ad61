package main

import (
	"time"

	"github.com/plus3/duckpond/pond"
)

// Latch turns key presses into held controls. Terminals report presses and
// key repeats but never releases, so a control counts as held until hold has
// passed without another press.
type Latch struct {
	hold    time.Duration
	pressed map[pond.Control]time.Time
}

func NewLatch(hold time.Duration) *Latch {
	return &Latch{hold: hold, pressed: make(map[pond.Control]time.Time)}
}

func (l *Latch) Press(c pond.Control, now time.Time) {
	l.pressed[c] = now
}

// Keys reports the controls held at now.
func (l *Latch) Keys(now time.Time) pond.Keys {
	keys := pond.Neutral
	for _, c := range pond.Controls() {
		if at, ok := l.pressed[c]; ok && now.Sub(at) < l.hold {
			keys = keys.With(c)
		}
	}
	return keys
}

// Release forgets every press.
func (l *Latch) Release() {
	clear(l.pressed)
}
