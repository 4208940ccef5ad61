package audio

import "github.com/plus3/duckpond/pond"

// StatusTrigger fires when the player's label changes to its status text.
// Holding Signal keeps the label up, so a held key quacks once.
type StatusTrigger struct {
	Text string
	Fire func()

	showing bool
}

func NewStatusTrigger(text string, fire func()) *StatusTrigger {
	return &StatusTrigger{Text: text, Fire: fire}
}

// Check reports whether label has just switched to the status text.
func (t *StatusTrigger) Check(label string) bool {
	showing := label == t.Text
	fired := showing && !t.showing
	t.showing = showing
	return fired
}

// Observe checks the player's label after each tick.
func (t *StatusTrigger) Observe(f *pond.Frame) {
	if t.Check(f.Scene.Player.Label) && t.Fire != nil {
		t.Fire()
	}
}
