package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/duckpond/pond"
)

var keyBindings = map[pond.Control][]ebiten.Key{
	pond.Forward:   {ebiten.KeyW, ebiten.KeyArrowUp},
	pond.Backward:  {ebiten.KeyS, ebiten.KeyArrowDown},
	pond.TurnLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	pond.TurnRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	pond.Boost:     {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	pond.Signal:    {ebiten.KeyQ},
}

// keyboard captures the held controls for this frame.
func keyboard() pond.Keys {
	keys := pond.Neutral
	for control, bound := range keyBindings {
		for _, key := range bound {
			if ebiten.IsKeyPressed(key) {
				keys = keys.With(control)
				break
			}
		}
	}
	return keys
}
