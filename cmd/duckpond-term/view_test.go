package main

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/duckpond/pond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrow(t *testing.T) {
	assert.Equal(t, '←', arrow(0), "heading zero faces -x")
	assert.Equal(t, '↓', arrow(math.Pi/2), "+z is drawn downward")
	assert.Equal(t, '→', arrow(math.Pi))
	assert.Equal(t, '↑', arrow(-math.Pi/2))
	assert.Equal(t, '↙', arrow(math.Pi/4))
}

func TestCell(t *testing.T) {
	center := pond.NewPose(10, 10, 0, 1)
	x, y := cell(pond.NewPose(12, 7, 0, 1), center, 80, 24)
	assert.Equal(t, 44, x)
	assert.Equal(t, 9, y)
}

func TestViewDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 12)

	cfg := pond.DefaultSceneConfig()
	cfg.Start = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	scene, err := pond.NewScene(cfg)
	require.NoError(t, err)
	_, err = scene.Spawn("Huey", pond.NewPose(3, 2, math.Pi, 1))
	require.NoError(t, err)
	scene.Player.Label = "Quack"

	v := &view{screen: screen}
	v.draw(scene)

	cells, width, _ := screen.GetContents()
	at := func(x, y int) rune {
		return cells[y*width+x].Runes[0]
	}
	assert.Equal(t, '←', at(20, 6), "player centered")
	assert.Equal(t, '→', at(26, 8))
	assert.Equal(t, 'Q', at(18, 4), "label above the player")
	assert.Equal(t, 'H', at(24, 6), "label above Huey")
	assert.Equal(t, '0', at(1, 0), "clock in the corner")
}
