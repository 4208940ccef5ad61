package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/duckpond/pond"
)

// Terminal cells are about twice as tall as wide, so a world unit spans two
// columns and one row.
const (
	colsPerUnit = 2.0
	rowsPerUnit = 1.0
)

var (
	waterStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(20, 50, 80)).Foreground(tcell.NewRGBColor(50, 90, 130))
	duckStyle   = tcell.StyleDefault.Background(tcell.NewRGBColor(20, 50, 80)).Foreground(tcell.ColorWhite)
	playerStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(20, 50, 80)).Foreground(tcell.ColorYellow).Bold(true)
	labelStyle  = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
)

// arrows point along the eight compass directions, counterclockwise from +x
// (screen right), with +z drawn downward.
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// arrow picks the glyph closest to the direction a heading faces.
func arrow(heading float64) rune {
	f := pond.Facing(heading)
	a := math.Atan2(f.Z(), f.X())
	i := int(math.Round(a/(math.Pi/4))) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}

// cell maps a world position to a terminal cell with the player centered.
func cell(p, center pond.Pose, width, height int) (x, y int) {
	dx := p.Position.X() - center.Position.X()
	dz := p.Position.Z() - center.Position.Z()
	return width/2 + int(math.Round(dx*colsPerUnit)), height/2 + int(math.Round(dz*rowsPerUnit))
}

type view struct {
	screen tcell.Screen
	status string
}

func (v *view) draw(scene *pond.Scene) {
	width, height := v.screen.Size()
	v.screen.Clear()

	for y := range height {
		for x := range width {
			r := ' '
			if (x/2+y)%6 == 0 && x%2 == 0 {
				r = '~'
			}
			v.screen.SetContent(x, y, r, nil, waterStyle)
		}
	}

	center := scene.PlayerPose()
	for d := range scene.All() {
		x, y := cell(d.Pose, center, width, height)
		style := duckStyle
		if d == scene.Player {
			style = playerStyle
		}
		v.screen.SetContent(x, y, arrow(d.Pose.Heading), nil, style)

		if d.Label != "" {
			lx := x - len([]rune(d.Label))/2
			ly := y - int(math.Ceil(1.5*d.Pose.Scale*rowsPerUnit))
			v.text(lx, ly, d.Label, labelStyle)
		}
	}

	speed := 0.0
	if control, ok := scene.Player.Behavior().(*pond.PlayerControlled); ok {
		speed = control.Speed
	}
	v.text(0, 0, fmt.Sprintf(" %s  speed %.1f  ducks %d ", scene.Time.Format("15:04"), speed, scene.Len()), hudStyle)
	v.text(0, height-1, " w/a/s/d move  W/S boost  q quack  F5 save  F9 load  Esc quit ", hudStyle)
	if v.status != "" {
		v.text(0, 1, " "+v.status+" ", hudStyle)
	}

	v.screen.Show()
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
