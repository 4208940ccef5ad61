package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/duckpond/pond"
)

// ProjectFunc maps a world point to screen pixels, reporting false when the
// point is not in front of the camera.
type ProjectFunc func(mgl64.Vec3) (mgl64.Vec2, bool)

// Billboard is a label placed on screen.
type Billboard struct {
	Id     pond.DuckId
	Text   string
	Screen mgl64.Vec2
}

// LabelBillboards draws each duck's label above its head.
type LabelBillboards struct {
	Project ProjectFunc
}

func NewLabelBillboards(project ProjectFunc) *LabelBillboards {
	return &LabelBillboards{Project: project}
}

// Billboards lists the visible labels, player first.
func (l *LabelBillboards) Billboards(scene *pond.Scene) []Billboard {
	var out []Billboard
	for d := range scene.All() {
		if d.Label == "" {
			continue
		}
		screen, ok := l.Project(d.LabelAnchor())
		if !ok {
			continue
		}
		out = append(out, Billboard{Id: d.Id, Text: d.Label, Screen: screen})
	}
	return out
}

func (l *LabelBillboards) Render(scene *pond.Scene) {
	const flags = imgui.WindowFlagsNoDecoration | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings |
		imgui.WindowFlagsNoFocusOnAppearing | imgui.WindowFlagsNoNav

	for _, b := range l.Billboards(scene) {
		pos := imgui.NewVec2(float32(b.Screen.X()), float32(b.Screen.Y()))
		imgui.SetNextWindowPosV(pos, imgui.CondAlways, imgui.NewVec2(0.5, 1))
		if imgui.BeginV(fmt.Sprintf("##label%d", b.Id), nil, flags) {
			imgui.Text(b.Text)
		}
		imgui.End()
	}
}
