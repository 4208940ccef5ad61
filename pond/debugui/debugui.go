// Package debugui draws Dear ImGui overlays for a running pond scene: label
// billboards above ducks and a set of debug windows for inspecting them.
//
// The overlay is a pond.Observer. Register it with the Runner, then call
// Render between the imgui backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/duckpond/pond"
)

// Item is one imgui render function.
type Item struct {
	Name   string
	Render func()
	// Debug items are only drawn while the overlay's debug windows are shown.
	Debug bool
}

// InputState tracks whether imgui is consuming mouse or keyboard input, so the
// host can keep it away from the player.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay holds the imgui items drawn on top of a scene.
type Overlay struct {
	Input     InputState
	ShowDebug bool

	items []Item
	frame pond.Frame
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

// Add appends an item. Items are drawn in the order they were added.
func (o *Overlay) Add(item Item) {
	o.items = append(o.items, item)
}

// Items returns the registered items.
func (o *Overlay) Items() []Item {
	return o.items
}

// Observe records the latest tick for the windows to read.
func (o *Overlay) Observe(f *pond.Frame) {
	o.frame = *f
}

// Frame is the most recently observed tick.
func (o *Overlay) Frame() pond.Frame {
	return o.frame
}

// ToggleDebug shows or hides the debug windows.
func (o *Overlay) ToggleDebug() {
	o.ShowDebug = !o.ShowDebug
}

// Render updates the input capture state and draws every visible item.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.visible() {
		item.Render()
	}
}

func (o *Overlay) visible() []Item {
	visible := make([]Item, 0, len(o.items))
	for _, item := range o.items {
		if item.Debug && !o.ShowDebug {
			continue
		}
		visible = append(visible, item)
	}
	return visible
}
