package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/duckpond/pond"
)

// BehaviorInspector shows and edits the selected duck's pose and behavior
// state. Edits are written straight into the duck between ticks.
type BehaviorInspector struct {
	selected pond.DuckId
}

func NewBehaviorInspector() *BehaviorInspector {
	return &BehaviorInspector{}
}

func (bi *BehaviorInspector) Render(scene *pond.Scene, selected pond.DuckId) {
	imgui.SetNextWindowPosV(imgui.NewVec2(440, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 360), imgui.CondOnce)
	if !imgui.BeginV("Behavior Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	bi.selected = selected
	if bi.selected == 0 {
		imgui.Text("No duck selected")
		imgui.End()
		return
	}

	duck, ok := scene.Duck(bi.selected)
	if !ok {
		imgui.Text(fmt.Sprintf("Duck %d not found", bi.selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Duck: %d", duck.Id))
	renderValue("Label", reflect.ValueOf(&duck.Label).Elem())
	imgui.Separator()

	if imgui.TreeNodeStr("Pose") {
		renderStruct(reflect.ValueOf(&duck.Pose).Elem())
		imgui.TreePop()
	}

	behavior := duck.Behavior()
	if imgui.TreeNodeStr(fmt.Sprintf("Behavior (%s)", pond.BehaviorName(behavior))) {
		bi.renderBehavior(behavior)
		imgui.TreePop()
	}

	imgui.End()
}

func (bi *BehaviorInspector) renderBehavior(b pond.Behavior) {
	if w, ok := b.(*pond.Wander); ok {
		s := w.Spline
		imgui.Text(fmt.Sprintf("Seed: %d", s.Seed()))
		imgui.Text(fmt.Sprintf("Progress: %.2f s", s.Progress()))
		imgui.Text(fmt.Sprintf("Max Speed: %.2f", s.MaxSpeed()))
		if imgui.Button("Restart Path") {
			w.Reset()
		}
		return
	}
	if p, ok := b.(*pond.PlayerControlled); ok {
		imgui.Text(fmt.Sprintf("Status Remaining: %.2f s", p.StatusRemaining()))
	}

	val := reflect.ValueOf(b)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		imgui.Text(fmt.Sprintf("%T", b))
		return
	}
	renderStruct(val.Elem())
}

func renderStruct(val reflect.Value) {
	for _, field := range fieldCache.Fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderValue(field.Name, fieldVal)
	}
}

// renderValue draws an input widget for an addressable value and stores any
// edit back into it.
func renderValue(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		label(name)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		label(name)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Array:
		if !editable(val.Type()) {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
			return
		}
		if imgui.TreeNodeStr(name) {
			for i := range val.Len() {
				renderValue(fmt.Sprintf("%s[%d]", name, i), val.Index(i))
			}
			imgui.TreePop()
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderStruct(val)
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func label(name string) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
