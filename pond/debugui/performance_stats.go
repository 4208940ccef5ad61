package debugui

import (
	"fmt"
	"maps"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/duckpond/pond"
)

// PerformanceStats plots frame times and shows the runner's per-stage timings
// and the scene's population.
type PerformanceStats struct {
	history []float32
	index   int
	filled  int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		history: make([]float32, max(historyFrames, 1)),
	}
}

// Record adds a frame time in seconds to the history.
func (ps *PerformanceStats) Record(dt float64) {
	ps.history[ps.index] = float32(dt * 1000)
	ps.index = (ps.index + 1) % len(ps.history)
	ps.filled = min(ps.filled+1, len(ps.history))
}

// AverageMillis is the mean recorded frame time, or zero before any frame.
func (ps *PerformanceStats) AverageMillis() float64 {
	if ps.filled == 0 {
		return 0
	}
	var total float64
	for _, ft := range ps.history[:ps.filled] {
		total += float64(ft)
	}
	return total / float64(ps.filled)
}

func (ps *PerformanceStats) Render(runner *pond.Runner, dt float64) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.Record(dt)
	scene := runner.Scene()
	stats := scene.CollectStats()

	imgui.Text(fmt.Sprintf("Scene Time: %s", stats.Time.Format("15:04:05")))
	imgui.Text(fmt.Sprintf("Ducks: %d (%d labeled)", stats.DuckCount, stats.Labeled))
	imgui.Text(fmt.Sprintf("Workers: %d", scene.Workers()))

	avg := ps.AverageMillis()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history[0], int32(len(ps.history)))

	if imgui.TreeNodeStr("Stage Timings") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("StageTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Stage")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, stage := range runner.Stats().Stages {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(stage.Name)
				imgui.TableNextColumn()
				imgui.Text(stage.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(stage.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(stage.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Behaviors") {
		for _, name := range slices.Sorted(maps.Keys(stats.Behaviors)) {
			imgui.BulletText(fmt.Sprintf("%s: %d", name, stats.Behaviors[name]))
		}
		imgui.TreePop()
	}

	imgui.End()
}
