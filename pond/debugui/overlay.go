package debugui

import "github.com/plus3/duckpond/pond"

// NewDebugOverlay builds the standard overlay for a runner and registers it as
// an observer. Labels are always drawn; the duck browser, behavior inspector
// and performance windows only while ShowDebug is set.
func NewDebugOverlay(runner *pond.Runner, project ProjectFunc) *Overlay {
	o := NewOverlay()
	labels := NewLabelBillboards(project)
	browser := NewDuckBrowser(100)
	inspector := NewBehaviorInspector()
	perf := NewPerformanceStats(120)

	o.Add(Item{
		Name:   "Labels",
		Render: func() { labels.Render(runner.Scene()) },
	})
	o.Add(Item{
		Name:   "Duck Browser",
		Render: func() { browser.Render(runner.Scene()) },
		Debug:  true,
	})
	o.Add(Item{
		Name:   "Behavior Inspector",
		Render: func() { inspector.Render(runner.Scene(), browser.Selected()) },
		Debug:  true,
	})
	o.Add(Item{
		Name:   "Performance Stats",
		Render: func() { perf.Render(runner, o.Frame().DeltaTime) },
		Debug:  true,
	})

	runner.Observe(o)
	return o
}
