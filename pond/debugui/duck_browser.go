package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/duckpond/pond"
)

// DuckRow is one line of the duck browser.
type DuckRow struct {
	Id       pond.DuckId
	Label    string
	Behavior string
	X, Z     float64
	Heading  float64
}

// Browser columns, in display order.
const (
	ColumnId = iota
	ColumnLabel
	ColumnBehavior
	ColumnPosition
	columnCount
)

// DuckBrowser lists every duck in a sortable, filterable, paged table and
// remembers the selected one.
type DuckBrowser struct {
	Filter        string
	SortColumn    int
	SortAscending bool
	PageSize      int
	Page          int

	selected pond.DuckId
	rows     []DuckRow
}

func NewDuckBrowser(pageSize int) *DuckBrowser {
	return &DuckBrowser{
		SortAscending: true,
		PageSize:      max(pageSize, 1),
	}
}

// Selected is the id of the selected duck, or zero.
func (b *DuckBrowser) Selected() pond.DuckId {
	return b.selected
}

func (b *DuckBrowser) Select(id pond.DuckId) {
	b.selected = id
}

// Rows rebuilds the table from the scene and returns the filtered, sorted
// rows. Ducks move every tick, so nothing is kept between calls.
func (b *DuckBrowser) Rows(scene *pond.Scene) []DuckRow {
	b.rows = b.rows[:0]
	for d := range scene.All() {
		b.rows = append(b.rows, DuckRow{
			Id:       d.Id,
			Label:    d.Label,
			Behavior: pond.BehaviorName(d.Behavior()),
			X:        d.Pose.Position.X(),
			Z:        d.Pose.Position.Z(),
			Heading:  d.Pose.Heading,
		})
	}

	rows := filterRows(b.rows, b.Filter)
	sortRows(rows, b.SortColumn, b.SortAscending)
	return rows
}

// PageBounds returns the slice bounds of the current page, clamping Page to
// the available pages.
func (b *DuckBrowser) PageBounds(total int) (start, end, pages int) {
	pages = max((total+b.PageSize-1)/b.PageSize, 1)
	b.Page = min(max(b.Page, 0), pages-1)
	start = b.Page * b.PageSize
	end = min(start+b.PageSize, total)
	return start, end, pages
}

func (b *DuckBrowser) Render(scene *pond.Scene) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)
	if !imgui.BeginV("Duck Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &b.Filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		b.Filter = ""
	}

	rows := b.Rows(scene)
	start, end, pages := b.PageBounds(len(rows))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("DuckTable", columnCount, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Id")
		imgui.TableSetupColumn("Label")
		imgui.TableSetupColumn("Behavior")
		imgui.TableSetupColumn("Position")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			b.SortColumn = int(spec.ColumnIndex())
			b.SortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortRows(rows, b.SortColumn, b.SortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.Id), b.selected == row.Id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				b.selected = row.Id
			}

			imgui.TableNextColumn()
			imgui.Text(row.Label)

			imgui.TableNextColumn()
			imgui.Text(row.Behavior)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f", row.X, row.Z))
		}

		imgui.EndTable()
	}

	if pages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d ducks)", b.Page+1, pages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && b.Page > 0 {
			b.Page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && b.Page < pages-1 {
			b.Page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d ducks", len(rows)))
	}

	imgui.End()
}

// filterRows keeps rows whose id, label or behavior contains the filter,
// ignoring case.
func filterRows(rows []DuckRow, filter string) []DuckRow {
	if filter == "" {
		return rows
	}
	needle := strings.ToLower(filter)
	filtered := make([]DuckRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(fmt.Sprintf("%d", row.Id), needle) ||
			strings.Contains(strings.ToLower(row.Label), needle) ||
			strings.Contains(row.Behavior, needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func sortRows(rows []DuckRow, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b DuckRow) int {
		var c int
		switch column {
		case ColumnLabel:
			c = cmp.Compare(a.Label, b.Label)
		case ColumnBehavior:
			c = cmp.Compare(a.Behavior, b.Behavior)
		case ColumnPosition:
			c = cmp.Compare(a.X*a.X+a.Z*a.Z, b.X*b.X+b.Z*b.Z)
		}
		if c == 0 {
			c = cmp.Compare(a.Id, b.Id)
		}
		if !ascending {
			return -c
		}
		return c
	})
}
