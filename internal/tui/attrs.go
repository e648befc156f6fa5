package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"wallsketch/internal/geom"
	"wallsketch/internal/plan"
)

var attrColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "kind", Width: 7},
	{Title: "verts", Width: 5},
	{Title: "min", Width: 16},
	{Title: "max", Width: 16},
	{Title: "sel", Width: 3},
}

// refreshAttrsFromCurrent rebuilds the inspector rows from the present plan.
func (m *Model) refreshAttrsFromCurrent() {
	sel := -1
	if s := m.editor.State().Selection; s != nil {
		sel = s.Wall
	}
	m.tbl.SetRows(attrRows(m.editor.Plan(), sel))
}

// attrRows lists walls first, then doors and windows. Walls are numbered by
// their index so the rows line up with what the editor reports.
func attrRows(p plan.Plan, selected int) []table.Row {
	rows := make([]table.Row, 0, len(p.Walls)+len(p.Doors)+len(p.Windows))
	add := func(kind plan.Kind, ws []plan.Wall) {
		for i, w := range ws {
			mark := ""
			if kind == plan.KindWall && i == selected {
				mark = "*"
			}
			lo, hi := "-", "-"
			if bb, ok := geom.BoundsOf(w.Boundary); ok {
				lo = fmt.Sprintf("%.1f,%.1f", bb.MinX, bb.MinY)
				hi = fmt.Sprintf("%.1f,%.1f", bb.MaxX, bb.MaxY)
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", i),
				kind.String(),
				fmt.Sprintf("%d", len(w.Boundary)),
				lo,
				hi,
				mark,
			})
		}
	}
	add(plan.KindWall, p.Walls)
	add(plan.KindDoor, p.Doors)
	add(plan.KindWindow, p.Windows)
	return rows
}
