package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wallsketch/internal/editor"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}

	// Header
	name := "<unsaved>"
	if m.selPath != "" {
		name = filepath.Base(m.selPath)
	}
	header := titleStyle.Render(" wallsketch ─ floor plan editor ") + dimStyle.Render(" "+name)
	header = lipgloss.NewStyle().Width(lay.contentW).MaxWidth(lay.contentW).Render(header)
	toolbar := lipgloss.NewStyle().MaxWidth(lay.contentW).Render(m.renderToolbar())

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		maxW := min(lay.mapW, max(32, colW+4))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	default:
		// plain canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.renderCanvas(lay.mapW, lay.mapH))
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer / help
	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.1f y=%.1f  ", m.pointer.X, m.pointer.Y))
	}
	// the coordinates keep their place; a long status is cut short
	msg := []rune(m.status)
	if avail := lay.contentW - lipgloss.Width(coords) - 2; len(msg) > avail {
		msg = msg[:max(0, avail)]
	}
	status := dimStyle.Render(" " + string(msg) + " ")
	spacerW := max(0, lay.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	line1 := lipgloss.JoinHorizontal(lipgloss.Bottom, status, strings.Repeat(" ", spacerW), coords)
	footer := lipgloss.NewStyle().Width(lay.contentW).MaxWidth(lay.contentW).Render(
		lipgloss.JoinVertical(lipgloss.Left, line1, m.renderHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, toolbar, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).Render(ui)
}

// renderToolbar shows the tools with the active one highlighted, then the
// thickness, snap and history state.
func (m Model) renderToolbar() string {
	st := m.editor.State()
	var parts []string
	for _, t := range editor.Tools {
		label := t.Shortcut() + " " + t.String()
		if t == st.Tool {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, toolStyle.Render(label))
		}
	}
	snap := "off"
	if st.Settings.Snap {
		snap = "on"
	}
	info := fmt.Sprintf("  thk %-3d snap %-3s undo %d redo %d",
		st.Settings.Thickness, snap, m.history.UndoCount(), m.history.RedoCount())
	if st.Extend != nil {
		info += "  pick target"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + dimStyle.Render(padRight(info, 1))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"^z undo",
		"^y redo",
		"[ ] thickness",
		"g snap",
		"Tab files",
		"p paste",
		"i inspect",
		"y copy",
		"^s save",
		"e png",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
