package tui

import (
	"math"
	"strings"

	"wallsketch/internal/editor"
	"wallsketch/internal/geom"
)

const (
	sidebarWidth = 28
	headerHeight = 2 // title and toolbar
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	contentH := max(4, m.height-headerHeight-footerHeight)
	contentW := max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	return layout{
		contentW: contentW,
		contentH: contentH,
		mapX:     sw,
		mapY:     headerHeight,
		mapW:     max(8, contentW-sw-1),
		mapH:     contentH,
	}
}

// viewport maps the canvas micro-grid (2x4 per cell) onto the document.
func (m Model) viewport(w, h int) editor.Viewport {
	dims := m.docSize()
	return editor.Viewport{
		ScreenW: float64(w * 2),
		ScreenH: float64(h * 4),
		DocW:    dims.Width,
		DocH:    dims.Height,
	}
}

// cellToDocument maps a canvas cell to the document point under the centre
// of its micro-grid.
func (m Model) cellToDocument(cx, cy, w, h int) (geom.Point, bool) {
	return m.viewport(w, h).ToDocument(float64(cx*2+1), float64(cy*4+2))
}

func (m Model) screenXYMicro(vp editor.Viewport, p geom.Point) (int, int, bool) {
	x, y, ok := vp.ToScreen(p)
	if !ok {
		return 0, 0, false
	}
	return int(math.Floor(x)), int(math.Floor(y)), true
}

func (m Model) project(vp editor.Viewport, poly geom.Polygon) [][2]int {
	ring := make([][2]int, 0, len(poly))
	for _, p := range poly {
		mx, my, ok := m.screenXYMicro(vp, p)
		if !ok {
			return nil
		}
		ring = append(ring, [2]int{mx, my})
	}
	return ring
}

func (m Model) renderCanvas(w, h int) string {
	br := newBrailleBuf(w, h)
	vp := m.viewport(w, h)
	p := m.editor.Plan()
	st := m.editor.State()

	selected, hovered := -1, -1
	if st.Selection != nil {
		selected = st.Selection.Wall
	}
	if st.Hover != nil {
		hovered = st.Hover.Wall
	}

	for i, wall := range p.Walls {
		ring := m.project(vp, wall.Boundary)
		br.fillRing(ring, layerFill)
		edge := layerWall
		switch i {
		case selected:
			edge = layerSelected
		case hovered:
			edge = layerHover
		}
		br.strokeRing(ring, edge)
	}
	for _, d := range p.Doors {
		br.strokeRing(m.project(vp, d.Boundary), layerDoor)
	}
	for _, win := range p.Windows {
		br.strokeRing(m.project(vp, win.Boundary), layerWindow)
	}
	if preview, ok := st.Preview(); ok {
		br.strokeRing(m.project(vp, preview), layerPreview)
	}

	// vertex handles
	if poly, ok := p.Wall(selected); ok {
		for _, v := range poly {
			if mx, my, ok := m.screenXYMicro(vp, v); ok {
				br.mark(mx, my, handleMark)
			}
		}
	}
	if st.Hover != nil && st.Hover.HasVertex() {
		if poly, ok := p.Wall(st.Hover.Wall); ok && st.Hover.Vertex < len(poly) {
			if mx, my, ok := m.screenXYMicro(vp, poly[st.Hover.Vertex]); ok {
				br.mark(mx, my, hoverMark)
			}
		}
	}
	if ext := st.Extend; ext != nil {
		if poly, ok := p.Wall(ext.Wall); ok && ext.Vertex < len(poly) {
			if mx, my, ok := m.screenXYMicro(vp, poly[ext.Vertex]); ok {
				br.mark(mx, my, hoverMark)
			}
		}
	}
	return strings.Join(br.toLines(), "\n")
}
