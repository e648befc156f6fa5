package editor

import "wallsketch/internal/geom"

// Viewport maps client coordinates (pixels, terminal micro-pixels) onto the
// document. The document box is stretched to fill the screen box on each
// axis independently; aspect ratio is not preserved.
type Viewport struct {
	OriginX, OriginY float64
	ScreenW, ScreenH float64
	DocW, DocH       float64
}

// ToDocument maps a client position into document space. ok is false when
// the transform is not available yet (nothing laid out or an empty
// document).
func (v Viewport) ToDocument(clientX, clientY float64) (geom.Point, bool) {
	if v.ScreenW <= 0 || v.ScreenH <= 0 || v.DocW <= 0 || v.DocH <= 0 {
		return geom.Point{}, false
	}
	return geom.Point{
		X: (clientX - v.OriginX) * v.DocW / v.ScreenW,
		Y: (clientY - v.OriginY) * v.DocH / v.ScreenH,
	}, true
}

// Client is ToDocument with the origin as the fallback. It never fails.
func (v Viewport) Client(clientX, clientY float64) geom.Point {
	p, ok := v.ToDocument(clientX, clientY)
	if !ok {
		return geom.Point{}
	}
	return p
}

// ToScreen is the forward transform. ok is false under the same conditions
// as ToDocument.
func (v Viewport) ToScreen(p geom.Point) (x, y float64, ok bool) {
	if v.ScreenW <= 0 || v.ScreenH <= 0 || v.DocW <= 0 || v.DocH <= 0 {
		return 0, 0, false
	}
	return v.OriginX + p.X*v.ScreenW/v.DocW, v.OriginY + p.Y*v.ScreenH/v.DocH, true
}
