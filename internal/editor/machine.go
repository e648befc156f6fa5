// Package editor is the pointer and keyboard state machine of the floor-plan
// editor.
//
// Step is a pure function: it takes the interaction state, the current plan
// and one event, and returns the next state and plan. Commit reports whether
// the plan changed in a way the caller should record (for example in a
// history.History). Each event commits at most once.
//
// Walls are addressed by index. Deleting a wall shifts the ones after it, so
// hover and selection are dropped on delete, and drag or extend sessions
// whose indices no longer exist are ignored.
package editor

import (
	"wallsketch/internal/geom"
	"wallsketch/internal/plan"
)

// Event is one input to Step.
type Event interface {
	isEvent()
}

// PointerDown, PointerMove and PointerUp carry document-space positions.
type PointerDown struct{ At geom.Point }
type PointerMove struct{ At geom.Point }
type PointerUp struct{ At geom.Point }

// KeyPress carries a key name such as "v", "V" or "delete".
type KeyPress struct{ Key string }

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (KeyPress) isEvent()    {}

// Transition is the result of Step.
type Transition struct {
	State  State
	Plan   plan.Plan
	Commit bool
}

// Step applies ev to the state and plan.
func Step(s State, p plan.Plan, ev Event) Transition {
	switch e := ev.(type) {
	case PointerDown:
		return pointerDown(s, p, e.At)
	case PointerMove:
		return pointerMove(s, p, e.At)
	case PointerUp:
		return pointerUp(s, p)
	case KeyPress:
		if t, ok := ToolForKey(e.Key); ok {
			return Transition{State: s.WithTool(t), Plan: p}
		}
	}
	return Transition{State: s, Plan: p}
}

func pointerDown(s State, p plan.Plan, at geom.Point) Transition {
	walls := p.WallBoundaries()
	tol := s.tolerance()
	switch s.Tool {
	case ToolSelect:
		i := geom.PickWall(walls, at, tol)
		if i == geom.NotFound {
			s.Selection = nil
			break
		}
		s.Selection = &Target{Wall: i, Vertex: geom.NotFound}
		s.Drag = &DragSession{Kind: DragMoveWall, Anchor: at, Wall: i, Vertex: geom.NotFound}
	case ToolDelete:
		i := geom.PickWall(walls, at, tol)
		if i == geom.NotFound {
			break
		}
		s.Selection = nil
		s.Hover = nil
		return Transition{State: s, Plan: p.WithoutWall(i), Commit: true}
	case ToolStretch:
		w, v := pickWallVertex(walls, at, tol)
		if v == geom.NotFound {
			break
		}
		s.Selection = &Target{Wall: w, Vertex: v}
		s.Drag = &DragSession{Kind: DragMoveVertex, Anchor: at, Wall: w, Vertex: v}
	case ToolDraw:
		s.Drag = &DragSession{Kind: DragDraw, Anchor: at, Live: at, Wall: geom.NotFound, Vertex: geom.NotFound}
	case ToolExtend:
		return extend(s, p, walls, at)
	case ToolMove:
		// reserved, no handler
	}
	return Transition{State: s, Plan: p}
}

// pickWallVertex picks a wall and then a vertex on it. vertex is NotFound
// when either pick misses.
func pickWallVertex(walls []geom.Polygon, at geom.Point, tol float64) (wall, vertex int) {
	wall = geom.PickWall(walls, at, tol)
	if wall == geom.NotFound {
		return wall, geom.NotFound
	}
	return wall, geom.PickVertex(walls[wall], at, tol)
}

// extend runs the two-click extend protocol. The first click stores the
// source vertex; the second projects it onto the nearest edge of the wall
// under the pointer. A second click on nothing cancels without a commit.
func extend(s State, p plan.Plan, walls []geom.Polygon, at geom.Point) Transition {
	tol := s.tolerance()
	if s.Extend == nil {
		w, v := pickWallVertex(walls, at, tol)
		if v != geom.NotFound {
			s.Extend = &ExtendSession{Wall: w, Vertex: v}
			s.Selection = &Target{Wall: w, Vertex: v}
		}
		return Transition{State: s, Plan: p}
	}

	src := *s.Extend
	s.Extend = nil
	target := geom.PickWall(walls, at, tol)
	if target == geom.NotFound {
		return Transition{State: s, Plan: p}
	}
	poly, ok := p.Wall(src.Wall)
	if !ok || src.Vertex < 0 || src.Vertex >= len(poly) {
		return Transition{State: s, Plan: p}
	}
	q, edge, _ := geom.NearestOnPolygon(walls[target], poly[src.Vertex])
	if edge == geom.NotFound {
		return Transition{State: s, Plan: p}
	}
	q = s.snapVertex(q)
	return Transition{State: s, Plan: p.WithWall(src.Wall, poly.WithVertex(src.Vertex, q)), Commit: true}
}

func pointerMove(s State, p plan.Plan, at geom.Point) Transition {
	if s.Drag == nil {
		return Transition{State: hover(s, p, at), Plan: p}
	}
	d := *s.Drag
	switch d.Kind {
	case DragMoveWall:
		poly, ok := p.Wall(d.Wall)
		if !ok {
			return Transition{State: s, Plan: p}
		}
		delta := s.snapDelta(at.Sub(d.Anchor))
		d.Anchor = at
		s.Drag = &d
		return Transition{State: s, Plan: p.WithWall(d.Wall, poly.Translate(delta)), Commit: true}
	case DragMoveVertex:
		poly, ok := p.Wall(d.Wall)
		if !ok || d.Vertex < 0 || d.Vertex >= len(poly) {
			return Transition{State: s, Plan: p}
		}
		return Transition{State: s, Plan: p.WithWall(d.Wall, poly.WithVertex(d.Vertex, s.snapVertex(at))), Commit: true}
	case DragDraw:
		d.Live = at
		s.Drag = &d
	}
	return Transition{State: s, Plan: p}
}

func hover(s State, p plan.Plan, at geom.Point) State {
	walls := p.WallBoundaries()
	tol := s.tolerance()
	i := geom.PickWall(walls, at, tol)
	if i == geom.NotFound {
		s.Hover = nil
		return s
	}
	h := Target{Wall: i, Vertex: geom.NotFound}
	if s.Tool == ToolStretch {
		h.Vertex = geom.PickVertex(walls[i], at, tol)
	}
	s.Hover = &h
	return s
}

func pointerUp(s State, p plan.Plan) Transition {
	d := s.Drag
	s.Drag = nil
	if d == nil || d.Kind != DragDraw {
		return Transition{State: s, Plan: p}
	}
	rect := geom.CreateWallRectangle(d.Anchor, d.Live, float64(s.Settings.Thickness))
	return Transition{State: s, Plan: p.AppendWall(rect), Commit: true}
}
