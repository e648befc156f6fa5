package editor

import "wallsketch/internal/geom"

const (
	DefaultThickness = 20
	MinThickness     = 4
	MaxThickness     = 100
	DefaultTolerance = 8.0
)

// Target is a hovered or selected wall. Vertex is geom.NotFound when only
// the wall is targeted.
type Target struct {
	Wall   int
	Vertex int
}

func (t Target) HasVertex() bool { return t.Vertex != geom.NotFound }

// DragKind tags which pointer drag is open.
type DragKind int

const (
	DragMoveWall DragKind = iota
	DragMoveVertex
	DragDraw
)

func (k DragKind) String() string {
	switch k {
	case DragMoveWall:
		return "move-wall"
	case DragMoveVertex:
		return "move-vertex"
	case DragDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// DragSession is the pointer drag in progress. Which fields matter depends
// on Kind: move-wall uses Anchor and Wall, move-vertex uses Wall and Vertex,
// draw uses Anchor and Live.
type DragSession struct {
	Kind   DragKind
	Anchor geom.Point
	Live   geom.Point
	Wall   int
	Vertex int
}

// ExtendSession remembers the source vertex between the two clicks of the
// extend tool.
type ExtendSession struct {
	Wall   int
	Vertex int
}

// Settings are the toolbar values. Thickness only affects the draw tool.
// Grid is the absolute grid used for vertex snapping; wall moves always
// snap their delta to whole units.
type Settings struct {
	Thickness int
	Snap      bool
	Grid      float64
	Tolerance float64
}

// DefaultSettings is 20-unit walls with snapping on.
func DefaultSettings() Settings {
	return Settings{
		Thickness: DefaultThickness,
		Snap:      true,
		Grid:      geom.DefaultGrid,
		Tolerance: DefaultTolerance,
	}
}

// ClampThickness limits t to the supported range.
func ClampThickness(t int) int {
	return max(MinThickness, min(MaxThickness, t))
}

// State is the whole interaction state. Optional parts are nil when absent.
// A State is a value: transitions replace the pointers, they never write
// through them, so earlier copies stay valid.
type State struct {
	Tool      Tool
	Settings  Settings
	Hover     *Target
	Selection *Target
	Drag      *DragSession
	Extend    *ExtendSession
}

// NewState starts on the select tool with nothing hovered or selected.
func NewState(s Settings) State {
	s.Thickness = ClampThickness(s.Thickness)
	return State{Tool: ToolSelect, Settings: s}
}

// WithTool switches tools. Any open drag or extend session is abandoned;
// edits it already committed stay.
func (s State) WithTool(t Tool) State {
	s.Tool = t
	s.Drag = nil
	s.Extend = nil
	return s
}

// WithThickness returns s with the draw thickness set, clamped to range.
func (s State) WithThickness(t int) State {
	s.Settings.Thickness = ClampThickness(t)
	return s
}

// Preview returns the rectangle a draw drag would create on release.
func (s State) Preview() (geom.Polygon, bool) {
	if s.Drag == nil || s.Drag.Kind != DragDraw {
		return nil, false
	}
	return geom.CreateWallRectangle(s.Drag.Anchor, s.Drag.Live, float64(s.Settings.Thickness)), true
}

func (s State) tolerance() float64 {
	if s.Settings.Tolerance > 0 {
		return s.Settings.Tolerance
	}
	return DefaultTolerance
}

func (s State) snapVertex(p geom.Point) geom.Point {
	if !s.Settings.Snap {
		return p
	}
	grid := s.Settings.Grid
	if grid <= 0 {
		grid = geom.DefaultGrid
	}
	return geom.SnapToGrid(p, grid)
}

func (s State) snapDelta(d geom.Point) geom.Point {
	if !s.Settings.Snap {
		return d
	}
	return geom.SnapToGrid(d, 1)
}
