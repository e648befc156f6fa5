// Package plan holds the floor-plan document edited by wallsketch and the
// readers that build one from JSON, GeoJSON, WKT, KML, CSV and SVG sources.
//
// A Plan is treated as an immutable value: every helper that changes it
// returns a new Plan whose wall slice shares nothing with the receiver's.
package plan

import (
	"fmt"

	"wallsketch/internal/geom"
)

// Wall is a single polygon boundary. Walls carry no id; their index in
// Plan.Walls identifies them.
type Wall struct {
	Boundary geom.Polygon `json:"boundary"`
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Plan is the document handed to the editor. Doors and windows are only
// displayed; edits touch Walls alone.
type Plan struct {
	Walls      []Wall     `json:"walls"`
	Doors      []Wall     `json:"doors"`
	Windows    []Wall     `json:"windows"`
	Dimensions Dimensions `json:"dimensions"`
}

// Clone returns a deep copy of p.
func (p Plan) Clone() Plan {
	return Plan{
		Walls:      cloneWalls(p.Walls),
		Doors:      cloneWalls(p.Doors),
		Windows:    cloneWalls(p.Windows),
		Dimensions: p.Dimensions,
	}
}

func cloneWalls(ws []Wall) []Wall {
	if ws == nil {
		return nil
	}
	out := make([]Wall, len(ws))
	for i, w := range ws {
		out[i] = Wall{Boundary: w.Boundary.Clone()}
	}
	return out
}

// copyWalls copies the wall slice without copying boundaries; entries are
// replaced, never mutated, so sharing them between plans is safe.
func copyWalls(ws []Wall, extra int) []Wall {
	out := make([]Wall, len(ws), len(ws)+extra)
	copy(out, ws)
	return out
}

// WithWall returns a plan whose wall i has the given boundary. An index out
// of range returns p unchanged.
func (p Plan) WithWall(i int, boundary geom.Polygon) Plan {
	if i < 0 || i >= len(p.Walls) {
		return p
	}
	walls := copyWalls(p.Walls, 0)
	walls[i] = Wall{Boundary: boundary}
	p.Walls = walls
	return p
}

// WithoutWall returns a plan with wall i removed; later walls shift down by
// one index.
func (p Plan) WithoutWall(i int) Plan {
	if i < 0 || i >= len(p.Walls) {
		return p
	}
	walls := make([]Wall, 0, len(p.Walls)-1)
	walls = append(walls, p.Walls[:i]...)
	walls = append(walls, p.Walls[i+1:]...)
	p.Walls = walls
	return p
}

// AppendWall returns a plan with boundaries added at the end of the wall list.
func (p Plan) AppendWall(boundaries ...geom.Polygon) Plan {
	walls := copyWalls(p.Walls, len(boundaries))
	for _, b := range boundaries {
		walls = append(walls, Wall{Boundary: b})
	}
	p.Walls = walls
	return p
}

// Wall returns the boundary of wall i and whether it exists.
func (p Plan) Wall(i int) (geom.Polygon, bool) {
	if i < 0 || i >= len(p.Walls) {
		return nil, false
	}
	return p.Walls[i].Boundary, true
}

// WallBoundaries returns the wall polygons in index order.
func (p Plan) WallBoundaries() []geom.Polygon {
	return boundaries(p.Walls)
}

func boundaries(ws []Wall) []geom.Polygon {
	out := make([]geom.Polygon, len(ws))
	for i, w := range ws {
		out[i] = w.Boundary
	}
	return out
}

// Bounds returns the box around every wall, door and window vertex.
func (p Plan) Bounds() (geom.BBox, bool) {
	all := boundaries(p.Walls)
	all = append(all, boundaries(p.Doors)...)
	all = append(all, boundaries(p.Windows)...)
	return geom.BoundsOf(all...)
}

// Empty reports whether the plan has no geometry at all.
func (p Plan) Empty() bool {
	return len(p.Walls) == 0 && len(p.Doors) == 0 && len(p.Windows) == 0
}

type Stats struct {
	Walls    int `json:"walls"`
	Doors    int `json:"doors"`
	Windows  int `json:"windows"`
	Vertices int `json:"vertices"`
}

// Stats counts the plan's shapes and wall vertices.
func (p Plan) Stats() Stats {
	st := Stats{Walls: len(p.Walls), Doors: len(p.Doors), Windows: len(p.Windows)}
	for _, w := range p.Walls {
		st.Vertices += len(w.Boundary)
	}
	return st
}

// Summary is a short human readable count of the plan's contents.
func (p Plan) Summary() string {
	st := p.Stats()
	return fmt.Sprintf("walls=%d doors=%d windows=%d  %gx%g",
		st.Walls, st.Doors, st.Windows, p.Dimensions.Width, p.Dimensions.Height)
}

// fillDimensions derives missing dimensions from the geometry bounds so the
// canvas always covers every vertex that lies in positive space.
func (p Plan) fillDimensions() Plan {
	if p.Dimensions.Width > 0 && p.Dimensions.Height > 0 {
		return p
	}
	bb, ok := p.Bounds()
	if !ok {
		return p
	}
	if p.Dimensions.Width <= 0 && bb.MaxX > 0 {
		p.Dimensions.Width = bb.MaxX
	}
	if p.Dimensions.Height <= 0 && bb.MaxY > 0 {
		p.Dimensions.Height = bb.MaxY
	}
	return p
}

// add appends boundary to the list selected by kind.
func (p *Plan) add(kind Kind, boundary geom.Polygon) {
	switch kind {
	case KindDoor:
		p.Doors = append(p.Doors, Wall{Boundary: boundary})
	case KindWindow:
		p.Windows = append(p.Windows, Wall{Boundary: boundary})
	default:
		p.Walls = append(p.Walls, Wall{Boundary: boundary})
	}
}

// Kind classifies imported shapes.
type Kind int

const (
	KindWall Kind = iota
	KindDoor
	KindWindow
)

func (k Kind) String() string {
	switch k {
	case KindDoor:
		return "door"
	case KindWindow:
		return "window"
	default:
		return "wall"
	}
}
