package geom

// Point is a position or vector in document space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is an ordered ring of vertices; the closing edge is implicit.
type Polygon []Point

// Edge is one side of a polygon.
type Edge struct {
	A Point
	B Point
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Width is the horizontal extent.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height is the vertical extent.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Intersection is the result of SegmentIntersection. P, TA and TB are only
// meaningful when Hit is true.
type Intersection struct {
	Hit bool
	P   Point
	TA  float64
	TB  float64
}
