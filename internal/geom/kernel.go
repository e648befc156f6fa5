package geom

import "math"

// Epsilon guards every denominator in the kernel.
const Epsilon = 1e-9

// DefaultGrid is the snapping step used for absolute vertex placement.
const DefaultGrid = 5.0

// NearestPointOnSegment projects p onto segment a-b. t is clamped to [0, 1]
// so q always lies on the closed segment.
func NearestPointOnSegment(p, a, b Point) (q Point, t float64) {
	ab := b.Sub(a)
	den := ab.LengthSquared()
	if den < Epsilon {
		den = Epsilon
	}
	t = p.Sub(a).Dot(ab) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t)), t
}

// PointInPolygon reports whether p lies inside poly using even-odd ray
// casting. Polygons with fewer than three vertices contain nothing.
func PointInPolygon(p Point, poly Polygon) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y+Epsilon) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// SegmentIntersection intersects a1-a2 with b1-b2. Parallel and collinear
// segments never hit.
func SegmentIntersection(a1, a2, b1, b2 Point) Intersection {
	r := a2.Sub(a1)
	s := b2.Sub(b1)
	den := r.Cross(s)
	if math.Abs(den) < Epsilon {
		return Intersection{}
	}
	qp := b1.Sub(a1)
	ta := qp.Cross(s) / den
	tb := qp.Cross(r) / den
	if ta < 0 || ta > 1 || tb < 0 || tb > 1 {
		return Intersection{}
	}
	return Intersection{Hit: true, P: a1.Add(r.Scale(ta)), TA: ta, TB: tb}
}

// CreateWallRectangle builds the rectangle of width thickness centred on
// p1-p2. When p1 and p2 coincide the direction falls back to +X.
func CreateWallRectangle(p1, p2 Point, thickness float64) Polygon {
	n := p2.Sub(p1).Normalize().Perp().Scale(thickness / 2)
	return Polygon{
		p1.Add(n),
		p2.Add(n),
		p2.Sub(n),
		p1.Sub(n),
	}
}

// SnapToGrid rounds each coordinate to the nearest multiple of grid, halves
// rounding up. A non-positive grid leaves p unchanged.
func SnapToGrid(p Point, grid float64) Point {
	if grid <= 0 {
		return p
	}
	return Point{
		X: math.Floor(p.X/grid+0.5) * grid,
		Y: math.Floor(p.Y/grid+0.5) * grid,
	}
}

// EdgesOf enumerates the n edges of an n-vertex polygon, closing it.
func EdgesOf(poly Polygon) []Edge {
	n := len(poly)
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{A: poly[i], B: poly[(i+1)%n]})
	}
	return edges
}

// NearestOnPolygon returns the point of poly's boundary closest to p, the
// index of the edge it lies on and its squared distance. edge is NotFound
// for an empty polygon.
func NearestOnPolygon(poly Polygon, p Point) (q Point, edge int, d2 float64) {
	edge = NotFound
	d2 = math.Inf(1)
	for i, e := range EdgesOf(poly) {
		c, _ := NearestPointOnSegment(p, e.A, e.B)
		if d := c.DistanceSquared(p); d < d2 {
			q, edge, d2 = c, i, d
		}
	}
	return q, edge, d2
}
