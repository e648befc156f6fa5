package geom

import "math"

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3-D cross product.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

func (p Point) Length() float64 {
	return math.Sqrt(p.LengthSquared())
}

// DistanceSquared returns |p-q|².
func (p Point) DistanceSquared(q Point) float64 {
	return p.Sub(q).LengthSquared()
}

// Normalize returns the unit vector along p, or (1, 0) when p is shorter
// than Epsilon.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < Epsilon {
		return Point{X: 1, Y: 0}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Perp returns p rotated a quarter turn counter-clockwise.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Clone returns a copy that shares no backing array with poly.
func (poly Polygon) Clone() Polygon {
	if poly == nil {
		return nil
	}
	out := make(Polygon, len(poly))
	copy(out, poly)
	return out
}

// Translate returns a copy of poly moved by delta.
func (poly Polygon) Translate(delta Point) Polygon {
	out := make(Polygon, len(poly))
	for i, p := range poly {
		out[i] = p.Add(delta)
	}
	return out
}

// WithVertex returns a copy of poly with vertex i replaced. Out of range
// indices return an unchanged copy.
func (poly Polygon) WithVertex(i int, p Point) Polygon {
	out := poly.Clone()
	if i >= 0 && i < len(out) {
		out[i] = p
	}
	return out
}

// BoundsOf returns the box enclosing every vertex of polys. ok is false when
// there are no vertices at all.
func BoundsOf(polys ...Polygon) (bbox BBox, ok bool) {
	for _, poly := range polys {
		for _, p := range poly {
			if !ok {
				bbox = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
				ok = true
				continue
			}
			if p.X < bbox.MinX {
				bbox.MinX = p.X
			}
			if p.Y < bbox.MinY {
				bbox.MinY = p.Y
			}
			if p.X > bbox.MaxX {
				bbox.MaxX = p.X
			}
			if p.Y > bbox.MaxY {
				bbox.MaxY = p.Y
			}
		}
	}
	return bbox, ok
}
