package geom

import "math"

// NotFound is returned by the pickers when nothing is within reach.
const NotFound = -1

// PickWall returns the index of the wall under p. The first polygon in
// slice order that contains p wins outright; otherwise the polygon with the
// nearest edge is returned when that edge is within tol.
func PickWall(polys []Polygon, p Point, tol float64) int {
	for i, poly := range polys {
		if PointInPolygon(p, poly) {
			return i
		}
	}
	best := NotFound
	bestD := math.Inf(1)
	for i, poly := range polys {
		for _, e := range EdgesOf(poly) {
			q, _ := NearestPointOnSegment(p, e.A, e.B)
			if d := q.DistanceSquared(p); d < bestD {
				bestD = d
				best = i
			}
		}
	}
	if best == NotFound || bestD > tol*tol {
		return NotFound
	}
	return best
}

// PickVertex returns the index of the vertex of poly nearest to p, or
// NotFound when none lies within tol.
func PickVertex(poly Polygon, p Point, tol float64) int {
	best := NotFound
	bestD := math.Inf(1)
	for i, v := range poly {
		if d := v.DistanceSquared(p); d < bestD {
			bestD = d
			best = i
		}
	}
	if best == NotFound || bestD > tol*tol {
		return NotFound
	}
	return best
}
