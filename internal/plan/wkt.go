package plan

import (
	"errors"
	"strconv"
	"strings"

	"wallsketch/internal/geom"
)

// ParseWKT reads POLYGON and MULTIPOLYGON text. Only outer rings become
// walls; holes are ignored. Several geometries may be given one per line.
func ParseWKT(wkt string) (Plan, error) {
	var p Plan
	for _, line := range strings.Split(wkt, "\n") {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		rings, err := parseWKTPolygons(s)
		if err != nil {
			return Plan{}, err
		}
		for _, r := range rings {
			p.add(KindWall, r)
		}
	}
	if p.Empty() {
		return Plan{}, ErrNoGeometry
	}
	return p.fillDimensions(), nil
}

// WKTWalls parses wkt and returns only the wall outlines, for appending to
// an existing plan.
func WKTWalls(wkt string) ([]geom.Polygon, error) {
	p, err := ParseWKT(wkt)
	if err != nil {
		return nil, err
	}
	return p.WallBoundaries(), nil
}

func parseWKTPolygons(s string) ([]geom.Polygon, error) {
	up := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		i := strings.Index(s, "(((")
		j := strings.LastIndex(s, ")))")
		if i < 0 || j <= i {
			return nil, errors.New("wkt multipolygon: invalid")
		}
		body := normalizeWKT(s[i+3 : j])
		var out []geom.Polygon
		for _, poly := range strings.Split(body, ")),((") {
			rings := strings.Split(poly, "),(")
			if ring := parseWKTTuples(rings[0]); len(ring) > 0 {
				out = append(out, openRing(ring))
			}
		}
		return out, nil
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, errors.New("wkt polygon: invalid")
		}
		rings := strings.Split(normalizeWKT(s[i+2:j]), "),(")
		ring := parseWKTTuples(rings[0])
		if len(ring) == 0 {
			return nil, errors.New("wkt polygon: no coordinates parsed")
		}
		return []geom.Polygon{openRing(ring)}, nil
	}
	return nil, errors.New("unsupported wkt type: want POLYGON or MULTIPOLYGON")
}

// normalizeWKT removes whitespace around ring and polygon separators.
func normalizeWKT(s string) string {
	for _, sep := range []string{"( ", " (", ") ", " )"} {
		for strings.Contains(s, sep) {
			s = strings.ReplaceAll(s, sep, strings.TrimSpace(sep))
		}
	}
	s = strings.ReplaceAll(s, "), (", "),(")
	return s
}

func parseWKTTuples(block string) geom.Polygon {
	var out geom.Polygon
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.Trim(strings.TrimSpace(tup), "()"))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, geom.Pt(x, y))
	}
	return out
}
