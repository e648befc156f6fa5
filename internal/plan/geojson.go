package plan

import (
	"github.com/tidwall/gjson"

	"wallsketch/internal/geom"
)

// ParseGeoJSON reads Polygon and MultiPolygon geometries from a Feature,
// FeatureCollection or bare geometry. A feature's "kind" property (or its
// "id") selects wall, door or window; the outer ring is used.
func ParseGeoJSON(data []byte) (Plan, error) {
	if !gjson.ValidBytes(data) {
		return Plan{}, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Plan{}, ErrInvalidJSON
	}
	var p Plan
	switch root.Get("type").String() {
	case "Feature":
		p.addFeature(root)
	case "FeatureCollection":
		root.Get("features").ForEach(func(_, f gjson.Result) bool {
			if f.IsObject() {
				p.addFeature(f)
			}
			return true
		})
	default:
		p.addGeometry(root, KindWall)
	}
	if p.Empty() {
		return Plan{}, ErrNoGeometry
	}
	return p.fillDimensions(), nil
}

func (p *Plan) addFeature(f gjson.Result) {
	kind := KindWall
	if k := f.Get("properties.kind"); k.Type == gjson.String {
		kind = kindOf(k.Str)
	} else if id := f.Get("id"); id.Type == gjson.String {
		kind = kindOf(id.Str)
	}
	if g := f.Get("geometry"); g.IsObject() {
		p.addGeometry(g, kind)
	}
}

func (p *Plan) addGeometry(g gjson.Result, kind Kind) {
	switch g.Get("type").String() {
	case "Polygon":
		if ring, ok := geoJSONOuterRing(g.Get("coordinates")); ok {
			p.add(kind, ring)
		}
	case "MultiPolygon":
		for _, poly := range g.Get("coordinates").Array() {
			if ring, ok := geoJSONOuterRing(poly); ok {
				p.add(kind, ring)
			}
		}
	case "GeometryCollection":
		for _, sub := range g.Get("geometries").Array() {
			if sub.IsObject() {
				p.addGeometry(sub, kind)
			}
		}
	}
}

// geoJSONOuterRing returns the first ring of a polygon's coordinates,
// skipping positions that are not numeric pairs.
func geoJSONOuterRing(coords gjson.Result) (geom.Polygon, bool) {
	if !coords.IsArray() {
		return nil, false
	}
	rings := coords.Array()
	if len(rings) == 0 || !rings[0].IsArray() {
		return nil, false
	}
	var ring geom.Polygon
	for _, pos := range rings[0].Array() {
		xy := pos.Array()
		if len(xy) < 2 || xy[0].Type != gjson.Number || xy[1].Type != gjson.Number {
			continue
		}
		ring = append(ring, geom.Pt(xy[0].Num, xy[1].Num))
	}
	return openRing(ring), true
}
