package plan

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"

	"wallsketch/internal/geom"
)

// ParseKML reads Placemark polygons. The outer boundary becomes the shape;
// a placemark name such as "Door_1" or "window" sets its kind.
// KML coordinates are "x,y[,z]"; z is ignored.
func ParseKML(data []byte) (Plan, error) {
	type kmlRing struct {
		Coordinates string `xml:"LinearRing>coordinates"`
	}
	type kmlPolygon struct {
		Outer kmlRing `xml:"outerBoundaryIs"`
	}
	type kmlPlacemark struct {
		Name     string       `xml:"name"`
		Polygon  *kmlPolygon  `xml:"Polygon"`
		Polygons []kmlPolygon `xml:"MultiGeometry>Polygon"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Folders    []kmlPlacemark `xml:"Document>Folder>Placemark"`
		Bare       []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Plan{}, err
	}
	var p Plan
	marks := append(append(doc.Placemarks, doc.Folders...), doc.Bare...)
	for _, pm := range marks {
		kind := kindOf(pm.Name)
		polys := pm.Polygons
		if pm.Polygon != nil {
			polys = append([]kmlPolygon{*pm.Polygon}, polys...)
		}
		for _, poly := range polys {
			if ring := parseKMLCoordinates(poly.Outer.Coordinates); len(ring) > 0 {
				p.add(kind, openRing(ring))
			}
		}
	}
	if p.Empty() {
		return Plan{}, errors.Join(errors.New("kml: no polygons found"), ErrNoGeometry)
	}
	return p.fillDimensions(), nil
}

func parseKMLCoordinates(s string) geom.Polygon {
	var ring geom.Polygon
	// coordinates are whitespace separated tuples
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		ring = append(ring, geom.Pt(x, y))
	}
	return ring
}
