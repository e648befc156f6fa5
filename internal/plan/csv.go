package plan

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"wallsketch/internal/geom"
)

// ParseCSV reads one vertex per row. Rows sharing a shape id form one
// polygon, in first-seen order. Column detection (case-insensitive):
// wall|id|shape, x|lon, y|lat and an optional kind column.
func ParseCSV(r io.Reader) (Plan, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Plan{}, err
	}
	if len(recs) == 0 {
		return Plan{}, errors.New("empty csv")
	}
	idxID, idxX, idxY, idxKind := -1, -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "wall", "id", "shape":
			if idxID == -1 {
				idxID = i
			}
		case "x", "lon", "lng":
			if idxX == -1 {
				idxX = i
			}
		case "y", "lat":
			if idxY == -1 {
				idxY = i
			}
		case "kind", "type":
			if idxKind == -1 {
				idxKind = i
			}
		}
	}
	if idxID == -1 || idxX == -1 || idxY == -1 {
		return Plan{}, errors.New("csv: id/x/y columns not found")
	}

	type shape struct {
		kind Kind
		ring geom.Polygon
	}
	var order []string
	shapes := map[string]*shape{}
	for _, row := range recs[1:] {
		if idxID >= len(row) || idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		id := strings.TrimSpace(row[idxID])
		s, ok := shapes[id]
		if !ok {
			label := id
			if idxKind >= 0 && idxKind < len(row) {
				label = row[idxKind]
			}
			s = &shape{kind: kindOf(label)}
			shapes[id] = s
			order = append(order, id)
		}
		s.ring = append(s.ring, geom.Pt(x, y))
	}
	var p Plan
	for _, id := range order {
		p.add(shapes[id].kind, openRing(shapes[id].ring))
	}
	if p.Empty() {
		return Plan{}, errors.Join(errors.New("csv: no valid points parsed"), ErrNoGeometry)
	}
	return p.fillDimensions(), nil
}
