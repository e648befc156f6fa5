package plan

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"wallsketch/internal/geom"
)

// Decode reads a plan from JSON. path is a gjson path locating the plan
// inside a larger document; empty means the document is the plan.
//
// Decoding is lenient: points may be {"x":..,"y":..} objects or [x, y]
// pairs, a wall may be a bare point array instead of {"boundary": [...]},
// entries that are not numbers are skipped and missing dimensions are
// derived from the geometry.
func Decode(data []byte, path string) (Plan, error) {
	if !gjson.ValidBytes(data) {
		return Plan{}, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if path != "" {
		root = root.Get(path)
		if !root.Exists() {
			return Plan{}, fmt.Errorf("plan path %q: %w", path, ErrNoGeometry)
		}
	}
	// Some producers double encode the plan as a string field.
	if root.Type == gjson.String && gjson.Valid(root.Str) {
		root = gjson.Parse(root.Str)
	}
	if !root.IsObject() {
		return Plan{}, fmt.Errorf("plan is %s, not an object: %w", root.Type, ErrInvalidJSON)
	}

	var p Plan
	p.Walls = decodeWalls(root.Get("walls"))
	p.Doors = decodeWalls(root.Get("doors"))
	p.Windows = decodeWalls(root.Get("windows"))
	dims := root.Get("dimensions")
	p.Dimensions = Dimensions{
		Width:  dims.Get("width").Float(),
		Height: dims.Get("height").Float(),
	}
	// An empty wall list is a valid plan; a document with none of the
	// three lists is not one at all.
	if p.Empty() && !root.Get("walls").Exists() && !root.Get("doors").Exists() && !root.Get("windows").Exists() {
		return Plan{}, ErrNoGeometry
	}
	return p.fillDimensions(), nil
}

func decodeWalls(r gjson.Result) []Wall {
	if !r.IsArray() {
		return nil
	}
	var walls []Wall
	r.ForEach(func(_, w gjson.Result) bool {
		src := w
		if w.IsObject() {
			src = w.Get("boundary")
			if !src.Exists() {
				src = w.Get("points")
			}
		}
		if poly := decodePolygon(src); poly != nil {
			walls = append(walls, Wall{Boundary: poly})
		}
		return true
	})
	return walls
}

func decodePolygon(r gjson.Result) geom.Polygon {
	if !r.IsArray() {
		return nil
	}
	poly := geom.Polygon{}
	r.ForEach(func(_, v gjson.Result) bool {
		if pt, ok := decodePoint(v); ok {
			poly = append(poly, pt)
		}
		return true
	})
	return poly
}

func decodePoint(v gjson.Result) (geom.Point, bool) {
	var x, y gjson.Result
	switch {
	case v.IsObject():
		x, y = v.Get("x"), v.Get("y")
	case v.IsArray():
		arr := v.Array()
		if len(arr) < 2 {
			return geom.Point{}, false
		}
		x, y = arr[0], arr[1]
	default:
		return geom.Point{}, false
	}
	if x.Type != gjson.Number || y.Type != gjson.Number {
		return geom.Point{}, false
	}
	return geom.Pt(x.Num, y.Num), true
}

// Encode marshals p in the native layout. Nil lists are written as [].
func Encode(p Plan) ([]byte, error) {
	if p.Walls == nil {
		p.Walls = []Wall{}
	}
	if p.Doors == nil {
		p.Doors = []Wall{}
	}
	if p.Windows == nil {
		p.Windows = []Wall{}
	}
	return json.Marshal(p)
}

// Splice writes p into doc at path, keeping everything else in doc. An
// empty path or empty doc yields the plan on its own.
func Splice(doc []byte, path string, p Plan) ([]byte, error) {
	raw, err := Encode(p)
	if err != nil {
		return nil, err
	}
	if path == "" || len(doc) == 0 {
		return raw, nil
	}
	out, err := sjson.SetRawBytes(doc, path, raw)
	if err != nil {
		return nil, fmt.Errorf("splice plan at %q: %w", path, err)
	}
	return out, nil
}
