package plan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wallsketch/internal/geom"
	"wallsketch/internal/logging"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported plan format")
	ErrNoGeometry        = errors.New("no walls, doors or windows found")
	ErrInvalidJSON       = errors.New("invalid plan json")
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".json", ".geojson", ".wkt", ".kml", ".csv", ".svg"}

// Supported reports whether Load can read the file at path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads a plan from disk, choosing the reader by extension. planPath
// is only used for .json files.
func Load(path, planPath string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var p Plan
	switch ext {
	case ".json":
		p, err = Decode(data, planPath)
	case ".geojson":
		p, err = ParseGeoJSON(data)
	case ".wkt":
		p, err = ParseWKT(string(data))
	case ".kml":
		p, err = ParseKML(data)
	case ".csv":
		p, err = ParseCSV(bytes.NewReader(data))
	case ".svg":
		p, err = ParseSVG(bytes.NewReader(data))
	default:
		return Plan{}, fmt.Errorf("%s: %w", ext, ErrUnsupportedFormat)
	}
	if err != nil {
		return Plan{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	logging.L().Info("plan loaded", "path", path, "walls", len(p.Walls), "doors", len(p.Doors), "windows", len(p.Windows))
	return p, nil
}

// Save writes p as JSON. When path already holds a JSON document and
// planPath is set, the plan is spliced into that document.
func Save(path, planPath string, p Plan) error {
	var doc []byte
	if planPath != "" {
		if existing, err := os.ReadFile(path); err == nil {
			doc = existing
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	out, err := Splice(doc, planPath, p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	logging.L().Info("plan saved", "path", path, "walls", len(p.Walls))
	return nil
}

// kindOf classifies a shape from a free-form label: a kind name such as
// "door" or an element id such as "Window_3".
func kindOf(label string) Kind {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case l == "door" || l == "doors" || strings.HasPrefix(l, "door_"):
		return KindDoor
	case l == "window" || l == "windows" || strings.HasPrefix(l, "window_"):
		return KindWindow
	default:
		return KindWall
	}
}

// openRing drops the closing vertex of rings written in closed form.
func openRing(poly geom.Polygon) geom.Polygon {
	if n := len(poly); n > 1 && poly[0] == poly[n-1] {
		return poly[:n-1]
	}
	return poly
}
