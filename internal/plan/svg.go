package plan

import (
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"wallsketch/internal/geom"
)

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	svgGroup
}

type svgGroup struct {
	Rects  []svgRect  `xml:"rect"`
	Paths  []svgPath  `xml:"path"`
	Groups []svgGroup `xml:"g"`
}

type svgRect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type svgPath struct {
	ID string `xml:"id,attr"`
	D  string `xml:"d,attr"`
}

// ParseSVG reads rect and path elements whose id starts with Wall_, Door_
// or Window_. Anything else (rooms, decoration) is skipped. The canvas size
// comes from the width and height attributes, or from the viewBox.
func ParseSVG(r io.Reader) (Plan, error) {
	var doc svgDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Plan{}, err
	}
	var p Plan
	var walk func(g svgGroup)
	walk = func(g svgGroup) {
		for _, rect := range g.Rects {
			kind, ok := classifySVGID(rect.ID)
			if !ok {
				continue
			}
			x0, y0 := rect.X, rect.Y
			x1, y1 := x0+rect.Width, y0+rect.Height
			p.add(kind, geom.Polygon{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
		}
		for _, path := range g.Paths {
			kind, ok := classifySVGID(path.ID)
			if !ok {
				continue
			}
			pts, err := ParsePathData(path.D)
			if err != nil || len(pts) == 0 {
				continue
			}
			p.add(kind, openRing(pts))
		}
		for _, sub := range g.Groups {
			walk(sub)
		}
	}
	walk(doc.svgGroup)
	if p.Empty() {
		return Plan{}, errors.Join(errors.New("svg: no Wall_, Door_ or Window_ elements"), ErrNoGeometry)
	}
	p.Dimensions = svgDimensions(doc)
	return p.fillDimensions(), nil
}

func classifySVGID(id string) (Kind, bool) {
	switch {
	case strings.HasPrefix(id, "Wall_"):
		return KindWall, true
	case strings.HasPrefix(id, "Door_"):
		return KindDoor, true
	case strings.HasPrefix(id, "Window_"):
		return KindWindow, true
	}
	return KindWall, false
}

func svgDimensions(doc svgDoc) Dimensions {
	w, errW := parseSVGLength(doc.Width)
	h, errH := parseSVGLength(doc.Height)
	if errW == nil && errH == nil && w > 0 && h > 0 {
		return Dimensions{Width: w, Height: h}
	}
	if vb := parseNumbers(doc.ViewBox); len(vb) == 4 {
		return Dimensions{Width: vb[2], Height: vb[3]}
	}
	return Dimensions{}
}

func parseSVGLength(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

var pathCommand = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePathData turns an SVG path made of M, L, H, V and Z commands (and
// their relative forms) into points. Extra coordinate pairs after M or L
// are treated as further line-to commands. Curves are not supported.
func ParsePathData(d string) (geom.Polygon, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, errors.New("empty path")
	}
	var pts geom.Polygon
	var cur, start geom.Point
	for _, m := range pathCommand.FindAllStringSubmatch(d, -1) {
		cmd := m[1]
		args := parseNumbers(m[2])
		rel := cmd == strings.ToLower(cmd)
		switch strings.ToUpper(cmd) {
		case "M", "L":
			for i := 0; i+1 < len(args); i += 2 {
				next := geom.Pt(args[i], args[i+1])
				if rel {
					next = cur.Add(next)
				}
				cur = next
				if strings.ToUpper(cmd) == "M" && i == 0 {
					start = cur
				}
				pts = append(pts, cur)
			}
		case "H":
			for _, x := range args {
				if rel {
					x += cur.X
				}
				cur.X = x
				pts = append(pts, cur)
			}
		case "V":
			for _, y := range args {
				if rel {
					y += cur.Y
				}
				cur.Y = y
				pts = append(pts, cur)
			}
		case "Z":
			cur = start
		}
	}
	return pts, nil
}

func parseNumbers(s string) []float64 {
	var out []float64
	for _, part := range strings.Fields(strings.ReplaceAll(s, ",", " ")) {
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}
