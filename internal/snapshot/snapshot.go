// Package snapshot rasterises a plan to PNG.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"wallsketch/internal/geom"
	"wallsketch/internal/plan"
)

// MaxSide bounds the longer side of an image sized from plan dimensions.
const MaxSide = 2048

var ErrEmptyCanvas = errors.New("snapshot: plan has no dimensions")

var (
	Background = color.RGBA{255, 255, 255, 255}
	WallFill   = color.RGBA{120, 120, 120, 255}
	WallEdge   = color.RGBA{40, 40, 40, 255}
	DoorEdge   = color.RGBA{176, 112, 48, 255}
	WindowEdge = color.RGBA{48, 128, 208, 255}
	LabelColor = color.RGBA{200, 30, 30, 255}
)

// Options controls the output. A zero Width or Height takes the plan's
// dimensions, scaled down so neither side exceeds MaxSide.
type Options struct {
	Width    int
	Height   int
	Labels   bool
	FontSize float64
}

// Render draws p stretched to the image size: walls filled, doors and
// windows outlined, and wall indices when Labels is set.
func Render(p plan.Plan, opts Options) (image.Image, error) {
	dc, err := draw(p, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Encode renders p and writes it to w as PNG.
func Encode(w io.Writer, p plan.Plan, opts Options) error {
	dc, err := draw(p, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders p into the PNG file at path.
func SavePNG(path string, p plan.Plan, opts Options) error {
	dc, err := draw(p, opts)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func canvasSize(p plan.Plan, opts Options) (docW, docH float64, w, h int, err error) {
	docW, docH = p.Dimensions.Width, p.Dimensions.Height
	if docW <= 0 || docH <= 0 {
		bb, ok := p.Bounds()
		if !ok || bb.MaxX <= 0 || bb.MaxY <= 0 {
			return 0, 0, 0, 0, ErrEmptyCanvas
		}
		docW, docH = bb.MaxX, bb.MaxY
	}
	fw, fh := float64(opts.Width), float64(opts.Height)
	if opts.Width <= 0 || opts.Height <= 0 {
		fw, fh = docW, docH
	}
	// explicit sizes are bounded too, keeping their aspect ratio
	scale := min(1, MaxSide/max(fw, fh))
	w, h = max(1, int(fw*scale)), max(1, int(fh*scale))
	return docW, docH, w, h, nil
}

func draw(p plan.Plan, opts Options) (*gg.Context, error) {
	docW, docH, w, h, err := canvasSize(p, opts)
	if err != nil {
		return nil, err
	}
	sx, sy := float64(w)/docW, float64(h)/docH

	dc := gg.NewContext(w, h)
	dc.SetColor(Background)
	dc.Clear()

	trace := func(poly geom.Polygon) {
		dc.NewSubPath()
		for i, pt := range poly {
			if i == 0 {
				dc.MoveTo(pt.X*sx, pt.Y*sy)
			} else {
				dc.LineTo(pt.X*sx, pt.Y*sy)
			}
		}
		dc.ClosePath()
	}

	dc.SetLineWidth(1.5)
	for _, wall := range p.Walls {
		if len(wall.Boundary) < 2 {
			continue
		}
		trace(wall.Boundary)
		dc.SetColor(WallFill)
		dc.FillPreserve()
		dc.SetColor(WallEdge)
		dc.Stroke()
	}
	dc.SetLineWidth(2)
	for _, group := range []struct {
		shapes []plan.Wall
		c      color.Color
	}{{p.Doors, DoorEdge}, {p.Windows, WindowEdge}} {
		for _, s := range group.shapes {
			if len(s.Boundary) < 2 {
				continue
			}
			trace(s.Boundary)
			dc.SetColor(group.c)
			dc.Stroke()
		}
	}

	if opts.Labels {
		face, err := monoFace(opts.FontSize)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(LabelColor)
		for i, wall := range p.Walls {
			if len(wall.Boundary) == 0 {
				continue
			}
			c := centroid(wall.Boundary)
			dc.DrawStringAnchored(strconv.Itoa(i), c.X*sx, c.Y*sy, 0.5, 0.5)
		}
	}
	return dc, nil
}

func monoFace(size float64) (font.Face, error) {
	if size <= 0 {
		size = 12
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// centroid is the vertex average, good enough to place a label.
func centroid(poly geom.Polygon) geom.Point {
	var c geom.Point
	for _, p := range poly {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(poly)))
}
