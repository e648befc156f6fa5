package snapshot

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"wallsketch/internal/geom"
	"wallsketch/internal/plan"
)

func samplePlan() plan.Plan {
	p := plan.Plan{Dimensions: plan.Dimensions{Width: 100, Height: 100}}
	p = p.AppendWall(geom.Polygon{geom.Pt(10, 10), geom.Pt(50, 10), geom.Pt(50, 50), geom.Pt(10, 50)})
	p.Doors = []plan.Wall{{Boundary: geom.Polygon{geom.Pt(70, 70), geom.Pt(90, 70), geom.Pt(90, 80)}}}
	return p
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func TestRenderStretchesToSize(t *testing.T) {
	img, err := Render(samplePlan(), Options{Width: 200, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("bounds = %v, want 200x100", b)
	}
	// wall spans x 20..100, y 10..50 after stretching
	if c := img.At(60, 30); !sameColor(c, WallFill) {
		t.Errorf("inside wall = %v, want %v", c, WallFill)
	}
	if c := img.At(150, 30); !sameColor(c, Background) {
		t.Errorf("outside wall = %v, want background", c)
	}
}

func TestRenderDefaultsToPlanDimensions(t *testing.T) {
	img, err := Render(samplePlan(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("bounds = %v, want 100x100", b)
	}

	big := samplePlan()
	big.Dimensions = plan.Dimensions{Width: 8192, Height: 4096}
	img, err = Render(big, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != MaxSide || b.Dy() != MaxSide/2 {
		t.Errorf("bounds = %v, want %dx%d", b, MaxSide, MaxSide/2)
	}
}

func TestCanvasSizeBounded(t *testing.T) {
	tests := []struct {
		name         string
		opts         Options
		wantW, wantH int
	}{
		{"explicit within bounds", Options{Width: 300, Height: 200}, 300, 200},
		{"explicit square too large", Options{Width: 60000, Height: 60000}, MaxSide, MaxSide},
		{"explicit wide too large", Options{Width: 8192, Height: 1024}, MaxSide, MaxSide / 8},
		{"explicit at the limit", Options{Width: MaxSide, Height: 1}, MaxSide, 1},
		{"plan dimensions", Options{}, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, w, h, err := canvasSize(samplePlan(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("canvasSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderEmptyCanvas(t *testing.T) {
	if _, err := Render(plan.Plan{}, Options{}); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("err = %v, want ErrEmptyCanvas", err)
	}
}

func TestRenderWithLabels(t *testing.T) {
	img, err := Render(samplePlan(), Options{Width: 400, Height: 400, Labels: true, FontSize: 24})
	if err != nil {
		t.Fatal(err)
	}
	// the label "0" sits on the wall centre; some pixel nearby must differ
	// from the plain fill
	found := false
	for y := 110; y < 130 && !found; y++ {
		for x := 110; x < 130; x++ {
			if !sameColor(img.At(x, y), WallFill) {
				found = true
				break
			}
		}
	}
	if !found {
		t.Errorf("no label pixels near the wall centre")
	}
}

func TestEncodeAndSave(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, samplePlan(), Options{Width: 64, Height: 32}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("decoded bounds = %v", b)
	}

	path := filepath.Join(t.TempDir(), "plan.png")
	if err := SavePNG(path, samplePlan(), Options{}); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Errorf("snapshot file: %v", err)
	}
}
