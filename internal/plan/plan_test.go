package plan

import (
	"testing"

	"wallsketch/internal/geom"
)

func square(x, y, size float64) geom.Polygon {
	return geom.Polygon{geom.Pt(x, y), geom.Pt(x+size, y), geom.Pt(x+size, y+size), geom.Pt(x, y+size)}
}

func threeWalls() Plan {
	return Plan{
		Walls: []Wall{
			{Boundary: square(0, 0, 10)},
			{Boundary: square(20, 0, 10)},
			{Boundary: square(40, 0, 10)},
		},
		Dimensions: Dimensions{Width: 100, Height: 50},
	}
}

func TestWithoutWallShiftsLaterWalls(t *testing.T) {
	p := threeWalls()
	got := p.WithoutWall(1)
	if len(got.Walls) != 2 {
		t.Fatalf("len(Walls) = %d, want 2", len(got.Walls))
	}
	if got.Walls[1].Boundary[0] != geom.Pt(40, 0) {
		t.Errorf("wall 1 starts at %v, want former wall 2", got.Walls[1].Boundary[0])
	}
	if len(p.Walls) != 3 || p.Walls[1].Boundary[0] != geom.Pt(20, 0) {
		t.Errorf("receiver changed: %+v", p.Walls)
	}
}

func TestWithoutWallOutOfRange(t *testing.T) {
	p := threeWalls()
	for _, i := range []int{-1, 3, 99} {
		if got := p.WithoutWall(i); len(got.Walls) != 3 {
			t.Errorf("WithoutWall(%d) removed a wall", i)
		}
	}
}

func TestWithWallReplacesOnlyTarget(t *testing.T) {
	p := threeWalls()
	moved := p.Walls[2].Boundary.Translate(geom.Pt(5, 5))
	got := p.WithWall(2, moved)
	if got.Walls[2].Boundary[0] != geom.Pt(45, 5) {
		t.Errorf("wall 2 = %v", got.Walls[2].Boundary)
	}
	if p.Walls[2].Boundary[0] != geom.Pt(40, 0) {
		t.Errorf("receiver wall 2 changed to %v", p.Walls[2].Boundary)
	}
	if got.Walls[0].Boundary[0] != p.Walls[0].Boundary[0] {
		t.Errorf("untouched wall differs")
	}
	if same := p.WithWall(7, moved); len(same.Walls) != 3 || same.Walls[2].Boundary[0] != geom.Pt(40, 0) {
		t.Errorf("out of range WithWall changed plan")
	}
}

func TestAppendWallDoesNotAlias(t *testing.T) {
	base := threeWalls()
	a := base.AppendWall(square(60, 0, 5))
	b := base.AppendWall(square(80, 0, 5))
	if len(base.Walls) != 3 {
		t.Fatalf("base grew to %d walls", len(base.Walls))
	}
	if a.Walls[3].Boundary[0] == b.Walls[3].Boundary[0] {
		t.Errorf("appends share backing storage: %v", a.Walls[3].Boundary)
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := threeWalls()
	c := p.Clone()
	c.Walls[0].Boundary[0] = geom.Pt(-1, -1)
	if p.Walls[0].Boundary[0] != geom.Pt(0, 0) {
		t.Errorf("Clone shares boundaries")
	}
}

func TestWallLookup(t *testing.T) {
	p := threeWalls()
	if _, ok := p.Wall(3); ok {
		t.Errorf("Wall(3) ok on 3-wall plan")
	}
	poly, ok := p.Wall(1)
	if !ok || poly[0] != geom.Pt(20, 0) {
		t.Errorf("Wall(1) = %v, %v", poly, ok)
	}
}

func TestFillDimensions(t *testing.T) {
	p := Plan{Walls: []Wall{{Boundary: geom.Polygon{geom.Pt(0, 0), geom.Pt(120, 0), geom.Pt(120, 80)}}}}
	got := p.fillDimensions()
	if got.Dimensions != (Dimensions{Width: 120, Height: 80}) {
		t.Errorf("Dimensions = %+v", got.Dimensions)
	}
	p.Dimensions = Dimensions{Width: 500, Height: 400}
	if got := p.fillDimensions(); got.Dimensions.Width != 500 {
		t.Errorf("explicit dimensions overwritten: %+v", got.Dimensions)
	}
}

func TestKindOf(t *testing.T) {
	tests := map[string]Kind{
		"door":     KindDoor,
		"Door_12":  KindDoor,
		"WINDOWS":  KindWindow,
		"Window_1": KindWindow,
		"Wall_3":   KindWall,
		"":         KindWall,
		"doorway":  KindWall,
	}
	for label, want := range tests {
		if got := kindOf(label); got != want {
			t.Errorf("kindOf(%q) = %v, want %v", label, got, want)
		}
	}
}

func TestStats(t *testing.T) {
	p := threeWalls()
	p.Doors = []Wall{{Boundary: square(0, 0, 1)}}
	got := p.Stats()
	want := Stats{Walls: 3, Doors: 1, Windows: 0, Vertices: 12}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
