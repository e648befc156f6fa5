package tui

import (
	"sort"
	"strings"
)

// layer decides the colour of a cell; the highest layer drawn into a cell
// wins.
type layer uint8

const (
	layerNone layer = iota
	layerFill
	layerWall
	layerDoor
	layerWindow
	layerHover
	layerPreview
	layerSelected
)

type brailleBuf struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit mask
	c     [][]layer
	marks map[[2]int]string // pre-styled glyphs replacing a cell
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]layer, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]layer, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c, marks: map[[2]int]string{}}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, l layer) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	if l > b.c[cy][cx] {
		b.c[cy][cx] = l
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, l layer) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, l)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// strokeRing draws the closed outline through ring.
func (b *brailleBuf) strokeRing(ring [][2]int, l layer) {
	for i := range ring {
		a := ring[i]
		c := ring[(i+1)%len(ring)]
		b.drawLineMicro(a[0], a[1], c[0], c[1], l)
	}
}

// fillRing fills ring with the even-odd rule, one micro scanline at a time.
func (b *brailleBuf) fillRing(ring [][2]int, l layer) {
	if len(ring) < 3 {
		return
	}
	hMic := b.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := range ring {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], c[1]
			x0, x1 := a[0], c[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				b.setPixel(xMic, yMic, l)
			}
		}
	}
}

// mark replaces the cell holding micro-pixel (mx, my) with glyph.
func (b *brailleBuf) mark(mx, my int, glyph string) {
	cx, cy := mx/2, my/4
	if mx < 0 || my < 0 || cx >= b.w || cy >= b.h {
		return
	}
	b.marks[[2]int{cx, cy}] = glyph
}

// toLines renders the buffer, styling each run of same-layer cells once.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		cur := layerNone
		flush := func() {
			if len(run) == 0 {
				return
			}
			if st, ok := layerStyles[cur]; ok {
				sb.WriteString(st.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			if g, ok := b.marks[[2]int{x, y}]; ok {
				flush()
				sb.WriteString(g)
				continue
			}
			l := b.c[y][x]
			if l != cur {
				flush()
				cur = l
			}
			mask := b.m[y][x]
			if mask == 0 {
				run = append(run, ' ')
			} else {
				run = append(run, rune(0x2800+int(mask)))
			}
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
