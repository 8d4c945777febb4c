package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

const (
	lineRune = '·'
)

// TerminalSurface rasterises overlay pixel coordinates onto the cells of a
// tcell screen. The overlay's width x height pixels are stretched over the
// whole screen; text runs one rune per cell from its scaled origin.
type TerminalSurface struct {
	screen        tcell.Screen
	width, height int
}

func NewTerminalSurface(screen tcell.Screen, width, height int) *TerminalSurface {
	return &TerminalSurface{screen: screen, width: max(width, 1), height: max(height, 1)}
}

func (s *TerminalSurface) Paint(cmds []Command) error {
	s.screen.Clear()
	for _, c := range cmds {
		s.draw(c)
	}
	s.screen.Show()
	return nil
}

// Cell maps an overlay pixel to a screen cell. Pixels far off the surface
// map to cells at most one screen beyond the edge.
func (s *TerminalSurface) Cell(x, y int) (int, int) {
	cols, rows := s.screen.Size()
	return cellIndex(float64(x), s.width, cols), cellIndex(float64(y), s.height, rows)
}

func cellIndex(v float64, pixels, cells int) int {
	v = min(max(v, -float64(pixels)), 2*float64(pixels))
	return int(math.Floor(v * float64(cells) / float64(pixels)))
}

func (s *TerminalSurface) draw(c Command) {
	if c.Color.A == 0 {
		return
	}
	switch c.Op {
	case OpFillRect:
		style := tcell.StyleDefault.Background(tcellColor(c.Color))
		cols, rows := s.screen.Size()
		x0, x1 := span(c.X, c.W, s.width, cols)
		y0, y1 := span(c.Y, c.H, s.height, rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				s.set(x, y, ' ', style)
			}
		}
	case OpRect:
		s.outline(c)
	case OpLine:
		style := tcell.StyleDefault.Foreground(tcellColor(c.Color))
		px0, py0, px1, py1, ok := clipLine(
			float64(c.X), float64(c.Y), float64(c.X2), float64(c.Y2),
			float64(s.width), float64(s.height))
		if !ok {
			return
		}
		x0, y0 := s.Cell(int(math.Round(px0)), int(math.Round(py0)))
		x1, y1 := s.Cell(int(math.Round(px1)), int(math.Round(py1)))
		bresenham(x0, y0, x1, y1, func(x, y int) {
			s.set(x, y, lineRune, style)
		})
	case OpText:
		style := tcell.StyleDefault.Foreground(tcellColor(c.Color))
		x, y := s.Cell(c.X, c.Y)
		for _, r := range c.Text {
			s.set(x, y, r, style)
			x++
		}
	}
}

// span maps the pixel run [p, p+n) to the cells [c0, c1) it covers, clipped
// to the screen. A run narrower than a cell still covers one.
func span(p, n, pixels, cells int) (int, int) {
	lo := float64(p)
	c0 := cellIndex(lo, pixels, cells)
	c1 := max(cellIndex(lo+float64(n), pixels, cells), c0+1)
	return max(c0, 0), min(c1, cells)
}

func (s *TerminalSurface) outline(c Command) {
	style := tcell.StyleDefault.Foreground(tcellColor(c.Color))
	cols, rows := s.screen.Size()
	x0, y0 := s.Cell(c.X, c.Y)
	x1 := cellIndex(float64(c.X)+float64(c.W), s.width, cols)
	y1 := cellIndex(float64(c.Y)+float64(c.H), s.height, rows)
	x1 = max(x1-1, x0)
	y1 = max(y1-1, y0)

	// keep a fill underneath visible
	keepBg := func(x, y int) tcell.Style {
		_, _, old, _ := s.screen.GetContent(x, y)
		_, bg, _ := old.Decompose()
		return style.Background(bg)
	}

	for x := max(x0+1, 0); x < min(x1, cols); x++ {
		s.set(x, y0, tcell.RuneHLine, keepBg(x, y0))
		s.set(x, y1, tcell.RuneHLine, keepBg(x, y1))
	}
	for y := max(y0+1, 0); y < min(y1, rows); y++ {
		s.set(x0, y, tcell.RuneVLine, keepBg(x0, y))
		s.set(x1, y, tcell.RuneVLine, keepBg(x1, y))
	}
	s.set(x0, y0, tcell.RuneULCorner, keepBg(x0, y0))
	s.set(x1, y0, tcell.RuneURCorner, keepBg(x1, y0))
	s.set(x0, y1, tcell.RuneLLCorner, keepBg(x0, y1))
	s.set(x1, y1, tcell.RuneLRCorner, keepBg(x1, y1))
}

func (s *TerminalSurface) set(x, y int, r rune, style tcell.Style) {
	cols, rows := s.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	s.screen.SetContent(x, y, r, nil, style)
}

func tcellColor(c Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// clipLine clips a segment to [0,w] x [0,h] (Liang-Barsky). ok is false
// when no part of it is inside.
func clipLine(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, w - x0},
		{-dy, y0},
		{dy, h - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
