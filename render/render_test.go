package render

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSim(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func TestTerminalSurfaceScaling(t *testing.T) {
	screen := newSim(t)
	s := NewTerminalSurface(screen, 800, 240)

	tests := []struct {
		x, y   int
		cx, cy int
	}{
		{0, 0, 0, 0},
		{10, 20, 1, 2},
		{799, 239, 79, 23},
		{400, 120, 40, 12},
		{-4_000_000_000, 0, -80, 0},
		{4_000_000_000, 4_000_000_000, 160, 48},
	}
	for _, tt := range tests {
		cx, cy := s.Cell(tt.x, tt.y)
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("Cell(%d,%d) = %d,%d; want %d,%d", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
}

func TestTerminalSurfacePaint(t *testing.T) {
	screen := newSim(t)
	s := NewTerminalSurface(screen, 800, 240)

	err := s.Paint([]Command{
		FillRect(100, 50, 50, 50, Gray),
		Rect(100, 50, 50, 50, Red),
		Text(10, 20, "FPS: 62", White),
		Line(400, 239, 400, 150, Orange),
		Text(790, 0, "clipped", White),
	})
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}

	r, _, style, _ := screen.GetContent(1, 2)
	if r != 'F' {
		t.Errorf("text cell = %q, want 'F'", r)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("text fg = %v", fg)
	}

	if r, _, _, _ := screen.GetContent(10, 5); r != tcell.RuneULCorner {
		t.Errorf("corner = %q", r)
	}
	if r, _, _, _ := screen.GetContent(14, 9); r != tcell.RuneLRCorner {
		t.Errorf("far corner = %q", r)
	}
	// inside the box keeps the fill
	_, _, style, _ = screen.GetContent(12, 7)
	if _, bg, _ := style.Decompose(); bg != tcell.NewRGBColor(128, 128, 128) {
		t.Errorf("fill bg = %v", bg)
	}
	// outline keeps the fill background too
	_, _, style, _ = screen.GetContent(11, 5)
	if fg, bg, _ := style.Decompose(); fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(128, 128, 128) {
		t.Errorf("outline style fg=%v bg=%v", fg, bg)
	}

	for y := 15; y <= 23; y++ {
		if r, _, _, _ := screen.GetContent(40, y); r != lineRune {
			t.Errorf("line cell (40,%d) = %q", y, r)
		}
	}

	// a second frame replaces the first
	if err := s.Paint(nil); err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := screen.GetContent(1, 2); r != ' ' {
		t.Errorf("cell after clear = %q", r)
	}
}

func TestTerminalSurfaceOffscreenGeometry(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(200, 60)
	t.Cleanup(screen.Fini)
	s := NewTerminalSurface(screen, 800, 600)

	// a tracer to a point just past the near plane lands billions of pixels out
	far := (2e6/0.2001 + 1) * 400.0
	farX := int(far)
	cmds := []Command{
		FillRect(-4_000_000_000, -4_000_000_000, 8_000_000_000, 8_000_000_000, Gray),
		Rect(-4_000_000_000, -4_000_000_000, 8_000_000_000, 8_000_000_000, Red),
		Line(400, 600, farX, 0, Orange),
		Line(400, 600, 4_000_000_000, 0, Orange),
		Line(400, 600, 400, -4_000_000_000, Orange),
		Line(math.MinInt, 0, math.MaxInt, 599, Orange),
		Line(-4_000_000_000, -10, 4_000_000_000, -10, Orange),
		Text(-4_000_000_000, 10, "gone", White),
	}

	done := make(chan error, 1)
	go func() { done <- s.Paint(cmds) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Paint: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("painting off-screen geometry did not finish")
	}

	// the vertical tracer is clipped to the top edge
	for _, y := range []int{0, 30, 59} {
		if r, _, _, _ := screen.GetContent(100, y); r != lineRune {
			t.Errorf("line cell (100,%d) = %q", y, r)
		}
	}
	_, _, style, _ := screen.GetContent(5, 5)
	if _, bg, _ := style.Decompose(); bg != tcell.NewRGBColor(128, 128, 128) {
		t.Errorf("clipped fill bg = %v", bg)
	}
}

func TestClipLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           [4]float64
		wantOK         bool
	}{
		{"inside", 10, 10, 20, 20, [4]float64{10, 10, 20, 20}, true},
		{"right exit", 0, 50, 200, 50, [4]float64{0, 50, 100, 50}, true},
		{"both outside crossing", -100, 50, 300, 50, [4]float64{0, 50, 100, 50}, true},
		{"above", 0, -10, 100, -10, [4]float64{}, false},
		{"left of screen", -50, 0, -10, 100, [4]float64{}, false},
		{"vertical", 50, 200, 50, -200, [4]float64{50, 100, 50, 0}, true},
		{"point", 5, 5, 5, 5, [4]float64{5, 5, 5, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipLine(tt.x0, tt.y0, tt.x1, tt.y1, 100, 100)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got := [4]float64{x0, y0, x1, y1}; ok && got != tt.want {
				t.Errorf("clipLine = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(2)
	if rec.Last() != nil {
		t.Fatal("empty recorder has a frame")
	}
	for i := range 3 {
		_ = rec.Paint([]Command{Text(i, 0, "x", White)})
	}
	frames := rec.Frames()
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	if rec.Last()[0].X != 2 {
		t.Errorf("last frame = %v", rec.Last())
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		c    Command
		want string
	}{
		{Rect(1, 2, 3, 4, Red), "rect(1,2 3x4 #ff0000ff)"},
		{Line(0, 0, 5, 5, Orange), "line(0,0->5,5 #ffa500ff)"},
		{Text(1, 1, "hi", White), `text(1,1 "hi" #ffffffff)`},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}
