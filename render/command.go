package render

import "fmt"

// Color is 8-bit RGBA. A is 255 for opaque.
type Color struct {
	R, G, B, A uint8
}

var (
	Red    = Color{255, 0, 0, 255}
	Blue   = Color{0, 0, 255, 255}
	Yellow = Color{255, 255, 0, 255}
	Green  = Color{0, 255, 0, 255}
	White  = Color{255, 255, 255, 255}
	Orange = Color{255, 165, 0, 255}
	Gray   = Color{128, 128, 128, 128}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

type Op int

const (
	OpRect Op = iota
	OpFillRect
	OpLine
	OpText
)

func (o Op) String() string {
	switch o {
	case OpRect:
		return "rect"
	case OpFillRect:
		return "fill"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Command is one draw instruction in overlay pixel coordinates.
// Rects use X, Y, W, H. Lines run from X, Y to X2, Y2. Text starts at X, Y.
type Command struct {
	Op     Op
	X, Y   int
	W, H   int
	X2, Y2 int
	Text   string
	Color  Color
}

func (c Command) String() string {
	switch c.Op {
	case OpRect, OpFillRect:
		return fmt.Sprintf("%s(%d,%d %dx%d %s)", c.Op, c.X, c.Y, c.W, c.H, c.Color)
	case OpLine:
		return fmt.Sprintf("line(%d,%d->%d,%d %s)", c.X, c.Y, c.X2, c.Y2, c.Color)
	case OpText:
		return fmt.Sprintf("text(%d,%d %q %s)", c.X, c.Y, c.Text, c.Color)
	}
	return c.Op.String()
}

func Rect(x, y, w, h int, c Color) Command {
	return Command{Op: OpRect, X: x, Y: y, W: w, H: h, Color: c}
}

func FillRect(x, y, w, h int, c Color) Command {
	return Command{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: c}
}

func Line(x1, y1, x2, y2 int, c Color) Command {
	return Command{Op: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Color: c}
}

func Text(x, y int, s string, c Color) Command {
	return Command{Op: OpText, X: x, Y: y, Text: s, Color: c}
}

// Surface paints one complete frame, replacing the previous one
type Surface interface {
	Paint(cmds []Command) error
}
