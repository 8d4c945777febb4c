package overlay

import (
	"fmt"
	"strconv"
	"time"

	"acoverlay/projection"
	"acoverlay/render"
)

const (
	headOffset = 0.5
	feetOffset = -4.5

	healthBarGap   = 6
	healthBarWidth = 4
	labelLift      = 10
	hpLabelGap     = 40
)

// View is the surface geometry and tick rate a frame is drawn for
type View struct {
	Width, Height int
	Interval      time.Duration
}

// FPS is the nominal tick rate shown in the header
func (v View) FPS() int {
	ms := v.Interval.Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int(1000 / ms)
}

// Box is an entity bounding box in pixels
type Box struct {
	X, Y, W, H int
}

// BoxFor builds the box from projected head and feet points.
// ok is false when the box has no height.
func BoxFor(head, feet projection.ScreenPoint) (Box, bool) {
	h := feet.Y - head.Y
	if h <= 0 {
		return Box{}, false
	}
	w := h / 3
	return Box{X: head.X - w/2, Y: head.Y, W: w, H: h}, true
}

// HealthBarHeight scales health (out of 100) to the box height, clamped to [0, boxHeight]
func HealthBarHeight(boxHeight int, health int32) int {
	if boxHeight <= 0 || health <= 0 {
		return 0
	}
	h := int64(boxHeight) * int64(health) / 100
	return int(min(h, int64(boxHeight)))
}

func TeamColor(team int32) render.Color {
	switch team {
	case 0:
		return render.Red
	case 1:
		return render.Blue
	}
	return render.Yellow
}

// Render turns a frame into draw commands. It has no side effects.
func Render(f Frame, v View) []render.Command {
	cmds := []render.Command{
		render.Text(10, 20, fmt.Sprintf("FPS: %d", v.FPS()), render.White),
		render.Text(10, 40, fmt.Sprintf("Total Players: %d", f.PlayerCount), render.White),
	}
	for _, s := range f.Slots {
		cmds = append(cmds, EntityCommands(s, f.Matrix, v)...)
	}
	return cmds
}

// RenderError is the frame drawn when a tick could not be gathered
func RenderError(err error) []render.Command {
	return []render.Command{render.Text(10, 20, "Error: "+err.Error(), render.Red)}
}

// EntityCommands draws one entity, or nothing when it is dead or off camera
func EntityCommands(s Slot, m projection.Matrix, v View) []render.Command {
	e := s.Entity
	if !e.Alive() {
		return nil
	}

	pos := projection.Vec3{X: e.X, Y: e.Y, Z: e.Z}
	head, ok := projection.Project(m, pos.Add(0, 0, headOffset), v.Width, v.Height)
	if !ok {
		return nil
	}
	feet, ok := projection.Project(m, pos.Add(0, 0, feetOffset), v.Width, v.Height)
	if !ok {
		return nil
	}
	box, ok := BoxFor(head, feet)
	if !ok {
		return nil
	}

	name := e.Name
	if e.NameErr != nil {
		name = "?"
	}

	bar := HealthBarHeight(box.H, e.Health)
	return []render.Command{
		render.FillRect(box.X, box.Y, box.W, box.H, render.Gray),
		render.Rect(box.X, box.Y, box.W, box.H, TeamColor(e.Team)),
		render.FillRect(box.X-healthBarGap, box.Y+box.H-bar, healthBarWidth, bar, render.Green),
		render.Text(box.X, box.Y-labelLift, name, render.White),
		render.Text(box.X+hpLabelGap, box.Y+box.H/2, "HP: "+strconv.Itoa(int(e.Health)), render.White),
		render.Line(v.Width/2, v.Height, feet.X, feet.Y, render.Orange),
	}
}
