package overlay

import (
	"acoverlay/layout"
	"acoverlay/process"
	"acoverlay/projection"
)

// Slot is one entity read from the entity table
type Slot struct {
	Index  int // position in the table, before skipping
	Addr   process.ProcessMemoryAddress
	Entity layout.Entity
}

// Frame is everything one tick read from the target
type Frame struct {
	PlayerCount int
	Matrix      projection.Matrix
	LocalPlayer process.ProcessMemoryAddress
	Slots       []Slot
}

// Alive returns the slots with health above zero
func (f Frame) Alive() []Slot {
	var out []Slot
	for _, s := range f.Slots {
		if s.Entity.Alive() {
			out = append(out, s)
		}
	}
	return out
}
