//go:build linux

package process_linux

import (
	"fmt"

	"acoverlay/process"
)

// LinuxProcessHelper implements process.ProcessOpener on top of a finder
type LinuxProcessHelper struct {
	Finder process.ProcessFinder
}

var _ process.ProcessOpener = (*LinuxProcessHelper)(nil)

// NewHelper creates a new LinuxProcessHelper
func NewHelper() *LinuxProcessHelper {
	return &LinuxProcessHelper{
		Finder: NewProcessFinder(),
	}
}

// OpenProcessByName opens a process by its name (returns the lowest matching PID)
func (h *LinuxProcessHelper) OpenProcessByName(name string) (process.Process, error) {
	processes, err := h.Finder.FindProcessByName(name)
	if err != nil {
		return nil, err
	}

	if len(processes) == 0 {
		return nil, fmt.Errorf("no process found with name '%s'", name)
	}

	return NewWithPID(lowestPID(processes))
}

// OpenProcessByPattern opens a process by its name pattern (returns the lowest matching PID)
func (h *LinuxProcessHelper) OpenProcessByPattern(pattern string) (process.Process, error) {
	processes, err := h.Finder.FindProcessByNamePattern(pattern)
	if err != nil {
		return nil, err
	}

	if len(processes) == 0 {
		return nil, fmt.Errorf("no process found matching pattern '%s'", pattern)
	}

	return NewWithPID(lowestPID(processes))
}

// pick the lowest PID for determinism
func lowestPID(ps []process.ProcessInfo) process.ProcessID {
	pid := ps[0].PID
	for _, p := range ps[1:] {
		if p.PID < pid {
			pid = p.PID
		}
	}
	return pid
}
