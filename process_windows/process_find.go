//go:build windows

package process_windows

import (
	"fmt"
	"regexp"
	"strings"
	"unsafe"

	"acoverlay/process"

	"golang.org/x/sys/windows"
)

// WindowsProcessFinder enumerates processes with a toolhelp snapshot
type WindowsProcessFinder struct{}

// NewProcessFinder creates a new WindowsProcessFinder
func NewProcessFinder() *WindowsProcessFinder {
	return &WindowsProcessFinder{}
}

func (f *WindowsProcessFinder) FindProcessByPID(pid process.ProcessID) (*process.ProcessInfo, error) {
	all, err := f.walk(func(info *process.ProcessInfo) bool { return info.PID == pid })
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("process with PID %d does not exist", pid)
	}
	return &all[0], nil
}

// FindProcessByName matches the executable name case-insensitively
func (f *WindowsProcessFinder) FindProcessByName(name string) ([]process.ProcessInfo, error) {
	return f.walk(func(info *process.ProcessInfo) bool {
		return strings.EqualFold(info.Name, name)
	})
}

func (f *WindowsProcessFinder) FindProcessByNamePattern(pattern string) ([]process.ProcessInfo, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return f.walk(func(info *process.ProcessInfo) bool {
		return re.MatchString(info.Name)
	})
}

func (f *WindowsProcessFinder) walk(match func(*process.ProcessInfo) bool) ([]process.ProcessInfo, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot failed: %w", err)
	}
	defer windows.CloseHandle(snap)

	var results []process.ProcessInfo
	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	for err = windows.Process32First(snap, &entry); err == nil; err = windows.Process32Next(snap, &entry) {
		info := process.ProcessInfo{
			PID:  process.ProcessID(entry.ProcessID),
			PPID: process.ProcessID(entry.ParentProcessID),
			Name: windows.UTF16ToString(entry.ExeFile[:]),
		}
		if match(&info) {
			results = append(results, info)
		}
	}
	return results, nil
}

// WindowsProcessHelper implements process.ProcessOpener
type WindowsProcessHelper struct {
	Finder process.ProcessFinder
}

var _ process.ProcessOpener = (*WindowsProcessHelper)(nil)

func NewHelper() *WindowsProcessHelper {
	return &WindowsProcessHelper{Finder: NewProcessFinder()}
}

func (h *WindowsProcessHelper) OpenProcessByName(name string) (process.Process, error) {
	processes, err := h.Finder.FindProcessByName(name)
	if err != nil {
		return nil, err
	}
	if len(processes) == 0 {
		return nil, fmt.Errorf("no process found with name '%s'", name)
	}
	return NewWithPID(processes[0].PID)
}

func (h *WindowsProcessHelper) OpenProcessByPattern(pattern string) (process.Process, error) {
	processes, err := h.Finder.FindProcessByNamePattern(pattern)
	if err != nil {
		return nil, err
	}
	if len(processes) == 0 {
		return nil, fmt.Errorf("no process found matching pattern '%s'", pattern)
	}
	return NewWithPID(processes[0].PID)
}
