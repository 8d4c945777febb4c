//go:build linux

package process_linux

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"acoverlay/process"
)

// LinuxProcessFinder implements the process.ProcessFinder interface over procfs
type LinuxProcessFinder struct {
	// Root is the procfs mount point, "/proc" unless overridden in tests
	Root string
}

// NewProcessFinder creates a new LinuxProcessFinder
func NewProcessFinder() *LinuxProcessFinder {
	return &LinuxProcessFinder{Root: "/proc"}
}

// FindProcessByPID finds a process by its PID
func (f *LinuxProcessFinder) FindProcessByPID(pid process.ProcessID) (*process.ProcessInfo, error) {
	procPath := filepath.Join(f.Root, strconv.Itoa(int(pid)))

	if _, err := os.Stat(procPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("process with PID %d does not exist", pid)
	}

	return getProcessInfo(procPath, pid)
}

// FindProcessByName finds processes whose comm or executable base name equals name (like pidof)
func (f *LinuxProcessFinder) FindProcessByName(name string) ([]process.ProcessInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("empty process name")
	}
	return f.walk(func(info *process.ProcessInfo) bool {
		if info.Name == name {
			return true
		}
		return info.Exe != "" && filepath.Base(info.Exe) == name
	})
}

// FindProcessByNamePattern finds processes by their name (pattern match)
func (f *LinuxProcessFinder) FindProcessByNamePattern(pattern string) ([]process.ProcessInfo, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return f.walk(func(info *process.ProcessInfo) bool {
		return re.MatchString(info.Name)
	})
}

func (f *LinuxProcessFinder) walk(match func(*process.ProcessInfo) bool) ([]process.ProcessInfo, error) {
	entries, err := os.ReadDir(f.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Root, err)
	}

	selfPID := os.Getpid()
	var results []process.ProcessInfo

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 || pid == selfPID {
			continue
		}

		info, err := getProcessInfo(filepath.Join(f.Root, entry.Name()), process.ProcessID(pid))
		if err != nil {
			// Process may have terminated while we were reading
			continue
		}

		if match(info) {
			results = append(results, *info)
		}
	}

	return results, nil
}

// Helper function to get process information from a /proc/<pid> directory
func getProcessInfo(procPath string, pid process.ProcessID) (*process.ProcessInfo, error) {
	nameBytes, err := os.ReadFile(filepath.Join(procPath, "comm"))
	if err != nil {
		return nil, fmt.Errorf("failed to read process name: %w", err)
	}
	name := string(bytes.TrimSpace(nameBytes))

	// Resolve /proc/<pid>/exe symlink; may fail if zombie or permission
	exe, _ := os.Readlink(filepath.Join(procPath, "exe"))

	var cmdline []string
	if cmdlineBytes, err := os.ReadFile(filepath.Join(procPath, "cmdline")); err == nil && len(cmdlineBytes) > 0 {
		cmdlineBytes = bytes.TrimSuffix(cmdlineBytes, []byte{0})
		for _, arg := range bytes.Split(cmdlineBytes, []byte{0}) {
			cmdline = append(cmdline, string(arg))
		}
	}

	info := &process.ProcessInfo{
		PID:     pid,
		Name:    name,
		Exe:     exe,
		Cmdline: cmdline,
	}

	if statusBytes, err := os.ReadFile(filepath.Join(procPath, "status")); err == nil {
		for _, line := range strings.Split(string(statusBytes), "\n") {
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)

			switch strings.TrimSpace(key) {
			case "PPid":
				if ppid, err := strconv.Atoi(value); err == nil {
					info.PPID = process.ProcessID(ppid)
				}
			case "State":
				if len(value) > 0 {
					info.State = value[0:1] // First character is the state code
				}
			}
		}
	}

	return info, nil
}
