package process

import (
	"acoverlay/process/memory_map"
)

// Process is the interface that defines operations for reading a system process
type Process interface {
	// Open opens a process with the given PID for memory operations
	Open(pid ProcessID) error

	// Close closes the process and releases resources
	Close() error

	// GetPID returns the process ID
	GetPID() ProcessID

	// UpdateMemoryMap refreshes the memory map for the process
	UpdateMemoryMap() error

	// IsValidAddress checks if the given memory address is valid and readable
	IsValidAddress(addr ProcessMemoryAddress) bool

	// GetMemoryMap returns a copy of the current memory map
	GetMemoryMap() ([]memory_map.MemoryMapItem, error)

	// ModuleBase returns the load address of the named module.
	// An empty name selects the main executable.
	ModuleBase(name string) (ProcessMemoryAddress, error)

	// ReadMemory reads exactly size bytes at addr. A short read is an error.
	ReadMemory(addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error)
}
