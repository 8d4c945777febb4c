package process

import (
	"fmt"
)

// ProcessMemoryAddress represents a memory address within a process
type ProcessMemoryAddress uint64

func (pma ProcessMemoryAddress) ToString() string {
	return fmt.Sprintf("0x%X", uint64(pma))
}

// Add returns the address offset by size bytes
func (pma ProcessMemoryAddress) Add(size ProcessMemorySize) ProcessMemoryAddress {
	return pma + ProcessMemoryAddress(size)
}

// ProcessMemorySize represents a size of memory region
type ProcessMemorySize uint

func (pms ProcessMemorySize) ToString() string {
	return fmt.Sprintf("%d bytes", uint(pms))
}

// PointerSize is the width in bytes of a pointer inside the target process.
// 32-bit targets (including WOW64 and wine) store 4 byte pointers.
type PointerSize uint8

const (
	Pointer32 PointerSize = 4
	Pointer64 PointerSize = 8
)

// Valid reports whether ps is a pointer width the readers understand
func (ps PointerSize) Valid() bool {
	return ps == Pointer32 || ps == Pointer64
}
