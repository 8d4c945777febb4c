package process

import (
	"encoding/binary"
	"fmt"
)

// ReadPath reads a value of type T at the end of a pointer path.
// It starts at base, adds the first offset, reads a pointer, adds the next offset, reads a pointer, etc.
// The last offset is added to the final pointer, and then T is read from that address.
// If offsets is empty, it reads T from base.
func ReadPath[T any](proc Process, width PointerSize, base ProcessMemoryAddress, offsets ...ProcessMemorySize) (T, error) {
	var zero T
	currentAddr := base

	// Iterate over all offsets except the last one
	for i := 0; i < len(offsets)-1; i++ {
		ptrAddr := currentAddr.Add(offsets[i])

		ptrVal, err := ReadPointer(proc, width, ptrAddr)
		if err != nil {
			return zero, fmt.Errorf("failed to read pointer at offset %d (addr 0x%x): %w", i, uint64(ptrAddr), err)
		}

		if ptrVal == 0 {
			return zero, fmt.Errorf("pointer at offset %d (addr 0x%x) is null: %w", i, uint64(ptrAddr), ErrInvalidPointer)
		}

		currentAddr = ptrVal
	}

	finalOffset := ProcessMemorySize(0)
	if len(offsets) > 0 {
		finalOffset = offsets[len(offsets)-1]
	}

	finalAddr := currentAddr.Add(finalOffset)

	val, err := Read[T](proc, finalAddr)
	if err != nil {
		return zero, fmt.Errorf("failed to read final value at 0x%x: %w", uint64(finalAddr), err)
	}

	return val, nil
}

// Read reads a single fixed-size value of type T (little endian) from memory
func Read[T any](proc Process, addr ProcessMemoryAddress) (T, error) {
	var t T
	size := binary.Size(t)
	if size <= 0 {
		return t, fmt.Errorf("read %T: not a fixed-size type", t)
	}

	data, err := proc.ReadMemory(addr, ProcessMemorySize(size))
	if err != nil {
		return t, err
	}

	if _, err := binary.Decode(data, binary.LittleEndian, &t); err != nil {
		return t, fmt.Errorf("decode %T at 0x%x: %w", t, uint64(addr), err)
	}
	return t, nil
}

// ReadPointer reads a pointer of the given width and widens it to an address
func ReadPointer(proc Process, width PointerSize, addr ProcessMemoryAddress) (ProcessMemoryAddress, error) {
	switch width {
	case Pointer32:
		v, err := Read[uint32](proc, addr)
		return ProcessMemoryAddress(v), err
	case Pointer64:
		v, err := Read[uint64](proc, addr)
		return ProcessMemoryAddress(v), err
	default:
		return 0, fmt.Errorf("unsupported pointer size %d", width)
	}
}

// ReadPointers reads count consecutive pointers starting at base in a single read.
// Zero entries are kept so callers can keep slot indices aligned.
func ReadPointers(proc Process, width PointerSize, base ProcessMemoryAddress, count int) ([]ProcessMemoryAddress, error) {
	if count < 0 {
		return nil, fmt.Errorf("ReadPointers: negative count %d", count)
	}
	if !width.Valid() {
		return nil, fmt.Errorf("unsupported pointer size %d", width)
	}
	if count == 0 {
		return nil, nil
	}

	data, err := proc.ReadMemory(base, ProcessMemorySize(count*int(width)))
	if err != nil {
		return nil, fmt.Errorf("ReadPointers: failed to read table at 0x%x: %w", uint64(base), err)
	}

	results := make([]ProcessMemoryAddress, count)
	for i := range count {
		off := i * int(width)
		if width == Pointer32 {
			results[i] = ProcessMemoryAddress(binary.LittleEndian.Uint32(data[off:]))
		} else {
			results[i] = ProcessMemoryAddress(binary.LittleEndian.Uint64(data[off:]))
		}
	}
	return results, nil
}
