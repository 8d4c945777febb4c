//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"unsafe"

	"acoverlay/process"

	"golang.org/x/sys/unix"
)

// process_vm_readv uses the process_vm_readv syscall to read memory from another process
func process_vm_readv(
	pid process.ProcessID,
	remoteAddr process.ProcessMemoryAddress,
	bytesToRead process.ProcessMemorySize,
) ([]byte, error) {
	localBuf := make([]byte, bytesToRead)

	localIov := unix.Iovec{
		Base: &localBuf[0],
	}
	localIov.SetLen(int(bytesToRead))

	remoteIov := unix.RemoteIovec{
		Base: uintptr(remoteAddr),
		Len:  int(bytesToRead),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_READV,
		uintptr(pid),                        // Remote process PID
		uintptr(unsafe.Pointer(&localIov)),  // Local iovec
		uintptr(1),                          // Number of local iovecs
		uintptr(unsafe.Pointer(&remoteIov)), // Remote iovec
		uintptr(1),                          // Number of remote iovecs
		uintptr(0),                          // Flags (reserved for future use)
	)

	if errno != 0 {
		return nil, errno
	}

	// Reads are all-or-nothing; a short read means the range straddles an unmapped page
	if int(n) != int(bytesToRead) {
		return nil, fmt.Errorf("partial read: %d of %d bytes: %w", n, bytesToRead, process.ErrAddressNotMapped)
	}

	return localBuf, nil
}

// ReadMemory reads memory from the process at the specified address
func (p *LinuxProcess) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	p.mu.Lock()
	pid := p.pid
	p.mu.Unlock()

	if pid == 0 {
		return nil, process.ErrProcessNotOpen
	}
	if size == 0 {
		return []byte{}, nil
	}
	if addr <= 0x10000 {
		return nil, fmt.Errorf("0x%x: %w", uint64(addr), process.ErrAddressNotMapped)
	}

	// The map snapshot can lag behind heap growth, so the syscall is the authority
	data, err := process_vm_readv(pid, addr, size)
	if err != nil {
		switch {
		case errors.Is(err, unix.ESRCH):
			return nil, process.ErrProcessExited
		case errors.Is(err, unix.EFAULT):
			return nil, fmt.Errorf("0x%x: %w", uint64(addr), process.ErrAddressNotMapped)
		}
		return nil, fmt.Errorf("process_vm_readv: failed to read process memory at 0x%x: %w", uint64(addr), err)
	}

	return data, nil
}
