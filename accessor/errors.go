package accessor

import (
	"fmt"

	"acoverlay/process"
)

// AttachError means the target process could not be found or opened
type AttachError struct {
	Name string
	Err  error
}

func (e *AttachError) Error() string {
	return fmt.Sprintf("attach %q: %v", e.Name, e.Err)
}

func (e *AttachError) Unwrap() error {
	return e.Err
}

// ReadError means a read failed because the address is unmapped or
// protected, or the process went away.
type ReadError struct {
	Op   string
	Addr process.ProcessMemoryAddress
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s at %s: %v", e.Op, e.Addr.ToString(), e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
