package accessor

import (
	"errors"
	"fmt"

	"acoverlay/layout"
	"acoverlay/process"
	"acoverlay/process_blob"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// Accessor performs typed reads against one attached process. Addresses
// given as layout.Offset are relative to the main module base.
// Nothing is cached between reads.
type Accessor struct {
	proc  process.Process
	base  process.ProcessMemoryAddress
	width process.PointerSize
	log   *logger.Logger
}

// Attach opens the process called name and resolves its main module base.
// The module is looked up by the same name, falling back to the first
// module of the process.
func Attach(opener process.ProcessOpener, name string, width process.PointerSize) (*Accessor, error) {
	if !width.Valid() {
		return nil, &AttachError{Name: name, Err: fmt.Errorf("unsupported pointer size %d", width)}
	}

	proc, err := opener.OpenProcessByName(name)
	if err != nil {
		return nil, &AttachError{Name: name, Err: err}
	}

	base, err := proc.ModuleBase(name)
	if errors.Is(err, process.ErrModuleNotFound) {
		base, err = proc.ModuleBase("")
	}
	if err != nil {
		proc.Close()
		return nil, &AttachError{Name: name, Err: fmt.Errorf("module base: %w", err)}
	}

	a := New(proc, base, width)
	a.log.Infoln("Attached to", name, "pid", proc.GetPID(), "base", base.ToString())
	return a, nil
}

// AttachDump attaches to a directory written by a live Save instead of a
// running process
func AttachDump(dirname, name string, width process.PointerSize) (*Accessor, error) {
	dump, err := process_blob.LoadProcessDump(dirname)
	if err != nil {
		return nil, &AttachError{Name: name, Err: fmt.Errorf("load dump %s: %w", dirname, err)}
	}
	return Attach(process.OpenerFunc(func(string) (process.Process, error) {
		return dump, nil
	}), name, width)
}

// New wraps an already open process
func New(proc process.Process, base process.ProcessMemoryAddress, width process.PointerSize) *Accessor {
	return &Accessor{
		proc:  proc,
		base:  base,
		width: width,
		log:   logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("accessor-%d", proc.GetPID()))),
	}
}

// Close releases the process handle
func (a *Accessor) Close() error {
	a.log.Infoln("Detaching")
	return a.proc.Close()
}

func (a *Accessor) Process() process.Process {
	return a.proc
}

func (a *Accessor) Base() process.ProcessMemoryAddress {
	return a.base
}

func (a *Accessor) PointerSize() process.PointerSize {
	return a.width
}

// Addr resolves a module relative offset
func (a *Accessor) Addr(off layout.Offset) process.ProcessMemoryAddress {
	return a.base + process.ProcessMemoryAddress(off)
}

func (a *Accessor) ReadInt32(addr process.ProcessMemoryAddress) (int32, error) {
	v, err := process.Read[int32](a.proc, addr)
	if err != nil {
		return 0, &ReadError{Op: "int32", Addr: addr, Err: err}
	}
	return v, nil
}

func (a *Accessor) ReadPointer(addr process.ProcessMemoryAddress) (process.ProcessMemoryAddress, error) {
	v, err := process.ReadPointer(a.proc, a.width, addr)
	if err != nil {
		return 0, &ReadError{Op: "pointer", Addr: addr, Err: err}
	}
	return v, nil
}

// ReadPointerTable reads count pointers stored back to back at addr
func (a *Accessor) ReadPointerTable(addr process.ProcessMemoryAddress, count int) ([]process.ProcessMemoryAddress, error) {
	v, err := process.ReadPointers(a.proc, a.width, addr, count)
	if err != nil {
		return nil, &ReadError{Op: fmt.Sprintf("pointer table[%d]", count), Addr: addr, Err: err}
	}
	return v, nil
}

// ReadBlock reads exactly l.Size bytes at addr and views them through l
func (a *Accessor) ReadBlock(addr process.ProcessMemoryAddress, l *layout.Layout) (layout.Record, error) {
	data, err := a.proc.ReadMemory(addr, process.ProcessMemorySize(l.Size))
	if err != nil {
		return layout.Record{}, &ReadError{Op: l.Name, Addr: addr, Err: err}
	}
	rec, err := l.Decode(data)
	if err != nil {
		return layout.Record{}, &ReadError{Op: l.Name, Addr: addr, Err: err}
	}
	return rec, nil
}

// ReadPath follows a pointer chain that starts at a module offset and reads
// the T at its end. Each hop is added to the pointer read before it, as in
// process.ReadPath.
func ReadPath[T any](a *Accessor, off layout.Offset, hops ...process.ProcessMemorySize) (T, error) {
	path := append([]process.ProcessMemorySize{process.ProcessMemorySize(off)}, hops...)
	v, err := process.ReadPath[T](a.proc, a.width, a.base, path...)
	if err != nil {
		var zero T
		return zero, &ReadError{Op: "path " + off.String(), Addr: a.Addr(off), Err: err}
	}
	return v, nil
}
