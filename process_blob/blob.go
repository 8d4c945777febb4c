package process_blob

import (
	"fmt"
	"sort"
	"sync"

	"acoverlay/process"
	"acoverlay/process/memory_map"
)

// ProcessBlob is an in-memory address space made of disjoint regions.
// It implements process.Process so the read pipeline can run against
// fabricated memory in tests and against loaded dumps in replay.
type ProcessBlob struct {
	mu      sync.Mutex
	pid     process.ProcessID
	regions []memory_map.MemoryMapItem // sorted by Address
	data    map[uint64][]byte          // region Address -> bytes
	modules map[string]process.ProcessMemoryAddress
	open    bool
	exited  bool
}

var _ process.Process = (*ProcessBlob)(nil)

// NewProcessBlob creates an empty, open address space reporting pid
func NewProcessBlob(pid process.ProcessID) *ProcessBlob {
	return &ProcessBlob{
		pid:     pid,
		data:    make(map[uint64][]byte),
		modules: make(map[string]process.ProcessMemoryAddress),
		open:    true,
	}
}

// Map adds a readable region holding a copy of data at addr.
// Regions must not overlap.
func (p *ProcessBlob) Map(addr process.ProcessMemoryAddress, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	item := memory_map.MemoryMapItem{Address: uint64(addr), Size: uint(len(data)), Perms: "rw-p"}
	for _, r := range p.regions {
		if item.Address < r.End() && r.Address < item.End() {
			return fmt.Errorf("region 0x%x-0x%x overlaps 0x%x-0x%x", item.Address, item.End(), r.Address, r.End())
		}
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	p.data[item.Address] = buf
	p.regions = append(p.regions, item)
	sort.Slice(p.regions, func(i, j int) bool {
		return p.regions[i].Address < p.regions[j].Address
	})
	return nil
}

// Write overwrites bytes inside an already mapped region
func (p *ProcessBlob) Write(addr process.ProcessMemoryAddress, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	region, off, err := p.locate(addr, process.ProcessMemorySize(len(data)))
	if err != nil {
		return err
	}
	copy(p.data[region.Address][off:], data)
	return nil
}

// SetModule records the load address reported by ModuleBase for name.
// The empty name is the main executable.
func (p *ProcessBlob) SetModule(name string, base process.ProcessMemoryAddress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modules[name] = base
}

// Exit simulates the target process going away; later reads fail with process.ErrProcessExited.
func (p *ProcessBlob) Exit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exited = true
}

func (p *ProcessBlob) Open(pid process.ProcessID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pid = pid
	p.open = true
	return nil
}

func (p *ProcessBlob) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	return nil
}

func (p *ProcessBlob) GetPID() process.ProcessID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

func (p *ProcessBlob) UpdateMemoryMap() error {
	return nil // regions only change through Map
}

func (p *ProcessBlob) IsValidAddress(addr process.ProcessMemoryAddress) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return memory_map.IsValidAddress2(uint64(addr), p.regions) != nil
}

func (p *ProcessBlob) GetMemoryMap() ([]memory_map.MemoryMapItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]memory_map.MemoryMapItem, len(p.regions))
	copy(result, p.regions)
	return result, nil
}

func (p *ProcessBlob) ModuleBase(name string) (process.ProcessMemoryAddress, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if base, ok := p.modules[name]; ok {
		return base, nil
	}
	return 0, fmt.Errorf("%w: %q", process.ErrModuleNotFound, name)
}

// ReadMemory returns a copy of size bytes at addr. Reads never span regions.
func (p *ProcessBlob) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return nil, process.ErrProcessNotOpen
	}
	if p.exited {
		return nil, process.ErrProcessExited
	}

	region, off, err := p.locate(addr, size)
	if err != nil {
		return nil, err
	}

	result := make([]byte, size)
	copy(result, p.data[region.Address][off:off+uint64(size)])
	return result, nil
}

// locate assumes the mutex is held
func (p *ProcessBlob) locate(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) (*memory_map.MemoryMapItem, uint64, error) {
	region := memory_map.IsValidAddress2(uint64(addr), p.regions)
	if region == nil {
		return nil, 0, fmt.Errorf("0x%x: %w", uint64(addr), process.ErrAddressNotMapped)
	}
	off := uint64(addr) - region.Address
	if off+uint64(size) > uint64(region.Size) {
		return nil, 0, fmt.Errorf("read of %d bytes at 0x%x crosses region end 0x%x: %w",
			size, uint64(addr), region.End(), process.ErrAddressNotMapped)
	}
	return region, off, nil
}
