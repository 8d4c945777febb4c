//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"os"

	"acoverlay/process"
	"acoverlay/process/memory_map"
	"acoverlay/process_blob"

	"github.com/dustin/go-humanize"
)

// maxSavedRegion bounds single region size in a dump
const maxSavedRegion = 100 * 1024 * 1024

// Save writes the readable regions of the process and the load address of
// each named module to dirname, in the layout process_blob.ProcessDump loads.
func (p *LinuxProcess) Save(dirname string, modules ...string) error {
	if err := os.MkdirAll(dirname, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := p.UpdateMemoryMap(); err != nil {
		return fmt.Errorf("failed to update memory map: %w", err)
	}

	mm, err := p.GetMemoryMap()
	if err != nil {
		return err
	}

	pid := p.GetPID()
	p.log.Infoln("Saving process to directory:", dirname)

	metadata := process_blob.Metadata{PID: pid, Modules: make(map[string]uint64)}
	if info, err := NewProcessFinder().FindProcessByPID(pid); err == nil {
		metadata.Name = info.Name
	}
	for _, name := range modules {
		base, err := p.ModuleBase(name)
		if err != nil {
			return err
		}
		metadata.Modules[name] = uint64(base)
	}

	var savedCount, errorCount int
	var savedBytes uint64
	err = process_blob.WriteDump(dirname, metadata, mm, func(region memory_map.MemoryMapItem) ([]byte, error) {
		if !region.IsReadable() {
			return nil, nil
		}
		if region.Size > maxSavedRegion {
			p.log.Infoln("Skipping large region at", fmt.Sprintf("%x", region.Address),
				"(size:", humanize.IBytes(uint64(region.Size))+")")
			return nil, nil
		}

		data, err := p.ReadMemory(process.ProcessMemoryAddress(region.Address), process.ProcessMemorySize(region.Size))
		if err != nil {
			if errors.Is(err, process.ErrProcessExited) {
				return nil, err
			}
			// guard pages and device mappings refuse reads
			p.log.Debugln("Failed to read memory region at", fmt.Sprintf("%x", region.Address), ":", err)
			errorCount++
			return nil, nil
		}
		savedCount++
		savedBytes += uint64(len(data))
		return data, nil
	})
	if err != nil {
		return err
	}

	p.log.Infoln("Process dump saved successfully:", savedCount, "regions saved,", humanize.IBytes(savedBytes)+",", errorCount, "errors")
	return nil
}
