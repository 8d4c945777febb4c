package process_blob

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"acoverlay/process"
	"acoverlay/process/memory_map"
)

const (
	MetadataFile  = "metadata.json"
	MemoryMapFile = "process_memory_map.json"
)

// Metadata is the descriptor written next to the region files of a dump
type Metadata struct {
	PID     process.ProcessID `json:"pid"`
	Name    string            `json:"name"`
	Modules map[string]uint64 `json:"modules"`
}

// BlobFileName is the file holding the bytes of one saved region
func BlobFileName(address uint64, size uint) string {
	return fmt.Sprintf("blob_0x%x_%d.bin", address, size)
}

// ProcessDump is a ProcessBlob populated from a directory written by a live Save
type ProcessDump struct {
	*ProcessBlob
	Name string
}

// NewProcessDump creates an empty dump; call Load before reading
func NewProcessDump() *ProcessDump {
	return &ProcessDump{ProcessBlob: NewProcessBlob(0)}
}

// LoadProcessDump is NewProcessDump followed by Load
func LoadProcessDump(dirname string) (*ProcessDump, error) {
	dump := NewProcessDump()
	if err := dump.Load(dirname); err != nil {
		return nil, err
	}
	return dump, nil
}

func (p *ProcessDump) Load(dirname string) error {
	metadataBytes, err := os.ReadFile(filepath.Join(dirname, MetadataFile))
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
		return fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	mmBytes, err := os.ReadFile(filepath.Join(dirname, MemoryMapFile))
	if err != nil {
		return fmt.Errorf("failed to read memory map: %w", err)
	}

	var regions []memory_map.MemoryMapItem
	if err := json.Unmarshal(mmBytes, &regions); err != nil {
		return fmt.Errorf("failed to unmarshal memory map: %w", err)
	}

	if err := p.Open(metadata.PID); err != nil {
		return err
	}
	p.Name = metadata.Name
	for name, base := range metadata.Modules {
		p.SetModule(name, process.ProcessMemoryAddress(base))
	}

	for _, region := range regions {
		filename := filepath.Join(dirname, BlobFileName(region.Address, region.Size))
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			continue // Blob not saved (e.g. too large or not readable)
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read blob %s: %w", filename, err)
		}

		if err := p.Map(process.ProcessMemoryAddress(region.Address), data); err != nil {
			return fmt.Errorf("failed to map blob %s: %w", filename, err)
		}
	}

	return nil
}

// Save writes the blob's regions in the same layout Load reads
func (p *ProcessDump) Save(dirname string) error {
	if err := os.MkdirAll(dirname, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	regions, _ := p.GetMemoryMap()

	p.mu.Lock()
	metadata := Metadata{PID: p.pid, Name: p.Name, Modules: make(map[string]uint64, len(p.modules))}
	for name, base := range p.modules {
		metadata.Modules[name] = uint64(base)
	}
	blobs := make(map[uint64][]byte, len(p.data))
	for addr, data := range p.data {
		blobs[addr] = data
	}
	p.mu.Unlock()

	return WriteDump(dirname, metadata, regions, func(region memory_map.MemoryMapItem) ([]byte, error) {
		return blobs[region.Address], nil
	})
}

// WriteDump writes metadata, the region list and one file per region returned by read.
// Regions for which read returns nil data are listed but not written.
func WriteDump(dirname string, metadata Metadata, regions []memory_map.MemoryMapItem, read func(memory_map.MemoryMapItem) ([]byte, error)) error {
	metadataJSON, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dirname, MetadataFile), metadataJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	mmJSON, err := json.MarshalIndent(regions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory map: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dirname, MemoryMapFile), mmJSON, 0644); err != nil {
		return fmt.Errorf("failed to write memory map file: %w", err)
	}

	for _, region := range regions {
		data, err := read(region)
		if err != nil {
			return fmt.Errorf("failed to read region 0x%x: %w", region.Address, err)
		}
		if data == nil {
			continue
		}
		filename := filepath.Join(dirname, BlobFileName(region.Address, region.Size))
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return fmt.Errorf("failed to write blob %s: %w", filename, err)
		}
	}
	return nil
}
