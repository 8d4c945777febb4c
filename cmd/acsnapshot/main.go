package main

import (
	"flag"
	"fmt"
	"os"

	"acoverlay/config"

	"github.com/dustin/go-humanize"
)

// saver is implemented by the live process backends
type saver interface {
	Save(dirname string, modules ...string) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	outputFlag := flag.String("output", "", "Output directory for the dump")
	flag.Parse()

	if *outputFlag == "" {
		fmt.Println("Error: --output is required")
		flag.Usage()
		os.Exit(1)
	}
	if cfg.ProcessName == "" {
		fmt.Println("Error: --process is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputFlag, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	proc, err := nativeOpener().OpenProcessByName(cfg.ProcessName)
	if err != nil {
		fmt.Printf("Error attaching to %s: %v\n", cfg.ProcessName, err)
		os.Exit(1)
	}
	defer proc.Close()

	fmt.Printf("Attached to %s (pid %d)\n", cfg.ProcessName, proc.GetPID())

	if mm, err := proc.GetMemoryMap(); err == nil {
		var regions int
		var total uint64
		for _, r := range mm {
			if r.IsReadable() {
				regions++
				total += uint64(r.Size)
			}
		}
		fmt.Printf("%d readable regions, %s\n", regions, humanize.IBytes(total))
	}

	s, ok := proc.(saver)
	if !ok {
		fmt.Printf("Error: %T cannot save dumps\n", proc)
		os.Exit(1)
	}

	fmt.Printf("Saving dump to %s...\n", *outputFlag)
	if err := s.Save(*outputFlag, cfg.ProcessName); err != nil {
		fmt.Printf("Error saving dump: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Dump saved successfully.")
}
