//go:build !linux && !windows

package main

import (
	"fmt"
	"runtime"

	"acoverlay/process"
)

func nativeOpener() process.ProcessOpener {
	return process.OpenerFunc(func(name string) (process.Process, error) {
		return nil, fmt.Errorf("live processes are not supported on %s, use -replay", runtime.GOOS)
	})
}
