//go:build linux

package main

import (
	"acoverlay/process"
	"acoverlay/process_linux"
)

func nativeOpener() process.ProcessOpener {
	return process_linux.NewHelper()
}
