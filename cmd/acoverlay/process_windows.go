//go:build windows

package main

import (
	"acoverlay/process"
	"acoverlay/process_windows"
)

func nativeOpener() process.ProcessOpener {
	return process_windows.NewHelper()
}
