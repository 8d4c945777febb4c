package process

// ProcessID represents a unique identifier for a process
type ProcessID int

// ProcessInfo contains basic information about a process
type ProcessInfo struct {
	PID     ProcessID // Process ID
	PPID    ProcessID // Parent Process ID
	Name    string    // Process name from /proc/[pid]/comm or the toolhelp entry
	Exe     string    // Path to the executable
	Cmdline []string  // Command line arguments
	State   string    // Process state (R, S, D, Z, ...), empty when unknown
}

// Exited reports whether the state describes a process that is gone or dying
func (pi ProcessInfo) Exited() bool {
	return pi.State == "Z" || pi.State == "X"
}
