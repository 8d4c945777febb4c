package process

// ProcessOpener defines operations for opening processes with various search criteria
type ProcessOpener interface {
	// OpenProcessByName opens a process by its name (returns the first match)
	OpenProcessByName(name string) (Process, error)

	// OpenProcessByPattern opens a process by its name pattern (returns the first match)
	OpenProcessByPattern(pattern string) (Process, error)
}

// OpenerFunc adapts a plain function to ProcessOpener. Pattern lookups are
// routed to the same function.
type OpenerFunc func(name string) (Process, error)

func (f OpenerFunc) OpenProcessByName(name string) (Process, error) {
	return f(name)
}

func (f OpenerFunc) OpenProcessByPattern(pattern string) (Process, error) {
	return f(pattern)
}
