//go:build !windows

package window

// Native returns nil where there is no window system lookup
func Native() Locator {
	return nil
}
