//go:build windows

package window

import (
	"fmt"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// User32Locator finds a top level window by exact title
type User32Locator struct{}

func (User32Locator) Locate(title string) (Rect, error) {
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return Rect{}, err
	}

	hwnd := win.FindWindow(nil, name)
	if hwnd == 0 {
		return Rect{}, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
	}

	var rc win.RECT
	if !win.GetClientRect(hwnd, &rc) {
		return Rect{}, fmt.Errorf("GetClientRect(%q) failed", title)
	}
	origin := win.POINT{}
	if !win.ClientToScreen(hwnd, &origin) {
		return Rect{}, fmt.Errorf("ClientToScreen(%q) failed", title)
	}

	r := Rect{X: int(origin.X), Y: int(origin.Y), Width: int(rc.Right - rc.Left), Height: int(rc.Bottom - rc.Top)}
	if r.Empty() {
		return Rect{}, fmt.Errorf("%w: %q is minimised", ErrWindowNotFound, title)
	}
	return r, nil
}

// Native returns the platform window locator
func Native() Locator {
	return User32Locator{}
}
