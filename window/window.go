// Package window finds the client area the overlay has to cover.
package window

import (
	"errors"
	"fmt"
)

var ErrWindowNotFound = errors.New("window not found")

// Rect is a client area in screen pixels
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Locator resolves a window title to its client area
type Locator interface {
	Locate(title string) (Rect, error)
}

// StaticLocator returns a fixed geometry for any title
type StaticLocator Rect

func (s StaticLocator) Locate(title string) (Rect, error) {
	r := Rect(s)
	if r.Empty() {
		return Rect{}, fmt.Errorf("%w: %q has no configured geometry", ErrWindowNotFound, title)
	}
	return r, nil
}

// LocatorFunc adapts a function to Locator
type LocatorFunc func(title string) (Rect, error)

func (f LocatorFunc) Locate(title string) (Rect, error) {
	return f(title)
}

// Chain tries each locator in order and returns the first success
func Chain(locators ...Locator) Locator {
	return LocatorFunc(func(title string) (Rect, error) {
		var errs []error
		for _, l := range locators {
			if l == nil {
				continue
			}
			r, err := l.Locate(title)
			if err == nil {
				return r, nil
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return Rect{}, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
		}
		return Rect{}, errors.Join(errs...)
	})
}
