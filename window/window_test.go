package window

import (
	"errors"
	"testing"
)

func TestStaticLocator(t *testing.T) {
	r, err := StaticLocator{X: 5, Y: 6, Width: 800, Height: 600}.Locate("AssaultCube")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if r.String() != "800x600+5+6" {
		t.Errorf("rect = %s", r)
	}

	if _, err := (StaticLocator{}).Locate("AssaultCube"); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("empty geometry err = %v", err)
	}
}

func TestChain(t *testing.T) {
	failing := LocatorFunc(func(title string) (Rect, error) {
		return Rect{}, ErrWindowNotFound
	})
	static := StaticLocator{Width: 1, Height: 1}

	tests := []struct {
		name    string
		chain   Locator
		wantErr bool
	}{
		{"first fails", Chain(failing, static), false},
		{"nil skipped", Chain(nil, static), false},
		{"all fail", Chain(failing, StaticLocator{}), true},
		{"empty", Chain(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.chain.Locate("x")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if err != nil && !errors.Is(err, ErrWindowNotFound) {
				t.Errorf("err = %v, want ErrWindowNotFound", err)
			}
		})
	}
}
