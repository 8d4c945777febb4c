package projection

import (
	"errors"
	"math"
	"testing"
)

func TestProjectIdentityCentre(t *testing.T) {
	pt, ok := Project(Identity(), Vec3{0, 0, 5}, 800, 600)
	if !ok {
		t.Fatal("point should be visible")
	}
	if pt != (ScreenPoint{400, 300}) {
		t.Errorf("Project = %v, want (400,300)", pt)
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name   string
		p      Vec3
		want   ScreenPoint
		wantOK bool
	}{
		{"right edge", Vec3{1, 0, 0}, ScreenPoint{800, 300}, true},
		{"top left", Vec3{-1, 1, 0}, ScreenPoint{0, 0}, true},
		{"truncates", Vec3{0.0026, 0, 0}, ScreenPoint{401, 300}, true},
		{"down", Vec3{0, -0.5, 0}, ScreenPoint{400, 450}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Project(Identity(), tt.p, 800, 600)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Project(%v) = %v, %v; want %v, %v", tt.p, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNearPlaneRejection(t *testing.T) {
	// w = z with this matrix
	m := Identity()
	m[11] = 1
	m[15] = 0

	tests := []struct {
		z      float32
		wantOK bool
	}{
		{-5, false},
		{0, false},
		{0.19, false},
		{0.2, true},
		{5, true},
		{float32(math.NaN()), false},
	}
	for _, tt := range tests {
		_, ok := Project(m, Vec3{1, 1, tt.z}, 800, 600)
		if ok != tt.wantOK {
			t.Errorf("z=%v visible = %v, want %v", tt.z, ok, tt.wantOK)
		}
		_, err := ProjectErr(m, Vec3{1, 1, tt.z}, 800, 600)
		if tt.wantOK == (err != nil) {
			t.Errorf("z=%v ProjectErr = %v", tt.z, err)
		}
		if err != nil && !errors.Is(err, ErrNotVisible) {
			t.Errorf("z=%v err = %v, want ErrNotVisible", tt.z, err)
		}
	}
}

func TestPerspectiveDivide(t *testing.T) {
	m := Identity()
	m[11] = 1
	m[15] = 0
	// cx = 2, w = 4 -> ndc 0.5 -> 600
	pt, ok := Project(m, Vec3{2, 0, 4}, 800, 600)
	if !ok || pt.X != 600 || pt.Y != 300 {
		t.Errorf("Project = %v, %v", pt, ok)
	}
}

func TestClipColumnMajor(t *testing.T) {
	var m Matrix
	for i := range m {
		m[i] = float32(i + 1)
	}
	p := Vec3{1, 2, 3}
	clip := m.Clip(p)

	// w uses m[3], m[7], m[11], m[15]
	wantW := p.X*m[3] + p.Y*m[7] + p.Z*m[11] + m[15]
	wantX := p.X*m[0] + p.Y*m[4] + p.Z*m[8] + m[12]
	if clip.W() != wantW || clip.X() != wantX {
		t.Errorf("Clip = %v, want x=%v w=%v", clip, wantX, wantW)
	}
}

func TestProjectRejectsFarAndNonFinite(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	// w = 1 - y, so y close to 0.8 puts the point just past the near plane
	m := Identity()
	m[7] = -1
	m[10] = 0

	tests := []struct {
		name   string
		p      Vec3
		wantOK bool
	}{
		{"just past near plane", Vec3{2e6, 0.7999, 0}, false},
		{"far right", Vec3{MaxNDC + 1, 0, 0}, false},
		{"centre", Vec3{0, 0, 0}, true},
		{"at bound", Vec3{MaxNDC, 0, 0}, true},
		{"infinite x", Vec3{inf, 0, 0}, false},
		{"nan x", Vec3{nan, 0, 0}, false},
		{"infinite z", Vec3{0, 0, inf}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, ok := Project(m, tt.p, 800, 600)
			if ok != tt.wantOK {
				t.Fatalf("Project(%v) = %v, %v; want ok=%v", tt.p, pt, ok, tt.wantOK)
			}
			if ok && (pt.X < -800*int(MaxNDC) || pt.X > 800*int(MaxNDC)) {
				t.Errorf("Project(%v) = %v out of range", tt.p, pt)
			}
		})
	}
}
