// Package projection maps world coordinates to overlay pixels through the
// target's view matrix.
package projection

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NearPlane is the smallest clip w that still counts as in front of the camera
const NearPlane float32 = 0.2

// MaxNDC bounds normalised device coordinates. Points further out than this
// many half-screens are treated as not visible.
const MaxNDC float32 = 1000

// ErrNotVisible is returned by ProjectErr for points behind or too close to
// the camera, or too far off screen to place.
var ErrNotVisible = errors.New("point not visible")

// Vec3 is a world position
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v moved by the given deltas
func (v Vec3) Add(dx, dy, dz float32) Vec3 {
	return Vec3{v.X + dx, v.Y + dy, v.Z + dz}
}

// ScreenPoint is a pixel position on the overlay surface, origin top left
type ScreenPoint struct {
	X, Y int
}

func (p ScreenPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Matrix is a 4x4 transform stored as 16 floats in memory order.
// The target keeps it column major, the same order as mgl32.Mat4.
type Matrix [16]float32

func Identity() Matrix {
	return Matrix(mgl32.Ident4())
}

// Clip transforms p into homogeneous clip space
func (m Matrix) Clip(p Vec3) mgl32.Vec4 {
	return mgl32.Mat4(m).Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
}

// Project returns the pixel position of p on a width x height surface.
// ok is false when the point is behind or too close to the camera, or lands
// beyond MaxNDC.
// Pixel coordinates are truncated, not rounded.
func Project(m Matrix, p Vec3, width, height int) (pt ScreenPoint, ok bool) {
	clip := m.Clip(p)
	w := clip.W()
	if !(w >= NearPlane) { // NaN is not visible either
		return ScreenPoint{}, false
	}

	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	// also rejects NaN and infinities, whose int conversion is undefined
	if !(abs(ndcX) <= MaxNDC && abs(ndcY) <= MaxNDC) {
		return ScreenPoint{}, false
	}

	halfW := float32(width) / 2
	halfH := float32(height) / 2

	return ScreenPoint{
		X: int((ndcX + 1) * halfW),
		Y: int((1 - ndcY) * halfH),
	}, true
}

// ProjectErr is Project for callers that prefer an error
func ProjectErr(m Matrix, p Vec3, width, height int) (ScreenPoint, error) {
	pt, ok := Project(m, p, width, height)
	if !ok {
		return pt, fmt.Errorf("project %v: %w", p, ErrNotVisible)
	}
	return pt, nil
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
