package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// RotatedSize returns the side of the square canvas that holds a width x height
// image at any rotation: ceil(sqrt(width² + height²)).
func RotatedSize(width, height int) int {
	return int(math.Ceil(math.Hypot(float64(width), float64(height))))
}

// Rotate turns buf by angle degrees around the center of a square canvas.
//
// The source is first centered on a RotatedSize x RotatedSize transparent
// canvas. Every destination cell (x, y) then samples the canvas at
//
//	newX = round(cos θ·(x−xo) − sin θ·(y−yo) + xo)
//	newY = round(sin θ·(x−xo) + cos θ·(y−yo) + yo)
//
// with (xo, yo) the canvas center. Cells whose sample falls off the canvas are
// transparent black.
//
// Returns pixel.ErrEmptyImage for an empty buffer and pixel.ErrInvalidAngle
// for a NaN or infinite angle.
func Rotate(buf *pixel.Buffer, angle float64, opts ...Option) (*pixel.Buffer, error) {
	if buf.Empty() {
		return nil, fmt.Errorf("rotate: %w", pixel.ErrEmptyImage)
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return nil, fmt.Errorf("%w: %v", pixel.ErrInvalidAngle, angle)
	}
	o := collect(opts)

	newSize := RotatedSize(buf.Width(), buf.Height())
	canvas, err := pixel.CenterMatrix(buf.Matrix(), newSize)
	if err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}

	theta := toRadians(angle)
	sin, cos := math.Sincos(theta)
	xo := float64(newSize) / 2
	yo := float64(newSize) / 2

	dst := pixel.NewRaster(newSize, newSize)
	pixel.Rows(newSize, o.workers, func(y int) {
		dy := float64(y) - yo
		for x := 0; x < newSize; x++ {
			dx := float64(x) - xo
			newX := roundHalfUp(cos*dx - sin*dy + xo)
			newY := roundHalfUp(sin*dx + cos*dy + yo)
			dst.Set(x, y, canvas.At(newX, newY))
		}
	})

	return dst.Buffer(), nil
}

func toRadians(angle float64) float64 {
	return angle * (math.Pi / 180)
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
// Values outside the int range map to -1, which is always off-canvas.
func roundHalfUp(v float64) int {
	r := math.Floor(v + 0.5)
	if r < math.MinInt32 || r > math.MaxInt32 {
		return -1
	}
	return int(r)
}
