package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// sizeEpsilon absorbs float error in width*ratio, e.g. 3*1.1 = 3.3000000000000003
// or 10*0.7 = 7.000000000000001 on one side and 100*0.29 = 28.999999999999996
// on the other.
const sizeEpsilon = 1e-9

// ScaledSize returns the output dimensions for Scale: floor(width*ratio) by
// floor(height*ratio).
func ScaledSize(width, height int, ratio float64) (int, int) {
	return scaledDim(width, ratio), scaledDim(height, ratio)
}

func scaledDim(n int, ratio float64) int {
	return int(math.Floor(float64(n)*ratio + sizeEpsilon))
}

// Scale resizes buf by ratio using nearest-neighbor sampling.
//
// Destination cell (x, y) copies the source pixel at
// (round(x/ratio), round(y/ratio)), or stays transparent black when that
// coordinate lies past the source edge.
//
// Returns pixel.ErrEmptyImage for an empty buffer and pixel.ErrInvalidScale
// when ratio is not a positive finite number or the scaled raster would be
// empty.
func Scale(buf *pixel.Buffer, ratio float64, opts ...Option) (*pixel.Buffer, error) {
	if buf.Empty() {
		return nil, fmt.Errorf("scale: %w", pixel.ErrEmptyImage)
	}
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("%w: ratio %v", pixel.ErrInvalidScale, ratio)
	}
	o := collect(opts)

	newWidth, newHeight := ScaledSize(buf.Width(), buf.Height(), ratio)
	if newWidth <= 0 || newHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d scaled by %v is empty",
			pixel.ErrInvalidScale, buf.Width(), buf.Height(), ratio)
	}

	srcWidth, srcHeight := buf.Width(), buf.Height()
	dst := pixel.NewRaster(newWidth, newHeight)
	pixel.Rows(newHeight, o.workers, func(y int) {
		sy := roundHalfUp(float64(y) / ratio)
		if sy < 0 || sy >= srcHeight {
			return
		}
		for x := 0; x < newWidth; x++ {
			sx := roundHalfUp(float64(x) / ratio)
			if sx < 0 || sx >= srcWidth {
				continue
			}
			dst.Set(x, y, buf.At(sx, sy))
		}
	})

	return dst.Buffer(), nil
}
