// Package convolve applies weighted 2-D kernels to pixel buffers.
//
// The engine wraps toroidally at the edges: horizontal coordinates wrap on the
// source buffer's width and vertical coordinates wrap on the requested output
// height. Only the red, green and blue channels are filtered; alpha is copied
// from the source pixel at the same position.
package convolve

import (
	"fmt"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Kernel is a rectangular matrix of weights indexed [row][col]. Dimensions do
// not have to be odd.
type Kernel [][]float64

// NewKernel validates rows and returns them as a Kernel.
// Returns pixel.ErrInvalidKernel for zero rows, zero columns or ragged rows.
func NewKernel(rows [][]float64) (Kernel, error) {
	k := Kernel(rows)
	if err := k.validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// Width returns the number of columns.
func (k Kernel) Width() int {
	if len(k) == 0 {
		return 0
	}
	return len(k[0])
}

// Height returns the number of rows.
func (k Kernel) Height() int { return len(k) }

func (k Kernel) validate() error {
	if len(k) == 0 || len(k[0]) == 0 {
		return fmt.Errorf("%w: kernel is %dx%d", pixel.ErrInvalidKernel, k.Width(), k.Height())
	}
	for i, row := range k {
		if len(row) != len(k[0]) {
			return fmt.Errorf("%w: row %d has %d weights, want %d",
				pixel.ErrInvalidKernel, i, len(row), len(k[0]))
		}
	}
	return nil
}
