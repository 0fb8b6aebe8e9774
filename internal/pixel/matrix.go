package pixel

import "fmt"

// Matrix is a row-major grid of pixels addressed as m[y][x].
type Matrix [][]Pixel

// Height returns the number of rows.
func (m Matrix) Height() int { return len(m) }

// Width returns the length of the first row, or 0 for an empty matrix.
func (m Matrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// At returns the pixel at (x, y), or Transparent when (x, y) is outside the
// matrix.
func (m Matrix) At(x, y int) Pixel {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return Transparent
	}
	return m[y][x]
}

// Matrix converts the buffer to a freshly allocated matrix.
func (b *Buffer) Matrix() Matrix {
	m := make(Matrix, b.height)
	for y := range m {
		m[y] = append([]Pixel(nil), b.pix[y*b.width:(y+1)*b.width]...)
	}
	return m
}

// FromMatrix flattens a rectangular matrix into a Buffer.
// Returns ErrDimensionMismatch if the rows have different lengths.
func FromMatrix(m Matrix) (*Buffer, error) {
	width, height := m.Width(), m.Height()
	pix := make([]Pixel, 0, width*height)
	for y, row := range m {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d",
				ErrDimensionMismatch, y, len(row), width)
		}
		pix = append(pix, row...)
	}
	return newOwned(width, height, pix), nil
}

// CenterMatrix places src in the middle of a new newSize x newSize matrix.
//
// The indent on each axis is (newSize - dimension) / 2, truncated. Every cell
// outside the placed source is Transparent. Source cells are consumed with a
// row cursor and a cell cursor, left to right and top to bottom, so each one
// is placed exactly once and src itself is left untouched.
//
// Returns ErrDimensionMismatch if newSize is smaller than either dimension of
// src or if src is not rectangular.
func CenterMatrix(src Matrix, newSize int) (Matrix, error) {
	height, width := src.Height(), src.Width()
	if newSize < width || newSize < height {
		return nil, fmt.Errorf("%w: cannot center %dx%d into %dx%d",
			ErrDimensionMismatch, width, height, newSize, newSize)
	}
	for y, row := range src {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d",
				ErrDimensionMismatch, y, len(row), width)
		}
	}

	indentY := (newSize - height) / 2
	indentX := (newSize - width) / 2

	out := make(Matrix, newSize)
	srcRow := 0
	for y := 0; y < newSize; y++ {
		out[y] = make([]Pixel, newSize)
		if y < indentY || srcRow >= height {
			continue
		}
		row := src[srcRow]
		srcRow++

		srcCell := 0
		for x := indentX; x < newSize && srcCell < width; x++ {
			out[y][x] = row[srcCell]
			srcCell++
		}
	}
	return out, nil
}
