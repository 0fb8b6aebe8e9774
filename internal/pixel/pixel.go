package pixel

import "fmt"

// Channels is the number of bytes per pixel in the interleaved layout.
const Channels = 4

// Channel offsets inside one interleaved pixel.
const (
	OffsetR = 0
	OffsetG = 1
	OffsetB = 2
	OffsetA = 3
)

// Pixel is one RGBA sample with 8-bit channels.
type Pixel struct {
	R, G, B, A uint8
}

// Transparent is transparent black, the fill used for padding and for
// destination cells that have no source pixel.
var Transparent = Pixel{}

// Sum returns R+G+B, the luminance key used by segmentation (0-765).
func (p Pixel) Sum() int {
	return int(p.R) + int(p.G) + int(p.B)
}

// Buffer is an immutable row-major sequence of pixels with its dimensions.
//
// The zero value is an empty 0x0 buffer.
type Buffer struct {
	width  int
	height int
	pix    []Pixel
}

// New builds a Buffer from channel-interleaved RGBA bytes.
//
// Parameters:
//   - width, height: dimensions in pixels. Must not be negative.
//   - data: 4*width*height bytes, row-major. The bytes are copied.
//
// Returns ErrDimensionMismatch if the length of data does not match.
func New(width, height int, data []byte) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrDimensionMismatch, width, height)
	}
	if len(data) != Channels*width*height {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d image, want %d",
			ErrDimensionMismatch, len(data), width, height, Channels*width*height)
	}

	pix := make([]Pixel, width*height)
	for i := range pix {
		o := i * Channels
		pix[i] = Pixel{
			R: data[o+OffsetR],
			G: data[o+OffsetG],
			B: data[o+OffsetB],
			A: data[o+OffsetA],
		}
	}
	return &Buffer{width: width, height: height, pix: pix}, nil
}

// FromPixels builds a Buffer from a row-major pixel slice. The slice is copied.
func FromPixels(width, height int, pix []Pixel) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrDimensionMismatch, width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d image",
			ErrDimensionMismatch, len(pix), width, height)
	}
	return &Buffer{width: width, height: height, pix: append([]Pixel(nil), pix...)}, nil
}

// newOwned wraps pix without copying. Callers must not retain pix.
func newOwned(width, height int, pix []Pixel) *Buffer {
	return &Buffer{width: width, height: height, pix: pix}
}

// Width returns the width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Buffer) Height() int { return b.height }

// Len returns the number of pixels.
func (b *Buffer) Len() int { return len(b.pix) }

// Empty reports whether the buffer is nil or has no pixels.
func (b *Buffer) Empty() bool { return b == nil || len(b.pix) == 0 }

// At returns the pixel at (x, y). It panics if the coordinates are out of range,
// like indexing a slice would.
func (b *Buffer) At(x, y int) Pixel {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("pixel: At(%d,%d) outside %dx%d buffer", x, y, b.width, b.height))
	}
	return b.pix[y*b.width+x]
}

// Index returns the pixel at row-major index i.
func (b *Buffer) Index(i int) Pixel { return b.pix[i] }

// Pixels returns a copy of the row-major pixel sequence.
func (b *Buffer) Pixels() []Pixel {
	return append([]Pixel(nil), b.pix...)
}

// Bytes returns the channel-interleaved RGBA bytes, 4*width*height long.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.pix)*Channels)
	for i, p := range b.pix {
		o := i * Channels
		out[o+OffsetR] = p.R
		out[o+OffsetG] = p.G
		out[o+OffsetB] = p.B
		out[o+OffsetA] = p.A
	}
	return out
}

// Raster is a writable destination used by engines while they fill a new
// Buffer. Every cell starts as Transparent.
type Raster struct {
	width  int
	height int
	pix    []Pixel
}

// NewRaster allocates a width x height raster filled with Transparent.
func NewRaster(width, height int) *Raster {
	return &Raster{width: width, height: height, pix: make([]Pixel, width*height)}
}

// Set writes the pixel at (x, y). Rows may be written concurrently as long
// as no two goroutines write the same row.
func (r *Raster) Set(x, y int, p Pixel) {
	r.pix[y*r.width+x] = p
}

// Buffer hands the raster's pixels over to a new Buffer. The raster must not
// be used afterwards.
func (r *Raster) Buffer() *Buffer {
	b := newOwned(r.width, r.height, r.pix)
	r.pix = nil
	return b
}
