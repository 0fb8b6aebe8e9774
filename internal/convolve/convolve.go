package convolve

import (
	"fmt"
	"math"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

type options struct {
	factor  float64
	bias    float64
	width   int
	height  int
	workers int
}

// Option configures Apply.
type Option func(*options)

// WithFactor scales every channel sum before the bias is added. Default 1.
func WithFactor(f float64) Option {
	return func(o *options) { o.factor = f }
}

// WithBias is added to every scaled channel sum. Default 0.
func WithBias(b float64) Option {
	return func(o *options) { o.bias = b }
}

// WithSize restricts the output to the top-left width x height region of the
// source. Vertical wraparound then happens on height instead of the buffer
// height; horizontal wraparound always uses the buffer width.
func WithSize(width, height int) Option {
	return func(o *options) { o.width, o.height = width, height }
}

// WithWorkers sets how many goroutines fill output rows. Values below 1 use
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Apply convolves buf with kernel and returns a new buffer.
//
// For each destination pixel (x, y) and kernel cell (fx, fy) the source pixel is
//
//	imageX = (x - kw/2 + fx + width)  mod buf.Width()
//	imageY = (y - kh/2 + fy + height) mod height
//
// with kw/2 and kh/2 truncated. Red, green and blue are accumulated separately
// and each becomes clamp(floor(factor*sum + bias), 0, 255). Alpha is copied
// from buf at (x, y).
//
// Returns pixel.ErrInvalidKernel, pixel.ErrEmptyImage, or
// pixel.ErrDimensionMismatch when WithSize exceeds the buffer.
func Apply(buf *pixel.Buffer, kernel Kernel, opts ...Option) (*pixel.Buffer, error) {
	if err := kernel.validate(); err != nil {
		return nil, err
	}
	if buf.Empty() {
		return nil, fmt.Errorf("convolve: %w", pixel.ErrEmptyImage)
	}

	o := options{factor: 1, width: buf.Width(), height: buf.Height()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 || o.width > buf.Width() || o.height > buf.Height() {
		return nil, fmt.Errorf("%w: output %dx%d for %dx%d source",
			pixel.ErrDimensionMismatch, o.width, o.height, buf.Width(), buf.Height())
	}

	kw, kh := kernel.Width(), kernel.Height()
	halfW, halfH := kw/2, kh/2
	srcWidth := buf.Width()

	dst := pixel.NewRaster(o.width, o.height)
	pixel.Rows(o.height, o.workers, func(y int) {
		for x := 0; x < o.width; x++ {
			var red, green, blue float64

			for fy := 0; fy < kh; fy++ {
				imageY := wrap(y-halfH+fy+o.height, o.height)
				row := kernel[fy]
				for fx := 0; fx < kw; fx++ {
					weight := row[fx]
					if weight == 0 {
						continue
					}
					imageX := wrap(x-halfW+fx+o.width, srcWidth)
					p := buf.At(imageX, imageY)

					red += float64(p.R) * weight
					green += float64(p.G) * weight
					blue += float64(p.B) * weight
				}
			}

			dst.Set(x, y, pixel.Pixel{
				R: truncateChannel(red, o.factor, o.bias),
				G: truncateChannel(green, o.factor, o.bias),
				B: truncateChannel(blue, o.factor, o.bias),
				A: buf.At(x, y).A,
			})
		}
	})

	return dst.Buffer(), nil
}

// truncateChannel maps an accumulated channel value into [0, 255].
func truncateChannel(value, factor, bias float64) uint8 {
	v := math.Floor(factor*value + bias)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// wrap returns v modulo n in the range [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
