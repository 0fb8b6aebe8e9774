package pixel

import "errors"

var (
	// ErrEmptyImage is returned when an operation receives a buffer with no pixels.
	ErrEmptyImage = errors.New("empty image")

	// ErrInvalidKernel is returned for a convolution kernel with zero rows or
	// columns, or with rows of different lengths.
	ErrInvalidKernel = errors.New("invalid kernel")

	// ErrInvalidScale is returned for a scale ratio that is not a positive
	// finite number, or that would produce an empty raster.
	ErrInvalidScale = errors.New("invalid scale")

	// ErrInvalidSegmentCount is returned when fewer than one segment is requested.
	ErrInvalidSegmentCount = errors.New("invalid segment count")

	// ErrDimensionMismatch is returned when a byte or pixel sequence does not
	// match the declared width and height.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnsatisfiableSegmentCount is returned when segmentation cannot find
	// the requested number of distinct cluster centers.
	ErrUnsatisfiableSegmentCount = errors.New("unsatisfiable segment count")

	// ErrInvalidAngle is returned for a NaN or infinite rotation angle.
	ErrInvalidAngle = errors.New("invalid angle")
)
