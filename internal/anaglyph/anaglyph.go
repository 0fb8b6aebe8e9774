// Package anaglyph merges a stereo pair into a single red/cyan image.
package anaglyph

import (
	"fmt"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Compose takes the red channel from left and every other channel, alpha
// included, from right. Both inputs are channel-interleaved RGBA bytes.
//
// The result is as long as the shorter input; bytes past that point are
// dropped. Neither input is modified.
func Compose(left, right []byte) []byte {
	n := min(len(left), len(right))
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		if i%pixel.Channels == pixel.OffsetR {
			out[i] = left[i]
		} else {
			out[i] = right[i]
		}
	}
	return out
}

// ComposeBuffers applies Compose to two buffers.
//
// The result has the dimensions of the buffer with fewer pixels (left when
// they are equal), so its byte length is always the shorter of the two.
// Returns pixel.ErrEmptyImage if either buffer is empty.
func ComposeBuffers(left, right *pixel.Buffer) (*pixel.Buffer, error) {
	if left.Empty() || right.Empty() {
		return nil, fmt.Errorf("anaglyph: %w", pixel.ErrEmptyImage)
	}

	shape := left
	if right.Len() < left.Len() {
		shape = right
	}

	return pixel.New(shape.Width(), shape.Height(), Compose(left.Bytes(), right.Bytes()))
}
