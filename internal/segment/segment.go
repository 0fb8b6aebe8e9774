// Package segment quantizes an image to a handful of representative colors.
//
// Cluster centers are pixels drawn at random from the image. Each center is
// identified by its key, the sum R+G+B, and every pixel is replaced by the
// center whose key is numerically closest to its own. Two pixels with the same
// key always land in the same cluster, so an image needs at least k distinct
// keys to be split into k segments.
package segment

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Rand is the source of randomness used to pick cluster centers.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Center is one cluster representative.
type Center struct {
	// Key is the representative's R+G+B sum.
	Key int `json:"key"`

	// Pixel is the sampled pixel every member of the cluster is replaced with.
	Pixel pixel.Pixel `json:"pixel"`
}

// Result is a segmented image together with the centers used to build it.
type Result struct {
	Buffer *pixel.Buffer

	// Centers are listed in the order they were sampled.
	Centers []Center
}

type options struct {
	rnd         Rand
	maxAttempts int
}

// Option configures Segment.
type Option func(*options)

// WithRand replaces the process-wide generator, e.g. with a seeded
// rand.New(rand.NewPCG(seed, seed)) for reproducible output.
func WithRand(r Rand) Option {
	return func(o *options) { o.rnd = r }
}

// WithMaxAttempts caps the number of random draws spent looking for distinct
// centers. Values below 1 select the default of 32 draws per pixel plus 1024.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}

// DefaultMaxAttempts returns the draw cap used for an image of n pixels.
func DefaultMaxAttempts(n int) int {
	return 32*n + 1024
}

// Segment replaces every pixel of buf with one of k randomly chosen
// representative pixels.
//
// Returns:
//   - pixel.ErrEmptyImage if buf has no pixels.
//   - pixel.ErrInvalidSegmentCount if k < 1.
//   - pixel.ErrUnsatisfiableSegmentCount if buf has fewer than k distinct
//     R+G+B sums, or if the draw cap is reached before k distinct centers
//     have been found.
func Segment(buf *pixel.Buffer, k int, opts ...Option) (*Result, error) {
	if buf.Empty() {
		return nil, fmt.Errorf("segment: %w", pixel.ErrEmptyImage)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", pixel.ErrInvalidSegmentCount, k)
	}

	o := options{rnd: globalRand{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxAttempts < 1 {
		o.maxAttempts = DefaultMaxAttempts(buf.Len())
	}

	if distinct := DistinctKeys(buf); distinct < k {
		return nil, fmt.Errorf("%w: %d segments requested but the image has %d distinct color sums",
			pixel.ErrUnsatisfiableSegmentCount, k, distinct)
	}

	centers, err := sampleCenters(buf, k, o)
	if err != nil {
		return nil, err
	}

	keys := make([]int, len(centers))
	byKey := make(map[int]pixel.Pixel, len(centers))
	for i, c := range centers {
		keys[i] = c.Key
		byKey[c.Key] = c.Pixel
	}

	out := make([]pixel.Pixel, buf.Len())
	for i := range out {
		out[i] = byKey[closest(keys, buf.Index(i).Sum())]
	}

	result, err := pixel.FromPixels(buf.Width(), buf.Height(), out)
	if err != nil {
		return nil, err
	}
	return &Result{Buffer: result, Centers: centers}, nil
}

// DistinctKeys counts the distinct R+G+B sums in buf, the upper bound on the
// number of segments it can be split into.
func DistinctKeys(buf *pixel.Buffer) int {
	keys := make([]int, buf.Len())
	for i := range keys {
		keys[i] = buf.Index(i).Sum()
	}
	return len(lo.Uniq(keys))
}

// sampleCenters draws pixels until k distinct keys have been collected. A draw
// whose key is already taken does not count toward k.
func sampleCenters(buf *pixel.Buffer, k int, o options) ([]Center, error) {
	taken := make(map[int]bool, k)
	centers := make([]Center, 0, k)

	for attempts := 0; len(centers) < k; attempts++ {
		if attempts >= o.maxAttempts {
			return nil, fmt.Errorf("%w: found %d of %d distinct centers in %d draws",
				pixel.ErrUnsatisfiableSegmentCount, len(centers), k, attempts)
		}

		p := buf.Index(o.rnd.IntN(buf.Len()))
		key := p.Sum()
		if taken[key] {
			continue
		}
		taken[key] = true
		centers = append(centers, Center{Key: key, Pixel: p})
	}
	return centers, nil
}

// closest returns the key nearest to target. Ties go to the earliest key.
func closest(keys []int, target int) int {
	best := keys[0]
	diff := abs(best - target)
	for _, k := range keys[1:] {
		if d := abs(k - target); d < diff {
			best, diff = k, d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
