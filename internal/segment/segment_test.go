package segment

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// scriptedRand returns a fixed sequence of indices.
type scriptedRand struct {
	picks []int
	next  int
}

func (s *scriptedRand) IntN(n int) int {
	v := s.picks[s.next%len(s.picks)] % n
	s.next++
	return v
}

func grayRamp(t *testing.T, width, height int) *pixel.Buffer {
	t.Helper()
	pix := make([]pixel.Pixel, width*height)
	for i := range pix {
		v := uint8(i * 255 / max(1, len(pix)-1))
		pix[i] = pixel.Pixel{R: v, G: v, B: v, A: uint8(100 + i%50)}
	}
	buf, err := pixel.FromPixels(width, height, pix)
	require.NoError(t, err)
	return buf
}

func TestSegment_ScriptedCenters(t *testing.T) {
	pix := []pixel.Pixel{
		{0, 0, 0, 255},     // key 0
		{10, 10, 10, 200},  // key 30
		{100, 0, 0, 255},   // key 100
		{200, 200, 200, 9}, // key 600
	}
	buf, err := pixel.FromPixels(4, 1, pix)
	require.NoError(t, err)

	// First draw picks pixel 3, second repeats it, third picks pixel 0.
	rnd := &scriptedRand{picks: []int{3, 3, 0}}

	res, err := Segment(buf, 2, WithRand(rnd))
	require.NoError(t, err)
	require.Equal(t, 3, rnd.next)
	require.Equal(t, []Center{{Key: 600, Pixel: pix[3]}, {Key: 0, Pixel: pix[0]}}, res.Centers)

	// 0 -> 0, 30 -> 0, 100 -> 0, 600 -> 600.
	require.Equal(t, []pixel.Pixel{pix[0], pix[0], pix[0], pix[3]}, res.Buffer.Pixels())
}

func TestSegment_TiesGoToFirstSampled(t *testing.T) {
	pix := []pixel.Pixel{
		{0, 0, 100, 255}, // key 100
		{0, 0, 200, 255}, // key 200
		{0, 50, 100, 1},  // key 150, equidistant
	}
	buf, err := pixel.FromPixels(3, 1, pix)
	require.NoError(t, err)

	res, err := Segment(buf, 2, WithRand(&scriptedRand{picks: []int{1, 0}}))
	require.NoError(t, err)
	require.Equal(t, pix[1], res.Buffer.Index(2))

	res, err = Segment(buf, 2, WithRand(&scriptedRand{picks: []int{0, 1}}))
	require.NoError(t, err)
	require.Equal(t, pix[0], res.Buffer.Index(2))
}

func TestSegment_AtMostKColors(t *testing.T) {
	buf := grayRamp(t, 20, 10)

	for _, k := range []int{1, 2, 5, 17} {
		res, err := Segment(buf, k, WithRand(rand.New(rand.NewPCG(uint64(k), 42))))
		require.NoError(t, err)
		require.Equal(t, buf.Width(), res.Buffer.Width())
		require.Equal(t, buf.Height(), res.Buffer.Height())
		require.Len(t, res.Centers, k)

		colors := map[pixel.Pixel]bool{}
		for i := 0; i < res.Buffer.Len(); i++ {
			colors[res.Buffer.Index(i)] = true
		}
		require.LessOrEqual(t, len(colors), k, "k=%d", k)
	}
}

func TestSegment_SameSeedSameOutput(t *testing.T) {
	buf := grayRamp(t, 16, 16)

	a, err := Segment(buf, 4, WithRand(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, err)
	b, err := Segment(buf, 4, WithRand(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, err)
	require.Equal(t, a.Buffer.Pixels(), b.Buffer.Pixels())
}

func TestSegment_OneSegmentUsesOnePixel(t *testing.T) {
	buf := grayRamp(t, 5, 5)

	res, err := Segment(buf, 1, WithRand(&scriptedRand{picks: []int{12}}))
	require.NoError(t, err)
	for i := 0; i < res.Buffer.Len(); i++ {
		require.Equal(t, buf.Index(12), res.Buffer.Index(i))
	}
}

func TestSegment_Errors(t *testing.T) {
	buf := grayRamp(t, 4, 4)
	empty, err := pixel.New(0, 0, nil)
	require.NoError(t, err)

	_, err = Segment(empty, 3)
	require.ErrorIs(t, err, pixel.ErrEmptyImage)

	_, err = Segment(buf, 0)
	require.ErrorIs(t, err, pixel.ErrInvalidSegmentCount)

	_, err = Segment(buf, -2)
	require.ErrorIs(t, err, pixel.ErrInvalidSegmentCount)
}

func TestSegment_UnsatisfiableCount(t *testing.T) {
	// Two distinct sums only: 0 and 765.
	pix := []pixel.Pixel{{0, 0, 0, 255}, {255, 255, 255, 255}, {0, 0, 0, 0}, {255, 255, 255, 0}}
	buf, err := pixel.FromPixels(2, 2, pix)
	require.NoError(t, err)

	_, err = Segment(buf, 3)
	require.ErrorIs(t, err, pixel.ErrUnsatisfiableSegmentCount)
}

func TestSegment_DrawCap(t *testing.T) {
	buf := grayRamp(t, 4, 4)

	// Always draws the same pixel, so a second center never appears.
	_, err := Segment(buf, 2, WithRand(&scriptedRand{picks: []int{5}}), WithMaxAttempts(50))
	require.ErrorIs(t, err, pixel.ErrUnsatisfiableSegmentCount)
}

func TestDistinctKeys(t *testing.T) {
	pix := []pixel.Pixel{{1, 2, 3, 0}, {3, 2, 1, 255}, {6, 0, 0, 9}, {0, 0, 7, 1}}
	buf, err := pixel.FromPixels(4, 1, pix)
	require.NoError(t, err)
	require.Equal(t, 2, DistinctKeys(buf))
}

func TestClosest(t *testing.T) {
	keys := []int{300, 100, 500}
	require.Equal(t, 100, closest(keys, 0))
	require.Equal(t, 300, closest(keys, 200))
	require.Equal(t, 300, closest(keys, 400))
	require.Equal(t, 500, closest(keys, 765))
}
