package pixel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sequentialBuffer(t *testing.T, width, height int) *Buffer {
	t.Helper()
	pix := make([]Pixel, width*height)
	for i := range pix {
		pix[i] = Pixel{R: uint8(i + 1), G: uint8(i + 1), B: uint8(i + 1), A: 255}
	}
	buf, err := FromPixels(width, height, pix)
	require.NoError(t, err)
	return buf
}

func TestMatrix_RoundTrip(t *testing.T) {
	buf := sequentialBuffer(t, 3, 2)

	m := buf.Matrix()
	require.Equal(t, 3, m.Width())
	require.Equal(t, 2, m.Height())
	require.Equal(t, buf.At(2, 1), m[1][2])

	back, err := FromMatrix(m)
	require.NoError(t, err)
	require.Equal(t, buf.Pixels(), back.Pixels())
}

func TestFromMatrix_Ragged(t *testing.T) {
	_, err := FromMatrix(Matrix{{{}, {}}, {{}}})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMatrixAt_OutOfBounds(t *testing.T) {
	m := sequentialBuffer(t, 2, 2).Matrix()
	require.Equal(t, Transparent, m.At(-1, 0))
	require.Equal(t, Transparent, m.At(2, 0))
	require.Equal(t, Transparent, m.At(0, 2))
	require.Equal(t, m[1][1], m.At(1, 1))
}

func TestCenterMatrix(t *testing.T) {
	src := sequentialBuffer(t, 2, 3).Matrix()

	out, err := CenterMatrix(src, 5)
	require.NoError(t, err)
	require.Equal(t, 5, out.Height())
	require.Equal(t, 5, out.Width())

	// indentX = (5-2)/2 = 1, indentY = (5-3)/2 = 1
	placed := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			sx, sy := x-1, y-1
			if sx >= 0 && sx < 2 && sy >= 0 && sy < 3 {
				require.Equal(t, src[sy][sx], out[y][x], "(%d,%d)", x, y)
				placed++
			} else {
				require.Equal(t, Transparent, out[y][x], "(%d,%d)", x, y)
			}
		}
	}
	require.Equal(t, 6, placed)
}

func TestCenterMatrix_LeavesSourceIntact(t *testing.T) {
	buf := sequentialBuffer(t, 2, 2)
	src := buf.Matrix()

	_, err := CenterMatrix(src, 4)
	require.NoError(t, err)

	again, err := FromMatrix(src)
	require.NoError(t, err)
	require.Equal(t, buf.Pixels(), again.Pixels())
}

func TestCenterMatrix_SameSize(t *testing.T) {
	src := sequentialBuffer(t, 3, 3).Matrix()
	out, err := CenterMatrix(src, 3)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestCenterMatrix_TooSmall(t *testing.T) {
	src := sequentialBuffer(t, 4, 2).Matrix()
	_, err := CenterMatrix(src, 3)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}
