package imaging

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
	Sum  int       `json:"sum"`  // R+G+B, the segmentation key
}

// Describe converts a pixel into its ColorResult.
func Describe(p pixel.Pixel) ColorResult {
	c := colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return ColorResult{
		Hex:  strings.ToUpper(c.Hex()),
		RGBA: RGBAColor{R: p.R, G: p.G, B: p.B, A: p.A},
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
		Sum: p.Sum(),
	}
}

// SampleColor returns the color at (x, y).
//
// Returns an error if the coordinates are outside the buffer.
func SampleColor(buf *pixel.Buffer, x, y int) (*ColorResult, error) {
	if x < 0 || x >= buf.Width() || y < 0 || y >= buf.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d",
			x, y, buf.Width(), buf.Height())
	}
	c := Describe(buf.At(x, y))
	return &c, nil
}

// Palette describes each pixel in order.
func Palette(pix []pixel.Pixel) []ColorResult {
	out := make([]ColorResult, len(pix))
	for i, p := range pix {
		out[i] = Describe(p)
	}
	return out
}
