package convolve

import (
	"fmt"
	"strings"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Preset names one of the built-in filter configurations.
type Preset string

const (
	PresetBlur    Preset = "blur"
	PresetEdge    Preset = "edge"
	PresetSharpen Preset = "sharpen"
)

// Presets lists the built-in filters in display order.
var Presets = []Preset{PresetBlur, PresetEdge, PresetSharpen}

// Filter bundles a kernel with its factor and bias.
type Filter struct {
	Kernel Kernel
	Factor float64
	Bias   float64
}

// BlurFilter is a 5x5 cross-shaped box average.
func BlurFilter() Filter {
	return Filter{
		Kernel: Kernel{
			{0, 0, 1, 0, 0},
			{0, 1, 1, 1, 0},
			{1, 1, 1, 1, 1},
			{0, 1, 1, 1, 0},
			{0, 0, 1, 0, 0},
		},
		Factor: 1.0 / 13.0,
	}
}

// EdgeFilter is a 5x5 vertical gradient.
func EdgeFilter() Filter {
	return Filter{
		Kernel: Kernel{
			{0, 0, -1, 0, 0},
			{0, 0, -1, 0, 0},
			{0, 0, 2, 0, 0},
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
		},
		Factor: 1,
	}
}

// SharpenFilter is a 3x3 kernel with center 9 and a ring of -1.
func SharpenFilter() Filter {
	return Filter{
		Kernel: Kernel{
			{-1, -1, -1},
			{-1, 9, -1},
			{-1, -1, -1},
		},
		Factor: 1,
	}
}

// ParsePreset converts a case-insensitive name into a Preset.
// "edges" and "find-edges" are accepted as aliases for "edge".
func ParsePreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blur":
		return PresetBlur, nil
	case "edge", "edges", "find-edges":
		return PresetEdge, nil
	case "sharpen":
		return PresetSharpen, nil
	default:
		return "", fmt.Errorf("unknown filter preset: %q", name)
	}
}

// Filter returns the kernel configuration for p.
func (p Preset) Filter() (Filter, error) {
	switch p {
	case PresetBlur:
		return BlurFilter(), nil
	case PresetEdge:
		return EdgeFilter(), nil
	case PresetSharpen:
		return SharpenFilter(), nil
	default:
		return Filter{}, fmt.Errorf("unknown filter preset: %q", string(p))
	}
}

// Apply runs f over buf. Extra options are applied after the filter's own
// factor and bias, so they can override them.
func (f Filter) Apply(buf *pixel.Buffer, opts ...Option) (*pixel.Buffer, error) {
	all := append([]Option{WithFactor(f.Factor), WithBias(f.Bias)}, opts...)
	return Apply(buf, f.Kernel, all...)
}

// ApplyPreset runs the named preset over buf.
func ApplyPreset(buf *pixel.Buffer, p Preset, opts ...Option) (*pixel.Buffer, error) {
	f, err := p.Filter()
	if err != nil {
		return nil, err
	}
	return f.Apply(buf, opts...)
}

// Blur applies BlurFilter.
func Blur(buf *pixel.Buffer, opts ...Option) (*pixel.Buffer, error) {
	return BlurFilter().Apply(buf, opts...)
}

// FindEdges applies EdgeFilter.
func FindEdges(buf *pixel.Buffer, opts ...Option) (*pixel.Buffer, error) {
	return EdgeFilter().Apply(buf, opts...)
}

// Sharpen applies SharpenFilter.
func Sharpen(buf *pixel.Buffer, opts ...Option) (*pixel.Buffer, error) {
	return SharpenFilter().Apply(buf, opts...)
}
