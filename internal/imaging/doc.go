// Package imaging is the file-facing edge of the pixel engines.
//
// It decodes image files into pixel.Buffer values, keeps a cache of decoded
// images for the MCP server, and turns engine output back into PNG (base64 for
// protocol responses, or files on disk). The engines themselves never touch
// files; everything that knows about formats lives here.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Color Representation
//
// Colors are reported as:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//   - Sum: R+G+B, the key used by segmentation
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Conversion and encoding functions are
// stateless.
package imaging
