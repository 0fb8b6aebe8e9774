// Package server implements the MCP (Model Context Protocol) server for the
// pixel transformation engines.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line, and is
// meant to be launched by an MCP client.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get the RGBA value at a pixel
//
// Convolution:
//   - image_filter: blur, edge or sharpen preset
//   - image_convolve: custom kernel with factor and bias
//
// Geometric Transforms:
//   - image_rotate: rotate by degrees onto a transparent square canvas
//   - image_scale: nearest-neighbor resize by ratio
//
// Segmentation and Stereo:
//   - image_segment: reduce to N representative colors
//   - image_anaglyph: merge a left/right pair into a red/cyan image
//
// Every tool that produces an image returns it as base64 PNG and can also
// write it to disk when output_path is given.
//
// # Image Caching
//
// Decoded images and their pixel buffers are cached by path for the lifetime
// of the process, so a sequence of operations on one file decodes it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
