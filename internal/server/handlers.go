package server

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/ironsheep/pixel-tools-mcp/internal/anaglyph"
	"github.com/ironsheep/pixel-tools-mcp/internal/convolve"
	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
	"github.com/ironsheep/pixel-tools-mcp/internal/segment"
	"github.com/ironsheep/pixel-tools-mcp/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_rotate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.debugf("tools/call %s", params.Name)
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads pixel buffers from the cache
//  4. Runs exactly one engine operation
//  5. Encodes the output raster (and optionally writes it to disk)
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Convolution
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_convolve":
		return s.handleImageConvolve(args)

	// Geometric Transforms
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_scale":
		return s.handleImageScale(args)

	// Segmentation
	case "image_segment":
		return s.handleImageSegment(args)

	// Stereo
	case "image_anaglyph":
		return s.handleImageAnaglyph(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

// === Convolution Handlers ===

type imageFilterArgs struct {
	Path       string `json:"path"`
	Filter     string `json:"filter"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	preset, err := convolve.ParsePreset(a.Filter)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := convolve.ApplyPreset(buf, preset, convolve.WithWorkers(s.cfg.Workers))
	if err != nil {
		return nil, err
	}
	return imaging.EncodeAndSave(out, a.OutputPath)
}

type imageConvolveArgs struct {
	Path       string      `json:"path"`
	Kernel     [][]float64 `json:"kernel"`
	Factor     *float64    `json:"factor"`
	Bias       float64     `json:"bias"`
	OutputPath string      `json:"output_path"`
}

func (s *Server) handleImageConvolve(args json.RawMessage) (interface{}, error) {
	var a imageConvolveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	factor := 1.0
	if a.Factor != nil {
		factor = *a.Factor
	}
	kernel, err := convolve.NewKernel(a.Kernel)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := convolve.Apply(buf, kernel,
		convolve.WithFactor(factor),
		convolve.WithBias(a.Bias),
		convolve.WithWorkers(s.cfg.Workers),
	)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeAndSave(out, a.OutputPath)
}

// === Geometric Transform Handlers ===

type imageRotateArgs struct {
	Path       string  `json:"path"`
	Angle      float64 `json:"angle"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := transform.Rotate(buf, a.Angle, transform.WithWorkers(s.cfg.Workers))
	if err != nil {
		return nil, err
	}
	return imaging.EncodeAndSave(out, a.OutputPath)
}

type imageScaleArgs struct {
	Path       string  `json:"path"`
	Ratio      float64 `json:"ratio"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageScale(args json.RawMessage) (interface{}, error) {
	var a imageScaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := transform.Scale(buf, a.Ratio, transform.WithWorkers(s.cfg.Workers))
	if err != nil {
		return nil, err
	}
	return imaging.EncodeAndSave(out, a.OutputPath)
}

// === Segmentation Handlers ===

type imageSegmentArgs struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	Seed       *int64 `json:"seed"`
	OutputPath string `json:"output_path"`
}

// SegmentResult is the image_segment response: the quantized image plus the
// representative colors in the order they were sampled.
type SegmentResult struct {
	*imaging.ImageResult
	Centers []imaging.ColorResult `json:"centers"`
}

func (s *Server) handleImageSegment(args json.RawMessage) (interface{}, error) {
	var a imageSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}

	opts := []segment.Option{segment.WithMaxAttempts(s.cfg.SegmentMaxAttempts)}
	if a.Seed != nil {
		seed := uint64(*a.Seed)
		opts = append(opts, segment.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}

	res, err := segment.Segment(buf, a.Count, opts...)
	if err != nil {
		return nil, err
	}
	img, err := imaging.EncodeAndSave(res.Buffer, a.OutputPath)
	if err != nil {
		return nil, err
	}

	centers := make([]pixel.Pixel, len(res.Centers))
	for i, c := range res.Centers {
		centers[i] = c.Pixel
	}
	return &SegmentResult{ImageResult: img, Centers: imaging.Palette(centers)}, nil
}

// === Stereo Handlers ===

type imageAnaglyphArgs struct {
	LeftPath   string `json:"left_path"`
	RightPath  string `json:"right_path"`
	OutputPath string `json:"output_path"`
}

// AnaglyphResult is the image_anaglyph response.
type AnaglyphResult struct {
	*imaging.ImageResult

	// Truncated is true when the two images had different pixel counts and
	// the result was cut to the smaller one.
	Truncated bool `json:"truncated"`
}

func (s *Server) handleImageAnaglyph(args json.RawMessage) (interface{}, error) {
	var a imageAnaglyphArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	left, err := s.cache.Buffer(a.LeftPath)
	if err != nil {
		return nil, fmt.Errorf("left image: %w", err)
	}
	right, err := s.cache.Buffer(a.RightPath)
	if err != nil {
		return nil, fmt.Errorf("right image: %w", err)
	}

	out, err := anaglyph.ComposeBuffers(left, right)
	if err != nil {
		return nil, err
	}
	img, err := imaging.EncodeAndSave(out, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &AnaglyphResult{ImageResult: img, Truncated: left.Len() != right.Len()}, nil
}
