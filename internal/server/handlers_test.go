package server

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeTestPNG(t, img)
}

// createSplitImageFile creates an image whose left half is c1 and right half is c2.
func createSplitImageFile(t *testing.T, width, height int, c1, c2 color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, c1)
			} else {
				img.Set(x, y, c2)
			}
		}
	}
	return writeTestPNG(t, img)
}

func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	return s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
}

// decodeContent unmarshals the text content of a successful tools/call
// response into v.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode content %q: %v", text, err)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New(nil)
	imgPath := createSplitImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})

	var info imaging.ImageInfo
	decodeContent(t, callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}), &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	// red and blue share the sum 255
	if info.DistinctColorSums != 1 {
		t.Errorf("distinct color sums: got %d, want 1", info.DistinctColorSums)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 200, 150, color.RGBA{0, 255, 0, 255})

	var dims imaging.DimensionsResult
	decodeContent(t, callTool(t, s, "image_dimensions", map[string]interface{}{"path": imgPath}), &dims)

	if dims.Width != 200 || dims.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", dims.Width, dims.Height)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New(nil)

	resp := callTool(t, s, "image_load", map[string]interface{}{"path": "/nonexistent/image.png"})

	if resp.Error == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New(nil)

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Data != "unknown tool: nonexistent_tool" {
		t.Errorf("Error data: got %q", resp.Error.Data)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{invalid`),
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("Expected -32602 error, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{255, 128, 0, 255})

	var c imaging.ColorResult
	decodeContent(t, callTool(t, s, "image_sample_color", map[string]interface{}{
		"path": imgPath, "x": 5, "y": 5,
	}), &c)

	if c.Hex != "#FF8000" {
		t.Errorf("hex: got %s, want #FF8000", c.Hex)
	}
	if c.Sum != 383 {
		t.Errorf("sum: got %d, want 383", c.Sum)
	}
}

func TestHandleToolsCall_SampleColor_OutOfBounds(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{255, 128, 0, 255})

	resp := callTool(t, s, "image_sample_color", map[string]interface{}{
		"path": imgPath, "x": 10, "y": 0,
	})
	if resp.Error == nil {
		t.Error("Expected error for out-of-bounds sample")
	}
}

func TestHandleToolsCall_Filter(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 20, 12, color.RGBA{100, 150, 200, 255})

	for _, filter := range []string{"blur", "edge", "sharpen"} {
		t.Run(filter, func(t *testing.T) {
			var res imaging.ImageResult
			decodeContent(t, callTool(t, s, "image_filter", map[string]interface{}{
				"path": imgPath, "filter": filter,
			}), &res)

			if res.Width != 20 || res.Height != 12 {
				t.Errorf("dimensions: got %dx%d, want 20x12", res.Width, res.Height)
			}
			if res.MimeType != "image/png" || res.ImageBase64 == "" {
				t.Errorf("unexpected encoding: %s, %d bytes", res.MimeType, len(res.ImageBase64))
			}
		})
	}
}

func TestHandleToolsCall_Filter_UnknownPreset(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 4, 4, color.White)

	resp := callTool(t, s, "image_filter", map[string]interface{}{"path": imgPath, "filter": "emboss"})
	if resp.Error == nil {
		t.Error("Expected error for unknown filter")
	}
}

func TestHandleToolsCall_Filter_WithOutputPath(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 8, 8, color.RGBA{10, 20, 30, 255})
	outPath := filepath.Join(t.TempDir(), "sharpened.png")

	var res imaging.ImageResult
	decodeContent(t, callTool(t, s, "image_filter", map[string]interface{}{
		"path": imgPath, "filter": "sharpen", "output_path": outPath,
	}), &res)

	if res.OutputPath != outPath {
		t.Errorf("output_path: got %s, want %s", res.OutputPath, outPath)
	}
	buf, err := imaging.OpenBuffer(outPath)
	if err != nil {
		t.Fatalf("failed to reopen output: %v", err)
	}
	// a flat image is a fixed point of sharpen
	if got := buf.At(3, 3); got != (pixel.Pixel{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel: got %+v", got)
	}
}

func TestHandleToolsCall_Convolve(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 6, 4, color.RGBA{100, 100, 100, 255})
	outPath := filepath.Join(t.TempDir(), "half.png")

	var res imaging.ImageResult
	decodeContent(t, callTool(t, s, "image_convolve", map[string]interface{}{
		"path":        imgPath,
		"kernel":      [][]float64{{1}},
		"factor":      0.5,
		"bias":        10,
		"output_path": outPath,
	}), &res)

	buf, err := imaging.OpenBuffer(outPath)
	if err != nil {
		t.Fatalf("failed to reopen output: %v", err)
	}
	if got := buf.At(0, 0); got != (pixel.Pixel{R: 60, G: 60, B: 60, A: 255}) {
		t.Errorf("pixel: got %+v, want {60 60 60 255}", got)
	}
}

func TestHandleToolsCall_Convolve_InvalidKernel(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 4, 4, color.White)

	resp := callTool(t, s, "image_convolve", map[string]interface{}{
		"path":   imgPath,
		"kernel": [][]float64{{1, 2}, {3}},
	})
	if resp.Error == nil {
		t.Error("Expected error for ragged kernel")
	}
}

func TestHandleToolsCall_Rotate(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 4, 3, color.RGBA{255, 0, 0, 255})

	var res imaging.ImageResult
	decodeContent(t, callTool(t, s, "image_rotate", map[string]interface{}{
		"path": imgPath, "angle": 30,
	}), &res)

	if res.Width != 5 || res.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 5x5", res.Width, res.Height)
	}
}

func TestHandleToolsCall_Scale(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 10, 8, color.RGBA{0, 0, 255, 255})

	var res imaging.ImageResult
	decodeContent(t, callTool(t, s, "image_scale", map[string]interface{}{
		"path": imgPath, "ratio": 0.5,
	}), &res)

	if res.Width != 5 || res.Height != 4 {
		t.Errorf("dimensions: got %dx%d, want 5x4", res.Width, res.Height)
	}
}

func TestHandleToolsCall_Scale_InvalidRatio(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 10, 8, color.White)

	for _, ratio := range []float64{0, -1, 0.01} {
		resp := callTool(t, s, "image_scale", map[string]interface{}{"path": imgPath, "ratio": ratio})
		if resp.Error == nil {
			t.Errorf("ratio %v: expected error", ratio)
		}
	}
}

func TestHandleToolsCall_Segment(t *testing.T) {
	s := New(nil)
	imgPath := createSplitImageFile(t, 8, 4, color.RGBA{10, 10, 10, 255}, color.RGBA{200, 200, 200, 255})

	var res SegmentResult
	decodeContent(t, callTool(t, s, "image_segment", map[string]interface{}{
		"path": imgPath, "count": 2, "seed": 7,
	}), &res)

	if res.ImageResult == nil || res.Width != 8 || res.Height != 4 {
		t.Fatalf("unexpected image result: %+v", res.ImageResult)
	}
	if len(res.Centers) != 2 {
		t.Fatalf("centers: got %d, want 2", len(res.Centers))
	}
	sums := map[int]bool{res.Centers[0].Sum: true, res.Centers[1].Sum: true}
	if !sums[30] || !sums[600] {
		t.Errorf("center sums: got %v, want 30 and 600", sums)
	}
}

func TestHandleToolsCall_Segment_Unsatisfiable(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 4, 4, color.RGBA{1, 2, 3, 255})

	resp := callTool(t, s, "image_segment", map[string]interface{}{"path": imgPath, "count": 2})
	if resp.Error == nil {
		t.Fatal("Expected error when count exceeds distinct colors")
	}
}

func TestHandleToolsCall_Anaglyph(t *testing.T) {
	s := New(nil)
	leftPath := createTestImageFile(t, 10, 8, color.RGBA{200, 0, 0, 255})
	rightPath := createTestImageFile(t, 10, 8, color.RGBA{0, 100, 150, 255})
	outPath := filepath.Join(t.TempDir(), "anaglyph.png")

	var res AnaglyphResult
	decodeContent(t, callTool(t, s, "image_anaglyph", map[string]interface{}{
		"left_path": leftPath, "right_path": rightPath, "output_path": outPath,
	}), &res)

	if res.Truncated {
		t.Error("equal-size pair should not be truncated")
	}
	buf, err := imaging.OpenBuffer(outPath)
	if err != nil {
		t.Fatalf("failed to reopen output: %v", err)
	}
	if got := buf.At(4, 4); got != (pixel.Pixel{R: 200, G: 100, B: 150, A: 255}) {
		t.Errorf("pixel: got %+v, want {200 100 150 255}", got)
	}
}

func TestHandleToolsCall_Anaglyph_Mismatched(t *testing.T) {
	s := New(nil)
	leftPath := createTestImageFile(t, 10, 8, color.RGBA{200, 0, 0, 255})
	rightPath := createTestImageFile(t, 4, 4, color.RGBA{0, 100, 150, 255})

	var res AnaglyphResult
	decodeContent(t, callTool(t, s, "image_anaglyph", map[string]interface{}{
		"left_path": leftPath, "right_path": rightPath,
	}), &res)

	if !res.Truncated {
		t.Error("mismatched pair should be truncated")
	}
	if res.Width != 4 || res.Height != 4 {
		t.Errorf("dimensions: got %dx%d, want 4x4", res.Width, res.Height)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New(nil)
	imgPath := createSplitImageFile(t, 20, 20, color.RGBA{128, 128, 128, 255}, color.RGBA{0, 0, 0, 255})

	// Test each tool to ensure executeTool correctly dispatches
	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"image_load", map[string]interface{}{"path": imgPath}},
		{"image_dimensions", map[string]interface{}{"path": imgPath}},
		{"image_sample_color", map[string]interface{}{"path": imgPath, "x": 5, "y": 5}},
		{"image_filter", map[string]interface{}{"path": imgPath, "filter": "blur"}},
		{"image_convolve", map[string]interface{}{"path": imgPath, "kernel": [][]float64{{0, 1, 0}, {1, 1, 1}, {0, 1, 0}}, "factor": 0.2}},
		{"image_rotate", map[string]interface{}{"path": imgPath, "angle": 90}},
		{"image_scale", map[string]interface{}{"path": imgPath, "ratio": 2}},
		{"image_segment", map[string]interface{}{"path": imgPath, "count": 2}},
		{"image_anaglyph", map[string]interface{}{"left_path": imgPath, "right_path": imgPath}},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New(nil)

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New(nil)

	_, err := s.executeTool("image_load", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}

func TestExecuteTool_SegmentInvalidCount(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 4, 4, color.White)

	_, err := s.executeTool("image_segment", json.RawMessage(`{"path":"`+imgPath+`","count":0}`))
	if !errors.Is(err, pixel.ErrInvalidSegmentCount) {
		t.Errorf("got %v, want ErrInvalidSegmentCount", err)
	}
}
