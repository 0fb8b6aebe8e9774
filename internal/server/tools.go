package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional path to also write the result to (.png, .jpg or .bmp)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and the number of distinct R+G+B sums (the largest usable segment count).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact RGBA value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Convolution
		{
			Name:        "image_filter",
			Description: "Apply a built-in convolution filter: blur (5x5 cross average), edge (vertical gradient) or sharpen (3x3). Edges wrap around. Alpha is preserved.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"blur", "edge", "sharpen"},
						"description": "Filter preset to apply",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "filter"},
			},
		},
		{
			Name:        "image_convolve",
			Description: "Apply a custom convolution kernel. Each channel becomes clamp(floor(factor*sum + bias), 0, 255).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"kernel": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "number"},
						},
						"description": "Kernel weights as rows of numbers; all rows must have the same length",
					},
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Multiplier applied to each channel sum. Default 1.0",
						"default":     1.0,
					},
					"bias": map[string]interface{}{
						"type":        "number",
						"description": "Offset added after the factor. Default 0",
						"default":     0,
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "kernel"},
			},
		},

		// Geometric Transforms
		{
			Name:        "image_rotate",
			Description: "Rotate an image by an angle in degrees using nearest-neighbor sampling. The output is a transparent square canvas large enough for any rotation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"angle": map[string]interface{}{
						"type":        "number",
						"description": "Rotation angle in degrees",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "angle"},
			},
		},
		{
			Name:        "image_scale",
			Description: "Scale an image by a ratio using nearest-neighbor sampling.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"ratio": map[string]interface{}{
						"type":        "number",
						"description": "Scale ratio, must be greater than 0 (e.g., 2.0 doubles the size)",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "ratio"},
			},
		},

		// Segmentation
		{
			Name:        "image_segment",
			Description: "Reduce an image to N representative colors picked at random from its pixels, grouping pixels by R+G+B sum.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of segments (at least 1)",
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Optional random seed for reproducible output",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "count"},
			},
		},

		// Stereo
		{
			Name:        "image_anaglyph",
			Description: "Build a red/cyan anaglyph: red from the left image, green, blue and alpha from the right image. Mismatched sizes are truncated to the smaller image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"left_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the left-eye image",
					},
					"right_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the right-eye image",
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"left_path", "right_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
