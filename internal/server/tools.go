package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// optionsProperty documents the keys accepted by detection.ConfigFromMap.
var optionsProperty = map[string]interface{}{
	"type":        "object",
	"description": "Optional detector settings. Omitted keys keep the server defaults.",
	"properties": map[string]interface{}{
		"scale": map[string]interface{}{
			"type":        "integer",
			"description": "Integer downscale factor applied before detection. Default 1",
			"minimum":     1,
		},
		"gray": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"average", "luminosity", "lightness", "red", "green", "blue"},
			"description": "Channel combination for grayscale reduction. Default average",
		},
		"kernel": map[string]interface{}{
			"type":        "integer",
			"enum":        []int{3, 5, 7},
			"description": "Gaussian smoothing kernel size. Default 3",
		},
		"operator": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"sobel", "scharr"},
			"description": "Gradient operator. Default sobel",
		},
		"alpha": map[string]interface{}{
			"type":        "number",
			"description": "Relative edge threshold in (0,1). Default 0.3",
		},
		"beta": map[string]interface{}{
			"type":        "number",
			"description": "Second relative edge threshold in (0,1). Default 0.5",
		},
		"brightness_cutoff": map[string]interface{}{
			"type":        "integer",
			"description": "Gradients next to intensities above this are ignored; negative disables. Default 100",
		},
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"threshold", "thinning"},
			"description": "Edge path: single product threshold, or non-maximum suppression with hysteresis. Default threshold",
		},
		"quantization": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"sectors", "legacy"},
			"description": "Orientation handling for the thinning path. Default sectors",
		},
		"proximity": map[string]interface{}{
			"type":        "integer",
			"description": "Merge window in full-resolution pixels. Default 60",
		},
		"cutoff": map[string]interface{}{
			"type":        "string",
			"description": "Vote cutoff: lenient (1/8), strict (1/3) or a fraction in (0,1]. Default lenient",
		},
	},
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent grid tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
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
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_unload",
			Description: "Drop an image from the cache so the next call rereads it from disk, for example after the file changed. Without a path every cached image is dropped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
			},
		},

		// Grid Detection
		{
			Name:        "grid_detect_lines",
			Description: "Find the straight horizontal and vertical lines of a board or grid. Returns Y positions of horizontal lines and X positions of vertical lines in the original image's pixel space, ascending. Optionally returns the image with the lines drawn on it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty,
					"options": optionsProperty,
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the image with detected lines drawn on it. Default false",
						"default":     false,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Overlay line color as hex RGB. Default #FF0000",
						"default":     "#FF0000",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "grid_square_size",
			Description: "Estimate the grid pitch: the median spacing between consecutive detected lines, in pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty,
					"options": optionsProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "grid_edge_map",
			Description: "Return the binary edge map the line finder votes on (after grayscale, smoothing, edge extraction and morphological cleanup) as base64 PNG. Useful for tuning thresholds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty,
					"options": optionsProperty,
				},
				"required": []string{"path"},
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
