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

var directionProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"vertical", "horizontal"},
	"description": "Seam direction. A vertical seam runs top to bottom and narrows the image; a horizontal seam runs left to right and shortens it. Default vertical",
	"default":     "vertical",
}

var boundsProperty = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"x1": map[string]interface{}{"type": "integer"},
		"y1": map[string]interface{}{"type": "integer"},
		"x2": map[string]interface{}{"type": "integer"},
		"y2": map[string]interface{}{"type": "integer"},
	},
	"required": []string{"x1", "y1", "x2", "y2"},
}

// carveProperties are shared by image_carve and image_scale_compare.
func carveProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Target width in pixels, at most the current width. Omit or 0 to keep the width",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Target height in pixels, at most the current height. Omit or 0 to keep the height",
		},
		"protect": map[string]interface{}{
			"type":        "array",
			"items":       boundsProperty,
			"description": "Rectangles (x2/y2 exclusive) that seams should avoid",
		},
		"protect_text": map[string]interface{}{
			"type":        "boolean",
			"description": "Detect text regions and keep seams out of them. Default false",
			"default":     false,
		},
		"min_confidence": map[string]interface{}{
			"type":        "number",
			"description": "Minimum confidence (0-1) for a detected text region to be protected. Defaults to the configured value",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	carve := carveProperties()
	carve["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path to write the carved image to; the format follows the extension",
	}

	return []Tool{
		// Image information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and how many seams can be removed in each direction.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"path": pathProperty},
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"path": pathProperty},
				"required":   []string{"path"},
			},
		},

		// Energy
		{
			Name:        "image_energy",
			Description: "Get the dual-gradient energy of one pixel. Border pixels report 1000.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Column (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Row (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_energy_map",
			Description: "Render the energy map of an image as a base64-encoded PNG. Bright (or red) pixels are expensive to remove.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"heatmap": map[string]interface{}{
						"type":        "boolean",
						"description": "Render a blue-to-red heatmap instead of grayscale. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},

		// Seams
		{
			Name:        "image_find_seam",
			Description: "Find the minimum-energy seam of an image and return its indices and total energy.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty,
					"direction": directionProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_seam_overlay",
			Description: "Find the minimum-energy seam and return the image with the seam drawn on it as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty,
					"direction": directionProperty,
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Seam color as #RRGGBB. Defaults to the configured overlay color",
					},
				},
				"required": []string{"path"},
			},
		},

		// Resizing
		{
			Name:        "image_carve",
			Description: "Content-aware resize: remove low-energy seams until the image reaches the target size. Returns the result as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": carve,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_scale_compare",
			Description: "Carve an image to the target size and also rescale it uniformly to the same size, returning both for comparison.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": carveProperties(),
				"required":   []string{"path"},
			},
		},

		// Text protection
		{
			Name:        "image_detect_text_regions",
			Description: "Find text regions in an image, the same regions image_carve protects with protect_text. Uses Tesseract when available and an edge-density heuristic otherwise.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum confidence threshold (0-1). Defaults to the configured value",
					},
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
