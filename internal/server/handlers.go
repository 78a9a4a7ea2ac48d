package server

import (
	"encoding/json"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/ironsheep/seam-mcp/internal/imaging"
	"github.com/ironsheep/seam-mcp/internal/seam"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_carve").
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

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool done", "tool", params.Name, "elapsed", time.Since(start).Round(time.Millisecond))

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Energy
	case "image_energy":
		return s.handleImageEnergy(args)
	case "image_energy_map":
		return s.handleImageEnergyMap(args)

	// Seams
	case "image_find_seam":
		return s.handleImageFindSeam(args)
	case "image_seam_overlay":
		return s.handleImageSeamOverlay(args)

	// Resizing
	case "image_carve":
		return s.handleImageCarve(args)
	case "image_scale_compare":
		return s.handleImageScaleCompare(args)

	// Text protection
	case "image_detect_text_regions":
		return s.handleImageDetectTextRegions(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// Bounds is a rectangle in tool arguments and results, with exclusive X2/Y2.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (b Bounds) rect() image.Rectangle { return image.Rect(b.X1, b.Y1, b.X2, b.Y2) }

func boundsOf(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// parseDirection defaults to vertical when dir is empty.
func parseDirection(dir string) (seam.Orientation, error) {
	if strings.TrimSpace(dir) == "" {
		return seam.Vertical, nil
	}
	return seam.ParseOrientation(dir)
}

func (s *Server) load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return s.cache.Load(path)
}

// === Image Information Handlers ===

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

// === Energy Handlers ===

type imageEnergyArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageEnergy(args json.RawMessage) (interface{}, error) {
	var a imageEnergyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.PixelEnergy(img, a.X, a.Y)
}

type imageEnergyMapArgs struct {
	Path    string `json:"path"`
	Heatmap bool   `json:"heatmap"`
}

func (s *Server) handleImageEnergyMap(args json.RawMessage) (interface{}, error) {
	var a imageEnergyMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EnergyMap(img, a.Heatmap)
}

// === Seam Handlers ===

type imageSeamArgs struct {
	Path      string `json:"path"`
	Direction string `json:"direction"`
	Color     string `json:"color"`
}

func (s *Server) handleImageFindSeam(args json.RawMessage) (interface{}, error) {
	var a imageSeamArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	o, err := parseDirection(a.Direction)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.FindSeam(img, o)
}

func (s *Server) handleImageSeamOverlay(args json.RawMessage) (interface{}, error) {
	var a imageSeamArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = s.cfg.OverlayColor
	}
	o, err := parseDirection(a.Direction)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.OverlaySeam(img, o, a.Color)
}

// === Resizing Handlers ===

type imageCarveArgs struct {
	Path          string   `json:"path"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	Protect       []Bounds `json:"protect"`
	ProtectText   bool     `json:"protect_text"`
	MinConfidence float64  `json:"min_confidence"`
	OutputPath    string   `json:"output_path"`
}

// carveOptions resolves the protected regions of a carve request.
func (s *Server) carveOptions(img image.Image, a imageCarveArgs) (imaging.CarveOptions, error) {
	opts := imaging.CarveOptions{Width: a.Width, Height: a.Height, Logger: s.logger}
	for _, b := range a.Protect {
		opts.Protect = append(opts.Protect, b.rect())
	}

	if a.ProtectText {
		detector := *s.detector
		if a.MinConfidence > 0 {
			detector.MinConfidence = a.MinConfidence
		}
		regions, err := detector.Detect(img)
		if err != nil {
			return opts, fmt.Errorf("detect text: %w", err)
		}
		s.logger.Debug("protecting text", "regions", len(regions))
		opts.Protect = append(opts.Protect, regions...)
	}
	return opts, nil
}

func (s *Server) handleImageCarve(args json.RawMessage) (interface{}, error) {
	var a imageCarveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	opts, err := s.carveOptions(img, a)
	if err != nil {
		return nil, err
	}

	res, out, err := imaging.Carve(img, opts)
	if err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := imaging.Save(out, a.OutputPath); err != nil {
			return nil, fmt.Errorf("save %s: %w", a.OutputPath, err)
		}
		res.OutputPath = a.OutputPath
	}

	s.logger.Info("carved", "path", a.Path, "from", fmt.Sprintf("%dx%d", res.OriginalWidth, res.OriginalHeight),
		"to", fmt.Sprintf("%dx%d", res.Width, res.Height), "seams", res.SeamsRemoved)
	return res, nil
}

func (s *Server) handleImageScaleCompare(args json.RawMessage) (interface{}, error) {
	var a imageCarveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	opts, err := s.carveOptions(img, a)
	if err != nil {
		return nil, err
	}
	return imaging.ScaleCompare(img, opts)
}

// === Text Protection Handlers ===

type imageDetectTextRegionsArgs struct {
	Path          string  `json:"path"`
	MinConfidence float64 `json:"min_confidence"`
}

// TextRegionsResult lists the regions image_carve would protect.
type TextRegionsResult struct {
	Regions []Bounds `json:"regions"`
	Count   int      `json:"count"`
}

func (s *Server) handleImageDetectTextRegions(args json.RawMessage) (interface{}, error) {
	var a imageDetectTextRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}

	detector := *s.detector
	if a.MinConfidence > 0 {
		detector.MinConfidence = a.MinConfidence
	}
	regions, err := detector.Detect(img)
	if err != nil {
		return nil, err
	}

	res := &TextRegionsResult{Regions: make([]Bounds, len(regions)), Count: len(regions)}
	for i, r := range regions {
		res.Regions[i] = boundsOf(r)
	}
	return res, nil
}
