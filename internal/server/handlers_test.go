package server

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/seam-mcp/internal/config"
	"github.com/ironsheep/seam-mcp/internal/imaging"
	"github.com/ironsheep/seam-mcp/internal/seam"
)

// writePNG encodes img to a PNG in a per-test temp dir and returns its path.
func writePNG(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// createTestImageFile creates a solid test image file and returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writePNG(t, img)
}

// createBandImageFile writes a dark image with a bright two-pixel band at
// columns bandX and bandX+1.
func createBandImageFile(t *testing.T, width, height, bandX int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == bandX || x == bandX+1 {
				img.Set(x, y, color.RGBA{250, 250, 250, 255})
			} else {
				img.Set(x, y, color.RGBA{40, 40, 40, 255})
			}
		}
	}
	return writePNG(t, img)
}

// createColumnImageFile writes white with a black column every ten pixels,
// which the edge-density detector reads as text.
func createColumnImageFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x%10 == 5 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return writePNG(t, img)
}

// offlineConfig forces text detection onto the edge-density fallback.
func offlineConfig() *config.Config {
	cfg := config.Default()
	cfg.OCRLanguage = "no-such-language"
	return cfg
}

func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	paramsJSON, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: paramsJSON})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeContent unmarshals the JSON text content of a successful response.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("failed to decode content: %v", err)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New(nil, nil)
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var info imaging.ImageInfo
	decodeContent(t, callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}), &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("size: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.MaxVerticalSeams != 99 || info.MaxHorizontalSeams != 79 {
		t.Errorf("max seams: got %d/%d", info.MaxVerticalSeams, info.MaxHorizontalSeams)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New(nil, nil)
	imgPath := createTestImageFile(t, 200, 150, color.RGBA{0, 255, 0, 255})

	var dims imaging.DimensionsResult
	decodeContent(t, callTool(t, s, "image_dimensions", map[string]interface{}{"path": imgPath}), &dims)

	if dims.Width != 200 || dims.Height != 150 {
		t.Errorf("size: got %dx%d, want 200x150", dims.Width, dims.Height)
	}
}

func TestHandleToolsCall_Errors(t *testing.T) {
	s := New(nil, nil)
	imgPath := createTestImageFile(t, 10, 10, color.White)

	tests := []struct {
		name string
		tool string
		args interface{}
	}{
		{"non-existent file", "image_load", map[string]interface{}{"path": "/nonexistent/image.png"}},
		{"missing path", "image_find_seam", map[string]interface{}{}},
		{"unknown tool", "image_crop", map[string]interface{}{"path": imgPath}},
		{"bad direction", "image_find_seam", map[string]interface{}{"path": imgPath, "direction": "diagonal"}},
		{"energy out of bounds", "image_energy", map[string]interface{}{"path": imgPath, "x": 10, "y": 0}},
		{"carve wider", "image_carve", map[string]interface{}{"path": imgPath, "width": 11}},
		{"wrong argument type", "image_energy", map[string]interface{}{"path": imgPath, "x": "one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, tt.tool, tt.args)
			if resp.Error == nil {
				t.Fatal("expected an error response")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil, nil)

	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 1, Params: json.RawMessage(`"not an object"`)})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_TooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPixels = 50
	s := New(cfg, nil)

	resp := callTool(t, s, "image_carve", map[string]interface{}{
		"path":  createTestImageFile(t, 10, 10, color.White),
		"width": 5,
	})
	if resp.Error == nil {
		t.Fatal("expected oversized image to be rejected")
	}
	if !strings.Contains(resp.Error.Data.(string), "pixel limit") {
		t.Errorf("error data: got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_Energy(t *testing.T) {
	s := New(nil, nil)
	imgPath := createTestImageFile(t, 5, 5, color.Gray{Y: 90})

	var border imaging.PixelEnergyResult
	decodeContent(t, callTool(t, s, "image_energy", map[string]interface{}{"path": imgPath, "x": 0, "y": 3}), &border)
	if border.Energy != seam.BorderEnergy || !border.Border {
		t.Errorf("border pixel: got %+v", border)
	}

	var interior imaging.PixelEnergyResult
	decodeContent(t, callTool(t, s, "image_energy", map[string]interface{}{"path": imgPath, "x": 2, "y": 2}), &interior)
	if interior.Energy != 0 || interior.Border {
		t.Errorf("interior pixel: got %+v", interior)
	}
}

func TestHandleToolsCall_EnergyMap(t *testing.T) {
	s := New(nil, nil)

	var res imaging.EnergyMapResult
	decodeContent(t, callTool(t, s, "image_energy_map", map[string]interface{}{
		"path":    createBandImageFile(t, 12, 6, 5),
		"heatmap": true,
	}), &res)

	if !res.Heatmap || res.Width != 12 || res.Height != 6 || res.ImageBase64 == "" {
		t.Errorf("unexpected result: heatmap=%v size=%dx%d", res.Heatmap, res.Width, res.Height)
	}
	if res.MaxEnergy != seam.BorderEnergy {
		t.Errorf("MaxEnergy: got %f", res.MaxEnergy)
	}
}

func TestHandleToolsCall_FindSeam(t *testing.T) {
	s := New(nil, nil)
	imgPath := createBandImageFile(t, 16, 8, 7)

	tests := []struct {
		direction   string
		orientation string
		length      int
	}{
		{"", "vertical", 8},
		{"vertical", "vertical", 8},
		{"H", "horizontal", 16},
	}

	for _, tt := range tests {
		t.Run(tt.orientation+"/"+tt.direction, func(t *testing.T) {
			var res imaging.SeamResult
			decodeContent(t, callTool(t, s, "image_find_seam", map[string]interface{}{
				"path":      imgPath,
				"direction": tt.direction,
			}), &res)

			if res.Orientation != tt.orientation {
				t.Errorf("Orientation: got %s, want %s", res.Orientation, tt.orientation)
			}
			if len(res.Seam) != tt.length {
				t.Errorf("seam length: got %d, want %d", len(res.Seam), tt.length)
			}
		})
	}
}

func TestHandleToolsCall_SeamOverlay_ConfiguredColor(t *testing.T) {
	cfg := config.Default()
	cfg.OverlayColor = "#00FF00"
	s := New(cfg, nil)

	raw, err := s.executeTool("image_seam_overlay", json.RawMessage(
		`{"path":"`+createBandImageFile(t, 16, 8, 7)+`"}`))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}
	res := raw.(*imaging.SeamResult)
	if res.Overlay == nil || res.Overlay.ImageBase64 == "" {
		t.Fatal("overlay missing")
	}
	if res.Overlay.Width != 16 || res.Overlay.Height != 8 {
		t.Errorf("overlay size: got %dx%d", res.Overlay.Width, res.Overlay.Height)
	}
}

func TestHandleToolsCall_Carve(t *testing.T) {
	s := New(nil, nil)
	outPath := filepath.Join(t.TempDir(), "carved.png")

	var res imaging.CarveResult
	decodeContent(t, callTool(t, s, "image_carve", map[string]interface{}{
		"path":        createBandImageFile(t, 20, 10, 9),
		"width":       15,
		"height":      8,
		"output_path": outPath,
	}), &res)

	if res.Width != 15 || res.Height != 8 || res.SeamsRemoved != 7 {
		t.Errorf("got %dx%d after %d seams, want 15x8 after 7", res.Width, res.Height, res.SeamsRemoved)
	}
	if res.OutputPath != outPath {
		t.Errorf("OutputPath: got %s, want %s", res.OutputPath, outPath)
	}

	var saved imaging.DimensionsResult
	decodeContent(t, callTool(t, s, "image_dimensions", map[string]interface{}{"path": outPath}), &saved)
	if saved.Width != 15 || saved.Height != 8 {
		t.Errorf("saved image: got %dx%d, want 15x8", saved.Width, saved.Height)
	}
}

func TestHandleToolsCall_Carve_Protect(t *testing.T) {
	s := New(nil, nil)

	var res imaging.CarveResult
	decodeContent(t, callTool(t, s, "image_carve", map[string]interface{}{
		"path":  createTestImageFile(t, 12, 6, color.Gray{Y: 90}),
		"width": 9,
		"protect": []map[string]int{
			{"x1": 0, "y1": 0, "x2": 3, "y2": 6},
			{"x1": 9, "y1": 0, "x2": 12, "y2": 6},
		},
	}), &res)

	if res.ProtectedRegions != 2 {
		t.Errorf("ProtectedRegions: got %d, want 2", res.ProtectedRegions)
	}
	if res.Width != 9 {
		t.Errorf("Width: got %d, want 9", res.Width)
	}
}

func TestHandleToolsCall_Carve_ProtectText(t *testing.T) {
	s := New(offlineConfig(), nil)

	var res imaging.CarveResult
	decodeContent(t, callTool(t, s, "image_carve", map[string]interface{}{
		"path":         createColumnImageFile(t, 100, 30),
		"width":        95,
		"protect_text": true,
	}), &res)

	if res.ProtectedRegions != 1 {
		t.Errorf("ProtectedRegions: got %d, want 1", res.ProtectedRegions)
	}
	if res.Width != 95 {
		t.Errorf("Width: got %d, want 95", res.Width)
	}
}

func TestHandleToolsCall_ScaleCompare(t *testing.T) {
	s := New(nil, nil)

	var res imaging.ScaleCompareResult
	decodeContent(t, callTool(t, s, "image_scale_compare", map[string]interface{}{
		"path":   createBandImageFile(t, 30, 20, 12),
		"width":  20,
		"height": 15,
	}), &res)

	if res.Carved == nil || res.Rescaled == nil {
		t.Fatal("both results expected")
	}
	if res.Carved.Width != res.Rescaled.Width || res.Carved.Height != res.Rescaled.Height {
		t.Errorf("carved %dx%d and rescaled %dx%d differ",
			res.Carved.Width, res.Carved.Height, res.Rescaled.Width, res.Rescaled.Height)
	}
}

func TestHandleToolsCall_DetectTextRegions(t *testing.T) {
	s := New(offlineConfig(), nil)

	var res TextRegionsResult
	decodeContent(t, callTool(t, s, "image_detect_text_regions", map[string]interface{}{
		"path": createColumnImageFile(t, 100, 30),
	}), &res)

	if res.Count != len(res.Regions) {
		t.Errorf("Count (%d) doesn't match len(Regions) (%d)", res.Count, len(res.Regions))
	}
	want := Bounds{X1: 0, Y1: 0, X2: 100, Y2: 30}
	if res.Count != 1 || res.Regions[0] != want {
		t.Errorf("got %+v, want [%+v]", res.Regions, want)
	}

	var strict TextRegionsResult
	decodeContent(t, callTool(t, s, "image_detect_text_regions", map[string]interface{}{
		"path":           createColumnImageFile(t, 100, 30),
		"min_confidence": 0.99,
	}), &strict)
	if strict.Count != 0 {
		t.Errorf("expected no regions at 0.99, got %+v", strict.Regions)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New(offlineConfig(), nil)
	imgPath := createBandImageFile(t, 20, 10, 9)

	args := map[string]string{
		"image_load":                `{"path":"` + imgPath + `"}`,
		"image_dimensions":          `{"path":"` + imgPath + `"}`,
		"image_energy":              `{"path":"` + imgPath + `","x":3,"y":3}`,
		"image_energy_map":          `{"path":"` + imgPath + `"}`,
		"image_find_seam":           `{"path":"` + imgPath + `"}`,
		"image_seam_overlay":        `{"path":"` + imgPath + `","direction":"horizontal"}`,
		"image_carve":               `{"path":"` + imgPath + `","width":18}`,
		"image_scale_compare":       `{"path":"` + imgPath + `","height":9}`,
		"image_detect_text_regions": `{"path":"` + imgPath + `"}`,
	}

	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			a, ok := args[tool.Name]
			if !ok {
				t.Fatalf("no arguments for %s", tool.Name)
			}
			res, err := s.executeTool(tool.Name, json.RawMessage(a))
			if err != nil {
				t.Fatalf("executeTool failed: %v", err)
			}
			if res == nil {
				t.Error("nil result")
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New(nil, nil)
	if _, err := s.executeTool("nope", json.RawMessage(`{}`)); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New(nil, nil)
	_, err := s.executeTool("image_load", json.RawMessage(`{invalid`))
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Errorf("expected a JSON syntax error, got %v", err)
	}
}
