package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/gridlines/internal/detection"
	"github.com/ironsheep/gridlines/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "grid_detect_lines").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_unload":
		return s.handleImageUnload(args)

	// Grid Detection
	case "grid_detect_lines":
		return s.handleGridDetectLines(args)
	case "grid_square_size":
		return s.handleGridSquareSize(args)
	case "grid_edge_map":
		return s.handleGridEdgeMap(args)

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

// UnloadResult is returned by image_unload. Unloaded is the evicted path,
// or "all" when the whole cache was cleared.
type UnloadResult struct {
	Unloaded string `json:"unloaded"`
}

func (s *Server) handleImageUnload(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		s.cache.Clear()
		return &UnloadResult{Unloaded: "all"}, nil
	}
	s.cache.Evict(a.Path)
	return &UnloadResult{Unloaded: a.Path}, nil
}

// === Grid Detection Handlers ===

// gridArgs are shared by every grid tool.
type gridArgs struct {
	Path    string                 `json:"path"`
	Options map[string]interface{} `json:"options"`
}

// GridLinesResult is returned by grid_detect_lines.
type GridLinesResult struct {
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	Scale      int                   `json:"scale"`
	Horizontal []int                 `json:"horizontal"`
	Vertical   []int                 `json:"vertical"`
	Overlay    *imaging.EncodedImage `json:"overlay,omitempty"`
}

// SquareSizeResult is returned by grid_square_size.
type SquareSizeResult struct {
	SquareSize int   `json:"square_size"`
	Horizontal []int `json:"horizontal"`
	Vertical   []int `json:"vertical"`
}

// config applies the tool options over the server's base configuration.
func (s *Server) config(a gridArgs) (detection.Config, error) {
	if a.Path == "" {
		return detection.Config{}, fmt.Errorf("path is required")
	}
	return detection.ConfigFromMap(s.base, a.Options)
}

type gridDetectLinesArgs struct {
	gridArgs
	Overlay bool   `json:"overlay"`
	Color   string `json:"color"`
}

func (s *Server) handleGridDetectLines(args json.RawMessage) (interface{}, error) {
	var a gridDetectLinesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := s.config(a.gridArgs)
	if err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = imaging.DefaultLineColor
	}
	lineColor, err := imaging.ParseHexColor(a.Color)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	lines, err := detection.LocateLines(img, cfg, nil)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		log.Printf("grid_detect_lines %s: %d horizontal, %d vertical", a.Path, len(lines.Horizontal), len(lines.Vertical))
	}

	result := &GridLinesResult{
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
		Scale:      cfg.Scale,
		Horizontal: lines.Horizontal,
		Vertical:   lines.Vertical,
	}
	if a.Overlay {
		drawn := imaging.DrawLines(img, lines.Horizontal, lines.Vertical,
			imaging.OverlayOptions{Color: lineColor, Labels: true})
		if result.Overlay, err = imaging.EncodePNG(drawn); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Server) handleGridSquareSize(args json.RawMessage) (interface{}, error) {
	var a gridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := s.config(a)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	lines, err := detection.LocateLines(img, cfg, nil)
	if err != nil {
		return nil, err
	}
	size, err := detection.SquareSize(lines)
	if err != nil {
		return nil, err
	}
	return &SquareSizeResult{
		SquareSize: size,
		Horizontal: lines.Horizontal,
		Vertical:   lines.Vertical,
	}, nil
}

func (s *Server) handleGridEdgeMap(args json.RawMessage) (interface{}, error) {
	var a gridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := s.config(a)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	small, err := imaging.Downscale(img, cfg.Scale)
	if err != nil {
		return nil, err
	}
	edges, err := detection.EdgeMap(small, cfg, nil)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(edges)
}
