package server

import (
	"context"
	"encoding/json"
	"fmt"

	"scoresight/internal/imaging"
	"scoresight/internal/ocr"
	"scoresight/internal/pipeline"
	"scoresight/internal/score"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g. "score_detect_symbols").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the tool.
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

// executeTool dispatches tool execution to the appropriate handler.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "score_detect_symbols":
		return s.handleDetectSymbols(args)
	case "score_annotate":
		return s.handleAnnotate(args)
	case "image_upscale":
		return s.handleUpscale(args)
	case "image_dimensions":
		return s.handleDimensions(args)
	case "score_text_regions":
		return s.handleTextRegions(args)
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

// mustMarshalJSON converts a value to pretty-printed JSON string. On
// marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Tool handlers ===

type detectSymbolsArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

// detectSymbolsResult is the detect tool's response payload.
type detectSymbolsResult struct {
	Detections []score.Detection        `json:"detections"`
	Counts     map[score.SymbolType]int `json:"counts"`
	OutputPath string                   `json:"output_path"`
	Upscaled   string                   `json:"upscaled_path,omitempty"`
	Factor     int                      `json:"scale_factor"`
}

func (s *Server) handleDetectSymbols(args json.RawMessage) (interface{}, error) {
	var a detectSymbolsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p := pipeline.New(s.engine, s.settings, s.log)
	res, err := p.Run(context.Background(), a.Path, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &detectSymbolsResult{
		Detections: res.Detections,
		Counts:     res.Counts,
		OutputPath: res.OutputPath,
		Upscaled:   res.UpscaledPath,
		Factor:     res.ScaleFactor,
	}, nil
}

type annotateArgs struct {
	Path       string            `json:"path"`
	Detections []score.Detection `json:"detections"`
	OutputPath string            `json:"output_path"`
}

type annotateResult struct {
	OutputPath string `json:"output_path"`
	Count      int    `json:"count"`
}

func (s *Server) handleAnnotate(args json.RawMessage) (interface{}, error) {
	var a annotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	annotated := imaging.Annotate(img, a.Detections, imaging.Options{
		LineWidth: s.settings.Annotate.LineWidth,
		Labels:    s.settings.Annotate.Labels,
		Banner:    s.settings.Annotate.Banner,
	})

	outputPath := a.OutputPath
	if outputPath == "" {
		outputPath = imaging.DerivedPath(a.Path, "annotated")
	}
	if err := imaging.SaveImage(annotated, outputPath); err != nil {
		return nil, err
	}
	return &annotateResult{OutputPath: outputPath, Count: len(a.Detections)}, nil
}

type upscaleArgs struct {
	Path       string `json:"path"`
	Factor     int    `json:"factor"`
	OutputPath string `json:"output_path"`
}

type upscaleResult struct {
	OutputPath string `json:"output_path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Factor     int    `json:"factor"`
}

func (s *Server) handleUpscale(args json.RawMessage) (interface{}, error) {
	var a upscaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Factor <= 0 {
		a.Factor = imaging.DefaultFactor
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	upscaled := imaging.Upscale(img, a.Factor)

	outputPath := a.OutputPath
	if outputPath == "" {
		outputPath = imaging.DerivedPath(a.Path, "upscaled")
	}
	if err := imaging.SaveImage(upscaled, outputPath); err != nil {
		return nil, err
	}

	b := upscaled.Bounds()
	return &upscaleResult{
		OutputPath: outputPath,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Factor:     a.Factor,
	}, nil
}

type dimensionsArgs struct {
	Path string `json:"path"`
}

type dimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleDimensions(args json.RawMessage) (interface{}, error) {
	var a dimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	w, h, err := imaging.Dimensions(a.Path)
	if err != nil {
		return nil, err
	}
	return &dimensionsResult{Width: w, Height: h}, nil
}

type textRegionsArgs struct {
	Path          string  `json:"path"`
	MinConfidence float64 `json:"min_confidence"`
}

type textRegionsResult struct {
	Regions []ocr.TextRegion `json:"regions"`
	Count   int              `json:"count"`
}

func (s *Server) handleTextRegions(args json.RawMessage) (interface{}, error) {
	var a textRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinConfidence <= 0 {
		a.MinConfidence = s.settings.Annotate.MinTextConf
	}
	regions, err := ocr.DetectTextRegions(a.Path, a.MinConfidence)
	if err != nil {
		return nil, err
	}
	return &textRegionsResult{Regions: regions, Count: len(regions)}, nil
}
