package server

// Tool represents an MCP tool definition.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools.
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "score_detect_symbols",
			Description: "Run the full detection pipeline on a sheet music image: upscale if needed, " +
				"invoke the Audiveris recognizer, and write an annotated copy with color-coded boxes " +
				"around noteheads, sharps, flats, and naturals. Returns the detections and output paths.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sheet music image (PNG or JPEG)",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the annotated image. Default: <name>_detected.<ext> beside the input",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "score_annotate",
			Description: "Draw color-coded bounding boxes for a caller-supplied detection list on an image, " +
				"without running the recognizer. Useful for re-rendering saved detections.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"detections": map[string]interface{}{
						"type":        "array",
						"description": "Detections as [{type, bounds:{x,y,width,height}}]; type is notehead|sharp|flat|natural",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the annotated image. Default: <name>_annotated.<ext>",
					},
				},
				"required": []string{"path", "detections"},
			},
		},
		{
			Name: "image_upscale",
			Description: "Upscale an image by an integer factor with Lanczos resampling and write the copy " +
				"to disk. Used to prepare low-resolution scans for recognition.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"factor": map[string]interface{}{
						"type":        "integer",
						"description": "Linear scale factor. Default 4",
						"default":     4,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the upscaled copy. Default: <name>_upscaled.<ext>",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the pixel width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "score_text_regions",
			Description: "Find text regions (title, tempo markings, lyrics) on a sheet music image using " +
				"Tesseract OCR. Returns bounding boxes with confidence scores.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum confidence (0.0-1.0) for a region to be reported. Default 0.5",
						"default":     0.5,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
