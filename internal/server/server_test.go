package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"scoresight/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	s := &config.Settings{}
	s.Recognizer.Timeout = time.Minute
	s.Upscale.MinWidth = 1200
	s.Upscale.MinHeight = 600
	s.Upscale.Factor = 4
	s.Annotate.LineWidth = 3
	s.Annotate.Labels = true
	s.Annotate.Space = config.SpaceRecognizer
	s.Annotate.MinTextConf = 0.5

	return New(s, nil, zerolog.Nop())
}

// writeTestPNG drops a solid white PNG into the test's temp dir.
func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}

	path := filepath.Join(t.TempDir(), "sheet.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	raw := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"image_dimensions","arguments":{"path":"/a.png"}}}`

	var req MCPRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if req.JSONRPC != "2.0" {
		t.Errorf("jsonrpc: got %s, want 2.0", req.JSONRPC)
	}
	if req.Method != "tools/call" {
		t.Errorf("method: got %s, want tools/call", req.Method)
	}
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		t.Fatalf("params unmarshal failed: %v", err)
	}
	if params.Name != "image_dimensions" {
		t.Errorf("tool name: got %s, want image_dimensions", params.Name)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	srv := testServer(t)

	resp := srv.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type: %T", resp.Result)
	}
	info, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("missing serverInfo")
	}
	if info["name"] != "scoresight" {
		t.Errorf("server name: got %v, want scoresight", info["name"])
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocol version: got %v", result["protocolVersion"])
	}
}

func TestHandleRequest_InitializedNotificationIsSilent(t *testing.T) {
	srv := testServer(t)
	if resp := srv.handleRequest(&MCPRequest{Method: "notifications/initialized"}); resp != nil {
		t.Errorf("notification must not produce a response, got %+v", resp)
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	srv := testServer(t)
	resp := srv.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "ping"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ID != 7 {
		t.Errorf("id: got %v, want 7", resp.ID)
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	srv := testServer(t)
	resp := srv.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 2, Method: "bogus/method"})
	if resp == nil || resp.Error == nil {
		t.Fatal("expected a JSON-RPC error")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	srv := testServer(t)
	resp := srv.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 3, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools type: %T", result["tools"])
	}

	want := map[string]bool{
		"score_detect_symbols": false,
		"score_annotate":       false,
		"image_upscale":        false,
		"image_dimensions":     false,
		"score_text_regions":   false,
	}
	for _, tool := range tools {
		if _, known := want[tool.Name]; !known {
			t.Errorf("unexpected tool %s", tool.Name)
			continue
		}
		want[tool.Name] = true
		if tool.InputSchema["type"] != "object" {
			t.Errorf("tool %s: schema type %v", tool.Name, tool.InputSchema["type"])
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %s missing from tools/list", name)
		}
	}
}

func TestToolsCall_InvalidParams(t *testing.T) {
	srv := testServer(t)
	resp := srv.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      4,
		Method:  "tools/call",
		Params:  json.RawMessage(`not json`),
	})
	if resp == nil || resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected -32602, got %+v", resp)
	}
}

func TestToolsCall_UnknownTool(t *testing.T) {
	srv := testServer(t)
	resp := srv.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      5,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"no_such_tool","arguments":{}}`),
	})
	if resp == nil || resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("expected -32000, got %+v", resp)
	}
}

func TestToolsCall_ImageDimensions(t *testing.T) {
	srv := testServer(t)
	path := writeTestPNG(t, 320, 240)

	params, _ := json.Marshal(ToolCallParams{
		Name:      "image_dimensions",
		Arguments: json.RawMessage(`{"path":"` + path + `"}`),
	})
	resp := srv.handleRequest(&MCPRequest{
		JSONRPC: "2.0", ID: 6, Method: "tools/call", Params: params,
	})
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// The result is wrapped in MCP content format with a JSON text body.
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %+v", content)
	}
	var dims dimensionsResult
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), &dims); err != nil {
		t.Fatalf("decoding tool result: %v", err)
	}
	if dims.Width != 320 || dims.Height != 240 {
		t.Errorf("dimensions: got %dx%d, want 320x240", dims.Width, dims.Height)
	}
}

func TestExecuteTool_Upscale(t *testing.T) {
	srv := testServer(t)
	path := writeTestPNG(t, 100, 50)

	raw, err := srv.executeTool("image_upscale",
		json.RawMessage(`{"path":"`+path+`","factor":2}`))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}
	res := raw.(*upscaleResult)
	if res.Width != 200 || res.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 200x100", res.Width, res.Height)
	}
	if res.Factor != 2 {
		t.Errorf("factor: got %d, want 2", res.Factor)
	}
	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Errorf("upscaled copy missing: %v", err)
	}
}

func TestExecuteTool_UpscaleDefaultFactor(t *testing.T) {
	srv := testServer(t)
	path := writeTestPNG(t, 50, 50)

	raw, err := srv.executeTool("image_upscale", json.RawMessage(`{"path":"`+path+`"}`))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}
	if res := raw.(*upscaleResult); res.Factor != 4 {
		t.Errorf("default factor: got %d, want 4", res.Factor)
	}
}

func TestExecuteTool_Annotate(t *testing.T) {
	srv := testServer(t)
	path := writeTestPNG(t, 300, 300)

	args := `{"path":"` + path + `","detections":[` +
		`{"type":"sharp","bounds":{"x":50,"y":50,"width":20,"height":40}}]}`
	raw, err := srv.executeTool("score_annotate", json.RawMessage(args))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}
	res := raw.(*annotateResult)
	if res.Count != 1 {
		t.Errorf("count: got %d, want 1", res.Count)
	}
	wantPath := filepath.Join(filepath.Dir(path), "sheet_annotated.png")
	if res.OutputPath != wantPath {
		t.Errorf("output path: got %s, want %s", res.OutputPath, wantPath)
	}
	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Errorf("annotated copy missing: %v", err)
	}
}

func TestExecuteTool_AnnotateMissingImage(t *testing.T) {
	srv := testServer(t)
	args := `{"path":"` + filepath.Join(t.TempDir(), "missing.png") + `","detections":[]}`
	if _, err := srv.executeTool("score_annotate", json.RawMessage(args)); err == nil {
		t.Error("expected error for missing image")
	}
}
