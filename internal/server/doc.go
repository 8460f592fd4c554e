// Package server implements the MCP (Model Context Protocol) server
// mode, exposing the detection pipeline to MCP-compatible clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - score_detect_symbols: full pipeline, annotated output + detections
//   - score_annotate: draw caller-supplied detections on an image
//   - image_upscale: Lanczos upscale by an integer factor
//   - image_dimensions: width and height of an image file
//   - score_text_regions: Tesseract text-region boxes
//
// # Image Caching
//
// Images loaded for annotation are cached by path for the lifetime of
// the server process, so iterating on a detection list against the same
// sheet avoids redundant decodes.
//
// # Error Handling
//
// Tool failures surface as JSON-RPC errors with code -32000 and the Go
// error string in the data field. Protocol-level problems use the
// standard JSON-RPC codes (-32601 unknown method, -32602 bad params).
package server
