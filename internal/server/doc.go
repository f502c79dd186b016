// Package server implements the MCP (Model Context Protocol) server for the
// grid line finder.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_unload: Drop one cached image, or all of them
//
// Grid Detection:
//   - grid_detect_lines: Horizontal Y and vertical X line positions, with an optional overlay
//   - grid_square_size: Median spacing between consecutive lines
//   - grid_edge_map: The binary edge grid the line finder votes on
//
// Grid tools accept an "options" object decoded by detection.ConfigFromMap
// and applied over the configuration the server was started with.
// Coordinates are always reported in the original image's pixel space.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls for the lifetime
// of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
