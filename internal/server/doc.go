// Package server implements the MCP (Model Context Protocol) server for seam
// carving.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line on stdin
// and one response per line on stdout. Logging goes to the injected
// charmbracelet logger, which callers point at stderr.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Energy:
//   - image_energy: Energy of one pixel
//   - image_energy_map: Render the energy map
//
// Seams:
//   - image_find_seam: Minimum-energy seam and its cost
//   - image_seam_overlay: Seam drawn over the image
//
// Resizing:
//   - image_carve: Seam-carve to a target size, optionally protecting text
//   - image_scale_compare: Carved and uniformly rescaled results side by side
//
// Text protection:
//   - image_detect_text_regions: Regions protect_text would keep
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the process. Images
// above the configured max_pixels are rejected before any work is done.
//
// # Error Handling
//
// Malformed tools/call params return -32602. Tool execution errors return
// -32000 with the Go error string in data.
package server
