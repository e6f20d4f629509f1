// Package server implements the MCP (Model Context Protocol) server for document watermarking.
//
// This package provides a JSON-RPC 2.0 server that frames document photos,
// tiles a holder-specific diagonal watermark across them and hands the
// result back as a PNG artifact.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: zerolog on stderr
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Rendering:
//   - document_layout: Canvas geometry for a photo, without rendering
//   - document_watermark: Run the pipeline and create an artifact
//
// Artifacts:
//   - artifact_info: Describe an artifact
//   - artifact_save: Download an artifact to disk
//   - artifact_release: Drop an artifact; its handle stops resolving
//
// Verification:
//   - watermark_verify: OCR the caption and watermark back out
//
// # Artifacts
//
// Every successful document_watermark call stores its PNG under an
// artifact:<uuid> handle until it is released or the process exits. The
// stdio transport has no share target, so results always carry
// share_supported=false and a hint to download and attach manually.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Requests are handled one at a time, so pipeline runs within a session
// never overlap.
package server
