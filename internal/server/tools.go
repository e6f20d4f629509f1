package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	handleProp := map[string]interface{}{
		"type":        "string",
		"description": "Artifact handle returned by document_watermark (artifact:<uuid>)",
	}

	return []Tool{
		// Rendering
		{
			Name:        "document_layout",
			Description: "Compute the framed canvas geometry for a document photo without rendering it. Optionally reports the watermark phrase and font size for a holder text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the document photo",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Optional holder text, e.g. who the copy is for",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_watermark",
			Description: "Frame a document photo, tile a diagonal watermark naming the holder across it, and export a PNG artifact. Provide exactly one of path or data_uri.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the document photo (PNG, JPEG or GIF)",
					},
					"data_uri": map[string]interface{}{
						"type":        "string",
						"description": "The document photo as a base64 data URI",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Holder text embedded in the watermark, e.g. the recipient's name",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file or directory to save the PNG to. A directory gets watermarked_document.png",
					},
					"include_base64": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the PNG as a data URI in the result. Default false",
						"default":     false,
					},
				},
				"required": []string{"text"},
			},
		},

		// Artifacts
		{
			Name:        "artifact_info",
			Description: "Describe a watermarked artifact.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"handle": handleProp,
				},
				"required": []string{"handle"},
			},
		},
		{
			Name:        "artifact_save",
			Description: "Download a watermarked artifact to disk. Defaults to the configured output directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"handle": handleProp,
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file or directory. A directory gets watermarked_document.png",
					},
				},
				"required": []string{"handle"},
			},
		},
		{
			Name:        "artifact_release",
			Description: "Release a watermarked artifact. The handle no longer resolves afterwards.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"handle": handleProp,
				},
				"required": []string{"handle"},
			},
		},

		// Verification
		{
			Name:        "watermark_verify",
			Description: "OCR a watermarked document and report whether the caption and the holder text can be read back. Provide exactly one of handle or path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"handle": handleProp,
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a watermarked PNG",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Holder text to look for. Defaults to the artifact's own holder text",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Defaults to the configured language",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
