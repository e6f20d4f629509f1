package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"time"
	"unicode/utf8"

	imgproc "github.com/ironsheep/document-watermark-mcp/internal/imaging"
	"github.com/ironsheep/document-watermark-mcp/internal/layout"
	"github.com/ironsheep/document-watermark-mcp/internal/ocr"
	"github.com/ironsheep/document-watermark-mcp/internal/watermark"
)

// ShareHint is returned with every artifact. The stdio server has no share target.
const ShareHint = "To share this document, please download it and attach it manually."

var (
	errNoSource      = errors.New("exactly one of path or data_uri is required")
	errNoTarget      = errors.New("exactly one of handle or path is required")
	errUnknownHandle = errors.New("unknown artifact handle")
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "document_watermark").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool execution failed")
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

func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Rendering
	case "document_layout":
		return s.handleDocumentLayout(args)
	case "document_watermark":
		return s.handleDocumentWatermark(ctx, args)

	// Artifacts
	case "artifact_info":
		return s.handleArtifactInfo(args)
	case "artifact_save":
		return s.handleArtifactSave(args)
	case "artifact_release":
		return s.handleArtifactRelease(args)

	// Verification
	case "watermark_verify":
		return s.handleWatermarkVerify(args)

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

// === Rendering Handlers ===

type documentLayoutArgs struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

type layoutResult struct {
	Source       *imgproc.SourceInfo `json:"source"`
	Plan         layout.Plan         `json:"plan"`
	CanvasPixelW int                 `json:"canvas_pixel_width"`
	CanvasPixelH int                 `json:"canvas_pixel_height"`
	Phrase       string              `json:"watermark_phrase,omitempty"`
	FontSize     float64             `json:"watermark_font_size,omitempty"`
}

func (s *Server) handleDocumentLayout(args json.RawMessage) (interface{}, error) {
	var a documentLayoutArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	info, err := imgproc.LoadSourceInfo(s.sources, a.Path)
	if err != nil {
		return nil, err
	}
	plan, err := layout.New(info.Width, info.Height)
	if err != nil {
		return nil, err
	}

	w, h := plan.Size()
	res := &layoutResult{
		Source:       info,
		Plan:         plan,
		CanvasPixelW: w,
		CanvasPixelH: h,
	}
	if a.Text != "" {
		res.Phrase = watermark.Template(a.Text)
		res.FontSize = watermark.FontSize(math.Hypot(float64(w), float64(h)), utf8.RuneCountInString(res.Phrase))
	}
	return res, nil
}

type documentWatermarkArgs struct {
	Path          string `json:"path"`
	DataURI       string `json:"data_uri"`
	Text          string `json:"text"`
	OutputPath    string `json:"output_path"`
	IncludeBase64 bool   `json:"include_base64"`
}

type artifactResult struct {
	Handle         string `json:"handle"`
	MimeType       string `json:"mime_type"`
	SizeBytes      int    `json:"size_bytes"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Filename       string `json:"filename"`
	Holder         string `json:"holder"`
	CreatedAt      string `json:"created_at"`
	ShareSupported bool   `json:"share_supported"`
	ShareHint      string `json:"share_hint"`
	DataURI        string `json:"data_uri,omitempty"`
	SavedPath      string `json:"saved_path,omitempty"`
}

func newArtifactResult(a *watermark.Artifact) *artifactResult {
	return &artifactResult{
		Handle:         a.Handle,
		MimeType:       a.MimeType,
		SizeBytes:      len(a.Bytes),
		Width:          a.Width,
		Height:         a.Height,
		Filename:       a.Filename,
		Holder:         a.Holder,
		CreatedAt:      a.CreatedAt.UTC().Format(time.RFC3339),
		ShareSupported: false,
		ShareHint:      ShareHint,
	}
}

func (s *Server) handleDocumentWatermark(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a documentWatermarkArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if (a.Path == "") == (a.DataURI == "") {
		return nil, errNoSource
	}

	var src []byte
	var err error
	if a.Path != "" {
		src, err = os.ReadFile(a.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open image: %v", watermark.ErrDecode, err)
		}
	} else {
		src, err = imgproc.ParseDataURI(a.DataURI)
		if err != nil {
			return nil, err
		}
	}

	p := watermark.New(
		watermark.WithStore(s.store),
		watermark.WithLogger(s.log),
		watermark.WithOpacity(s.cfg.Opacity),
		watermark.WithMaxPixels(s.cfg.MaxPixels),
	)
	art, err := p.Run(ctx, bytes.NewReader(src), a.Text)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("handle", art.Handle).Int("width", art.Width).Int("height", art.Height).Msg("document watermarked")

	res := newArtifactResult(art)
	if a.IncludeBase64 {
		res.DataURI = art.DataURI()
	}
	if a.OutputPath != "" {
		res.SavedPath, err = art.Save(a.OutputPath)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// === Artifact Handlers ===

type artifactArgs struct {
	Handle string `json:"handle"`
	Path   string `json:"path"`
}

func (s *Server) artifact(handle string) (*watermark.Artifact, error) {
	a, ok := s.store.Get(handle)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownHandle, handle)
	}
	return a, nil
}

func (s *Server) handleArtifactInfo(args json.RawMessage) (interface{}, error) {
	var a artifactArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	art, err := s.artifact(a.Handle)
	if err != nil {
		return nil, err
	}
	return newArtifactResult(art), nil
}

func (s *Server) handleArtifactSave(args json.RawMessage) (interface{}, error) {
	var a artifactArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	art, err := s.artifact(a.Handle)
	if err != nil {
		return nil, err
	}
	if a.Path == "" {
		a.Path = s.cfg.OutputDir
	}

	path, err := art.Save(a.Path)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("handle", art.Handle).Str("path", path).Msg("artifact saved")

	res := newArtifactResult(art)
	res.SavedPath = path
	return res, nil
}

func (s *Server) handleArtifactRelease(args json.RawMessage) (interface{}, error) {
	var a artifactArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if !s.store.Release(a.Handle) {
		return nil, fmt.Errorf("%w: %s", errUnknownHandle, a.Handle)
	}
	return map[string]interface{}{
		"handle":   a.Handle,
		"released": true,
	}, nil
}

// === Verification Handlers ===

type watermarkVerifyArgs struct {
	Handle   string `json:"handle"`
	Path     string `json:"path"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (s *Server) handleWatermarkVerify(args json.RawMessage) (interface{}, error) {
	var a watermarkVerifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if (a.Handle == "") == (a.Path == "") {
		return nil, errNoTarget
	}
	if a.Language == "" {
		a.Language = s.cfg.OCRLanguage
	}

	var img image.Image
	holder := a.Text
	if a.Handle != "" {
		art, err := s.artifact(a.Handle)
		if err != nil {
			return nil, err
		}
		img, err = imgproc.Decode(bytes.NewReader(art.Bytes))
		if err != nil {
			return nil, err
		}
		if holder == "" {
			holder = art.Holder
		}
	} else {
		var err error
		img, err = imgproc.DecodeFile(a.Path)
		if err != nil {
			return nil, err
		}
	}

	return ocr.CheckLegibility(img, ocr.Expectation{
		Caption:    watermark.Caption,
		Holder:     holder,
		BandHeight: int(layout.BottomBorderSize),
	}, a.Language)
}
