package watermark

import (
	"errors"

	imgproc "github.com/ironsheep/document-watermark-mcp/internal/imaging"
)

var (
	// ErrDecode is returned when the source cannot be opened or decoded.
	ErrDecode = imgproc.ErrDecode

	// ErrExport is returned when resampling or encoding produced no output.
	ErrExport = errors.New("failed to export watermarked image")
)
