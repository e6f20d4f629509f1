// Package layout derives the canvas geometry of a watermarked document from the
// dimensions of its source photo.
//
// The smaller source dimension is always normalised to MinDim so watermark
// density and text legibility do not depend on the source resolution. The
// border and caption band are added on top, so framing never shrinks the
// photographed content.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// Fixed layout constants. They affect the rendered output pixel for pixel.
const (
	MinDim           = 600.0
	BorderSize       = 20.0
	BottomBorderSize = 60.0
	CornerRadius     = 10.0
)

// ErrInvalidDimensions is returned for sources with a zero or negative side.
var ErrInvalidDimensions = errors.New("invalid source dimensions")

// Plan is the canvas geometry for one source image.
type Plan struct {
	// CanvasWidth is the full canvas width: scaled image plus left and right borders.
	CanvasWidth float64 `json:"canvas_width"`

	// CanvasHeight is the full canvas height: scaled image plus top border and caption band.
	CanvasHeight float64 `json:"canvas_height"`

	// ScaleFactor maps source pixels to canvas pixels, preserving aspect ratio.
	ScaleFactor float64 `json:"scale_factor"`

	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`
}

// New computes the plan for a width x height source.
func New(width, height int) (Plan, error) {
	if width < 1 || height < 1 {
		return Plan{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	w := float64(width)
	h := float64(height)
	scale := math.Max(MinDim/w, MinDim/h)

	return Plan{
		CanvasWidth:  w*scale + 2*BorderSize,
		CanvasHeight: h*scale + BorderSize + BottomBorderSize,
		ScaleFactor:  scale,
		SourceWidth:  width,
		SourceHeight: height,
	}, nil
}

// ImageWidth is the width of the scaled source on the canvas.
func (p Plan) ImageWidth() float64 {
	return float64(p.SourceWidth) * p.ScaleFactor
}

// ImageHeight is the height of the scaled source on the canvas.
func (p Plan) ImageHeight() float64 {
	return float64(p.SourceHeight) * p.ScaleFactor
}

// Size returns the pixel dimensions of the surfaces. Values are rounded so
// floating-point residue such as 639.9999 does not drop a column.
func (p Plan) Size() (width, height int) {
	return int(math.Round(p.CanvasWidth)), int(math.Round(p.CanvasHeight))
}

// CaptionOrigin is the left end of the caption baseline.
func (p Plan) CaptionOrigin() (x, y float64) {
	return BorderSize, p.CanvasHeight - BorderSize
}
