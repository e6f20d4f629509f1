package watermark

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/document-watermark-mcp/internal/canvas"
	"github.com/ironsheep/document-watermark-mcp/internal/layout"
)

// Caption is the fixed text drawn in the bottom band of every document.
const Caption = "Traceable documents, Safer identities - SaferLayer.com"

// CaptionSize is the caption glyph size in pixels.
const CaptionSize = 24

// DrawFrame paints the white rounded card over the whole canvas and blits src,
// scaled by plan.ScaleFactor, into a rounded clip inset by the border.
// The clip covers the scaled image only; the caption band below stays white.
func DrawFrame(s *canvas.Surface, plan layout.Plan, src image.Image) error {
	if src == nil {
		return fmt.Errorf("no source image")
	}

	s.FillPath(canvas.RoundedRect(0, 0, plan.CanvasWidth, plan.CanvasHeight, layout.CornerRadius), color.White)

	iw, ih := plan.ImageWidth(), plan.ImageHeight()
	clip := canvas.RoundedRect(layout.BorderSize, layout.BorderSize, iw, ih, layout.CornerRadius)
	return s.WithClip(clip, func() error {
		if err := s.DrawImage(src, layout.BorderSize, layout.BorderSize, iw, ih); err != nil {
			return fmt.Errorf("failed to draw source: %w", err)
		}
		return nil
	})
}

// DrawCaption writes Caption left-aligned on the baseline at plan.CaptionOrigin.
func DrawCaption(s *canvas.Surface, plan layout.Plan) error {
	face, err := canvas.BoldSans(CaptionSize)
	if err != nil {
		return err
	}
	defer face.Close()

	x, y := plan.CaptionOrigin()
	return s.FillText(Caption, face, x, y, canvas.AlignLeft, canvas.BaselineAlphabetic, color.Black)
}
