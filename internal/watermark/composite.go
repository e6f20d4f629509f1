package watermark

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/document-watermark-mcp/internal/canvas"
)

// Composite blends layer over base with straight-alpha "over" and stores the
// result in base.
func Composite(base, layer *canvas.Surface) error {
	if base.Width() != layer.Width() || base.Height() != layer.Height() {
		return fmt.Errorf("layer is %dx%d, base is %dx%d",
			layer.Width(), layer.Height(), base.Width(), base.Height())
	}

	out := imaging.Overlay(base.Image(), layer.Image(), image.Pt(0, 0), 1.0)
	return base.PutPixels(out.Pix)
}
