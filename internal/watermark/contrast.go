package watermark

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"

	imgproc "github.com/ironsheep/document-watermark-mcp/internal/imaging"
)

// DefaultOpacity scales the watermark alpha before compositing.
const DefaultOpacity = 0.4

const (
	darkLightness  = 0.3
	lightLightness = 0.7
)

// AdjustContrast recolours a watermark layer so every pixel contrasts with the
// base pixel beneath it. Both buffers are R,G,B,A bytes of the same raster.
//
// For each pixel the base colour's hue is rotated half a turn, its lightness is
// set to 0.3 on light backgrounds (l > 0.5) and 0.7 otherwise, and saturation is
// kept. The watermark alpha is multiplied by opacity, so fully transparent
// pixels stay transparent. Base alpha is ignored.
//
// The inputs are not modified. The result is identical for identical inputs.
func AdjustContrast(base, watermark []uint8, opacity float64) ([]uint8, error) {
	if len(base) != len(watermark) {
		return nil, fmt.Errorf("buffer sizes differ: base %d bytes, watermark %d bytes", len(base), len(watermark))
	}
	if len(watermark)%4 != 0 {
		return nil, fmt.Errorf("buffer size %d is not a multiple of 4", len(watermark))
	}
	if math.IsNaN(opacity) {
		return nil, fmt.Errorf("opacity is NaN")
	}
	opacity = math.Max(0, math.Min(1, opacity))

	out := make([]uint8, len(watermark))
	parallel.Line(len(watermark)/4, func(start, end int) {
		for p := start; p < end; p++ {
			i := p * 4
			hsl := imgproc.RGB{R: base[i], G: base[i+1], B: base[i+2]}.HSL()

			hsl.H = math.Mod(hsl.H+0.5, 1)
			if hsl.L > 0.5 {
				hsl.L = darkLightness
			} else {
				hsl.L = lightLightness
			}

			c := hsl.RGB()
			out[i] = c.R
			out[i+1] = c.G
			out[i+2] = c.B
			out[i+3] = uint8(math.RoundToEven(float64(watermark[i+3]) * opacity))
		}
	})

	return out, nil
}
