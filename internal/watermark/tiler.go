package watermark

import (
	"fmt"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/ironsheep/document-watermark-mcp/internal/canvas"
)

// TileText fills s with rows of phrase in opaque white, rotated to run from the
// bottom-left corner to the top-right corner.
//
// Rows start half a diagonal above the centre and step by the font size until
// half a diagonal below it. Row k is the phrase rotated by 5k characters. The
// surface transform is back to identity when TileText returns.
func TileText(s *canvas.Surface, phrase string) error {
	w, h := float64(s.Width()), float64(s.Height())
	diag := math.Hypot(w, h)
	n := utf8.RuneCountInString(phrase)
	if n == 0 {
		return fmt.Errorf("empty watermark phrase")
	}
	size := FontSize(diag, n)

	face, err := canvas.Monospace(size)
	if err != nil {
		return err
	}
	defer face.Close()

	m := canvas.Translate(w/2, h/2).Multiply(canvas.Rotate(-math.Atan2(h, w)))
	return s.WithTransform(m, func() error {
		x := 0
		for y := -diag / 2; y < diag/2; y += size {
			row := RotateText(phrase, x%n)
			if err := s.FillText(row, face, 0, y, canvas.AlignCenter, canvas.BaselineMiddle, color.White); err != nil {
				return fmt.Errorf("failed to draw watermark row: %w", err)
			}
			x += rowShift
		}
		return nil
	})
}
