package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Align is the horizontal anchor of a text run relative to its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical anchor of a text run relative to its y coordinate.
type Baseline int

const (
	// BaselineAlphabetic puts the glyph baseline on y.
	BaselineAlphabetic Baseline = iota

	// BaselineMiddle puts the middle of the em box on y.
	BaselineMiddle
)

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error

	monoOnce sync.Once
	monoFont *opentype.Font
	monoErr  error
)

// BoldSans returns a bold sans-serif face (Go Bold) at size pixels.
func BoldSans(size float64) (font.Face, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	return newFace(boldFont, boldErr, size)
}

// Monospace returns a monospace face (Go Mono) at size pixels. Every glyph
// advances by 0.6 em.
func Monospace(size float64) (font.Face, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = opentype.Parse(gomono.TTF)
	})
	return newFace(monoFont, monoErr, size)
}

func newFace(f *opentype.Font, parseErr error, size float64) (font.Face, error) {
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", parseErr)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// MeasureText returns the advance width of text in pixels.
func MeasureText(face font.Face, text string) float64 {
	return fromFixed(font.MeasureString(face, text))
}

// FillText draws text anchored at (x, y) under the current transform and clip.
func (s *Surface) FillText(text string, face font.Face, x, y float64, align Align, baseline Baseline, c color.Color) error {
	if text == "" {
		return nil
	}

	switch align {
	case AlignCenter:
		x -= MeasureText(face, text) / 2
	case AlignRight:
		x -= MeasureText(face, text)
	}
	if baseline == BaselineMiddle {
		m := face.Metrics()
		y += (fromFixed(m.Ascent) - fromFixed(m.Descent)) / 2
	}

	if s.transform.IsIdentity() && s.clip == nil {
		d := &font.Drawer{
			Dst:  s.img,
			Src:  image.NewUniform(c),
			Face: face,
			Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
		}
		d.DrawString(text)
		return nil
	}

	// Render the run untransformed, then blit it like an image.
	bounds, _ := font.BoundString(face, text)
	const pad = 2
	minX := bounds.Min.X.Floor() - pad
	minY := bounds.Min.Y.Floor() - pad
	w := bounds.Max.X.Ceil() + pad - minX
	h := bounds.Max.Y.Ceil() + pad - minY
	if w <= 0 || h <= 0 {
		return nil
	}

	layer := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(-minX), Y: fixed.I(-minY)},
	}
	d.DrawString(text)

	return s.drawScaled(draw.BiLinear, layer, x+float64(minX), y+float64(minY), float64(w), float64(h))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
