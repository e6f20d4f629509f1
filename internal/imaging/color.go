package imaging

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit colour sample.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL is a colour in HSL space. All three components are in [0, 1]; hue 0
// and 1 are both red.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// HSL converts c to HSL. Greys report hue and saturation 0.
func (c RGB) HSL() HSL {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	return HSL{H: h / 360, S: s, L: l}
}

// Hex formats c as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGB converts c back to 8-bit RGB, rounding each channel to the nearest value.
// Hue wraps, so 1.25 and 0.25 are the same colour.
func (c HSL) RGB() RGB {
	h := c.H - float64(int(c.H))
	if h < 0 {
		h++
	}
	r, g, b := colorful.Hsl(h*360, clamp01(c.S), clamp01(c.L)).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// SampleRGB returns the colour at (x, y), ignoring alpha.
func SampleRGB(img image.Image, x, y int) (RGB, error) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return RGB{}, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	r, g, b, a := img.At(x, y).RGBA()
	if a == 0 {
		return RGB{}, nil
	}
	// Un-premultiply so translucent pixels report their straight colour.
	return RGB{
		R: uint8((r * 0xffff / a) >> 8),
		G: uint8((g * 0xffff / a) >> 8),
		B: uint8((b * 0xffff / a) >> 8),
	}, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
