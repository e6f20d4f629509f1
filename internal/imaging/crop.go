package imaging

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts r from img and optionally rescales it with a Lanczos filter.
// A scale of 0 or 1 keeps the original size.
func Crop(img image.Image, r image.Rectangle, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, bounds)
	}
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region %v", r)
	}

	cropped := imaging.Crop(img, r)

	if scale != 1.0 && scale > 0 {
		w := int(float64(cropped.Bounds().Dx()) * scale)
		h := int(float64(cropped.Bounds().Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %v collapses region %v", scale, r)
		}
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}

	return cropped, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
