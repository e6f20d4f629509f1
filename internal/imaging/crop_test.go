package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createInMemoryImage(100, 80, color.NRGBA{255, 0, 0, 255})

	got, err := Crop(img, image.Rect(10, 20, 60, 80), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if got.Bounds().Dx() != 50 || got.Bounds().Dy() != 60 {
		t.Errorf("dimensions: got %v, want 50x60", got.Bounds().Size())
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	got, err := Crop(img, image.Rect(0, 0, 50, 20), 2.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if got.Bounds().Dx() != 100 || got.Bounds().Dy() != 40 {
		t.Errorf("dimensions: got %v, want 100x40", got.Bounds().Size())
	}
}

func TestCrop_Invalid(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)

	tests := []struct {
		name  string
		r     image.Rectangle
		scale float64
	}{
		{"outside", image.Rect(5, 5, 20, 20), 1},
		{"empty", image.Rect(5, 5, 5, 8), 1},
		{"collapsed by scale", image.Rect(0, 0, 2, 2), 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.r, tt.scale); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(createInMemoryImage(3, 2, color.Black))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("dimensions: got %dx%d, want 3x2", cfg.Width, cfg.Height)
	}
}
