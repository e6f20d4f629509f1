package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestRGB_HSL(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want HSL
	}{
		{"black", RGB{0, 0, 0}, HSL{0, 0, 0}},
		{"white", RGB{255, 255, 255}, HSL{0, 0, 1}},
		{"red", RGB{255, 0, 0}, HSL{0, 1, 0.5}},
		{"green", RGB{0, 255, 0}, HSL{1.0 / 3, 1, 0.5}},
		{"blue", RGB{0, 0, 255}, HSL{2.0 / 3, 1, 0.5}},
		{"cyan", RGB{0, 255, 255}, HSL{0.5, 1, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.HSL()
			if math.Abs(got.H-tt.want.H) > 1e-9 || math.Abs(got.S-tt.want.S) > 1e-9 || math.Abs(got.L-tt.want.L) > 1e-9 {
				t.Errorf("HSL(%v): got %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHSL_RGB(t *testing.T) {
	tests := []struct {
		name string
		in   HSL
		want RGB
	}{
		{"red", HSL{0, 1, 0.5}, RGB{255, 0, 0}},
		{"cyan", HSL{0.5, 1, 0.5}, RGB{0, 255, 255}},
		{"grey", HSL{0.7, 0, 0.5}, RGB{128, 128, 128}},
		{"wrapped hue", HSL{1.5, 1, 0.5}, RGB{0, 255, 255}},
		{"negative hue", HSL{-0.5, 1, 0.5}, RGB{0, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.RGB(); got != tt.want {
				t.Errorf("RGB(%+v): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRGB_HSL_RoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 85 {
				in := RGB{uint8(r), uint8(g), uint8(b)}
				if got := in.HSL().RGB(); got != in {
					t.Errorf("round trip %v: got %v", in, got)
				}
			}
		}
	}
}

func TestRGB_Hex(t *testing.T) {
	if got := (RGB{255, 16, 0}).Hex(); got != "#FF1000" {
		t.Errorf("Hex: got %s, want #FF1000", got)
	}
}

func TestSampleRGB(t *testing.T) {
	img := createInMemoryImage(4, 4, color.NRGBA{200, 100, 50, 255})
	img.SetNRGBA(1, 1, color.NRGBA{0, 0, 0, 0})

	got, err := SampleRGB(img, 2, 2)
	if err != nil {
		t.Fatalf("SampleRGB failed: %v", err)
	}
	if got != (RGB{200, 100, 50}) {
		t.Errorf("got %v, want {200 100 50}", got)
	}

	got, err = SampleRGB(img, 1, 1)
	if err != nil {
		t.Fatalf("SampleRGB failed: %v", err)
	}
	if got != (RGB{}) {
		t.Errorf("transparent pixel: got %v, want zero", got)
	}

	if _, err := SampleRGB(img, 4, 0); err == nil {
		t.Error("expected error for out-of-bounds sample")
	}
	if _, err := SampleRGB(image.NewNRGBA(image.Rect(0, 0, 1, 1)), -1, 0); err == nil {
		t.Error("expected error for negative coordinate")
	}
}
