package watermark

import (
	"bytes"
	"math"
	"math/rand"
	"testing"
)

func pixel(r, g, b, a uint8) []uint8 { return []uint8{r, g, b, a} }

func within(got, want uint8, tol int) bool {
	d := int(got) - int(want)
	return d >= -tol && d <= tol
}

func TestAdjustContrast_Colors(t *testing.T) {
	tests := []struct {
		name    string
		base    []uint8
		want    [3]uint8
		comment string
	}{
		{"red boundary lightness", pixel(255, 0, 0, 255), [3]uint8{102, 255, 255}, "l=0.5 maps to 0.7"},
		{"white", pixel(255, 255, 255, 255), [3]uint8{77, 77, 77}, "grey keeps s=0"},
		{"black", pixel(0, 0, 0, 255), [3]uint8{179, 179, 179}, ""},
		{"light blue", pixel(128, 128, 255, 255), [3]uint8{153, 153, 0}, "l>0.5 maps to 0.3"},
		{"base alpha ignored", pixel(255, 255, 255, 0), [3]uint8{77, 77, 77}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := AdjustContrast(tt.base, pixel(255, 255, 255, 255), DefaultOpacity)
			if err != nil {
				t.Fatalf("AdjustContrast failed: %v", err)
			}
			for c := 0; c < 3; c++ {
				if !within(out[c], tt.want[c], 1) {
					t.Errorf("channel %d: got %d, want %d±1 (%s)", c, out[c], tt.want[c], tt.comment)
				}
			}
			if out[3] != 102 {
				t.Errorf("alpha: got %d, want 102", out[3])
			}
		})
	}
}

func TestAdjustContrast_Alpha(t *testing.T) {
	tests := []struct {
		in      uint8
		opacity float64
		want    uint8
	}{
		{0, 0.4, 0},
		{255, 0.4, 102},
		{128, 0.4, 51},
		{100, 0.4, 40},
		{255, 1, 255},
		{255, 0, 0},
		{255, 2, 255},
		{255, -1, 0},
	}

	for _, tt := range tests {
		out, err := AdjustContrast(pixel(10, 20, 30, 255), pixel(255, 255, 255, tt.in), tt.opacity)
		if err != nil {
			t.Fatalf("AdjustContrast failed: %v", err)
		}
		if out[3] != tt.want {
			t.Errorf("alpha %d * %v: got %d, want %d", tt.in, tt.opacity, out[3], tt.want)
		}
	}
}

func TestAdjustContrast_Invalid(t *testing.T) {
	if _, err := AdjustContrast(make([]uint8, 8), make([]uint8, 4), 0.4); err == nil {
		t.Error("expected error for mismatched buffers")
	}
	if _, err := AdjustContrast(make([]uint8, 6), make([]uint8, 6), 0.4); err == nil {
		t.Error("expected error for partial pixel")
	}
	if _, err := AdjustContrast(make([]uint8, 4), make([]uint8, 4), math.NaN()); err == nil {
		t.Error("expected error for NaN opacity")
	}
	out, err := AdjustContrast(nil, nil, 0.4)
	if err != nil || len(out) != 0 {
		t.Errorf("empty buffers: got %v, %v", out, err)
	}
}

func TestAdjustContrast_PureAndDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := make([]uint8, 4*200*150)
	layer := make([]uint8, len(base))
	rng.Read(base)
	rng.Read(layer)

	baseCopy := append([]uint8(nil), base...)
	layerCopy := append([]uint8(nil), layer...)

	first, err := AdjustContrast(base, layer, DefaultOpacity)
	if err != nil {
		t.Fatalf("AdjustContrast failed: %v", err)
	}
	second, err := AdjustContrast(base, layer, DefaultOpacity)
	if err != nil {
		t.Fatalf("AdjustContrast failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("repeated runs differ")
	}
	if !bytes.Equal(base, baseCopy) || !bytes.Equal(layer, layerCopy) {
		t.Error("inputs were modified")
	}
}
