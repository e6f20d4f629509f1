package watermark

import (
	"image/color"
	"testing"

	"github.com/ironsheep/document-watermark-mcp/internal/canvas"
)

func TestComposite(t *testing.T) {
	base, _ := canvas.New(3, 1)
	layer, _ := canvas.New(3, 1)

	_ = base.PutPixels([]uint8{
		255, 0, 0, 255,
		255, 0, 0, 255,
		255, 0, 0, 255,
	})
	_ = layer.PutPixels([]uint8{
		0, 0, 0, 0, // transparent: base shows through
		0, 0, 255, 255, // opaque: replaces base
		0, 0, 255, 102, // 40%: blends
	})

	if err := Composite(base, layer); err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	if got := base.At(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("transparent layer pixel: got %v, want red", got)
	}
	if got := base.At(1, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("opaque layer pixel: got %v, want blue", got)
	}

	got := base.At(2, 0)
	if got.A != 255 {
		t.Errorf("blended alpha: got %d, want 255", got.A)
	}
	if !within(got.R, 153, 1) || got.G != 0 || !within(got.B, 102, 1) {
		t.Errorf("blended colour: got %v, want ~{153 0 102}", got)
	}
}

func TestComposite_SizeMismatch(t *testing.T) {
	base, _ := canvas.New(3, 3)
	layer, _ := canvas.New(2, 3)

	if err := Composite(base, layer); err == nil {
		t.Error("expected error for mismatched sizes")
	}
}
