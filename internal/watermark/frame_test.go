package watermark

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/document-watermark-mcp/internal/canvas"
	"github.com/ironsheep/document-watermark-mcp/internal/layout"
)

var (
	opaqueRed   = color.NRGBA{R: 255, A: 255}
	opaqueWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// solidImage returns a width x height image filled with c.
func solidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// framedSurface plans and frames a width x height red source.
func framedSurface(t *testing.T, width, height int) (*canvas.Surface, layout.Plan) {
	t.Helper()

	plan, err := layout.New(width, height)
	if err != nil {
		t.Fatalf("layout.New failed: %v", err)
	}
	w, h := plan.Size()
	s, err := canvas.New(w, h)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}
	if err := DrawFrame(s, plan, solidImage(width, height, opaqueRed)); err != nil {
		t.Fatalf("DrawFrame failed: %v", err)
	}
	return s, plan
}

func TestDrawFrame(t *testing.T) {
	s, _ := framedSurface(t, 300, 300)

	if s.Width() != 640 || s.Height() != 680 {
		t.Fatalf("surface: got %dx%d, want 640x680", s.Width(), s.Height())
	}

	corners := []image.Point{{0, 0}, {639, 0}, {0, 679}, {639, 679}}
	for _, p := range corners {
		if a := s.At(p.X, p.Y).A; a != 0 {
			t.Errorf("outer corner %v: alpha %d, want 0", p, a)
		}
	}

	white := []struct {
		name string
		p    image.Point
	}{
		{"left border", image.Pt(10, 300)},
		{"right border", image.Pt(630, 300)},
		{"top border", image.Pt(320, 10)},
		{"caption band", image.Pt(320, 650)},
		{"image clip corner", image.Pt(20, 20)},
	}
	for _, tt := range white {
		if got := s.At(tt.p.X, tt.p.Y); got != opaqueWhite {
			t.Errorf("%s %v: got %v, want white", tt.name, tt.p, got)
		}
	}

	for _, p := range []image.Point{{320, 320}, {25, 320}, {614, 320}, {320, 614}} {
		if got := s.At(p.X, p.Y); got != opaqueRed {
			t.Errorf("image area %v: got %v, want red", p, got)
		}
	}

	if s.Clipped() {
		t.Error("clip still active after DrawFrame")
	}
}

func TestDrawFrame_NilSource(t *testing.T) {
	plan, _ := layout.New(10, 10)
	s, _ := canvas.New(plan.Size())
	if err := DrawFrame(s, plan, nil); err == nil {
		t.Error("expected error for nil source")
	}
}

func TestDrawCaption(t *testing.T) {
	s, plan := framedSurface(t, 300, 300)
	if err := DrawCaption(s, plan); err != nil {
		t.Fatalf("DrawCaption failed: %v", err)
	}

	dark := 0
	for y := 640; y < 670; y++ {
		for x := 20; x < 300; x++ {
			c := s.At(x, y)
			if c.R < 128 && c.G < 128 && c.B < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Fatal("no caption ink in the bottom band")
	}

	// The caption never spills into the image area or left border.
	for y := 620; y < s.Height(); y++ {
		for x := 0; x < 19; x++ {
			if c := s.At(x, y); c.A == 255 && c.R < 128 {
				t.Fatalf("caption ink left of the border at (%d,%d)", x, y)
			}
		}
	}
	if got := s.At(320, 320); got != opaqueRed {
		t.Errorf("image centre changed: %v", got)
	}
}
