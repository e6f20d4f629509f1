package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"
)

func TestWordRecall(t *testing.T) {
	caption := "Traceable documents, Safer identities - SaferLayer.com"

	tests := []struct {
		name string
		got  string
		want float64
	}{
		{"exact", caption, 1},
		{"case and punctuation", "TRACEABLE DOCUMENTS SAFER IDENTITIES SAFERLAYER COM", 1},
		{"partial", "Traceable documents", 2.0 / 6},
		{"nothing", "", 0},
		{"noise", "lorem ipsum", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordRecall(caption, tt.got); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WordRecall: got %v, want %v", got, tt.want)
			}
		})
	}

	if got := WordRecall("", "anything"); got != 1 {
		t.Errorf("empty expectation: got %v, want 1", got)
	}
}

func TestContainsNormalized(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             bool
	}{
		{`SOLO PARA USO DE: "JOHN" |`, "John", true},
		{`SOLOPARAUSODE"JOHN DOE"|`, "John Doe", true},
		{`SOLO PARA USO DE: "JO HN"`, "john", true},
		{`SOLO PARA USO DE: "JANE"`, "John", false},
		{"anything", "", false},
		{"anything", "   ", false},
		{`USO DE: "STRASSE"`, "Straße", true},
	}

	for _, tt := range tests {
		if got := ContainsNormalized(tt.haystack, tt.needle); got != tt.want {
			t.Errorf("ContainsNormalized(%q, %q): got %v, want %v", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestCheckLegibility(t *testing.T) {
	caption := createImageWithText("SAFER DOCUMENTS", 2)
	img := image.NewRGBA(image.Rect(0, 0, caption.Bounds().Dx(), 200+caption.Bounds().Dy()))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, caption.Bounds().Add(image.Pt(0, 200)), caption, image.Point{}, draw.Src)

	report, err := CheckLegibility(img, Expectation{
		Caption:    "Safer documents",
		Holder:     "nobody",
		BandHeight: caption.Bounds().Dy(),
	}, "eng")
	if err != nil {
		skipWithoutTesseract(t, err)
		t.Fatalf("CheckLegibility failed: %v", err)
	}

	t.Logf("caption %q score %.2f", report.CaptionText, report.CaptionScore)
	if !report.CaptionFound {
		t.Errorf("caption not found in %q", report.CaptionText)
	}
	if report.HolderFound {
		t.Error("holder reported found on a document without a watermark")
	}
}
