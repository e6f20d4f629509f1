package ocr

import (
	"image"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// captionScale upscales the caption band before OCR; 24 px glyphs read poorly.
const captionScale = 2.0

// captionThreshold is the share of caption words that must be recognised.
const captionThreshold = 0.6

// Expectation is what a watermarked document should visibly carry.
type Expectation struct {
	// Caption is the fixed caption in the bottom band.
	Caption string

	// Holder is the raw holder text embedded in the watermark phrase.
	Holder string

	// BandHeight is the height of the caption band at the bottom of the image.
	BandHeight int
}

// LegibilityReport describes what OCR could read back from a document.
type LegibilityReport struct {
	CaptionText   string  `json:"caption_text"`
	CaptionScore  float64 `json:"caption_score"`
	CaptionFound  bool    `json:"caption_found"`
	WatermarkText string  `json:"watermark_text"`
	HolderFound   bool    `json:"holder_found"`
}

// CheckLegibility reads the caption band and the whole document and compares
// the text against want.
//
// The caption is found when at least 60% of its words are recognised. The
// holder is found when its letters and digits appear contiguously in the
// recognised watermark text; an empty holder is never reported as found.
func CheckLegibility(img image.Image, want Expectation, language string) (*LegibilityReport, error) {
	b := img.Bounds()
	band := image.Rect(b.Min.X, b.Max.Y-want.BandHeight, b.Max.X, b.Max.Y).Intersect(b)

	caption, err := ExtractTextFromRegion(img, band, captionScale, language)
	if err != nil {
		return nil, err
	}
	full, err := ExtractText(img, language)
	if err != nil {
		return nil, err
	}

	score := WordRecall(want.Caption, caption.FullText)
	return &LegibilityReport{
		CaptionText:   strings.TrimSpace(caption.FullText),
		CaptionScore:  score,
		CaptionFound:  score >= captionThreshold,
		WatermarkText: strings.TrimSpace(full.FullText),
		HolderFound:   ContainsNormalized(full.FullText, want.Holder),
	}, nil
}

// WordRecall returns the share of words in expected that also occur in got,
// ignoring case and punctuation. An empty expectation scores 1.
func WordRecall(expected, got string) float64 {
	want := strings.Fields(normalize(expected, ' '))
	if len(want) == 0 {
		return 1
	}

	have := make(map[string]bool)
	for _, w := range strings.Fields(normalize(got, ' ')) {
		have[w] = true
	}

	hits := 0
	for _, w := range want {
		if have[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(want))
}

// ContainsNormalized reports whether needle occurs in haystack once both are
// upper-cased and stripped to letters and digits. OCR often drops or merges
// spaces in rotated text, so spacing is ignored.
func ContainsNormalized(haystack, needle string) bool {
	n := normalize(needle, -1)
	if n == "" {
		return false
	}
	return strings.Contains(normalize(haystack, -1), n)
}

// normalize upper-cases s and keeps letters and digits. Other runes become sep,
// or are dropped when sep is negative.
func normalize(s string, sep rune) string {
	s = cases.Upper(language.Und).String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return sep
	}, s)
}
