package ocr

import (
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	imgproc "github.com/ironsheep/document-watermark-mcp/internal/imaging"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a recognised word with its location and OCR confidence.
type TextRegion struct {
	// Text is the recognised word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the image.
	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the complete results of text extraction from an image.
type OCRResult struct {
	// FullText is all recognised text with original spacing and newlines.
	FullText string `json:"full_text"`

	// Regions contains individual words with their bounding boxes and confidence.
	// It may be empty when box extraction fails; FullText is still filled.
	Regions []TextRegion `json:"regions"`
}

// ExtractText performs OCR on an in-memory image.
//
// Parameters:
//   - img: The image to read.
//   - language: Tesseract language code (e.g., "eng"). The corresponding
//     language data must be installed on the system.
//
// Returns:
//   - *OCRResult: Full text plus word-level regions.
//   - error: Non-nil if encoding or OCR fails.
//
// The image is handed to Tesseract as PNG bytes, so no temporary files are written.
func ExtractText(img image.Image, language string) (*OCRResult, error) {
	data, err := imgproc.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &OCRResult{FullText: text, Regions: []TextRegion{}}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &OCRResult{FullText: text, Regions: regions}, nil
}

// ExtractTextFromRegion performs OCR on r, upscaled by scale for small text.
// Returned bounds are in the coordinates of the original image.
func ExtractTextFromRegion(img image.Image, r image.Rectangle, scale float64, language string) (*OCRResult, error) {
	cropped, err := imgproc.Crop(img, r, scale)
	if err != nil {
		return nil, err
	}

	result, err := ExtractText(cropped, language)
	if err != nil {
		return nil, err
	}

	if scale <= 0 {
		scale = 1
	}
	for i := range result.Regions {
		b := &result.Regions[i].Bounds
		b.X1 = r.Min.X + int(float64(b.X1)/scale)
		b.Y1 = r.Min.Y + int(float64(b.Y1)/scale)
		b.X2 = r.Min.X + int(float64(b.X2)/scale)
		b.Y2 = r.Min.Y + int(float64(b.Y2)/scale)
	}

	return result, nil
}
