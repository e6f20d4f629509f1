// Package ocr reads text back from watermarked documents using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) to extract text
// from in-memory images, and builds a legibility check on top of it: after a
// document is exported, the caption band and the diagonal watermark are read
// back and compared against what should be there.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Functions
//
//   - ExtractText: Full-image OCR, returns all text with word bounding boxes
//   - ExtractTextFromRegion: OCR on a rectangular region, optionally upscaled
//   - CheckLegibility: caption and holder recognition report
//
// # Matching
//
// Rotated, translucent watermark text is hard for OCR, so matching is lenient.
// Comparisons ignore case, punctuation and spacing, and the caption only needs
// most of its words recognised. A negative report means the text is hard to
// read by machine; it does not prove the watermark is missing.
//
// # Error Handling
//
// Functions return errors for:
//   - Unsupported language codes
//   - Tesseract initialization failures
//   - Regions outside the image bounds
//
// If bounding box extraction fails (e.g., Tesseract version mismatch),
// ExtractText still returns the extracted text with an empty Regions slice.
package ocr
