// Package watermark composes a framed, captioned and watermarked copy of a
// document photo and exports it as PNG.
//
// # Stages
//
// A run goes through the following stages, each exposed as its own function so
// it can be exercised in isolation:
//
//   - layout.New: plans the canvas around the scaled source
//   - DrawFrame: white rounded card with the source blitted into a rounded clip
//   - DrawCaption: fixed bold caption in the bottom band
//   - TileText: diagonal rows of the watermark phrase on a separate layer
//   - AdjustContrast: recolours the layer against the pixels beneath it
//   - Composite: blends the layer onto the framed card
//   - Export: resamples and encodes the result as PNG
//
// # Pipeline
//
// Pipeline drives the stages through the states Idle, Loading, Composing,
// Exporting and Ready. Any failure ends the run in Failed and is returned to
// the caller:
//
//	p := watermark.New(watermark.WithStore(store))
//	art, err := p.Run(ctx, file, "John")
//	if errors.Is(err, watermark.ErrDecode) {
//	    // the upload was not an image
//	}
//
// Start runs the same sequence on a goroutine and delivers exactly one Result
// on the returned channel.
//
// # Concurrency
//
// Every run allocates its own surfaces, so separate Pipeline values may run in
// parallel. A single Pipeline tracks one run at a time; callers serialise runs
// on it. ArtifactStore is safe for concurrent use.
//
// # Watermark Text
//
// The tiled phrase is Template(text), e.g. ` SOLO PARA USO DE: "JOHN" |`.
// Glyph size follows the canvas diagonal and the phrase length, so one copy of
// the phrase spans roughly one diagonal regardless of how long the holder name
// is. Each row is the phrase rotated five more characters than the row before.
package watermark
