package watermark

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	imgproc "github.com/ironsheep/document-watermark-mcp/internal/imaging"
)

// Resampler produces a width x height anti-aliased copy of img.
type Resampler interface {
	Resample(ctx context.Context, img image.Image, width, height int) (image.Image, error)
}

// LanczosResampler resamples with a Lanczos-3 filter.
type LanczosResampler struct{}

// Resample implements Resampler.
func (LanczosResampler) Resample(ctx context.Context, img image.Image, width, height int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// Export resamples img to width x height with r and encodes the result as PNG.
// Every failure wraps ErrExport.
func Export(ctx context.Context, r Resampler, img image.Image, width, height int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", ErrExport)
	}

	out, err := r.Resample(ctx, img, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resample: %w", ErrExport, err)
	}
	if out == nil || out.Bounds().Empty() {
		return nil, fmt.Errorf("%w: resampler returned no image", ErrExport)
	}

	data, err := imgproc.EncodePNG(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty encoding", ErrExport)
	}
	return data, nil
}
