// Package canvas implements the drawing surface used by the watermark pipeline.
//
// A Surface is a straight-alpha RGBA raster (backed by *image.NRGBA) with the
// small set of operations the pipeline needs: path fill, scoped clipping,
// scoped affine transforms, scaled image blits, text fill and raw pixel
// read/write.
//
// # Coordinate System
//
// (0,0) is the top-left corner, X grows rightward and Y grows downward.
// Drawing coordinates are in user space and pass through the current
// transform before they reach the raster. Pixels() and PutPixels() always
// address untransformed device pixels.
//
// # Scoped State
//
// Clip regions and transforms are only ever changed for the duration of a
// callback:
//
//	err := s.WithClip(canvas.RoundedRect(20, 20, 600, 600, 10), func() error {
//	    return s.DrawImage(src, 20, 20, 600, 600)
//	})
//
// The previous state is restored when the callback returns, including when it
// returns an error or panics.
//
// # Thread Safety
//
// A Surface is not safe for concurrent use. Each pipeline run owns its own
// surfaces.
package canvas
