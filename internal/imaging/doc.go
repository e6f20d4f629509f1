// Package imaging loads source documents and provides the colour model used by
// the watermark pipeline.
//
// # Loading
//
// Sources may be files, readers or base64 data URIs. PNG, JPEG and GIF are
// supported, and JPEG photos are rotated upright according to their EXIF
// orientation tag, so a phone picture is framed the way it was taken. Every
// decode failure wraps ErrDecode.
//
// SourceCache keeps decoded files in memory keyed by path and is safe for
// concurrent use.
//
// # Colour Model
//
// RGB is an 8-bit sample and HSL uses [0, 1] for all three components.
// Conversions go through go-colorful and round to the nearest 8-bit value.
//
// # Coordinate System
//
// (0,0) is the top-left corner. Regions are image.Rectangle values with an
// inclusive Min and an exclusive Max.
package imaging
