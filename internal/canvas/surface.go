package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// DefaultMaxPixels caps surface allocations made through New.
const DefaultMaxPixels = 50_000_000

// ErrUnavailable is returned when a surface cannot be created.
var ErrUnavailable = errors.New("drawing context unavailable")

// Surface is a mutable straight-alpha raster with scoped clip and transform state.
type Surface struct {
	img       *image.NRGBA
	clip      *image.Alpha
	transform Matrix
}

// New allocates a fully transparent width x height surface, limited to
// DefaultMaxPixels.
func New(width, height int) (*Surface, error) {
	return NewLimited(width, height, DefaultMaxPixels)
}

// NewLimited allocates a fully transparent surface of at most maxPixels pixels.
// A non-positive maxPixels disables the limit.
func NewLimited(width, height, maxPixels int) (*Surface, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrUnavailable, width, height)
	}
	if maxPixels > 0 && int64(width)*int64(height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnavailable, width, height, maxPixels)
	}

	return &Surface{
		img:       image.NewNRGBA(image.Rect(0, 0, width, height)),
		transform: Identity(),
	}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Image exposes the backing raster. Writes to it bypass clip and transform.
func (s *Surface) Image() *image.NRGBA { return s.img }

// Transform returns the current transform.
func (s *Surface) Transform() Matrix { return s.transform }

// Clipped reports whether a clip region is active.
func (s *Surface) Clipped() bool { return s.clip != nil }

// Pixels returns a copy of the raster as R,G,B,A bytes in row-major order.
func (s *Surface) Pixels() []uint8 {
	out := make([]uint8, len(s.img.Pix))
	copy(out, s.img.Pix)
	return out
}

// PutPixels overwrites the raster with buf, which must hold exactly
// Width()*Height()*4 bytes.
func (s *Surface) PutPixels(buf []uint8) error {
	if len(buf) != len(s.img.Pix) {
		return fmt.Errorf("pixel buffer has %d bytes, surface needs %d", len(buf), len(s.img.Pix))
	}
	copy(s.img.Pix, buf)
	return nil
}

// At returns the straight-alpha colour of the device pixel (x, y).
func (s *Surface) At(x, y int) color.NRGBA {
	return s.img.NRGBAAt(x, y)
}

// FillPath fills p with c under the current transform and clip.
func (s *Surface) FillPath(p *Path, c color.Color) {
	mask := s.coverage(p)
	draw.DrawMask(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// WithClip intersects the current clip with p for the duration of fn.
func (s *Surface) WithClip(p *Path, fn func() error) error {
	saved := s.clip
	s.clip = s.coverage(p)
	defer func() { s.clip = saved }()

	return fn()
}

// WithTransform post-multiplies m onto the current transform for the duration of fn.
func (s *Surface) WithTransform(m Matrix, fn func() error) error {
	saved := s.transform
	s.transform = saved.Multiply(m)
	defer func() { s.transform = saved }()

	return fn()
}

// DrawImage draws src scaled into the user-space rectangle (x, y, w, h) with
// a Catmull-Rom kernel, honouring the current transform and clip.
func (s *Surface) DrawImage(src image.Image, x, y, w, h float64) error {
	return s.drawScaled(draw.CatmullRom, src, x, y, w, h)
}

func (s *Surface) drawScaled(k *draw.Kernel, src image.Image, x, y, w, h float64) error {
	sr := src.Bounds()
	if sr.Empty() {
		return fmt.Errorf("cannot draw empty image")
	}
	if w <= 0 || h <= 0 {
		return nil
	}

	s2d := s.transform.
		Multiply(Translate(x, y)).
		Multiply(Scale(w/float64(sr.Dx()), h/float64(sr.Dy()))).
		Multiply(Translate(-float64(sr.Min.X), -float64(sr.Min.Y)))

	opts := &draw.Options{}
	if s.clip != nil {
		opts.DstMask = s.clip
	}
	k.Transform(s.img, s2d.aff3(), src, sr, draw.Over, opts)
	return nil
}

// coverage rasterizes p under the current transform and intersects it with the clip.
func (s *Surface) coverage(p *Path) *image.Alpha {
	mask := p.rasterize(s.Width(), s.Height(), s.transform)
	if s.clip != nil {
		for i, c := range s.clip.Pix {
			mask.Pix[i] = uint8(uint32(mask.Pix[i]) * uint32(c) / 255)
		}
	}
	return mask
}
