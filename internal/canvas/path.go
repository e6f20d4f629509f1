package canvas

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// kappa places the control points of a cubic Bézier approximating a quarter circle.
const kappa = 0.5522847498307936

type segmentOp uint8

const (
	opMove segmentOp = iota
	opLine
	opCube
	opClose
)

type segment struct {
	op  segmentOp
	pts [3][2]float64
}

// Path is a sequence of sub-paths in user space. The zero value is an empty path.
type Path struct {
	segs []segment
}

// MoveTo starts a new sub-path at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, segment{op: opMove, pts: [3][2]float64{{x, y}}})
}

// LineTo adds a straight edge to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.segs = append(p.segs, segment{op: opLine, pts: [3][2]float64{{x, y}}})
}

// CubeTo adds a cubic Bézier with control points (x1, y1), (x2, y2) ending at (x, y).
func (p *Path) CubeTo(x1, y1, x2, y2, x, y float64) {
	p.segs = append(p.segs, segment{op: opCube, pts: [3][2]float64{{x1, y1}, {x2, y2}, {x, y}}})
}

// Close closes the current sub-path.
func (p *Path) Close() {
	p.segs = append(p.segs, segment{op: opClose})
}

// Rect returns an axis-aligned rectangle path.
func Rect(x, y, w, h float64) *Path {
	p := &Path{}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

// RoundedRect returns a rectangle path with circular corners of radius r.
// The radius is clamped to half of the smaller side, so an oversized radius
// degrades to a pill or circle instead of self-intersecting.
func RoundedRect(x, y, w, h, r float64) *Path {
	r = math.Max(0, math.Min(r, math.Min(w/2, h/2)))
	if r == 0 {
		return Rect(x, y, w, h)
	}
	k := r * kappa

	p := &Path{}
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.CubeTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.CubeTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubeTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	p.LineTo(x, y+r)
	p.CubeTo(x, y+r-k, x+r-k, y, x+r, y)
	p.Close()
	return p
}

// rasterize returns the anti-aliased coverage of p, transformed by m, on a
// width x height device raster.
func (p *Path) rasterize(width, height int, m Matrix) *image.Alpha {
	z := vector.NewRasterizer(width, height)
	pt := func(xy [2]float64) (float32, float32) {
		x, y := m.Apply(xy[0], xy[1])
		return float32(x), float32(y)
	}

	for _, s := range p.segs {
		switch s.op {
		case opMove:
			x, y := pt(s.pts[0])
			z.MoveTo(x, y)
		case opLine:
			x, y := pt(s.pts[0])
			z.LineTo(x, y)
		case opCube:
			x1, y1 := pt(s.pts[0])
			x2, y2 := pt(s.pts[1])
			x, y := pt(s.pts[2])
			z.CubeTo(x1, y1, x2, y2, x, y)
		case opClose:
			z.ClosePath()
		}
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
