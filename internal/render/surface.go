package render

import (
	"image/color"

	"github.com/iburimskiy/phorma/internal/shape"
)

// Style is how one shape is filled and outlined.
type Style struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64 // zero disables the outline
}

// Surface is the drawing capability the renderer depends on.
type Surface interface {
	// Clear paints the whole surface with c.
	Clear(c color.Color)

	// Paint draws d centred on (x, y).
	Paint(x, y float64, d shape.Descriptor, st Style)
}

// PathBuilder receives an outline in absolute coordinates.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// Trace emits the polygonal or path outline of d translated to (x, y).
// Circles are left to the surface and report false.
func Trace(b PathBuilder, x, y float64, d shape.Descriptor) bool {
	switch d.Prim {
	case shape.PrimRect, shape.PrimPolygon:
		pts := d.Vertices()
		if len(pts) == 0 {
			return false
		}
		b.MoveTo(x+pts[0].X, y+pts[0].Y)
		for _, p := range pts[1:] {
			b.LineTo(x+p.X, y+p.Y)
		}
		b.Close()
		return true
	case shape.PrimPath:
		for _, seg := range d.Path {
			p := seg.Pts
			switch seg.Op {
			case shape.OpMove:
				b.MoveTo(x+p[0].X, y+p[0].Y)
			case shape.OpLine:
				b.LineTo(x+p[0].X, y+p[0].Y)
			case shape.OpQuad:
				b.QuadTo(x+p[0].X, y+p[0].Y, x+p[1].X, y+p[1].Y)
			case shape.OpCubic:
				b.CubicTo(x+p[0].X, y+p[0].Y, x+p[1].X, y+p[1].Y, x+p[2].X, y+p[2].Y)
			case shape.OpClose:
				b.Close()
			}
		}
		return len(d.Path) > 0
	}
	return false
}
