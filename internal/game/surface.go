package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/phorma/internal/render"
	"github.com/iburimskiy/phorma/internal/shape"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// surface paints shapes onto an ebiten image with anti-aliased triangles.
type surface struct {
	dst *ebiten.Image

	vs []ebiten.Vertex
	is []uint16
}

func (s *surface) Clear(c color.Color) {
	s.dst.Fill(c)
}

func (s *surface) Paint(x, y float64, d shape.Descriptor, st render.Style) {
	var p vector.Path
	if d.Prim == shape.PrimCircle {
		p.Arc(float32(x), float32(y), float32(d.Radius), 0, 2*math.Pi, vector.Clockwise)
		p.Close()
	} else if !render.Trace(pathBuilder{&p}, x, y, d) {
		return
	}

	s.vs, s.is = p.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	s.draw(st.Fill, ebiten.FillRuleNonZero)

	if st.StrokeWidth <= 0 {
		return
	}
	s.vs, s.is = p.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:      float32(st.StrokeWidth),
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 4,
	})
	s.draw(st.Stroke, ebiten.FillRuleFillAll)
}

func (s *surface) draw(c color.Color, rule ebiten.FillRule) {
	r, g, b, a := vertexColor(c)
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = r
		s.vs[i].ColorG = g
		s.vs[i].ColorB = b
		s.vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: rule, AntiAlias: true}
	s.dst.DrawTriangles(s.vs, s.is, whiteSubImage, op)
}

// pathBuilder feeds render.Trace into an ebiten vector path.
type pathBuilder struct{ p *vector.Path }

func (b pathBuilder) MoveTo(x, y float64) { b.p.MoveTo(float32(x), float32(y)) }
func (b pathBuilder) LineTo(x, y float64) { b.p.LineTo(float32(x), float32(y)) }
func (b pathBuilder) Close()              { b.p.Close() }

func (b pathBuilder) QuadTo(cx, cy, x, y float64) {
	b.p.QuadTo(float32(cx), float32(cy), float32(x), float32(y))
}

func (b pathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	b.p.CubicTo(float32(c1x), float32(c1y), float32(c2x), float32(c2y), float32(x), float32(y))
}
