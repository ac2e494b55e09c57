package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/phorma/internal/shape"
)

// GGSurface paints with the gg software rasterizer. It backs headless
// rendering, where no window exists.
type GGSurface struct {
	log *slog.Logger
	dc  *gg.Context

	// first paint failure; later shapes are still attempted
	err error
}

// NewGGSurface allocates a w×h surface that logs paint failures through log.
func NewGGSurface(w, h int, log *slog.Logger) *GGSurface {
	if log == nil {
		log = slog.Default()
	}
	return &GGSurface{log: log, dc: gg.NewContext(w, h)}
}

func (s *GGSurface) Clear(c color.Color) {
	s.dc.ClearWithColor(gg.FromColor(c))
}

func (s *GGSurface) Paint(x, y float64, d shape.Descriptor, st Style) {
	if d.Prim == shape.PrimCircle {
		s.dc.DrawCircle(x, y, d.Radius)
	} else if !Trace(ggPath{s.dc}, x, y, d) {
		return
	}
	s.dc.SetColor(st.Fill)
	if st.StrokeWidth <= 0 {
		s.keep("fill", s.dc.Fill())
		return
	}
	s.keep("fill", s.dc.FillPreserve())
	s.dc.SetColor(st.Stroke)
	s.dc.SetLineWidth(st.StrokeWidth)
	s.keep("stroke", s.dc.Stroke())
}

func (s *GGSurface) keep(op string, err error) {
	if err == nil {
		return
	}
	s.log.Warn("gg paint failed", "op", op, "err", err)
	if s.err == nil {
		s.err = fmt.Errorf("render: %s: %w", op, err)
	}
}

// Err returns the first fill or stroke failure since the surface was made.
func (s *GGSurface) Err() error {
	return s.err
}

// Image returns a copy of the current pixels.
func (s *GGSurface) Image() image.Image {
	return s.dc.Image()
}

// Close releases the context.
func (s *GGSurface) Close() error {
	return s.dc.Close()
}

type ggPath struct{ dc *gg.Context }

func (p ggPath) MoveTo(x, y float64)         { p.dc.MoveTo(x, y) }
func (p ggPath) LineTo(x, y float64)         { p.dc.LineTo(x, y) }
func (p ggPath) QuadTo(cx, cy, x, y float64) { p.dc.QuadraticTo(cx, cy, x, y) }
func (p ggPath) Close()                      { p.dc.ClosePath() }
func (p ggPath) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}
