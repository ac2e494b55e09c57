// Package render paints a point field as shapes onto a Surface, once per
// frame, applying the jitter and morph animations.
package render

import (
	"image/color"
	"log/slog"

	"github.com/iburimskiy/phorma/internal/anim"
	"github.com/iburimskiy/phorma/internal/config"
	"github.com/iburimskiy/phorma/internal/sampler"
	"github.com/iburimskiy/phorma/internal/shape"
)

// OutlineColor is the stroke used for thin and bold outlines.
var OutlineColor = color.NRGBA{A: config.OutlineAlpha}

// Renderer draws frames. It caches the parsed custom path between frames.
type Renderer struct {
	log *slog.Logger

	pathSrc string
	path    shape.Path
}

// NewRenderer returns a Renderer logging through log.
func NewRenderer(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{log: log}
}

// CustomPath returns the parsed custom path of c, or nil when the shape is
// not custom or the data does not parse.
func (r *Renderer) CustomPath(c config.Config) shape.Path {
	if c.Shape != shape.Custom {
		return nil
	}
	if c.CustomPath == r.pathSrc && r.path != nil {
		return r.path
	}
	p, err := shape.ParsePath(c.CustomPath)
	if err != nil {
		// only log once per distinct input
		if c.CustomPath != r.pathSrc {
			r.log.Debug("custom path skipped", "err", err)
		}
		p = nil
	}
	r.pathSrc, r.path = c.CustomPath, p
	return p
}

// StyleFor returns the fill and outline of c.
func StyleFor(c config.Config) Style {
	return Style{
		Fill:        c.ForegroundColor(),
		Stroke:      OutlineColor,
		StrokeWidth: c.StrokeWidth(),
	}
}

// Frame clears s and paints every active point of f.
func (r *Renderer) Frame(s Surface, f sampler.Field, c config.Config, fr anim.Frame) {
	s.Clear(c.BackgroundColor())

	st := StyleFor(c)
	custom := r.CustomPath(c)

	jitter := c.StaticJitter()
	if jitter == 0 {
		jitter = config.FallbackJitter
	}
	amp := c.CellSize * jitter

	var n float64
	if c.Animation == config.AnimMorph {
		n = shape.Lerp(shape.Exponent(c.Shape), shape.Exponent(c.MorphTarget), fr.MorphPhase(c.Speed))
	}

	for _, p := range f.Active() {
		size := c.ShapeSize(p.Variance)
		x, y := p.X, p.Y

		if c.Animation == config.AnimJitter {
			dx, dy := fr.JitterOffset(p.Seed, c.Speed)
			x += dx * amp
			y += dy * amp
		}

		var d shape.Descriptor
		if c.Animation == config.AnimMorph {
			d = shape.Superellipse(size, n)
		} else {
			d = shape.Geometry(c.Shape, size, custom)
		}
		if d.Prim == shape.PrimNone {
			continue
		}
		s.Paint(x, y, d, st)
	}
}
