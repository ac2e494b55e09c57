// Package controller owns the render state and decides, for every
// configuration snapshot, whether the point field must be rebuilt or only
// repainted.
package controller

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/iburimskiy/phorma/internal/anim"
	"github.com/iburimskiy/phorma/internal/config"
	"github.com/iburimskiy/phorma/internal/export"
	"github.com/iburimskiy/phorma/internal/raster"
	"github.com/iburimskiy/phorma/internal/render"
	"github.com/iburimskiy/phorma/internal/sampler"
)

// RenderState is everything the renderer and exporter read. The field is
// replaced wholesale on regeneration and never patched.
type RenderState struct {
	Config config.Config
	Field  sampler.Field
	W, H   int

	// Fit is the text fit of the last regeneration.
	Fit raster.Result

	// Err is the last regeneration failure, nil once one succeeds.
	Err error
}

// Controller is the single owner of RenderState.
type Controller struct {
	log   *slog.Logger
	rast  *raster.Rasterizer
	rend  *render.Renderer
	drv   *anim.Driver
	rng   *rand.Rand
	state RenderState
	dirty bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithRand sets the source of Organic static noise and Randomize.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithDriver replaces the animation driver, typically to inject a clock.
func WithDriver(d *anim.Driver) Option {
	return func(c *Controller) { c.drv = d }
}

// New builds a controller for a w×h canvas and generates the first field.
func New(log *slog.Logger, cfg config.Config, w, h int, opts ...Option) *Controller {
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{
		log:  log,
		rast: raster.New(log),
		rend: render.NewRenderer(log),
		drv:  anim.NewDriver(nil),
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, o := range opts {
		o(c)
	}
	c.state.Config = cfg.Normalize()
	c.state.W, c.state.H = w, h
	c.regenerate()
	return c
}

// State returns a snapshot of the render state.
func (c *Controller) State() RenderState { return c.state }

// Driver exposes the animation driver.
func (c *Controller) Driver() *anim.Driver { return c.drv }

// OnConfigChanged applies a new snapshot. It reports whether the point field
// was rebuilt; otherwise only a repaint is scheduled.
func (c *Controller) OnConfigChanged(next config.Config) bool {
	next = next.Normalize()
	prev := c.state.Config
	c.state.Config = next
	c.dirty = true
	if !config.SamplingChanged(prev, next) {
		return false
	}
	c.regenerate()
	return true
}

// Resize applies the 4:3 policy to a new viewport and rebuilds the field
// when the canvas changed.
func (c *Controller) Resize(viewportW, viewportH int) bool {
	w, h := config.CanvasSize(viewportW, viewportH)
	return c.SetCanvas(w, h)
}

// SetCanvas sets the canvas size directly.
func (c *Controller) SetCanvas(w, h int) bool {
	if w == c.state.W && h == c.state.H {
		return false
	}
	c.state.W, c.state.H = w, h
	c.regenerate()
	return true
}

// Randomize picks new grid, shape and noise settings.
func (c *Controller) Randomize() {
	c.OnConfigChanged(c.state.Config.Randomize(c.rng))
}

// regenerate rasterizes the text and resamples the grid. On failure the
// field is emptied; a stale field never survives a sampling change.
func (c *Controller) regenerate() {
	cfg := c.state.Config
	c.dirty = true
	res, err := c.rast.Rasterize(raster.Params{
		Lines:  cfg.Lines(),
		Family: cfg.Font.Family,
		Size:   cfg.Font.Size,
		Pitch:  cfg.Font.LinePitch(),
		Width:  c.state.W,
		Height: c.state.H,
		Margin: cfg.Margin,
	})
	if err != nil {
		c.log.Warn("rasterize failed", "err", err)
		c.state.Err = err
		c.state.Fit = raster.Result{}
		c.state.Field = sampler.Field{Mode: cfg.Mode}
		return
	}
	c.state.Err = nil
	c.state.Fit = res
	c.state.Field = sampler.Sample(res.Image, sampler.ParamsFrom(cfg), c.rng)
	c.log.Debug("regenerated",
		"w", c.state.W, "h", c.state.H,
		"scale", res.Scale,
		"points", c.state.Field.Len(),
		"mode", cfg.Mode)
}

// NeedsFrame reports whether the surface must be repainted this tick: always
// while the animation loop runs, otherwise only after a change.
func (c *Controller) NeedsFrame() bool {
	redraw := c.drv.TakeRedraw()
	return c.drv.Looping(c.state.Config.Animation) || c.dirty || redraw
}

// Invalidate schedules a repaint, e.g. after the target surface was
// replaced.
func (c *Controller) Invalidate() { c.dirty = true }

// Render paints the current frame onto s.
func (c *Controller) Render(s render.Surface) {
	c.rend.Frame(s, c.state.Field, c.state.Config, c.drv.Frame())
	c.dirty = false
}

// RenderStatic paints a frame with animation disabled, as exported bitmaps
// are.
func (c *Controller) RenderStatic(s render.Surface) {
	cfg := c.state.Config
	cfg.Animation = config.AnimOff
	c.rend.Frame(s, c.state.Field, cfg, anim.Frame{})
}

// RasterImage renders a static frame with the software rasterizer. A shape
// that fails to paint fails the whole image.
func (c *Controller) RasterImage() (image.Image, error) {
	s := render.NewGGSurface(c.state.W, c.state.H, c.log)
	defer s.Close()
	c.RenderStatic(s)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("raster image: %w", err)
	}
	return s.Image(), nil
}

// ExportSVG writes the vector document for the current state.
func (c *Controller) ExportSVG(w io.Writer) error {
	if err := export.WriteSVG(w, c.state.Field, c.state.Config, c.state.W, c.state.H); err != nil {
		return fmt.Errorf("export svg: %w", err)
	}
	return nil
}

// Status is the human readable readout.
func (c *Controller) Status() string {
	s := c.state.Field.Status()
	if c.state.Config.Animation != config.AnimOff {
		s += fmt.Sprintf(" — Anim: %s (%s)", c.state.Config.Animation, c.drv.State())
	}
	if c.state.Err != nil {
		s += " | Error: " + c.state.Err.Error()
	}
	return s
}
