// Package sampler turns a rasterized text buffer into a point field by
// thresholding one pixel per grid cell.
package sampler

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/phorma/internal/config"
)

// Point is one surviving grid cell.
type Point struct {
	X, Y float64

	// Seed is a pure function of the cell's pixel coordinates and
	// desynchronizes per-point animation.
	Seed float64

	// Variance multiplies the base shape size.
	Variance float64
}

// Params controls one sampling pass.
type Params struct {
	CellSize  float64
	Threshold float64 // effective cutoff, mode offset already applied
	Mode      config.SamplingMode
	Jitter    float64 // static jitter, Organic only
	Variance  float64 // static size variance, Organic only
}

// ParamsFrom extracts the sampling parameters from a configuration.
func ParamsFrom(c config.Config) Params {
	return Params{
		CellSize:  c.CellSize,
		Threshold: c.EffectiveThreshold(),
		Mode:      c.Mode,
		Jitter:    c.StaticJitter(),
		Variance:  c.StaticVariance(),
	}
}

// Field is a complete point field. Base holds the jitter-free cell centres;
// Positions holds the same points with static jitter and variance applied.
// Outside Organic mode the two are identical.
type Field struct {
	Base      []Point
	Positions []Point
	Cols      int
	Rows      int
	Mode      config.SamplingMode
}

// Active returns the points the renderer and exporter draw.
func (f Field) Active() []Point {
	if f.Mode == config.Organic {
		return f.Positions
	}
	return f.Base
}

// Len is the number of points in the field.
func (f Field) Len() int {
	return len(f.Base)
}

// Status is the human readable readout shown under the canvas.
func (f Field) Status() string {
	return fmt.Sprintf("Cells: %d×%d — Points: %d — Mode: %s", f.Cols, f.Rows, f.Len(), f.Mode)
}

// Seed derives the animation seed from a cell's pixel coordinates.
func Seed(cx, cy int) float64 {
	return float64((cx*131+cy*173)%10000) / 1000
}

// Luminance is the unweighted mean of the red, green and blue channels.
func Luminance(c color.RGBA) float64 {
	return (float64(c.R) + float64(c.G) + float64(c.B)) / 3
}

// Sample walks img on a CellSize grid, including a partial last cell, and
// keeps every cell whose centre pixel is brighter than the threshold. rng
// drives the Organic static noise; it may be nil outside Organic mode.
func Sample(img image.Image, p Params, rng *rand.Rand) Field {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := Field{Mode: p.Mode}
	if p.CellSize <= 0 || w == 0 || h == 0 {
		return f
	}
	f.Cols = int(math.Ceil(float64(w) / p.CellSize))
	f.Rows = int(math.Ceil(float64(h) / p.CellSize))

	rgba, _ := img.(*image.RGBA)
	at := func(x, y int) color.RGBA {
		if rgba != nil {
			return rgba.RGBAAt(b.Min.X+x, b.Min.Y+y)
		}
		return color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
	}

	organic := p.Mode == config.Organic && rng != nil
	half := p.CellSize / 2
	for y := 0.0; y < float64(h); y += p.CellSize {
		for x := 0.0; x < float64(w); x += p.CellSize {
			cx := int(math.Floor(x + half))
			cy := int(math.Floor(y + half))
			// the centre of a partial last cell can fall off the buffer
			if cx >= w || cy >= h {
				continue
			}
			if Luminance(at(cx, cy)) <= p.Threshold {
				continue
			}
			seed := Seed(cx, cy)
			base := Point{X: x + half, Y: y + half, Seed: seed, Variance: 1}
			pos := base
			if organic {
				pos.Variance = 1 + (rng.Float64()*2-1)*p.Variance
				pos.X += (rng.Float64()*2 - 1) * p.CellSize * p.Jitter
				pos.Y += (rng.Float64()*2 - 1) * p.CellSize * p.Jitter
			}
			f.Base = append(f.Base, base)
			f.Positions = append(f.Positions, pos)
		}
	}
	return f
}
