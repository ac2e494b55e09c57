// Package raster renders multi-line text into an off-screen greyscale buffer
// that the grid sampler reads back.
package raster

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	textnorm "golang.org/x/text/unicode/norm"
)

// ErrUnknownFont is returned when a family is neither embedded nor a
// readable font file.
var ErrUnknownFont = errors.New("raster: unknown font")

var embedded = map[string][]byte{
	"regular":    goregular.TTF,
	"bold":       gobold.TTF,
	"italic":     goitalic.TTF,
	"bolditalic": gobolditalic.TTF,
	"medium":     gomedium.TTF,
	"mono":       gomono.TTF,
	"monobold":   gomonobold.TTF,
}

// Families lists the embedded font families.
func Families() []string {
	return []string{"regular", "bold", "italic", "bolditalic", "medium", "mono", "monobold"}
}

// NextFamily returns the embedded family after f, wrapping around. A font
// file path cycles back to the first family.
func NextFamily(f string) string {
	fs := Families()
	for i, name := range fs {
		if name == f {
			return fs[(i+1)%len(fs)]
		}
	}
	return fs[0]
}

// Params describes one rasterization pass.
type Params struct {
	Lines  []string
	Family string
	Size   float64 // font pixel size
	Pitch  float64 // baseline distance in unscaled pixels
	Width  int
	Height int
	Margin float64
}

// Result is the rasterized buffer plus the fit that produced it.
type Result struct {
	Image *image.RGBA

	// Scale is the auto-fit factor applied to the unscaled text block.
	Scale float64

	// TextW and TextH are the unscaled block extents, clamped to at least 1.
	TextW, TextH float64
}

// Rasterizer owns the font sources; sources are parsed once per family.
type Rasterizer struct {
	log *slog.Logger

	mu      sync.Mutex
	sources map[string]*text.FontSource
}

// New returns a Rasterizer that logs through log.
func New(log *slog.Logger) *Rasterizer {
	if log == nil {
		log = slog.Default()
	}
	return &Rasterizer{log: log, sources: map[string]*text.FontSource{}}
}

func (r *Rasterizer) source(family string) (*text.FontSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if src, ok := r.sources[family]; ok {
		return src, nil
	}
	data, ok := embedded[family]
	if !ok {
		b, err := os.ReadFile(family)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownFont, family, err)
		}
		data = b
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font %q: %w", family, err)
	}
	r.sources[family] = src
	r.log.Debug("font source loaded", "family", family, "name", src.Name())
	return src, nil
}

// Rasterize clears a Width×Height buffer to black and paints the lines in
// white, scaled so the block fits inside the margins. Empty lines contribute
// to the block height only.
func (r *Rasterizer) Rasterize(p Params) (Result, error) {
	w, h := max(p.Width, 1), max(p.Height, 1)
	src, err := r.source(p.Family)
	if err != nil {
		return Result{}, err
	}

	lines := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = textnorm.NFC.String(l)
	}

	// measure with the unscaled face
	face := src.Face(p.Size)
	pitch := p.Pitch
	textW := 1.0
	for _, l := range lines {
		textW = max(textW, face.Advance(l))
	}
	textH := max(float64(len(lines))*pitch, 1)

	maxW := float64(w) - 2*p.Margin
	maxH := float64(h) - 2*p.Margin
	scale := max(0, min(maxW/textW, maxH/textH))

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.Black)

	res := Result{Scale: scale, TextW: textW, TextH: textH}
	if scale > 0 && p.Size*scale >= 0.5 {
		scaled := src.Face(p.Size * scale)
		dc.SetFont(scaled)
		dc.SetRGB(1, 1, 1)
		top := (float64(h) - textH*scale) / 2
		for i, l := range lines {
			if l == "" {
				continue
			}
			// DrawString takes y as the baseline
			baseline := top + float64(i+1)*pitch*scale
			lw, _ := text.Measure(l, scaled)
			dc.DrawString(l, float64(w)/2-lw/2, baseline)
		}
	}
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		// Image always copies into an *image.RGBA today
		return res, fmt.Errorf("raster: unexpected buffer type %T", dc.Image())
	}
	res.Image = img
	return res, nil
}
