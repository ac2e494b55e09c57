package config

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/phorma/internal/shape"
)

const (
	WindowWidth  = 1280
	WindowHeight = 960

	// Canvas policy: 4:3, capped width, room reserved for the surrounding chrome.
	MaxCanvasWidth  = 1200
	MinCanvasHeight = 420
	ViewportPadX    = 40
	ViewportPadY    = 180
	DefaultText     = "PHORMA"
	ExportSVGName   = "dot-type.svg"
	ExportPNGName   = "dot-type.png"
	SharpOffset     = 30
	FallbackJitter  = 0.12

	// Outline stroke weights and alpha (0..255).
	ThinStroke   = 1.2
	BoldStroke   = 2.2
	OutlineAlpha = 40
)

// Font selects the face used by the rasterizer.
type Font struct {
	// Family is one of the embedded Go fonts or a path to a TTF/OTF file.
	Family     string  `toml:"family"`
	Size       float64 `toml:"size"`
	LineHeight float64 `toml:"line_height"`
}

// LinePitch is the distance between consecutive baselines in unscaled pixels.
func (f Font) LinePitch() float64 {
	return f.Size * f.LineHeight
}

// Config is one snapshot of everything the user controls.
type Config struct {
	Text        string        `toml:"text"`
	Font        Font          `toml:"font"`
	CellSize    float64       `toml:"cell_size"`
	DotPercent  float64       `toml:"dot_percent"`
	Threshold   float64       `toml:"threshold"`
	Mode        SamplingMode  `toml:"mode"`
	Shape       shape.Kind    `toml:"shape"`
	CustomPath  string        `toml:"custom_path"`
	Outline     Outline       `toml:"outline"`
	Foreground  string        `toml:"foreground"`
	Background  string        `toml:"background"`
	Margin      float64       `toml:"margin"`
	Jitter      float64       `toml:"jitter"`
	Variance    float64       `toml:"variance"`
	Animation   AnimationMode `toml:"animation"`
	MorphTarget shape.Kind    `toml:"morph_target"`
	Speed       float64       `toml:"speed"`
}

// Default returns the configuration the UI starts with.
func Default() Config {
	return Config{
		Text:        DefaultText,
		Font:        Font{Family: "bold", Size: 280, LineHeight: 1},
		CellSize:    14,
		DotPercent:  80,
		Threshold:   128,
		Mode:        Clean,
		Shape:       shape.Circle,
		Outline:     OutlineNone,
		Foreground:  "#111111",
		Background:  "#ffffff",
		Margin:      40,
		Jitter:      0.15,
		Variance:    0.2,
		Animation:   AnimOff,
		MorphTarget: shape.Square,
		Speed:       1,
	}
}

// Lines splits the text on line breaks; empty text yields the default word.
func (c Config) Lines() []string {
	text := c.Text
	if text == "" {
		text = DefaultText
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// BaseSize is the shape size before per-point variance.
func (c Config) BaseSize() float64 {
	return c.CellSize * c.DotPercent / 100
}

// ShapeSize is the painted size of a point with the given size variance.
func (c Config) ShapeSize(variance float64) float64 {
	return max(1, c.BaseSize()*variance)
}

// EffectiveThreshold is the luminance cutoff after the mode adjustment.
func (c Config) EffectiveThreshold() float64 {
	if c.Mode == Sharp {
		return min(255, c.Threshold+SharpOffset)
	}
	return c.Threshold
}

// StaticJitter is the jitter applied at generation time; only Organic has any.
func (c Config) StaticJitter() float64 {
	if c.Mode == Organic {
		return c.Jitter
	}
	return 0
}

// StaticVariance is the size variance applied at generation time.
func (c Config) StaticVariance() float64 {
	if c.Mode == Organic {
		return c.Variance
	}
	return 0
}

// StrokeWidth returns the outline weight, zero when outlines are off.
func (c Config) StrokeWidth() float64 {
	switch c.Outline {
	case OutlineThin:
		return ThinStroke
	case OutlineBold:
		return BoldStroke
	}
	return 0
}

// ForegroundColor parses the foreground, falling back to the default.
func (c Config) ForegroundColor() color.Color {
	return parseColor(c.Foreground, Default().Foreground)
}

// BackgroundColor parses the background, falling back to the default.
func (c Config) BackgroundColor() color.Color {
	return parseColor(c.Background, Default().Background)
}

func parseColor(s, fallback string) color.Color {
	col, err := colorful.Hex(s)
	if err != nil {
		col, _ = colorful.Hex(fallback)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Normalize coerces every field into its valid range. Values that cannot be
// used are replaced by the default, mirroring a control that keeps its last
// valid value.
func (c Config) Normalize() Config {
	d := Default()
	if c.Font.Family == "" {
		c.Font.Family = d.Font.Family
	}
	if !(c.Font.Size > 0) {
		c.Font.Size = d.Font.Size
	}
	if !(c.Font.LineHeight > 0) {
		c.Font.LineHeight = d.Font.LineHeight
	}
	if !(c.CellSize >= 1) {
		c.CellSize = d.CellSize
	}
	if !(c.DotPercent > 0) {
		c.DotPercent = d.DotPercent
	}
	c.Threshold = clamp(c.Threshold, 0, 255, d.Threshold)
	if !(c.Margin >= 0) {
		c.Margin = d.Margin
	}
	c.Jitter = clamp(c.Jitter, 0, 1, d.Jitter)
	c.Variance = clamp(c.Variance, 0, 1, d.Variance)
	if !(c.Speed > 0) {
		c.Speed = d.Speed
	}
	if _, err := colorful.Hex(c.Foreground); err != nil {
		c.Foreground = d.Foreground
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		c.Background = d.Background
	}
	c.CustomPath = strings.TrimSpace(c.CustomPath)
	return c
}

// clamp limits v to [lo, hi]; NaN becomes fallback.
func clamp(v, lo, hi, fallback float64) float64 {
	if v != v {
		return fallback
	}
	return max(lo, min(hi, v))
}

// SamplingChanged reports whether moving from a to b invalidates the point
// field. Pure presentation fields (shape, colours, outline, animation) do not.
func SamplingChanged(a, b Config) bool {
	if a.Text != b.Text || a.Font != b.Font || a.CellSize != b.CellSize ||
		a.Threshold != b.Threshold || a.Mode != b.Mode || a.Margin != b.Margin {
		return true
	}
	if b.Mode == Organic && (a.Jitter != b.Jitter || a.Variance != b.Variance) {
		return true
	}
	return false
}
