package raster

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inkBounds returns the bounding box of every non-black pixel.
func inkBounds(img *image.RGBA) image.Rectangle {
	var box image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R == 0 && c.G == 0 && c.B == 0 {
				continue
			}
			box = box.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return box
}

// rowInk returns the ink bounds of rows y0..y1 only.
func rowInk(img *image.RGBA, y0, y1 int) image.Rectangle {
	r := image.Rect(img.Bounds().Min.X, max(y0, img.Bounds().Min.Y), img.Bounds().Max.X, min(y1, img.Bounds().Max.Y))
	if r.Empty() {
		return image.Rectangle{}
	}
	return inkBounds(img.SubImage(r).(*image.RGBA))
}

func TestRasterizeFitsInsideMargins(t *testing.T) {
	r := New(nil)
	tests := []struct {
		name   string
		lines  []string
		w, h   int
		margin float64
	}{
		{"single line wide", []string{"AB"}, 200, 150, 10},
		{"single line tall canvas", []string{"HI"}, 120, 400, 20},
		{"multi line", []string{"TYPE", "DOT"}, 320, 240, 16},
		{"no margin", []string{"HOME TONE"}, 400, 300, 0},
		{"large canvas", []string{"PHORMA"}, 1080, 780, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Rasterize(Params{
				Lines: tt.lines, Family: "bold", Size: 280, Pitch: 280,
				Width: tt.w, Height: tt.h, Margin: tt.margin,
			})
			require.NoError(t, err)
			require.NotNil(t, res.Image)
			assert.Equal(t, image.Rect(0, 0, tt.w, tt.h), res.Image.Bounds())

			box := inkBounds(res.Image)
			require.False(t, box.Empty(), "expected some glyph pixels")

			// one pixel of anti-aliasing slack on each side
			const slack = 2
			maxW := float64(tt.w) - 2*tt.margin
			maxH := float64(tt.h) - 2*tt.margin
			assert.LessOrEqual(t, float64(box.Dx()), maxW+slack)
			assert.LessOrEqual(t, float64(box.Dy()), maxH+slack)
			assert.GreaterOrEqual(t, float64(box.Min.X), tt.margin-slack)
			assert.LessOrEqual(t, float64(box.Max.X), float64(tt.w)-tt.margin+slack)
			assert.GreaterOrEqual(t, float64(box.Min.Y), tt.margin-slack)
			assert.LessOrEqual(t, float64(box.Max.Y), float64(tt.h)-tt.margin+slack)
		})
	}
}

func TestRasterizeLinesStayInTheirRows(t *testing.T) {
	r := New(nil)
	const w, h, margin = 320, 240, 16
	lines := []string{"TYPE", "DOT"}
	res, err := r.Rasterize(Params{
		Lines: lines, Family: "bold", Size: 280, Pitch: 280,
		Width: w, Height: h, Margin: margin,
	})
	require.NoError(t, err)

	row := 280 * res.Scale
	top := (h - res.TextH*res.Scale) / 2
	const slack = 2
	for i := range lines {
		y0 := int(top + float64(i)*row - slack)
		y1 := int(top + float64(i+1)*row + slack)
		box := rowInk(res.Image, y0, y1)
		require.False(t, box.Empty(), "line %d has no ink in rows %d..%d", i, y0, y1)

		// centred on the canvas, give or take side bearings
		mid := float64(box.Min.X+box.Max.X) / 2
		assert.InDelta(t, w/2, mid, 0.05*w, "line %d", i)
	}

	// nothing outside the block
	blockTop := int(top - slack)
	blockBottom := int(top + float64(len(lines))*row + slack)
	assert.True(t, rowInk(res.Image, 0, blockTop).Empty())
	assert.True(t, rowInk(res.Image, blockBottom, h).Empty())
}

func TestRasterizeScale(t *testing.T) {
	r := New(nil)
	res, err := r.Rasterize(Params{
		Lines: []string{"A", "B", "C"}, Family: "regular", Size: 100, Pitch: 120,
		Width: 300, Height: 300, Margin: 30,
	})
	require.NoError(t, err)
	assert.InDelta(t, 360, res.TextH, 1e-9)
	want := min(240/res.TextW, 240/res.TextH)
	assert.InDelta(t, want, res.Scale, 1e-9)
}

func TestRasterizeEmptyText(t *testing.T) {
	r := New(nil)
	res, err := r.Rasterize(Params{
		Lines: []string{""}, Family: "bold", Size: 280, Pitch: 280,
		Width: 200, Height: 150, Margin: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.TextW)
	assert.True(t, inkBounds(res.Image).Empty())
}

func TestRasterizeDoesNotAccumulate(t *testing.T) {
	r := New(nil)
	p := Params{Lines: []string{"I"}, Family: "mono", Size: 200, Pitch: 200, Width: 200, Height: 150, Margin: 10}
	first, err := r.Rasterize(p)
	require.NoError(t, err)

	p.Lines = []string{""}
	second, err := r.Rasterize(p)
	require.NoError(t, err)

	assert.False(t, inkBounds(first.Image).Empty())
	assert.True(t, inkBounds(second.Image).Empty())
}

func TestNextFamilyCyclesEmbedded(t *testing.T) {
	seen := map[string]bool{}
	f := "bold"
	for range Families() {
		seen[f] = true
		_, ok := embedded[f]
		assert.True(t, ok, "%q is not embedded", f)
		f = NextFamily(f)
	}
	assert.Equal(t, "bold", f)
	assert.Len(t, seen, len(embedded))

	assert.Equal(t, "regular", NextFamily("/fonts/custom.ttf"))
}

func TestRasterizeUnknownFont(t *testing.T) {
	r := New(nil)
	_, err := r.Rasterize(Params{Lines: []string{"A"}, Family: "no-such-font.ttf", Size: 10, Pitch: 10, Width: 10, Height: 10})
	assert.ErrorIs(t, err, ErrUnknownFont)
}
