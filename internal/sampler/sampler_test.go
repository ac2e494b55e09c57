package sampler

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/phorma/internal/config"
)

// gradient returns a w×h buffer whose grey level grows left to right.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / max(w-1, 1))
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func TestSeed(t *testing.T) {
	assert.Equal(t, 0.0, Seed(0, 0))
	assert.InDelta(t, float64(5*131+5*173)/1000, Seed(5, 5), 1e-12)
	// wraps at 10000
	assert.InDelta(t, float64((100*131+100*173)%10000)/1000, Seed(100, 100), 1e-12)
}

func TestSampleSeedIsDeterministic(t *testing.T) {
	img := gradient(200, 150)
	p := Params{CellSize: 10, Threshold: 64, Mode: config.Organic, Jitter: 0.4, Variance: 0.4}

	a := Sample(img, p, rand.New(rand.NewPCG(1, 2)))
	b := Sample(img, p, rand.New(rand.NewPCG(99, 7)))
	require.Equal(t, a.Len(), b.Len())
	require.NotZero(t, a.Len())

	for i := range a.Positions {
		assert.Equal(t, a.Positions[i].Seed, b.Positions[i].Seed)
		assert.Equal(t, a.Base[i], b.Base[i])
	}
	// the static noise itself is not reproducible
	assert.NotEqual(t, a.Positions, b.Positions)
}

func TestSampleSharpIsNeverMorePermissive(t *testing.T) {
	img := gradient(300, 200)
	for _, th := range []float64{0, 50, 128, 200, 240, 255} {
		c := config.Default()
		c.CellSize = 7
		c.Threshold = th

		c.Mode = config.Clean
		clean := Sample(img, ParamsFrom(c), nil)
		c.Mode = config.Sharp
		sharp := Sample(img, ParamsFrom(c), nil)

		assert.LessOrEqual(t, sharp.Len(), clean.Len(), "threshold %v", th)
	}
}

func TestSampleCleanHasNoStaticNoise(t *testing.T) {
	img := gradient(100, 100)
	f := Sample(img, Params{CellSize: 10, Threshold: 10, Mode: config.Clean, Jitter: 1, Variance: 1}, rand.New(rand.NewPCG(1, 1)))
	require.NotZero(t, f.Len())
	assert.Equal(t, f.Base, f.Positions)
	for _, p := range f.Active() {
		assert.Equal(t, 1.0, p.Variance)
	}
}

func TestSampleOrganicBounds(t *testing.T) {
	img := gradient(100, 100)
	p := Params{CellSize: 10, Threshold: 10, Mode: config.Organic, Jitter: 0.3, Variance: 0.5}
	f := Sample(img, p, rand.New(rand.NewPCG(3, 4)))
	require.NotZero(t, f.Len())
	assert.Equal(t, f.Positions, f.Active())
	for i, pos := range f.Positions {
		base := f.Base[i]
		assert.Equal(t, 1.0, base.Variance)
		assert.InDelta(t, base.X, pos.X, 3)
		assert.InDelta(t, base.Y, pos.Y, 3)
		assert.InDelta(t, 1, pos.Variance, 0.5)
	}
}

func TestSamplePartialCell(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 25, 25))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	f := Sample(img, Params{CellSize: 10, Threshold: 128}, nil)

	// the third column and row have their centre at 25, off the buffer
	assert.Equal(t, 3, f.Cols)
	assert.Equal(t, 3, f.Rows)
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, Point{X: 5, Y: 5, Seed: Seed(5, 5), Variance: 1}, f.Base[0])

	// a 5px grid divides the buffer evenly
	f = Sample(img, Params{CellSize: 5, Threshold: 128}, nil)
	assert.Equal(t, 5, f.Cols)
	assert.Equal(t, 25, f.Len())
}

func TestSampleThresholdIsStrict(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	assert.Zero(t, Sample(img, Params{CellSize: 10, Threshold: 128}, nil).Len())
	assert.Equal(t, 1, Sample(img, Params{CellSize: 10, Threshold: 127}, nil).Len())
}

func TestStatus(t *testing.T) {
	f := Field{Base: make([]Point, 12), Cols: 15, Rows: 11, Mode: config.Sharp}
	assert.Equal(t, "Cells: 15×11 — Points: 12 — Mode: sharp", f.Status())
}
