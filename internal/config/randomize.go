package config

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/phorma/internal/shape"
)

var randomShapes = []shape.Kind{shape.Circle, shape.Square, shape.Diamond, shape.Triangle, shape.Hexagon}

// Randomize returns c with the grid, shape and noise controls picked at random.
// Text, font, colours and animation are kept.
func (c Config) Randomize(r *rand.Rand) Config {
	c.CellSize = math.Floor(8 + r.Float64()*28)
	c.DotPercent = math.Floor(55 + r.Float64()*40)
	c.Threshold = math.Floor(90 + r.Float64()*90)
	c.Margin = math.Floor(r.Float64() * 60)
	c.Shape = randomShapes[r.IntN(len(randomShapes))]
	c.Outline = Outline(r.IntN(len(outlineNames)))
	c.Jitter = round2(r.Float64()*0.4 + 0.05)
	c.Variance = round2(r.Float64()*0.4 + 0.05)
	return c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
