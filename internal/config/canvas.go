package config

import "math"

// CanvasSize derives the 4:3 drawing area from the viewport. The result is
// authoritative for both rasterization and export.
func CanvasSize(viewportW, viewportH int) (w, h int) {
	cw := math.Min(float64(viewportW-ViewportPadX), MaxCanvasWidth)
	ch := cw * 3 / 4
	if ch > float64(viewportH-ViewportPadY) {
		ch = math.Max(MinCanvasHeight, float64(viewportH-ViewportPadY))
		cw = ch * 4 / 3
	}
	return int(math.Floor(cw)), int(math.Floor(ch))
}
