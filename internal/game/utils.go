package game

import (
	"fmt"
	"image/color"
	"time"
)

// vertexColor converts c to straight-alpha components in 0..1, the form
// ebiten vertices take by default.
func vertexColor(c color.Color) (r, g, b, a float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float32(n.R) / 0xff, float32(n.G) / 0xff, float32(n.B) / 0xff, float32(n.A) / 0xff
}

// formatDuration formats elapsed seconds as MM:SS
func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	minutes := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
