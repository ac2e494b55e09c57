// Package export writes the point field as downloadable artifacts: a static
// SVG document and a PNG bitmap.
package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/iburimskiy/phorma/internal/config"
	"github.com/iburimskiy/phorma/internal/sampler"
	"github.com/iburimskiy/phorma/internal/shape"
)

// outlineRGBA is the SVG form of the renderer's outline colour.
const outlineRGBA = "rgba(0,0,0,0.16)"

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// Escape replaces the characters reserved in SVG text and attribute values.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Num rounds v to three decimals and prints it without trailing zeros.
func Num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// WriteSVG writes a self-contained SVG of the field at w×h. Animation is
// never exported: the literal shape is always used.
func WriteSVG(out io.Writer, f sampler.Field, c config.Config, w, h int) error {
	bw := bufio.NewWriter(out)

	var custom shape.Path
	if c.Shape == shape.Custom {
		// invalid data exports no shapes rather than failing
		custom, _ = shape.ParsePath(c.CustomPath)
	}

	stroke := ""
	if sw := c.StrokeWidth(); sw > 0 {
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="%s"`, outlineRGBA, Num(sw))
	}

	fmt.Fprintf(bw, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" width=\"%d\" height=\"%d\" shape-rendering=\"geometricPrecision\">\n", w, h, w, h)
	fmt.Fprintf(bw, "  <title>%s</title>\n", Escape(strings.Join(c.Lines(), " ")))
	fmt.Fprintf(bw, "  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\"/>\n", w, h, Escape(c.Background))
	fmt.Fprintf(bw, "  <g fill=\"%s\">\n", Escape(c.Foreground))

	for _, p := range f.Active() {
		size := c.ShapeSize(p.Variance)
		writeShape(bw, p.X, p.Y, size, shape.Geometry(c.Shape, size, custom), c, stroke)
	}

	fmt.Fprintf(bw, "  </g>\n</svg>\n")
	return bw.Flush()
}

func writeShape(w io.Writer, x, y, size float64, d shape.Descriptor, c config.Config, stroke string) {
	switch d.Prim {
	case shape.PrimCircle:
		fmt.Fprintf(w, "    <circle cx=\"%s\" cy=\"%s\" r=\"%s\"%s/>\n", Num(x), Num(y), Num(d.Radius), stroke)
	case shape.PrimRect:
		if d.Rotation == 0 {
			fmt.Fprintf(w, "    <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"%s/>\n",
				Num(x-d.Half), Num(y-d.Half), Num(2*d.Half), Num(2*d.Half), stroke)
			return
		}
		fmt.Fprintf(w, "    <g transform=\"translate(%s,%s) rotate(%s)\">\n", Num(x), Num(y), Num(d.Rotation*180/math.Pi))
		fmt.Fprintf(w, "      <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"%s/>\n",
			Num(-d.Half), Num(-d.Half), Num(2*d.Half), Num(2*d.Half), stroke)
		fmt.Fprintf(w, "    </g>\n")
	case shape.PrimPolygon:
		pts := make([]string, len(d.Points))
		for i, v := range d.Points {
			pts[i] = Num(x+v.X) + " " + Num(y+v.Y)
		}
		fmt.Fprintf(w, "    <polygon points=\"%s\"%s/>\n", strings.Join(pts, " "), stroke)
	case shape.PrimPath:
		// the path keeps its authored -0.5..0.5 coordinates and is scaled
		// by the group, so the outline must not scale with it
		if stroke != "" {
			stroke += ` vector-effect="non-scaling-stroke"`
		}
		fmt.Fprintf(w, "    <g transform=\"translate(%s,%s) scale(%s)\">\n", Num(x), Num(y), Num(size))
		fmt.Fprintf(w, "      <path d=\"%s\"%s/>\n", Escape(c.CustomPath), stroke)
		fmt.Fprintf(w, "    </g>\n")
	}
}
