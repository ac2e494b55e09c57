// Package shape holds the geometry shared by the on-screen renderer and the
// vector exporter, so both paint exactly the same outlines.
package shape

import "math"

// SuperellipseVertices is the sampling density of morph polygons.
const SuperellipseVertices = 64

// Vec2 is a point relative to the shape centre.
type Vec2 struct {
	X, Y float64
}

// Primitive discriminates a Descriptor.
type Primitive int

const (
	PrimNone Primitive = iota
	PrimCircle
	PrimRect
	PrimPolygon
	PrimPath
)

// Descriptor is the outline of one shape centred on the origin.
type Descriptor struct {
	Prim Primitive

	// Radius is set for circles.
	Radius float64

	// Half is the half side of a rect, Rotation its rotation in radians.
	Half     float64
	Rotation float64

	// Points is the outline of a polygon.
	Points []Vec2

	// Path is the custom outline, already scaled to size.
	Path Path
}

// Geometry returns the outline of kind at size. custom is consulted only for
// Custom; a nil or empty custom path yields PrimNone, which draws nothing.
func Geometry(kind Kind, size float64, custom Path) Descriptor {
	half := size / 2
	switch kind {
	case Circle:
		return Descriptor{Prim: PrimCircle, Radius: half}
	case Square:
		return Descriptor{Prim: PrimRect, Half: half}
	case Diamond:
		return Descriptor{Prim: PrimRect, Half: half, Rotation: math.Pi / 4}
	case Triangle:
		return Descriptor{Prim: PrimPolygon, Points: regular(3, half, -math.Pi/2)}
	case Hexagon:
		return Descriptor{Prim: PrimPolygon, Points: regular(6, half, 0)}
	case Custom:
		if len(custom) == 0 {
			return Descriptor{}
		}
		return Descriptor{Prim: PrimPath, Path: custom.Scale(size)}
	}
	return Descriptor{}
}

// regular returns the n vertices of a regular polygon of circumradius r,
// starting at angle start and going clockwise in screen space.
func regular(n int, r, start float64) []Vec2 {
	pts := make([]Vec2, n)
	for i := range pts {
		a := start + float64(i)*2*math.Pi/float64(n)
		pts[i] = Vec2{math.Cos(a) * r, math.Sin(a) * r}
	}
	return pts
}

// Vertices returns the polygonal outline of a rect or polygon. Circles and
// paths have none.
func (d Descriptor) Vertices() []Vec2 {
	switch d.Prim {
	case PrimPolygon:
		return d.Points
	case PrimRect:
		corners := []Vec2{{-d.Half, -d.Half}, {d.Half, -d.Half}, {d.Half, d.Half}, {-d.Half, d.Half}}
		if d.Rotation == 0 {
			return corners
		}
		sin, cos := math.Sincos(d.Rotation)
		for i, c := range corners {
			corners[i] = Vec2{c.X*cos - c.Y*sin, c.X*sin + c.Y*cos}
		}
		return corners
	}
	return nil
}

// Superellipse samples |x|^n + |y|^n = 1 at SuperellipseVertices angles and
// scales it to size.
func Superellipse(size, n float64) Descriptor {
	r := size / 2
	pts := make([]Vec2, SuperellipseVertices)
	for i := range pts {
		a := float64(i) / SuperellipseVertices * 2 * math.Pi
		sa, ca := math.Sincos(a)
		pts[i] = Vec2{
			X: signPow(ca, 2/n) * r,
			Y: signPow(sa, 2/n) * r,
		}
	}
	return Descriptor{Prim: PrimPolygon, Points: pts}
}

func signPow(v, e float64) float64 {
	p := math.Pow(math.Abs(v), e)
	if v < 0 {
		return -p
	}
	return p
}

// Lerp interpolates a to b with t clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*max(0, min(1, t))
}
