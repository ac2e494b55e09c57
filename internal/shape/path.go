package shape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

var (
	// ErrEmptyPath is returned for path data without any drawing command.
	ErrEmptyPath = errors.New("shape: empty path")

	// ErrBadPath wraps every syntax error in path data.
	ErrBadPath = errors.New("shape: bad path")
)

// Op is a path command after normalization to absolute coordinates.
type Op int

const (
	OpMove Op = iota
	OpLine
	OpQuad
	OpCubic
	OpClose
)

// Segment is one path command. Pts holds the control points followed by the
// end point: one point for move and line, two for quad, three for cubic.
type Segment struct {
	Op  Op
	Pts [3]Vec2
}

// End returns the pen position after the segment.
func (s Segment) End() Vec2 {
	switch s.Op {
	case OpQuad:
		return s.Pts[1]
	case OpCubic:
		return s.Pts[2]
	}
	return s.Pts[0]
}

// Path is parsed path data in absolute coordinates, arcs flattened to cubics.
type Path []Segment

// Scale returns a copy of p with every coordinate multiplied by s.
func (p Path) Scale(s float64) Path {
	q := make(Path, len(p))
	for i, seg := range p {
		q[i].Op = seg.Op
		for j, pt := range seg.Pts {
			q[i].Pts[j] = Vec2{pt.X * s, pt.Y * s}
		}
	}
	return q
}

// ParsePath parses SVG path data. Custom shapes are authored in the
// -0.5..0.5 box, which ParsePath does not enforce.
func ParsePath(d string) (Path, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, ErrEmptyPath
	}
	if c := d[0]; c != 'M' && c != 'm' {
		return nil, fmt.Errorf("%w: path should start with a moveto, got %q", ErrBadPath, c)
	}
	gp, err := gg.ParseSVGPath(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPath, err)
	}

	out := make(Path, 0, gp.NumVerbs())
	var start Vec2
	gp.Iterate(func(verb gg.PathVerb, c []float64) {
		var seg Segment
		switch verb {
		case gg.MoveTo:
			start = Vec2{c[0], c[1]}
			seg = Segment{Op: OpMove, Pts: [3]Vec2{start}}
		case gg.LineTo:
			seg = Segment{Op: OpLine, Pts: [3]Vec2{{c[0], c[1]}}}
		case gg.QuadTo:
			seg = Segment{Op: OpQuad, Pts: [3]Vec2{{c[0], c[1]}, {c[2], c[3]}}}
		case gg.CubicTo:
			seg = Segment{Op: OpCubic, Pts: [3]Vec2{{c[0], c[1]}, {c[2], c[3]}, {c[4], c[5]}}}
		case gg.Close:
			// the pen returns to the subpath start
			seg = Segment{Op: OpClose, Pts: [3]Vec2{start}}
		default:
			return
		}
		out = append(out, seg)
	})
	if len(out) == 0 {
		return nil, ErrEmptyPath
	}
	return out, nil
}

// MustParsePath is ParsePath for literals known to be valid.
func MustParsePath(d string) Path {
	p, err := ParsePath(d)
	if err != nil {
		panic(err)
	}
	return p
}
