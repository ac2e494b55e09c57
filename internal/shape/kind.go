package shape

import "fmt"

// Kind is the primitive drawn for each point.
type Kind int

const (
	Circle Kind = iota
	Square
	Diamond
	Triangle
	Hexagon
	Custom
)

var kindNames = [...]string{"circle", "square", "diamond", "triangle", "hexagon", "custom"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Next cycles through the kinds, custom included.
func (k Kind) Next() Kind {
	return (k + 1) % Kind(len(kindNames))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("shape: unknown kind %q", b)
}

// Exponent maps a kind onto the super-ellipse family |x|^n + |y|^n = 1.
// Kinds without a super-ellipse equivalent fall back to the circle.
func Exponent(k Kind) float64 {
	switch k {
	case Diamond:
		return 1
	case Circle:
		return 2
	case Square:
		return 30
	}
	return 2
}
