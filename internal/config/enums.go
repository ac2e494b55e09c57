package config

import "fmt"

// SamplingMode governs the effective threshold and static per-point noise.
type SamplingMode int

const (
	Clean SamplingMode = iota
	Sharp
	Organic
)

var samplingModeNames = [...]string{"clean", "sharp", "organic"}

func (m SamplingMode) String() string {
	if m < 0 || int(m) >= len(samplingModeNames) {
		return fmt.Sprintf("SamplingMode(%d)", int(m))
	}
	return samplingModeNames[m]
}

// Next cycles through the modes.
func (m SamplingMode) Next() SamplingMode {
	return (m + 1) % SamplingMode(len(samplingModeNames))
}

func (m SamplingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *SamplingMode) UnmarshalText(b []byte) error {
	i, err := lookup(samplingModeNames[:], string(b), "sampling mode")
	if err != nil {
		return err
	}
	*m = SamplingMode(i)
	return nil
}

// Outline is the stroke drawn around every shape.
type Outline int

const (
	OutlineNone Outline = iota
	OutlineThin
	OutlineBold
)

var outlineNames = [...]string{"none", "thin", "bold"}

func (o Outline) String() string {
	if o < 0 || int(o) >= len(outlineNames) {
		return fmt.Sprintf("Outline(%d)", int(o))
	}
	return outlineNames[o]
}

func (o Outline) Next() Outline {
	return (o + 1) % Outline(len(outlineNames))
}

func (o Outline) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outline) UnmarshalText(b []byte) error {
	i, err := lookup(outlineNames[:], string(b), "outline")
	if err != nil {
		return err
	}
	*o = Outline(i)
	return nil
}

// AnimationMode selects the per-frame effect.
type AnimationMode int

const (
	AnimOff AnimationMode = iota
	AnimJitter
	AnimMorph
)

var animationModeNames = [...]string{"off", "jitter", "morph"}

func (a AnimationMode) String() string {
	if a < 0 || int(a) >= len(animationModeNames) {
		return fmt.Sprintf("AnimationMode(%d)", int(a))
	}
	return animationModeNames[a]
}

func (a AnimationMode) Next() AnimationMode {
	return (a + 1) % AnimationMode(len(animationModeNames))
}

func (a AnimationMode) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AnimationMode) UnmarshalText(b []byte) error {
	i, err := lookup(animationModeNames[:], string(b), "animation mode")
	if err != nil {
		return err
	}
	*a = AnimationMode(i)
	return nil
}

func lookup(names []string, s, what string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("config: unknown %s %q", what, s)
}
