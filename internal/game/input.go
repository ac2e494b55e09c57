package game

import (
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/phorma/internal/config"
	"github.com/iburimskiy/phorma/internal/raster"
	"github.com/iburimskiy/phorma/internal/shape"
)

const (
	cellStep      = 1
	maxCellSize   = 120
	thresholdStep = 5

	// frames a held key waits before repeating, and between repeats
	repeatDelay    = 30
	repeatInterval = 4
)

// morphTargets are the kinds with a distinct super-ellipse exponent.
var morphTargets = []shape.Kind{shape.Diamond, shape.Circle, shape.Square}

func nextMorphTarget(k shape.Kind) shape.Kind {
	for i, t := range morphTargets {
		if t == k {
			return morphTargets[(i+1)%len(morphTargets)]
		}
	}
	return morphTargets[0]
}

// repeating reports a key press on the first frame and then at a steady rate
// while the key stays down.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.editing = !g.editing
		g.notice = ""
		return nil
	}
	if g.editing {
		g.handleTextInput()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	c := g.ctl.State().Config
	next := c
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.ctl.Driver().Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		next.Shape = c.Shape.Next()
		// custom needs path data from the config file
		if next.Shape == shape.Custom && c.CustomPath == "" {
			next.Shape = next.Shape.Next()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		next.MorphTarget = nextMorphTarget(c.MorphTarget)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		next.Mode = c.Mode.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		next.Animation = c.Animation.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		next.Outline = c.Outline.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		next.Font.Family = raster.NextFamily(c.Font.Family)
	case repeating(ebiten.KeyBracketLeft):
		next.CellSize = max(1, c.CellSize-cellStep)
	case repeating(ebiten.KeyBracketRight):
		next.CellSize = min(maxCellSize, c.CellSize+cellStep)
	case repeating(ebiten.KeyMinus):
		next.Threshold = max(0, c.Threshold-thresholdStep)
	case repeating(ebiten.KeyEqual):
		next.Threshold = min(255, c.Threshold+thresholdStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.ctl.Randomize()
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.report(g.exportSVG())
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.report(g.exportPNG())
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.report(g.saveConfig())
		return nil
	default:
		return nil
	}
	if next != c {
		g.apply(next)
	}
	return nil
}

// handleTextInput edits the text in place. Every keystroke is a new snapshot.
func (g *Game) handleTextInput() {
	c := g.ctl.State().Config
	text := c.Text

	g.runes = ebiten.AppendInputChars(g.runes[:0])
	text += string(g.runes)

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		text += "\n"
	}
	if repeating(ebiten.KeyBackspace) && len(text) > 0 {
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.editing = false
	}

	if text != c.Text {
		next := c
		next.Text = text
		g.apply(next)
	}
}

// report shows the outcome of a user action in the status line.
func (g *Game) report(notice string, err error) {
	g.notice, g.lastErr = notice, err
	if err != nil {
		g.log.Error("action failed", "err", err)
	} else if notice != "" {
		g.log.Info(notice)
	}
}

// saveConfig writes the current settings to the config file.
func (g *Game) saveConfig() (string, error) {
	if g.path == "" {
		return "No config file, start with -config to save", nil
	}
	if err := config.Save(g.path, g.ctl.State().Config); err != nil {
		return "", err
	}
	return "Saved " + g.path, nil
}
