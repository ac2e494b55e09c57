// Package game is the interactive front end: an ebiten window that shows the
// point field, reacts to the keyboard and applies live config reloads.
package game

import (
	"errors"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/phorma/internal/config"
	"github.com/iburimskiy/phorma/internal/controller"
)

const (
	statusX = 12
	statusY = 12

	helpLine = "Space play/pause  S shape  M mode  A anim  O outline  F font  T morph target  [ ] cell  - = threshold  R random  Tab edit text  E svg  P png  W save  Q quit"
)

var chromeColor = color.RGBA{R: 24, G: 26, B: 32, A: 255}

// Game implements ebiten.Game.
type Game struct {
	log  *slog.Logger
	ctl  *controller.Controller
	path string

	// updates carries snapshots from the config file watcher
	updates <-chan config.Config

	canvas *ebiten.Image
	surf   *surface

	viewW, viewH int

	editing bool
	runes   []rune
	lastErr error
	notice  string
}

// Option customizes a Game.
type Option func(*Game)

// WithUpdates subscribes the game to config snapshots.
func WithUpdates(ch <-chan config.Config) Option {
	return func(g *Game) { g.updates = ch }
}

// WithConfigPath sets the file the W key writes the current settings to.
func WithConfigPath(path string) Option {
	return func(g *Game) { g.path = path }
}

// New wraps ctl in a window front end.
func New(log *slog.Logger, ctl *controller.Controller, opts ...Option) *Game {
	g := &Game{
		log:   log,
		ctl:   ctl,
		surf:  &surface{},
		viewW: config.WindowWidth,
		viewH: config.WindowHeight,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *Game) Update() error {
	g.drainUpdates()
	g.ctl.Resize(g.viewW, g.viewH)

	if err := g.handleInput(); err != nil {
		return err
	}
	return nil
}

// drainUpdates applies every pending snapshot without blocking; the last one
// wins.
func (g *Game) drainUpdates() {
	for {
		select {
		case c, ok := <-g.updates:
			if !ok {
				g.updates = nil
				return
			}
			g.apply(c)
		default:
			return
		}
	}
}

// apply hands a snapshot to the controller.
func (g *Game) apply(c config.Config) {
	if g.ctl.OnConfigChanged(c) {
		g.log.Debug("field rebuilt", "points", g.ctl.State().Field.Len())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	st := g.ctl.State()
	g.ensureCanvas(st.W, st.H)
	if g.ctl.NeedsFrame() {
		g.surf.dst = g.canvas
		g.ctl.Render(g.surf)
	}

	screen.Fill(chromeColor)
	op := &ebiten.DrawImageOptions{}
	x, y := g.canvasOrigin(st.W, st.H)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(g.canvas, op)

	status := g.ctl.Status()
	if g.ctl.Driver().Looping(st.Config.Animation) {
		status += " — " + formatDuration(g.ctl.Driver().Frame().Elapsed)
	}
	if g.editing {
		status += " | Editing text, Tab to finish"
	}
	if g.notice != "" {
		status += " | " + g.notice
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, statusX, statusY)
	ebitenutil.DebugPrintAt(screen, helpLine, statusX, statusY+16)
}

// ensureCanvas reallocates the offscreen canvas when the size changed.
func (g *Game) ensureCanvas(w, h int) {
	w, h = max(1, w), max(1, h)
	if g.canvas != nil {
		b := g.canvas.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		g.canvas.Deallocate()
	}
	g.canvas = ebiten.NewImage(w, h)
	g.ctl.Invalidate()
}

// canvasOrigin centres the canvas horizontally below the status lines.
func (g *Game) canvasOrigin(w, h int) (int, int) {
	x := (g.viewW - w) / 2
	y := config.ViewportPadY / 2
	if y+h > g.viewH {
		y = max(0, g.viewH-h)
	}
	return x, y
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewW, g.viewH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// snapshot copies the canvas into a CPU image.
func (g *Game) snapshot() (*image.RGBA, error) {
	if g.canvas == nil {
		return nil, errors.New("nothing rendered yet")
	}
	b := g.canvas.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	g.canvas.ReadPixels(img.Pix)
	return img, nil
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("phorma - dot type")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
