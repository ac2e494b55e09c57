// Package anim owns the play/pause state and maps wall-clock time onto the
// animation phase consumed by the renderer.
package anim

import (
	"math"
	"time"

	"github.com/iburimskiy/phorma/internal/config"
)

// State of the driver.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Frame is the clock reading handed to one render pass.
type Frame struct {
	// Elapsed is the wall-clock time since the driver origin, in seconds.
	Elapsed float64
}

// MorphPhase oscillates between 0 and 1.
func (f Frame) MorphPhase(speed float64) float64 {
	return math.Sin(f.Elapsed*speed)*0.5 + 0.5
}

// JitterOffset is the per-frame displacement of a point with the given seed,
// before scaling by the jitter amplitude.
func (f Frame) JitterOffset(seed, speed float64) (dx, dy float64) {
	dx = math.Sin(seed + f.Elapsed*1.5*speed)
	dy = math.Cos(seed*1.3 + f.Elapsed*1.2*speed)
	return dx, dy
}

// Driver tracks play state. The phase is always recomputed from absolute
// time, so resuming after a pause jumps to where the clock is now.
type Driver struct {
	state  State
	origin time.Time
	now    func() time.Time

	// pending is a one-shot redraw request raised by Play.
	pending bool
}

// NewDriver returns a stopped driver whose origin is the current time. A nil
// now uses time.Now.
func NewDriver(now func() time.Time) *Driver {
	if now == nil {
		now = time.Now
	}
	return &Driver{now: now, origin: now()}
}

func (d *Driver) State() State { return d.state }

// Play starts the loop. It also asks for one redraw so the surface reacts
// even when the animation mode is off.
func (d *Driver) Play() {
	d.state = Playing
	d.pending = true
}

// Pause stops the loop; the current frame stays on screen.
func (d *Driver) Pause() {
	d.state = Stopped
}

// Toggle flips between Playing and Stopped.
func (d *Driver) Toggle() {
	if d.state == Playing {
		d.Pause()
		return
	}
	d.Play()
}

// Looping reports whether frames must be produced continuously.
func (d *Driver) Looping(mode config.AnimationMode) bool {
	return d.state == Playing && mode != config.AnimOff
}

// TakeRedraw reports and clears a pending one-shot redraw request.
func (d *Driver) TakeRedraw() bool {
	p := d.pending
	d.pending = false
	return p
}

// Frame reads the clock.
func (d *Driver) Frame() Frame {
	return Frame{Elapsed: d.now().Sub(d.origin).Seconds()}
}
