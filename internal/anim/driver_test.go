package anim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iburimskiy/phorma/internal/config"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestDriverStateMachine(t *testing.T) {
	d := NewDriver(nil)
	assert.Equal(t, Stopped, d.State())
	assert.False(t, d.Looping(config.AnimJitter))

	d.Play()
	assert.Equal(t, Playing, d.State())
	assert.True(t, d.Looping(config.AnimJitter))
	assert.True(t, d.Looping(config.AnimMorph))
	assert.False(t, d.Looping(config.AnimOff))

	d.Pause()
	assert.Equal(t, Stopped, d.State())
	assert.False(t, d.Looping(config.AnimMorph))

	d.Toggle()
	assert.Equal(t, Playing, d.State())
	d.Toggle()
	assert.Equal(t, Stopped, d.State())
}

func TestDriverPlayRequestsOneRedraw(t *testing.T) {
	d := NewDriver(nil)
	assert.False(t, d.TakeRedraw())
	d.Play()
	assert.True(t, d.TakeRedraw())
	assert.False(t, d.TakeRedraw())
}

func TestDriverFrameFollowsWallClock(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	d := NewDriver(clk.now)
	assert.Equal(t, 0.0, d.Frame().Elapsed)

	d.Play()
	clk.t = clk.t.Add(2 * time.Second)
	assert.InDelta(t, 2, d.Frame().Elapsed, 1e-9)

	// pausing does not freeze the phase: resume picks up absolute time
	d.Pause()
	clk.t = clk.t.Add(3 * time.Second)
	d.Play()
	assert.InDelta(t, 5, d.Frame().Elapsed, 1e-9)
}

func TestFramePhases(t *testing.T) {
	f := Frame{Elapsed: 0}
	assert.InDelta(t, 0.5, f.MorphPhase(1), 1e-12)

	f = Frame{Elapsed: math.Pi / 2}
	assert.InDelta(t, 1, f.MorphPhase(1), 1e-12)
	assert.InDelta(t, 0, f.MorphPhase(3), 1e-12)

	dx, dy := Frame{Elapsed: 0}.JitterOffset(0.7, 2)
	assert.InDelta(t, math.Sin(0.7), dx, 1e-12)
	assert.InDelta(t, math.Cos(0.91), dy, 1e-12)
}
