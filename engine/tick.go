package engine

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/superpong/config"
)

// Action is a discrete input edge collected during one frame
type Action uint8

const (
	ActionUp Action = iota
	ActionDown
	ActionConfirm
	ActionBack
	ActionSettings
	ActionConsole
	ActionQuit
	ActionAimLeft
	ActionAimRight
	ActionErase // Console backspace
	actionCount
)

// Input is the per-tick input snapshot
type Input struct {
	PointerY   float64 // World y under the pointer
	HasPointer bool
	AimDelta   float64 // Requested aim rotation this tick, radians
	Text       []string
	pressed    uint32
}

// Press records an action edge
func (in *Input) Press(a Action) {
	if a < actionCount {
		in.pressed |= 1 << a
	}
}

// Pressed reports whether a was pressed this tick
func (in Input) Pressed(a Action) bool {
	return in.pressed&(1<<a) != 0
}

// Tick is the context handed to every component for one simulation step
// Components read time, input, settings, and randomness only through it
type Tick struct {
	Now      time.Time
	Delta    time.Duration
	Frame    uint64
	Input    Input
	Settings config.Settings
	Rand     *rand.Rand
	Width    float64 // Visible world width, height is always 2
}

// DT returns the step length in seconds
func (t Tick) DT() float64 {
	return t.Delta.Seconds()
}

// Elapsed returns seconds since the given instant, for periodic animation
func (t Tick) Elapsed(since time.Time) float64 {
	return t.Now.Sub(since).Seconds()
}

// Clock builds successive ticks from a TimeProvider
type Clock struct {
	time  TimeProvider
	rand  *rand.Rand
	last  time.Time
	frame uint64
	width float64
}

// NewClock creates a tick source, seed fixes the random stream
func NewClock(tp TimeProvider, seed int64, width float64) *Clock {
	return &Clock{
		time:  tp,
		rand:  rand.New(rand.NewSource(seed)),
		last:  tp.Now(),
		width: width,
	}
}

// SetWidth updates the visible world width after a resize
func (c *Clock) SetWidth(w float64) {
	if w > 0 {
		c.width = w
	}
}

// Next samples the clock and returns the next tick
// Delta is capped so a stalled frame does not teleport entities
func (c *Clock) Next(in Input, settings config.Settings) Tick {
	now := c.time.Now()
	delta := now.Sub(c.last)
	if delta < 0 {
		delta = 0
	}
	if delta > maxDelta {
		delta = maxDelta
	}
	c.last = now
	c.frame++

	return Tick{
		Now:      now,
		Delta:    delta,
		Frame:    c.frame,
		Input:    in,
		Settings: settings,
		Rand:     c.rand,
		Width:    c.width,
	}
}

const maxDelta = 100 * time.Millisecond
