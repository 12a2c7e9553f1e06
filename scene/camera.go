package scene

import (
	"math"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

const (
	shakeDecay = 6.0 // Per second
	shakeMax   = 0.3
)

// Camera turns shake impulses into a decaying render offset
type Camera struct {
	trauma float64
	offset vmath.Vec2
}

// Shake adds an impulse, accumulated trauma is capped
func (c *Camera) Shake(intensity float64) {
	c.trauma = math.Min(c.trauma+intensity, shakeMax)
}

// Update decays trauma and samples a new offset scaled by the screen shake setting
func (c *Camera) Update(t engine.Tick) {
	c.trauma *= math.Exp(-shakeDecay * t.DT())
	if c.trauma < 1e-4 {
		c.trauma = 0
		c.offset = vmath.Vec2{}
		return
	}
	amp := c.trauma * t.Settings.ShakeScale()
	c.offset = vmath.V((t.Rand.Float64()*2-1)*amp, (t.Rand.Float64()*2-1)*amp)
}

// Offset is the world displacement applied when rendering
func (c *Camera) Offset() vmath.Vec2 { return c.offset }

func (c *Camera) Trauma() float64 { return c.trauma }

// Reset clears any remaining shake
func (c *Camera) Reset() {
	c.trauma = 0
	c.offset = vmath.Vec2{}
}
