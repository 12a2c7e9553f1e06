package entity

import (
	"math"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

const (
	PaddleX         = 0.07
	paddleWidth     = 0.03
	paddleHeight    = 0.2
	paddleMaxHealth = 5.0
	paddleRegen     = 0.1 // Health per second
	paddleKeySpeed  = 2.0 // World units per second with keyboard
	paddleAimSpeed  = 2.5 // Radians per second with keyboard
	paddleAimLimit  = math.Pi / 3
	arrowDistance   = 0.12
)

// Paddle is the player, it follows input on a fixed vertical line
type Paddle struct {
	graph  *engine.Graph
	handle engine.Handle
	arrow  engine.Handle

	y      float64
	aim    float64
	health float64
	max    float64
	regen  float64
}

// NewPaddle places the paddle at the vertical center with full health
func NewPaddle(env Env) (*Paddle, error) {
	collider := engine.Rect(paddleWidth, paddleHeight)
	h, err := env.Graph.Create(engine.Node{
		Position: vmath.V(PaddleX, 0),
		Size:     vmath.V(paddleWidth, paddleHeight),
		Glyph:    '█',
		Color:    engine.ColorWhite,
		Layer:    engine.LayerEntity,
		Visible:  true,
		Collider: &collider,
	})
	if err != nil {
		return nil, err
	}

	arrow, err := env.Graph.Create(engine.Node{
		Position: vmath.V(PaddleX+arrowDistance, 0),
		Size:     vmath.V(0.03, 0.03),
		Glyph:    '→',
		Color:    engine.RGB(0.9, 0.3, 0.1),
		Layer:    engine.LayerUI,
		Visible:  true,
	})
	if err != nil {
		_ = env.Graph.Remove(h)
		return nil, err
	}

	return &Paddle{
		graph:  env.Graph,
		handle: h,
		arrow:  arrow,
		health: paddleMaxHealth,
		max:    paddleMaxHealth,
		regen:  paddleRegen,
	}, nil
}

// Update follows the pointer, rotates the aim, and regenerates health
func (p *Paddle) Update(t engine.Tick) {
	dt := t.DT()
	in := t.Input

	// 1. Position
	if in.HasPointer {
		p.y = in.PointerY
	}
	if in.Pressed(engine.ActionUp) {
		p.y -= paddleKeySpeed * dt
	}
	if in.Pressed(engine.ActionDown) {
		p.y += paddleKeySpeed * dt
	}
	half := paddleHeight / 2
	p.y = vmath.Clamp(p.y, -1+half, 1-half)

	// 2. Aim
	p.aim += in.AimDelta
	if in.Pressed(engine.ActionAimLeft) {
		p.aim -= paddleAimSpeed * dt
	}
	if in.Pressed(engine.ActionAimRight) {
		p.aim += paddleAimSpeed * dt
	}
	p.aim = vmath.Clamp(p.aim, -paddleAimLimit, paddleAimLimit)

	// 3. Regeneration, a destroyed paddle stays down
	if p.health > 0 {
		p.health = vmath.Clamp(p.health+p.regen*dt, 0, p.max)
	}

	center := vmath.V(PaddleX, p.y)
	ratio := p.health / p.max
	_ = p.graph.Update(p.handle, func(n *engine.Node) {
		n.Position = center
		n.Color = engine.RGB(1, ratio, ratio)
	})
	_ = p.graph.Update(p.arrow, func(n *engine.Node) {
		n.Position = center.Add(p.ReboundDirection().Scale(arrowDistance))
		n.Glyph = arrowGlyph(p.aim)
	})
}

// Damage reduces health, never below zero
func (p *Paddle) Damage(amount float64) {
	p.health = vmath.Clamp(p.health-amount, 0, p.max)
}

func (p *Paddle) Health() float64 { return p.health }
func (p *Paddle) MaxHealth() float64 { return p.max }
func (p *Paddle) Destroyed() bool { return p.health <= 0 }

// Position returns the paddle center
func (p *Paddle) Position() vmath.Vec2 { return vmath.V(PaddleX, p.y) }

// Aim returns the current aim angle in radians, positive points down
func (p *Paddle) Aim() float64 { return p.aim }

// ReboundDirection is the unit vector returned projectiles travel along
func (p *Paddle) ReboundDirection() vmath.Vec2 {
	return vmath.FromAngle(p.aim)
}

// Handle returns the collider node
func (p *Paddle) Handle() engine.Handle { return p.handle }

// Unload removes the paddle nodes
func (p *Paddle) Unload() {
	_ = p.graph.Remove(p.handle)
	_ = p.graph.Remove(p.arrow)
}

func arrowGlyph(aim float64) rune {
	switch {
	case aim < -math.Pi/8:
		return '↗'
	case aim > math.Pi/8:
		return '↘'
	default:
		return '→'
	}
}
