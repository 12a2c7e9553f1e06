package entity

import (
	"time"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

const (
	squareSize   = 0.02
	squareDamage = 1.0
	squareProbe  = 0.06 // Overlap query extent, wider than the drawn square
)

var (
	squareHostile  = engine.RGB(1, 0.35, 0.3)
	squareFriendly = engine.RGB(0.4, 0.9, 1)
)

// Square is the basic projectile, it bounces off the top and bottom of the field
type Square struct {
	graph  *engine.Graph
	handle engine.Handle

	pos      vmath.Vec2
	dir      vmath.Vec2
	born     time.Time
	damage   float64
	friendly bool
	boosted  bool
}

func newSquare(env Env, t engine.Tick, origin, dir vmath.Vec2) (*Square, error) {
	h, err := env.Graph.Create(engine.Node{
		Position: origin,
		Size:     vmath.V(squareSize, squareSize),
		Glyph:    '■',
		Color:    squareHostile,
		Layer:    engine.LayerProjectile,
		Visible:  true,
	})
	if err != nil {
		return nil, err
	}
	return &Square{
		graph:  env.Graph,
		handle: h,
		pos:    origin,
		dir:    dir,
		born:   t.Now,
		damage: squareDamage,
	}, nil
}

func (p *Square) Kind() ProjectileKind { return ProjectileSquare }

// Direction returns the velocity in world units per second
func (p *Square) Direction() vmath.Vec2 { return p.dir }

func (p *Square) Advance(t engine.Tick) {
	half := squareSize / 2
	switch {
	case p.pos.Y > 1-half:
		p.dir = p.dir.ReflectY(true)
	case p.pos.Y < -1+half:
		p.dir = p.dir.ReflectY(false)
	}

	p.pos = p.pos.Add(p.dir.Scale(t.DT()))
	_ = p.graph.Update(p.handle, func(n *engine.Node) {
		n.Position = p.pos
	})
}

func (p *Square) Overlapping() []engine.Handle {
	return p.graph.Intersections(engine.Rect(squareProbe, squareProbe), p.pos)
}

func (p *Square) Position() vmath.Vec2 { return p.pos }

func (p *Square) Rebound(dir vmath.Vec2) {
	p.dir = dir
	if !p.friendly {
		p.friendly = true
		_ = p.graph.Update(p.handle, func(n *engine.Node) {
			n.Color = squareFriendly
		})
	}
}

func (p *Square) Friendly() bool { return p.friendly }

func (p *Square) Damage() float64 { return p.damage }

func (p *Square) ApplyDamageMultiplier(f float64) {
	if p.boosted {
		return
	}
	p.boosted = true
	p.damage *= f
}

func (p *Square) Age(now time.Time) time.Duration { return now.Sub(p.born) }

func (p *Square) Destroy() {
	_ = p.graph.Remove(p.handle)
}
