package entity

import (
	"time"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

const (
	debrisLife    = 1500 * time.Millisecond
	debrisGravity = 2.0
	puffLife      = time.Second
	fallFloor     = 1.2
)

// drift is a short-lived node moving under constant acceleration and fading out
type drift struct {
	kind   ParticleKind
	graph  *engine.Graph
	handle engine.Handle
	pos    vmath.Vec2
	vel    vmath.Vec2
	accel  vmath.Vec2
	born   time.Time
	life   time.Duration
	grow   float64
	size   float64
}

func newDrift(env Env, t engine.Tick, kind ParticleKind, n engine.Node, vel, accel vmath.Vec2, life time.Duration, grow float64) (Particle, error) {
	h, err := env.Graph.Create(n)
	if err != nil {
		return nil, err
	}
	return &drift{
		kind:   kind,
		graph:  env.Graph,
		handle: h,
		pos:    n.Position,
		vel:    vel,
		accel:  accel,
		born:   t.Now,
		life:   life,
		grow:   grow,
		size:   n.Size.X,
	}, nil
}

// Debris pieces are flung out of destroyed enemies and fall off the screen
func newDebris(env Env, t engine.Tick, at, vel vmath.Vec2) (Particle, error) {
	return newDrift(env, t, ParticleDebris, engine.Node{
		Position: at,
		Size:     vmath.V(0.03, 0.03),
		Glyph:    '▪',
		Color:    engine.RGB(0.8, 0.75, 0.7),
		Layer:    engine.LayerParticle,
		Visible:  true,
	}, vel, vmath.V(0, debrisGravity), debrisLife, 0)
}

// Puffs of smoke rise from damaged enemies and expand while fading
func newPuff(env Env, t engine.Tick, at, vel vmath.Vec2) (Particle, error) {
	return newDrift(env, t, ParticlePuff, engine.Node{
		Position: at,
		Size:     vmath.V(0.04, 0.04),
		Glyph:    '░',
		Color:    engine.RGB(0.5, 0.5, 0.5),
		Layer:    engine.LayerParticle,
		Visible:  true,
	}, vel, vmath.Vec2{}, puffLife, 0.05)
}

func (p *drift) Kind() ParticleKind { return p.kind }

func (p *drift) Advance(t engine.Tick) ParticleState {
	age := t.Now.Sub(p.born)
	if age >= p.life || p.pos.Y > fallFloor {
		return ParticleDone
	}

	dt := t.DT()
	p.vel = p.vel.Add(p.accel.Scale(dt))
	p.pos = p.pos.Add(p.vel.Scale(dt))
	p.size += p.grow * dt
	alpha := 1 - float64(age)/float64(p.life)

	_ = p.graph.Update(p.handle, func(n *engine.Node) {
		n.Position = p.pos
		n.Size = vmath.V(p.size, p.size)
		n.Color.A = alpha
	})
	return ParticleAlive
}

func (p *drift) Destroy() {
	_ = p.graph.Remove(p.handle)
}
