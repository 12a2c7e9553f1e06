package scene

import (
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/entity"
	"github.com/lixenwraith/superpong/vmath"
)

type pendingBurst struct {
	kind  entity.ParticleKind
	at    vmath.Vec2
	vel   vmath.Vec2 // Zero scatters randomly
	count int
}

// Particles is the live particle pool of a scene
// Bursts are queued and materialized on the next Advance, the oldest particles are dropped over the cap
type Particles struct {
	env     entity.Env
	log     *zap.Logger
	pending []pendingBurst
	live    []entity.Particle
}

func NewParticles(g *engine.Graph, log *zap.Logger) *Particles {
	if log == nil {
		log = zap.NewNop()
	}
	return &Particles{env: entity.Env{Graph: g}, log: log}
}

// Burst implements entity.Effects
func (p *Particles) Burst(kind entity.ParticleKind, at vmath.Vec2, count int) {
	p.pending = append(p.pending, pendingBurst{kind: kind, at: at, count: count})
}

// Emit queues one particle with a fixed velocity
func (p *Particles) Emit(kind entity.ParticleKind, at, vel vmath.Vec2) {
	p.pending = append(p.pending, pendingBurst{kind: kind, at: at, vel: vel, count: 1})
}

// Advance spawns queued bursts, steps live particles, and enforces the cap
func (p *Particles) Advance(t engine.Tick) {
	for _, b := range p.pending {
		for i := 0; i < b.count; i++ {
			vel := b.vel
			if vel == (vmath.Vec2{}) {
				angle := -math.Pi/2 + (t.Rand.Float64()-0.5)*math.Pi
				vel = vmath.FromAngle(angle).Scale(0.4 + t.Rand.Float64()*0.6)
			}
			particle, err := b.kind.Spawn(p.env, t, b.at, vel)
			if err != nil {
				// Cosmetic only, a full graph just means fewer particles
				p.log.Debug("particle dropped", zap.Stringer("kind", b.kind), zap.Error(err))
				continue
			}
			p.live = append(p.live, particle)
		}
	}
	p.pending = p.pending[:0]

	kept := p.live[:0]
	for _, particle := range p.live {
		if particle.Advance(t) == entity.ParticleDone {
			particle.Destroy()
			continue
		}
		kept = append(kept, particle)
	}
	clear(p.live[len(kept):])
	p.live = kept

	if over := len(p.live) - t.Settings.ParticleCap(); over > 0 {
		for _, old := range p.live[:over] {
			old.Destroy()
		}
		p.live = append(p.live[:0], p.live[over:]...)
	}
}

// Len returns the number of live particles
func (p *Particles) Len() int { return len(p.live) }

// Unload destroys every particle and drops pending bursts
func (p *Particles) Unload() {
	for _, particle := range p.live {
		particle.Destroy()
	}
	p.live = nil
	p.pending = nil
}
