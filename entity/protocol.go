package entity

import (
	"fmt"
	"time"

	"github.com/lixenwraith/superpong/audio"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

// Enemy is a level-spawned hostile
type Enemy interface {
	Kind() EnemyKind
	// ApplyDamageIfTargeted damages the enemy when one of ids is its collider
	ApplyDamageIfTargeted(ids []engine.Handle, damage float64) (remaining float64, hit bool)
	Advance(t engine.Tick) EnemyEvent
	// Destroy releases nodes and fires the destroy effects
	Destroy()
	// Remove releases nodes silently, used on scene teardown
	Remove()
}

// Projectile is a shot travelling between enemies and the paddle
type Projectile interface {
	Kind() ProjectileKind
	Advance(t engine.Tick)
	// Overlapping returns collider handles touching the projectile
	Overlapping() []engine.Handle
	Position() vmath.Vec2
	// Rebound redirects the projectile and makes it friendly for good
	Rebound(dir vmath.Vec2)
	Friendly() bool
	Damage() float64
	// ApplyDamageMultiplier scales damage, only the first call has effect
	ApplyDamageMultiplier(f float64)
	Age(now time.Time) time.Duration
	Destroy()
}

// ParticleState is returned by Particle.Advance
type ParticleState uint8

const (
	ParticleAlive ParticleState = iota
	ParticleDone
)

// Particle is a cosmetic entity, it never affects gameplay state
type Particle interface {
	Kind() ParticleKind
	Advance(t engine.Tick) ParticleState
	Destroy()
}

// EnemyEventKind tags EnemyEvent
type EnemyEventKind uint8

const (
	EnemyEventNone EnemyEventKind = iota
	EnemyEventFire
	EnemyEventEffect
)

// EnemyEvent is what an enemy asks its scene to do after advancing
type EnemyEvent struct {
	Kind       EnemyEventKind
	Projectile ProjectileKind // Fire
	Particle   ParticleKind   // Effect
	Origin     vmath.Vec2
	Direction  vmath.Vec2
}

// Effects receives fire-and-forget particle bursts
type Effects interface {
	Burst(kind ParticleKind, at vmath.Vec2, count int)
}

// Env carries the collaborators entities are built against
type Env struct {
	Graph   *engine.Graph
	Cues    audio.Cues
	Effects Effects
}

func (e Env) cues() audio.Cues {
	if e.Cues == nil {
		return audio.Nop{}
	}
	return e.Cues
}

type nopEffects struct{}

func (nopEffects) Burst(ParticleKind, vmath.Vec2, int) {}

func (e Env) effects() Effects {
	if e.Effects == nil {
		return nopEffects{}
	}
	return e.Effects
}

// Spawn materializes an enemy of kind k
func Spawn(k EnemyKind, env Env, t engine.Tick) (Enemy, error) {
	switch k {
	case EnemyTarget:
		e, err := newTarget(env, t)
		if err != nil {
			return nil, fmt.Errorf("spawn %s: %w", k, err)
		}
		return e, nil
	default:
		if k < enemyKindCount {
			return nil, fmt.Errorf("spawn %s: %w", k, ErrKindNotImplemented)
		}
		return nil, fmt.Errorf("spawn %s: %w", k, ErrUnknownKind)
	}
}

// Spawn materializes a projectile of kind k at origin heading along dir
func (k ProjectileKind) Spawn(env Env, t engine.Tick, origin, dir vmath.Vec2) (Projectile, error) {
	switch k {
	case ProjectileSquare:
		p, err := newSquare(env, t, origin, dir)
		if err != nil {
			return nil, fmt.Errorf("spawn %s: %w", k, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("spawn %s: %w", k, ErrUnknownKind)
	}
}

// Spawn materializes a particle of kind k
func (k ParticleKind) Spawn(env Env, t engine.Tick, at, vel vmath.Vec2) (Particle, error) {
	switch k {
	case ParticleDebris:
		return newDebris(env, t, at, vel)
	case ParticlePuff:
		return newPuff(env, t, at, vel)
	default:
		return nil, fmt.Errorf("spawn %s: %w", k, ErrUnknownKind)
	}
}
