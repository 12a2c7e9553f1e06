package entity

import (
	"math"
	"time"

	"github.com/lixenwraith/superpong/audio"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

const (
	targetHP          = 2.0
	targetSize        = 0.12
	targetBob         = 0.05
	targetEntryOffset = 6.0
	targetFlash       = 200 * time.Millisecond
	targetSmokeEvery  = time.Second
	targetDebris      = 3
)

var (
	targetColor  = engine.RGB(1, 1, 1)
	targetFlashC = engine.RGB(2, 2, 2)
	targetDimmed = engine.RGB(0.55, 0.55, 0.55)
)

// Target is a stationary practice enemy hovering on the right of the field
type Target struct {
	graph   *engine.Graph
	cues    audio.Cues
	effects Effects
	handle  engine.Handle

	home     vmath.Vec2
	pos      vmath.Vec2
	hp       float64
	born     time.Time
	lastShot time.Time
	lastPuff time.Time

	flashUntil time.Time
	flashArmed bool
}

func newTarget(env Env, t engine.Tick) (*Target, error) {
	// Home somewhere in the right third, entering from off-screen
	home := vmath.V(2+t.Rand.Float64(), (t.Rand.Float64()-0.7)*1.2)
	if t.Width > 0 && home.X > t.Width-targetSize {
		home.X = t.Width - targetSize
	}
	start := home.Add(vmath.V(targetEntryOffset, 0))

	collider := engine.Circle(targetSize / 2)
	h, err := env.Graph.Create(engine.Node{
		Position: start,
		Size:     vmath.V(targetSize, targetSize),
		Glyph:    '◎',
		Color:    targetColor,
		Layer:    engine.LayerEntity,
		Visible:  true,
		Collider: &collider,
	})
	if err != nil {
		return nil, err
	}

	return &Target{
		graph:    env.Graph,
		cues:     env.cues(),
		effects:  env.effects(),
		handle:   h,
		home:     home,
		pos:      start,
		hp:       targetHP,
		born:     t.Now,
		lastShot: t.Now,
		lastPuff: t.Now,
	}, nil
}

func (e *Target) Kind() EnemyKind { return EnemyTarget }

// Handle returns the collider node
func (e *Target) Handle() engine.Handle { return e.handle }

// Position returns the current center
func (e *Target) Position() vmath.Vec2 { return e.pos }

// HP returns the remaining hit points
func (e *Target) HP() float64 { return e.hp }

func (e *Target) ApplyDamageIfTargeted(ids []engine.Handle, damage float64) (float64, bool) {
	if !e.handle.In(ids) {
		return e.hp, false
	}

	e.cues.Play(audio.CueTargetHit)
	e.hp -= damage
	e.flashArmed = true
	if e.hp <= 1 {
		_ = e.graph.Update(e.handle, func(n *engine.Node) {
			n.Glyph = '○'
		})
	}
	return e.hp, true
}

func (e *Target) Advance(t engine.Tick) EnemyEvent {
	// 1. Hover and ease into position
	alive := t.Elapsed(e.born)
	e.pos.Y = e.home.Y + math.Cos(alive)*targetBob
	e.pos.X += (e.home.X - e.pos.X) * vmath.Clamp(t.DT(), 0, 1)

	// 2. Hit flash
	if e.flashArmed {
		e.flashUntil = t.Now.Add(targetFlash)
		e.flashArmed = false
	}
	color := targetColor
	switch {
	case t.Now.Before(e.flashUntil):
		color = targetFlashC
	case e.hp <= 1:
		color = targetDimmed
	}

	_ = e.graph.Update(e.handle, func(n *engine.Node) {
		n.Position = e.pos
		n.Color = color
	})

	// 3. Fire toward a random point on the paddle line
	if t.Now.Sub(e.lastShot) > t.Settings.FireInterval() {
		e.lastShot = t.Now
		aim := vmath.V(0, (t.Rand.Float64()-0.5)*2)
		return EnemyEvent{
			Kind:       EnemyEventFire,
			Projectile: ProjectileSquare,
			Origin:     e.pos,
			Direction:  aim.Sub(e.pos).Normalize(),
		}
	}

	// 4. Smoke while damaged
	if e.hp < targetHP && t.Now.Sub(e.lastPuff) > targetSmokeEvery {
		e.lastPuff = t.Now
		return EnemyEvent{
			Kind:      EnemyEventEffect,
			Particle:  ParticlePuff,
			Origin:    e.pos,
			Direction: vmath.V(0, -0.2),
		}
	}

	return EnemyEvent{}
}

func (e *Target) Destroy() {
	e.cues.Play(audio.CueTargetDestroy)
	e.effects.Burst(ParticleDebris, e.pos, targetDebris)
	_ = e.graph.Remove(e.handle)
}

func (e *Target) Remove() {
	// Already detached handles are fine during teardown
	_ = e.graph.Remove(e.handle)
}
