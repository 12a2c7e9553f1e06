package combat

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/superpong/audio"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/entity"
	"github.com/lixenwraith/superpong/level"
	"github.com/lixenwraith/superpong/session"
	"github.com/lixenwraith/superpong/vmath"
)

const (
	ProjectileTTL = 20 * time.Second
	// EdgeZone is the x below which a paddle contact counts as a side hit
	EdgeZone       = 0.1
	CriticalFactor = 2.0
	shakePerDamage = 0.04
)

// Defender is the paddle as seen by combat
type Defender interface {
	Damage(amount float64)
	Handle() engine.Handle
	ReboundDirection() vmath.Vec2
}

// Shaker receives camera shake impulses
type Shaker interface {
	Shake(intensity float64)
}

// Field is the mutable combat state of a scene, Resolve filters the collections in place
type Field struct {
	Projectiles []entity.Projectile
	Enemies     []entity.Enemy
	Paddle      Defender
	Level       *level.Level
	State       *session.State
}

// Report summarizes one resolution pass
type Report struct {
	Kills        int
	ScoreGained  uint32
	PaddleDamage float64
	Rebounds     int
	Criticals    int
	Expired      int
}

// Empty reports whether nothing of note happened
func (r Report) Empty() bool { return r == Report{} }

// Resolver runs the per-tick projectile pass
type Resolver struct {
	cues  audio.Cues
	shake Shaker
	log   *zap.Logger
}

func NewResolver(cues audio.Cues, shake Shaker, log *zap.Logger) *Resolver {
	if cues == nil {
		cues = audio.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{cues: cues, shake: shake, log: log}
}

// Resolve visits every projectile in order: expiry, friendly hits, hostile crossing and paddle contact, then advance
func (r *Resolver) Resolve(t engine.Tick, f *Field) Report {
	var rep Report
	kept := f.Projectiles[:0]

	for _, p := range f.Projectiles {
		if p.Age(t.Now) > ProjectileTTL {
			p.Destroy()
			rep.Expired++
			continue
		}

		touching := p.Overlapping()

		if p.Friendly() {
			if r.strike(p, touching, f, &rep) {
				p.Destroy()
				continue
			}
		} else {
			pos := p.Position()
			if pos.X < 0 {
				dmg := p.Damage()
				if f.Paddle != nil {
					f.Paddle.Damage(dmg)
				}
				rep.PaddleDamage += dmg
				if r.shake != nil {
					r.shake.Shake(dmg * shakePerDamage)
				}
				r.cues.Play(audio.CueDamage)
				p.Destroy()
				continue
			}

			if f.Paddle != nil && f.Paddle.Handle().In(touching) {
				dir := f.Paddle.ReboundDirection()
				if pos.X < EdgeZone {
					p.ApplyDamageMultiplier(CriticalFactor)
					p.Rebound(dir.Scale(CriticalFactor))
					r.cues.Play(audio.CueCritical)
					rep.Criticals++
				} else {
					p.Rebound(dir)
					r.cues.Play(audio.CueSquareHit)
				}
				rep.Rebounds++
			}
		}

		p.Advance(t)
		kept = append(kept, p)
	}

	clear(f.Projectiles[len(kept):])
	f.Projectiles = kept

	if !rep.Empty() {
		r.log.Debug("combat",
			zap.Int("kills", rep.Kills),
			zap.Uint32("score", rep.ScoreGained),
			zap.Float64("paddle_damage", rep.PaddleDamage),
			zap.Int("rebounds", rep.Rebounds),
			zap.Int("criticals", rep.Criticals),
			zap.Int("expired", rep.Expired),
		)
	}
	return rep
}

// strike applies a friendly projectile to every enemy it touches and reports whether any was hit
func (r *Resolver) strike(p entity.Projectile, touching []engine.Handle, f *Field, rep *Report) bool {
	if len(touching) == 0 {
		return false
	}

	hit := false
	damage := p.Damage()
	alive := f.Enemies[:0]
	for _, e := range f.Enemies {
		remaining, ok := e.ApplyDamageIfTargeted(touching, damage)
		if !ok {
			alive = append(alive, e)
			continue
		}
		hit = true
		if remaining > 0 {
			alive = append(alive, e)
			continue
		}

		// Removal, level accounting and scoring happen together
		e.Destroy()
		if f.Level != nil {
			f.Level.Kill()
		}
		if f.State != nil {
			rep.ScoreGained += f.State.AddKill(damage)
		}
		rep.Kills++
		r.log.Info("enemy destroyed", zap.Stringer("kind", e.Kind()), zap.Float64("damage", damage))
	}
	clear(f.Enemies[len(alive):])
	f.Enemies = alive
	return hit
}
