package scene

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/superpong/combat"
	"github.com/lixenwraith/superpong/core"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/entity"
	"github.com/lixenwraith/superpong/level"
	"github.com/lixenwraith/superpong/overlay"
	"github.com/lixenwraith/superpong/vmath"
)

const hudY = -0.92

// Ingame runs one stage attempt
type Ingame struct {
	d          Deps
	log        *zap.Logger
	env        entity.Env
	group      *overlay.Group
	title      *overlay.Title
	background *Background
	camera     *Camera
	particles  *Particles
	paddle     *entity.Paddle
	resolver   *combat.Resolver
	level      *level.Level
	field      combat.Field
	hud        [3]engine.Handle // health, score, stage
}

func NewIngame(ctx context.Context, d Deps, t engine.Tick) (*Ingame, error) {
	script := level.Tutorial()
	if d.Stages != nil {
		script = d.Stages.Stage(d.Session.Stage)
	}

	g := &Ingame{
		d:         d,
		log:       d.logger().With(zap.String("stage", script.Name)),
		group:     overlay.NewGroup(ctx, d.Time, d.FadeCadence, d.logger()),
		camera:    &Camera{},
		particles: NewParticles(d.Graph, d.logger()),
		level:     script.Start(),
	}
	g.env = entity.Env{Graph: d.Graph, Cues: d.cues(), Effects: g.particles}
	g.resolver = combat.NewResolver(d.cues(), g.camera, g.log)

	fail := func(err error) (*Ingame, error) {
		g.Unload()
		return nil, fmt.Errorf("load ingame: %w", err)
	}

	var err error
	if g.background, err = NewBackground(d.Graph, t); err != nil {
		return fail(err)
	}
	if g.paddle, err = entity.NewPaddle(g.env); err != nil {
		return fail(err)
	}
	if g.title, err = overlay.NewTitle(d.Graph, g.group, vmath.V(t.Width/2, -0.6)); err != nil {
		return fail(err)
	}
	for i, x := range []float64{0.3, t.Width - 0.4, t.Width / 2} {
		if g.hud[i], err = d.Graph.Create(engine.Node{
			Position: vmath.V(x, hudY),
			Color:    engine.ColorWhite,
			Layer:    engine.LayerUI,
			Visible:  true,
		}); err != nil {
			return fail(err)
		}
	}

	g.field = combat.Field{Paddle: g.paddle, Level: g.level, State: d.Session}
	g.log.Info("stage started", zap.Uint32("index", d.Session.Stage), zap.Int("spawns", script.Spawns()))
	return g, nil
}

func (g *Ingame) Update(t engine.Tick) (*core.Command, error) {
	// 1. Paddle
	g.paddle.Update(t)
	if g.paddle.Destroyed() {
		g.log.Info("paddle destroyed", zap.Uint32("score", g.d.Session.Score))
		return core.SwitchScene(core.SceneMenu), nil
	}

	// 2. Level
	switch ev := g.level.Progress(t.Now); ev.Kind {
	case level.EventSpawn:
		enemy, err := entity.Spawn(ev.Enemy, g.env, t)
		if err != nil {
			return nil, err
		}
		g.field.Enemies = append(g.field.Enemies, enemy)
		g.log.Debug("enemy spawned", zap.Stringer("kind", ev.Enemy), zap.Int("alive", g.level.Alive()))
	case level.EventAnnounce:
		a := ev.Announcement
		g.title.Show(a.Color, a.Size, a.Text)
	case level.EventDone:
		g.d.Session.Stage++
		if g.d.Store != nil {
			if err := g.d.Store.Save(*g.d.Session); err != nil {
				return nil, fmt.Errorf("save session: %w", err)
			}
		}
		g.log.Info("stage complete", zap.Uint32("next", g.d.Session.Stage), zap.Uint32("score", g.d.Session.Score))
		return core.SwitchScene(core.SceneMenu), nil
	}

	// 3. Combat
	g.resolver.Resolve(t, &g.field)

	// 4. Enemy behavior
	for _, e := range g.field.Enemies {
		ev := e.Advance(t)
		switch ev.Kind {
		case entity.EnemyEventFire:
			p, err := ev.Projectile.Spawn(g.env, t, ev.Origin, ev.Direction)
			if err != nil {
				return nil, err
			}
			g.field.Projectiles = append(g.field.Projectiles, p)
		case entity.EnemyEventEffect:
			g.particles.Emit(ev.Particle, ev.Origin, ev.Direction)
		}
	}

	// 5. Cosmetics
	g.particles.Advance(t)
	g.background.Update(t)
	g.updateHUD()
	g.camera.Update(t)
	return nil, nil
}

func (g *Ingame) updateHUD() {
	full := int(g.paddle.Health() + 0.5)
	slots := int(g.paddle.MaxHealth())
	health := "HP " + strings.Repeat("♥", full) + strings.Repeat("♡", slots-full)
	texts := [3]string{
		health,
		fmt.Sprintf("Score %d", g.d.Session.Score),
		g.level.Name(),
	}
	for i, h := range g.hud {
		_ = g.d.Graph.Update(h, func(n *engine.Node) { n.Text = texts[i] })
	}
}

// CameraOffset is the current shake displacement
func (g *Ingame) CameraOffset() vmath.Vec2 { return g.camera.Offset() }

// Field exposes the live combat state
func (g *Ingame) Field() *combat.Field { return &g.field }

// Level returns the running level
func (g *Ingame) Level() *level.Level { return g.level }

// Paddle returns the player paddle
func (g *Ingame) Paddle() *entity.Paddle { return g.paddle }

// Unload cancels fades first so no animation touches released nodes
func (g *Ingame) Unload() {
	g.group.Close()
	if g.title != nil {
		g.title.Remove()
	}
	for _, e := range g.field.Enemies {
		e.Remove()
	}
	for _, p := range g.field.Projectiles {
		p.Destroy()
	}
	g.field.Enemies, g.field.Projectiles = nil, nil
	g.particles.Unload()
	if g.background != nil {
		g.background.Unload()
	}
	if g.paddle != nil {
		g.paddle.Unload()
	}
	teardown(g.hud[:]).release(g.d.Graph)
}
