package scene

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/superpong/audio"
	"github.com/lixenwraith/superpong/config"
	"github.com/lixenwraith/superpong/console"
	"github.com/lixenwraith/superpong/core"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/entity"
	"github.com/lixenwraith/superpong/level"
	"github.com/lixenwraith/superpong/session"
	"github.com/lixenwraith/superpong/vmath"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeDisplay struct {
	calls      int
	forceVSync bool
}

func (d *fakeDisplay) ApplySettings(s config.Settings) (config.Settings, error) {
	d.calls++
	if d.forceVSync && !s.VSync {
		s.VSync = true
		return s, errors.New("vsync cannot be disabled")
	}
	return s, nil
}

type fixture struct {
	clock    *engine.MockTimeProvider
	rng      *rand.Rand
	deps     Deps
	display  *fakeDisplay
	console  *console.Console
	ctrl     *Controller
	dir      string
	settings config.Settings
}

func newFixture(t *testing.T, stages *level.Catalog) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		clock:    engine.NewMockTimeProvider(epoch),
		rng:      rand.New(rand.NewSource(3)),
		display:  &fakeDisplay{},
		dir:      dir,
		settings: config.DefaultSettings(),
	}
	f.console = console.New(f.settings)
	f.deps = Deps{
		Graph:       engine.NewGraph(0),
		Time:        f.clock,
		Cues:        &audio.Recorder{},
		Stages:      stages,
		Session:     &session.State{},
		Store:       session.NewStore(dir, nil),
		FadeCadence: time.Millisecond,
		Version:     "test",
	}
	ctrl, err := NewController(context.Background(), f.deps, f.display, f.console, f.settings, dir, f.tick(engine.Input{}))
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	f.ctrl = ctrl
	t.Cleanup(ctrl.Close)
	return f
}

func (f *fixture) tick(in engine.Input) engine.Tick {
	return engine.Tick{
		Now:      f.clock.Now(),
		Delta:    16 * time.Millisecond,
		Input:    in,
		Settings: f.settings,
		Rand:     f.rng,
		Width:    3.5,
	}
}

func (f *fixture) step(t *testing.T, actions ...engine.Action) {
	t.Helper()
	var in engine.Input
	for _, a := range actions {
		in.Press(a)
	}
	if err := f.ctrl.Update(f.tick(in)); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
}

func hasText(g *engine.Graph, text string) bool {
	for _, n := range g.Snapshot() {
		if strings.Contains(n.Text, text) {
			return true
		}
	}
	return false
}

func TestControllerStartsOnMenu(t *testing.T) {
	f := newFixture(t, nil)
	if f.ctrl.Kind() != core.SceneMenu {
		t.Fatalf("Expected menu, got %s", f.ctrl.Kind())
	}
	if !hasText(f.deps.Graph, "Play") {
		t.Error("Expected Play button rendered")
	}
}

func TestMenuNavigation(t *testing.T) {
	f := newFixture(t, nil)
	menu := f.ctrl.Scene().(*Menu)

	f.step(t, engine.ActionDown)
	if menu.Selected() != "Settings" {
		t.Fatalf("Expected Settings selected, got %s", menu.Selected())
	}
	f.step(t, engine.ActionConfirm)
	if !f.ctrl.Panel().Visible() {
		t.Error("Expected settings panel shown")
	}

	f.step(t, engine.ActionBack)
	if f.ctrl.Panel().Visible() {
		t.Error("Expected back to close the panel")
	}

	f.step(t, engine.ActionUp)
	f.step(t, engine.ActionUp)
	if menu.Selected() != "Quit" {
		t.Fatalf("Expected wrap to Quit, got %s", menu.Selected())
	}
	f.step(t, engine.ActionConfirm)
	if !f.ctrl.Exit() {
		t.Error("Expected exit after Quit")
	}
}

func TestMenuRevealRemovesCover(t *testing.T) {
	f := newFixture(t, nil)
	menu := f.ctrl.Scene().(*Menu)

	f.clock.Advance(RevealPeriod)
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := f.deps.Graph.Get(menu.cover); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Expected cover removed after reveal")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPlaySwitchesToIngame(t *testing.T) {
	f := newFixture(t, nil)
	f.step(t, engine.ActionConfirm)

	if f.ctrl.Kind() != core.SceneIngame {
		t.Fatalf("Expected ingame, got %s", f.ctrl.Kind())
	}
	if hasText(f.deps.Graph, "S U P E R") {
		t.Error("Expected menu nodes released")
	}
}

func TestSwitchFailureKeepsScene(t *testing.T) {
	f := newFixture(t, nil)
	menu := f.ctrl.Scene()

	// Exhaust the arena so the ingame scene cannot be built
	full := f.deps
	full.Graph = engine.NewGraph(f.deps.Graph.Len())
	for full.Graph.Len() < f.deps.Graph.Len() {
		if _, err := full.Graph.Create(engine.Node{}); err != nil {
			t.Fatal(err)
		}
	}
	f.ctrl.d = full

	err := f.ctrl.Execute(core.SwitchScene(core.SceneIngame))
	if !errors.Is(err, engine.ErrGraphFull) {
		t.Fatalf("Expected ErrGraphFull, got %v", err)
	}
	if f.ctrl.Scene() != menu || f.ctrl.Kind() != core.SceneMenu {
		t.Error("Expected previous scene to stay active")
	}
	if full.Graph.Len() != f.deps.Graph.Len() {
		t.Errorf("Expected partial build released, got %d nodes", full.Graph.Len())
	}
	f.ctrl.d = f.deps
}

func TestApplySettingsPersists(t *testing.T) {
	f := newFixture(t, nil)
	next := f.settings
	next.VSync = false
	next.FPSLimit = 60

	if err := f.ctrl.Execute(core.ApplySettings(next)); err != nil {
		t.Fatal(err)
	}
	if f.display.calls != 1 {
		t.Errorf("Expected display called once, got %d", f.display.calls)
	}
	saved, err := config.LoadSettings(f.dir)
	if err != nil || saved.VSync || saved.FPSLimit != 60 {
		t.Errorf("Expected persisted settings, got %+v %v", saved, err)
	}

	f.console.Execute("vsync")
	h := f.console.History()
	if h[len(h)-1] != "vsync=false" {
		t.Errorf("Expected console to see new settings, got %q", h[len(h)-1])
	}
}

func TestApplySettingsRejectsInvalid(t *testing.T) {
	f := newFixture(t, nil)
	bad := f.settings
	bad.FPSLimit = 3

	if err := f.ctrl.Execute(core.ApplySettings(bad)); err != nil {
		t.Fatalf("Expected non-fatal rejection, got %v", err)
	}
	if f.display.calls != 0 || f.ctrl.Settings() != f.settings {
		t.Error("Expected settings untouched")
	}
	if len(f.console.History()) == 0 {
		t.Error("Expected a console message")
	}
}

func TestDisplayOverridesSettings(t *testing.T) {
	f := newFixture(t, nil)
	f.display.forceVSync = true
	next := f.settings
	next.VSync = false

	_ = f.ctrl.Execute(core.ApplySettings(next))
	if !f.ctrl.Settings().VSync {
		t.Error("Expected display result to win")
	}
	history := strings.Join(f.console.History(), "\n")
	if !strings.Contains(history, "vsync cannot be disabled") {
		t.Errorf("Expected failure reported, got %v", f.console.History())
	}
	if strings.Contains(history, "vsync set:") {
		t.Errorf("Expected no change announced for a refused value, got %v", f.console.History())
	}
}

func TestConsoleAnnouncesAppliedSettings(t *testing.T) {
	f := newFixture(t, nil)

	cmd := f.console.Execute("vsync off")
	if cmd == nil {
		t.Fatal("Expected a settings command")
	}
	if err := f.ctrl.Execute(cmd); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	history := f.console.History()
	if got := history[len(history)-1]; got != "vsync set: true -> false" {
		t.Errorf("Expected applied change announced, got %q", got)
	}

	// Re-applying the same value changes nothing and says nothing
	before := len(f.console.History())
	_ = f.ctrl.Execute(core.ApplySettings(f.ctrl.Settings()))
	if len(f.console.History()) != before {
		t.Errorf("Expected no message for unchanged settings, got %v", f.console.History()[before:])
	}
}

func TestChangeStagePersists(t *testing.T) {
	f := newFixture(t, nil)
	_ = f.ctrl.Execute(core.ChangeStage(2))

	if f.deps.Session.Stage != 2 {
		t.Errorf("Expected stage 2, got %d", f.deps.Session.Stage)
	}
	st, err := f.deps.Store.Load(nil)
	if err != nil || st.Stage != 2 {
		t.Errorf("Expected saved stage 2, got %+v %v", st, err)
	}
}

func TestConsoleCapturesInput(t *testing.T) {
	f := newFixture(t, nil)
	menu := f.ctrl.Scene().(*Menu)

	f.step(t, engine.ActionConsole)
	if !f.console.Active() {
		t.Fatal("Expected console opened")
	}

	in := engine.Input{Text: []string{"stage 1"}}
	in.Press(engine.ActionDown)
	if err := f.ctrl.Update(f.tick(in)); err != nil {
		t.Fatal(err)
	}
	if menu.Selected() != "Play" {
		t.Error("Expected menu to ignore input while console is open")
	}

	f.step(t, engine.ActionConfirm)
	if f.deps.Session.Stage != 1 {
		t.Errorf("Expected stage command executed, got %d", f.deps.Session.Stage)
	}
	if f.ctrl.Kind() != core.SceneMenu {
		t.Error("Expected confirm consumed by console")
	}

	f.step(t, engine.ActionBack)
	if f.console.Active() {
		t.Error("Expected back to close console")
	}
}

func TestQuitAction(t *testing.T) {
	f := newFixture(t, nil)
	f.step(t, engine.ActionQuit)
	if !f.ctrl.Exit() {
		t.Error("Expected exit")
	}
}

func TestIngameTutorialSpawns(t *testing.T) {
	f := newFixture(t, nil)
	f.step(t, engine.ActionConfirm)
	g := f.ctrl.Scene().(*Ingame)
	f.step(t)

	if g.title.Text() != "Tutorial Stage" {
		t.Errorf("Expected tutorial banner, got %q", g.title.Text())
	}

	for i := 0; i < 40 && len(g.Field().Enemies) == 0; i++ {
		f.clock.Advance(500 * time.Millisecond)
		f.step(t)
	}
	if len(g.Field().Enemies) != 1 || g.Level().Alive() != 1 {
		t.Fatalf("Expected one target spawned, got %d", len(g.Field().Enemies))
	}

	// Target fires within its reload interval
	for i := 0; i < 400 && len(g.Field().Projectiles) == 0; i++ {
		f.clock.Advance(16 * time.Millisecond)
		f.step(t)
	}
	if len(g.Field().Projectiles) == 0 {
		t.Error("Expected the target to fire")
	}
}

func TestIngameCompletionAdvancesStage(t *testing.T) {
	quick := level.Script{
		Name: "Quick", SpawnCap: 1, Pacing: 10 * time.Millisecond,
		Events: []level.Event{level.Announce(engine.ColorWhite, 60, "Go")},
	}
	f := newFixture(t, level.NewCatalog(quick))
	f.step(t, engine.ActionConfirm)

	// Announcement first, then completion once pacing elapses
	for i := 0; i < 2; i++ {
		f.clock.Advance(20 * time.Millisecond)
		f.step(t)
	}

	if f.ctrl.Kind() != core.SceneMenu {
		t.Fatalf("Expected return to menu, got %s", f.ctrl.Kind())
	}
	if f.deps.Session.Stage != 1 {
		t.Errorf("Expected stage 1, got %d", f.deps.Session.Stage)
	}
	st, err := f.deps.Store.Load(nil)
	if err != nil || st.Stage != 1 {
		t.Errorf("Expected saved progress, got %+v %v", st, err)
	}
}

func TestIngamePaddleDeath(t *testing.T) {
	f := newFixture(t, nil)
	f.step(t, engine.ActionConfirm)
	g := f.ctrl.Scene().(*Ingame)

	g.Paddle().Damage(100)
	f.step(t)
	if f.ctrl.Kind() != core.SceneMenu {
		t.Errorf("Expected menu after paddle death, got %s", f.ctrl.Kind())
	}
}

func TestUnimplementedSpawnIsFatal(t *testing.T) {
	stage := level.Script{Name: "Dragons", SpawnCap: 1, Pacing: time.Second, Events: []level.Event{level.Spawn(entity.EnemyDragon)}}
	f := newFixture(t, level.NewCatalog(stage))
	f.step(t, engine.ActionConfirm)

	err := f.ctrl.Update(f.tick(engine.Input{}))
	if !errors.Is(err, entity.ErrKindNotImplemented) {
		t.Errorf("Expected ErrKindNotImplemented, got %v", err)
	}
}

func TestSettingsPanelAdjusts(t *testing.T) {
	f := newFixture(t, nil)
	_ = f.ctrl.Execute(core.ShowSettingsPanel(true))

	f.step(t, engine.ActionDown)
	f.step(t, engine.ActionAimRight)
	if f.ctrl.Settings().Fullscreen != config.FullscreenWindowed {
		t.Errorf("Expected fullscreen to wrap to windowed, got %s", f.ctrl.Settings().Fullscreen)
	}
	if !hasText(f.deps.Graph, "windowed") {
		t.Error("Expected panel to show the new value")
	}
}

func TestBackgroundParallax(t *testing.T) {
	g := engine.NewGraph(0)
	tk := engine.Tick{Now: epoch, Rand: rand.New(rand.NewSource(1)), Width: 3.5, Settings: config.DefaultSettings()}
	bg, err := NewBackground(g, tk)
	if err != nil {
		t.Fatal(err)
	}
	defer bg.Unload()

	later := epoch.Add(10 * time.Second)
	base := bg.Shift(0, later)
	if math.Abs(base-1.5) > 1e-9 {
		t.Errorf("Expected base shift 1.5, got %v", base)
	}
	for i, want := range []float64{1.0, 1.3, 1.5, 2.0} {
		if got := bg.Shift(i, later) / base; math.Abs(got-want) > 1e-9 {
			t.Errorf("Layer %d: expected factor %v, got %v", i, want, got)
		}
	}

	tk.Now = later
	bg.Update(tk)
	for _, n := range g.Snapshot() {
		if n.Position.X < 0 || n.Position.X > 3.5+0.5 {
			t.Errorf("Decoration outside span: %v", n.Position.X)
		}
	}
}

func TestCameraShake(t *testing.T) {
	tk := engine.Tick{Delta: 16 * time.Millisecond, Rand: rand.New(rand.NewSource(1)), Settings: config.DefaultSettings()}
	var cam Camera
	cam.Shake(1)
	if cam.Trauma() != shakeMax {
		t.Errorf("Expected trauma capped at %v, got %v", shakeMax, cam.Trauma())
	}

	cam.Update(tk)
	if cam.Offset() == (vmath.Vec2{}) {
		t.Error("Expected shake offset")
	}
	for i := 0; i < 200; i++ {
		cam.Update(tk)
	}
	if cam.Offset() != (vmath.Vec2{}) {
		t.Errorf("Expected shake to decay, got %v", cam.Offset())
	}

	tk.Settings.ScreenShake = 0
	cam.Shake(0.2)
	cam.Update(tk)
	if cam.Offset() != (vmath.Vec2{}) {
		t.Errorf("Expected no offset with shake disabled, got %v", cam.Offset())
	}
}

func TestParticleCap(t *testing.T) {
	g := engine.NewGraph(0)
	p := NewParticles(g, nil)
	tk := engine.Tick{Now: epoch, Delta: 16 * time.Millisecond, Rand: rand.New(rand.NewSource(1)), Settings: config.DefaultSettings()}
	tk.Settings.ParticleHigh = false

	p.Burst(entity.ParticleDebris, vmath.V(1, 0), 40)
	p.Advance(tk)
	if p.Len() != config.ParticleCapLow || g.Len() != config.ParticleCapLow {
		t.Errorf("Expected %d particles, got %d (%d nodes)", config.ParticleCapLow, p.Len(), g.Len())
	}

	tk.Now = epoch.Add(5 * time.Second)
	p.Advance(tk)
	if p.Len() != 0 || g.Len() != 0 {
		t.Errorf("Expected expired particles removed, got %d", p.Len())
	}
}
