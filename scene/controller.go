package scene

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/superpong/config"
	"github.com/lixenwraith/superpong/console"
	"github.com/lixenwraith/superpong/core"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

// Controller owns the active scene and executes commands
type Controller struct {
	ctx       context.Context
	d         Deps
	log       *zap.Logger
	display   Display
	console   *console.Console
	panel     *SettingsPanel
	settings  config.Settings
	configDir string

	scene Scene
	kind  core.SceneKind
	last  engine.Tick
	exit  bool
}

// NewController builds the settings panel and the menu scene, t seeds the first scene build
func NewController(ctx context.Context, d Deps, display Display, con *console.Console, settings config.Settings, configDir string, t engine.Tick) (*Controller, error) {
	if d.Session == nil {
		return nil, fmt.Errorf("controller: nil session state")
	}
	panel, err := NewSettingsPanel(d.Graph, settings, t.Width)
	if err != nil {
		return nil, fmt.Errorf("settings panel: %w", err)
	}
	c := &Controller{
		ctx:       ctx,
		d:         d,
		log:       d.logger(),
		display:   display,
		console:   con,
		panel:     panel,
		settings:  settings,
		configDir: configDir,
		last:      t,
	}
	if err := c.Switch(core.SceneMenu); err != nil {
		panel.Remove()
		return nil, err
	}
	return c, nil
}

func (c *Controller) build(kind core.SceneKind) (Scene, error) {
	t := c.last
	t.Settings = c.settings
	switch kind {
	case core.SceneMenu:
		return NewMenu(c.ctx, c.d, t)
	case core.SceneIngame:
		return NewIngame(c.ctx, c.d, t)
	default:
		return nil, fmt.Errorf("unknown scene %s", kind)
	}
}

// Switch fully builds the new scene before unloading the old one
func (c *Controller) Switch(kind core.SceneKind) error {
	next, err := c.build(kind)
	if err != nil {
		return fmt.Errorf("switch to %s: %w", kind, err)
	}
	prev := c.scene
	c.scene, c.kind = next, kind
	if prev != nil {
		prev.Unload()
	}
	c.log.Info("scene switched", zap.Stringer("scene", kind))
	return nil
}

// Execute applies one command, only scene construction failures are returned
func (c *Controller) Execute(cmd *core.Command) error {
	if cmd == nil {
		return nil
	}
	c.log.Debug("command", zap.Stringer("cmd", cmd))

	switch cmd.Kind {
	case core.CmdExit:
		c.exit = true
	case core.CmdShowSettingsPanel:
		c.panel.Show(cmd.Show)
	case core.CmdSwitchScene:
		return c.Switch(cmd.Scene)
	case core.CmdApplySettings:
		c.applySettings(cmd.Settings)
	case core.CmdChangeStage:
		c.changeStage(cmd.Stage)
	default:
		c.log.Warn("unknown command", zap.Stringer("cmd", cmd))
	}
	return nil
}

func (c *Controller) applySettings(s config.Settings) {
	if err := s.Validate(); err != nil {
		c.report(err.Error())
		return
	}

	applied := s
	if c.display != nil {
		got, err := c.display.ApplySettings(s)
		if err != nil {
			c.report(fmt.Sprintf("Failed to apply settings: %v", err))
		}
		if got.Validate() == nil {
			applied = got
		}
	}

	prev := c.settings
	c.settings = applied
	if c.console != nil {
		c.console.SetSettings(applied)
		for _, line := range console.Changes(prev, applied) {
			c.console.Print(line)
		}
	}
	c.panel.SetSettings(applied)

	if c.configDir != "" {
		if err := config.SaveSettings(c.configDir, applied); err != nil {
			c.report(fmt.Sprintf("Failed to save settings: %v", err))
			return
		}
	}
	c.log.Info("settings applied",
		zap.Bool("vsync", applied.VSync),
		zap.Int("fps_limit", applied.FPSLimit),
		zap.Stringer("fullscreen", applied.Fullscreen),
		zap.Stringer("difficulty", applied.Difficulty),
	)
}

func (c *Controller) changeStage(n uint32) {
	prev := c.d.Session.Stage
	c.d.Session.Stage = n
	if c.d.Store != nil {
		if err := c.d.Store.Save(*c.d.Session); err != nil {
			c.report(fmt.Sprintf("Failed to save game: %v", err))
			return
		}
	}
	c.report(fmt.Sprintf("stage set: %d -> %d", prev, n))
}

func (c *Controller) report(msg string) {
	c.log.Warn(msg)
	if c.console != nil {
		c.console.Print(msg)
	}
}

// Update routes input to the console or settings panel, then advances the scene
// A returned error is fatal
func (c *Controller) Update(t engine.Tick) error {
	t.Settings = c.settings
	c.last = t
	in := t.Input

	if in.Pressed(engine.ActionQuit) {
		return c.Execute(core.Exit())
	}
	if in.Pressed(engine.ActionConsole) && c.console != nil {
		c.console.Toggle()
	}

	switch {
	case c.console != nil && c.console.Active():
		if err := c.Execute(c.feedConsole(in)); err != nil {
			return err
		}
		t.Input = pointerOnly(in)
	case in.Pressed(engine.ActionSettings):
		c.panel.Show(!c.panel.Visible())
		t.Input = pointerOnly(in)
	case c.panel.Visible():
		if err := c.Execute(c.panel.Update(t)); err != nil {
			return err
		}
		t.Input = pointerOnly(in)
	}

	cmd, err := c.scene.Update(t)
	if err != nil {
		return fmt.Errorf("update %s: %w", c.kind, err)
	}
	return c.Execute(cmd)
}

func (c *Controller) feedConsole(in engine.Input) *core.Command {
	for _, s := range in.Text {
		c.console.Type(s)
	}
	switch {
	case in.Pressed(engine.ActionErase):
		c.console.Backspace()
	case in.Pressed(engine.ActionUp):
		c.console.Recall()
	case in.Pressed(engine.ActionBack):
		c.console.Toggle()
	case in.Pressed(engine.ActionConfirm):
		return c.console.Submit()
	}
	return nil
}

// pointerOnly strips discrete actions so an open overlay swallows them
func pointerOnly(in engine.Input) engine.Input {
	return engine.Input{PointerY: in.PointerY, HasPointer: in.HasPointer}
}

// Exit reports whether an exit command was executed
func (c *Controller) Exit() bool { return c.exit }

// Settings returns the applied settings
func (c *Controller) Settings() config.Settings { return c.settings }

// Kind returns the active scene kind
func (c *Controller) Kind() core.SceneKind { return c.kind }

// Scene returns the active scene
func (c *Controller) Scene() Scene { return c.scene }

// Panel returns the settings overlay
func (c *Controller) Panel() *SettingsPanel { return c.panel }

// CameraOffset returns the render offset of the active scene
func (c *Controller) CameraOffset() vmath.Vec2 {
	if cam, ok := c.scene.(interface{ CameraOffset() vmath.Vec2 }); ok {
		return cam.CameraOffset()
	}
	return vmath.Vec2{}
}

// Close unloads the active scene and the panel
func (c *Controller) Close() {
	if c.scene != nil {
		c.scene.Unload()
		c.scene = nil
	}
	c.panel.Remove()
}
