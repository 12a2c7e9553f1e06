package scene

import (
	"fmt"

	"github.com/lixenwraith/superpong/config"
	"github.com/lixenwraith/superpong/core"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

var fpsSteps = []int{0, 30, 60, 120, 144, 240}

const shakeStep = 25

type settingRow struct {
	label  string
	value  func(s config.Settings) string
	adjust func(s config.Settings, dir int) config.Settings
}

var settingRows = []settingRow{
	{
		label: "Vsync",
		value: func(s config.Settings) string { return onOff(s.VSync) },
		adjust: func(s config.Settings, _ int) config.Settings {
			s.VSync = !s.VSync
			return s
		},
	},
	{
		label: "Fullscreen",
		value: func(s config.Settings) string { return s.Fullscreen.String() },
		adjust: func(s config.Settings, dir int) config.Settings {
			s.Fullscreen = config.Fullscreen(wrap(int(s.Fullscreen)+dir, int(config.FullscreenExclusive)+1))
			return s
		},
	},
	{
		label: "FPS limit",
		value: func(s config.Settings) string {
			if s.FPSLimit == 0 {
				return "unlimited"
			}
			return fmt.Sprint(s.FPSLimit)
		},
		adjust: func(s config.Settings, dir int) config.Settings {
			i := 0
			for j, v := range fpsSteps {
				if v <= s.FPSLimit {
					i = j
				}
			}
			s.FPSLimit = fpsSteps[wrap(i+dir, len(fpsSteps))]
			return s
		},
	},
	{
		label: "Screen shake",
		value: func(s config.Settings) string { return fmt.Sprintf("%d%%", s.ScreenShake) },
		adjust: func(s config.Settings, dir int) config.Settings {
			s.ScreenShake = int(vmath.Clamp(float64(s.ScreenShake+dir*shakeStep), 0, config.MaxScreenShake))
			return s
		},
	},
	{
		label: "Particle amount",
		value: func(s config.Settings) string {
			if s.ParticleHigh {
				return "high"
			}
			return "low"
		},
		adjust: func(s config.Settings, _ int) config.Settings {
			s.ParticleHigh = !s.ParticleHigh
			return s
		},
	},
	{
		label: "Difficulty",
		value: func(s config.Settings) string { return s.Difficulty.String() },
		adjust: func(s config.Settings, _ int) config.Settings {
			if s.Difficulty == config.DifficultyHard {
				s.Difficulty = config.DifficultyNormal
			} else {
				s.Difficulty = config.DifficultyHard
			}
			return s
		},
	},
}

// SettingsPanel is the overlay editing config.Settings, it outlives scenes
type SettingsPanel struct {
	graph    *engine.Graph
	settings config.Settings
	visible  bool
	selected int // len(settingRows) is the back button
	header   engine.Handle
	rows     []engine.Handle
}

func NewSettingsPanel(g *engine.Graph, s config.Settings, width float64) (*SettingsPanel, error) {
	p := &SettingsPanel{graph: g, settings: s}
	n := len(settingRows) + 1
	top := -0.7
	step := 1.3 / float64(n)

	h, err := g.Create(engine.Node{
		Position: vmath.V(width/2, top-0.15),
		Text:     "Settings",
		Color:    engine.RGB(1, 0.8, 0.2),
		Layer:    engine.LayerOverlay + 2,
	})
	if err != nil {
		return nil, err
	}
	p.header = h

	for i := 0; i < n; i++ {
		h, err := g.Create(engine.Node{
			Position: vmath.V(width/2, top+float64(i+1)*step),
			Color:    engine.ColorWhite,
			Layer:    engine.LayerOverlay + 2,
		})
		if err != nil {
			p.Remove()
			return nil, err
		}
		p.rows = append(p.rows, h)
	}
	p.refresh()
	return p, nil
}

func (p *SettingsPanel) Visible() bool { return p.visible }

// Show toggles node visibility
func (p *SettingsPanel) Show(show bool) {
	p.visible = show
	p.selected = 0
	p.refresh()
}

// SetSettings replaces the displayed values after the controller applied them
func (p *SettingsPanel) SetSettings(s config.Settings) {
	p.settings = s
	p.refresh()
}

// Update handles navigation while visible, changes are returned as commands
func (p *SettingsPanel) Update(t engine.Tick) *core.Command {
	if !p.visible {
		return nil
	}
	in := t.Input
	back := len(settingRows)

	switch {
	case in.Pressed(engine.ActionBack):
		return core.ShowSettingsPanel(false)
	case in.Pressed(engine.ActionUp):
		p.selected = wrap(p.selected-1, back+1)
	case in.Pressed(engine.ActionDown):
		p.selected = wrap(p.selected+1, back+1)
	case in.Pressed(engine.ActionConfirm):
		if p.selected == back {
			return core.ShowSettingsPanel(false)
		}
		return core.ApplySettings(settingRows[p.selected].adjust(p.settings, 1))
	case in.Pressed(engine.ActionAimRight) && p.selected < back:
		return core.ApplySettings(settingRows[p.selected].adjust(p.settings, 1))
	case in.Pressed(engine.ActionAimLeft) && p.selected < back:
		return core.ApplySettings(settingRows[p.selected].adjust(p.settings, -1))
	}
	p.refresh()
	return nil
}

func (p *SettingsPanel) refresh() {
	_ = p.graph.Update(p.header, func(n *engine.Node) { n.Visible = p.visible })
	for i, h := range p.rows {
		text := "Back"
		if i < len(settingRows) {
			r := settingRows[i]
			text = fmt.Sprintf("%-16s %s", r.label, r.value(p.settings))
		}
		color := engine.ColorWhite
		if i == p.selected {
			color = buttonSelected
			text = "> " + text
		}
		_ = p.graph.Update(h, func(n *engine.Node) {
			n.Text = text
			n.Color = color
			n.Visible = p.visible
		})
	}
}

// Remove releases the panel nodes
func (p *SettingsPanel) Remove() {
	_ = p.graph.Remove(p.header)
	teardown(p.rows).release(p.graph)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
