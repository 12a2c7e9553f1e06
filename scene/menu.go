package scene

import (
	"context"
	"math"
	"time"

	"github.com/lixenwraith/superpong/core"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/overlay"
	"github.com/lixenwraith/superpong/vmath"
)

// RevealPeriod is how long the menu takes to fade in from black
const RevealPeriod = 5 * time.Second

var (
	buttonIdle     = engine.RGB(0.75, 0.75, 0.75)
	buttonSelected = engine.RGB(1, 0.8, 0.2)
)

type menuButton struct {
	label  string
	y      float64
	handle engine.Handle
	press  func() *core.Command
}

// Menu is the title screen with Play, Settings and Quit
type Menu struct {
	d          Deps
	group      *overlay.Group
	background *Background
	owned      teardown
	cover      engine.Handle
	buttons    []menuButton
	selected   int
	width      float64
	pointer    float64
	hasPointer bool
}

func NewMenu(ctx context.Context, d Deps, t engine.Tick) (*Menu, error) {
	m := &Menu{
		d:     d,
		group: overlay.NewGroup(ctx, d.Time, d.FadeCadence, d.logger()),
		width: t.Width,
		buttons: []menuButton{
			{label: "Play", y: 0.3, press: func() *core.Command { return core.SwitchScene(core.SceneIngame) }},
			{label: "Settings", y: 0.55, press: func() *core.Command { return core.ShowSettingsPanel(true) }},
			{label: "Quit", y: 0.8, press: core.Exit},
		},
	}

	bg, err := NewBackground(d.Graph, t)
	if err != nil {
		m.Unload()
		return nil, err
	}
	m.background = bg

	center := t.Width / 2
	labels := []engine.Node{
		{Position: vmath.V(center, -0.45), Text: "S U P E R   P O N G", Color: engine.RGB(0.9, 0.3, 0.1), Layer: engine.LayerUI, Visible: true},
		{Position: vmath.V(0.15, 0.95), Text: d.Version, Color: engine.RGB(0.6, 0.6, 0.6), Layer: engine.LayerUI, Visible: true},
	}
	for _, n := range labels {
		h, err := d.Graph.Create(n)
		if err != nil {
			m.Unload()
			return nil, err
		}
		m.owned = append(m.owned, h)
	}

	for i := range m.buttons {
		b := &m.buttons[i]
		h, err := d.Graph.Create(engine.Node{
			Position: vmath.V(center, b.y),
			Text:     b.label,
			Color:    buttonIdle,
			Layer:    engine.LayerUI,
			Visible:  true,
		})
		if err != nil {
			m.Unload()
			return nil, err
		}
		b.handle = h
		m.owned = append(m.owned, h)
	}

	cover, err := d.Graph.Create(engine.Node{
		Position: vmath.V(center, 0),
		Size:     vmath.V(t.Width, 2),
		Glyph:    '█',
		Color:    engine.ColorBlack,
		Layer:    engine.LayerOverlay + 5,
		Visible:  true,
	})
	if err != nil {
		m.Unload()
		return nil, err
	}
	m.cover = cover
	m.group.Fade(overlay.Nodes(d.Graph, cover), overlay.Reveal, RevealPeriod, func() {
		_ = d.Graph.Remove(cover)
	})

	m.highlight()
	return m, nil
}

// Selected returns the highlighted button label
func (m *Menu) Selected() string { return m.buttons[m.selected].label }

func (m *Menu) Update(t engine.Tick) (*core.Command, error) {
	in := t.Input

	switch {
	case in.Pressed(engine.ActionUp):
		m.selected = (m.selected + len(m.buttons) - 1) % len(m.buttons)
	case in.Pressed(engine.ActionDown):
		m.selected = (m.selected + 1) % len(m.buttons)
	case in.HasPointer && (!m.hasPointer || in.PointerY != m.pointer):
		// Only a moving pointer takes the selection from the keyboard
		m.pointer, m.hasPointer = in.PointerY, true
		for i, b := range m.buttons {
			if math.Abs(in.PointerY-b.y) < 0.1 {
				m.selected = i
			}
		}
	}

	if t.Width > 0 && t.Width != m.width {
		m.width = t.Width
		for _, b := range m.buttons {
			_ = m.d.Graph.Update(b.handle, func(n *engine.Node) { n.Position.X = t.Width / 2 })
		}
	}
	m.highlight()
	m.background.Update(t)

	if in.Pressed(engine.ActionConfirm) {
		return m.buttons[m.selected].press(), nil
	}
	return nil, nil
}

func (m *Menu) highlight() {
	for i, b := range m.buttons {
		color := buttonIdle
		text := b.label
		if i == m.selected {
			color = buttonSelected
			text = "> " + b.label + " <"
		}
		_ = m.d.Graph.Update(b.handle, func(n *engine.Node) {
			n.Color = color
			n.Text = text
		})
	}
}

// Unload joins the reveal fade before releasing nodes
func (m *Menu) Unload() {
	m.group.Close()
	if m.background != nil {
		m.background.Unload()
	}
	m.owned.release(m.d.Graph)
	if !m.cover.IsZero() {
		_ = m.d.Graph.Remove(m.cover)
	}
}
