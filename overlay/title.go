package overlay

import (
	"time"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

const (
	// BannerPeriod is T of the title banner curve
	BannerPeriod = time.Second
	// TextScale converts announcement sizes to world units
	TextScale = 0.001
)

var shadowOffset = vmath.V(0.01, 0.01)

// Title is a centered banner with a drop shadow
type Title struct {
	graph  *engine.Graph
	group  *Group
	shadow engine.Handle
	front  engine.Handle
	task   *Task
}

// NewTitle creates the banner nodes fully transparent at anchor
func NewTitle(g *engine.Graph, group *Group, anchor vmath.Vec2) (*Title, error) {
	shadow, err := g.Create(engine.Node{
		Position: anchor.Add(shadowOffset),
		Color:    engine.Color{A: 0},
		Layer:    engine.LayerOverlay,
		Visible:  true,
	})
	if err != nil {
		return nil, err
	}
	front, err := g.Create(engine.Node{
		Position: anchor,
		Color:    engine.Color{R: 1, G: 1, B: 1, A: 0},
		Layer:    engine.LayerOverlay + 1,
		Visible:  true,
	})
	if err != nil {
		_ = g.Remove(shadow)
		return nil, err
	}
	return &Title{graph: g, group: group, shadow: shadow, front: front}, nil
}

// Show replaces the banner text and restarts the fade
func (t *Title) Show(color engine.Color, size float64, text string) {
	t.task.Cancel()

	extent := vmath.V(float64(len([]rune(text)))*size*TextScale*0.5, size*TextScale)
	_ = t.graph.Update(t.shadow, func(n *engine.Node) {
		n.Text = text
		n.Size = extent
		n.Color.A = 0
	})
	_ = t.graph.Update(t.front, func(n *engine.Node) {
		n.Text = text
		n.Size = extent
		n.Color = engine.Color{R: color.R, G: color.G, B: color.B, A: 0}
	})

	t.task = t.group.Fade(Nodes(t.graph, t.shadow, t.front), Banner, BannerPeriod, nil)
}

// Text returns the current banner text
func (t *Title) Text() string {
	n, _ := t.graph.Get(t.front)
	return n.Text
}

// Remove stops the fade and releases both nodes
func (t *Title) Remove() {
	t.task.Cancel()
	_ = t.graph.Remove(t.shadow)
	_ = t.graph.Remove(t.front)
}
