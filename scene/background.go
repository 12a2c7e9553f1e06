package scene

import (
	"math"
	"time"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

// scrollSpeed is the base parallax speed in world units per second
const scrollSpeed = 0.15

// Parallax factors relative to scrollSpeed, nearest layer moves fastest
var parallaxFactors = [...]float64{1.0, 1.3, 1.5, 2.0}

type parallaxLayer struct {
	factor  float64
	handles []engine.Handle
	base    []float64
}

type decoration struct {
	glyph rune
	color engine.Color
	y     float64
	size  vmath.Vec2
	count int
	layer engine.Layer
}

var layerDecor = [len(parallaxFactors)]decoration{
	{glyph: '~', color: engine.RGB(0.55, 0.6, 0.75), y: -0.55, size: vmath.V(0.05, 0.05), count: 5, layer: engine.LayerFar},
	{glyph: '▲', color: engine.RGB(0.25, 0.4, 0.3), y: 0.75, size: vmath.V(0.3, 0.2), count: 6, layer: engine.LayerFar + 1},
	{glyph: '≈', color: engine.RGB(0.85, 0.85, 0.9), y: -0.3, size: vmath.V(0.08, 0.05), count: 4, layer: engine.LayerFar + 2},
	{glyph: '▓', color: engine.RGB(0.35, 0.25, 0.15), y: 0.95, size: vmath.V(0.25, 0.1), count: 16, layer: engine.LayerTerrain},
}

// Background is the sky, the sun, and four scrolling parallax layers
type Background struct {
	graph  *engine.Graph
	sky    engine.Handle
	sun    engine.Handle
	layers []parallaxLayer
	born   time.Time
	width  float64
}

// NewBackground spreads decorations over span, the visible width plus a margin
func NewBackground(g *engine.Graph, t engine.Tick) (*Background, error) {
	b := &Background{graph: g, born: t.Now, width: t.Width}
	var owned teardown

	fail := func(err error) (*Background, error) {
		owned.release(g)
		return nil, err
	}

	sky, err := g.Create(engine.Node{
		Position: vmath.V(t.Width/2, 0),
		Size:     vmath.V(t.Width, 2),
		Glyph:    '█',
		Color:    engine.RGB(0.1, 0.12, 0.25),
		Layer:    engine.LayerSky,
		Visible:  true,
	})
	if err != nil {
		return fail(err)
	}
	owned = append(owned, sky)
	b.sky = sky

	sun, err := g.Create(engine.Node{
		Position: vmath.V(0.8, -0.7),
		Size:     vmath.V(0.1, 0.1),
		Glyph:    '☼',
		Color:    engine.RGB(1, 0.9, 0.5),
		Layer:    engine.LayerSky + 1,
		Visible:  true,
	})
	if err != nil {
		return fail(err)
	}
	owned = append(owned, sun)
	b.sun = sun

	span := b.span()
	for i, d := range layerDecor {
		pl := parallaxLayer{factor: parallaxFactors[i]}
		for j := 0; j < d.count; j++ {
			x := span * (float64(j) + t.Rand.Float64()*0.5) / float64(d.count)
			h, err := g.Create(engine.Node{
				Position: vmath.V(x, d.y),
				Size:     d.size,
				Glyph:    d.glyph,
				Color:    d.color,
				Layer:    d.layer,
				Visible:  true,
			})
			if err != nil {
				return fail(err)
			}
			owned = append(owned, h)
			pl.handles = append(pl.handles, h)
			pl.base = append(pl.base, x)
		}
		b.layers = append(b.layers, pl)
	}
	return b, nil
}

func (b *Background) span() float64 {
	return b.width + 0.5
}

// Shift returns the scroll distance of layer i at now
func (b *Background) Shift(i int, now time.Time) float64 {
	return now.Sub(b.born).Seconds() * scrollSpeed * b.layers[i].factor
}

// Update scrolls every layer and wraps decorations around the span
func (b *Background) Update(t engine.Tick) {
	if t.Width > 0 && t.Width != b.width {
		b.width = t.Width
		_ = b.graph.Update(b.sky, func(n *engine.Node) {
			n.Position = vmath.V(t.Width/2, 0)
			n.Size = vmath.V(t.Width, 2)
		})
	}

	span := b.span()
	for i, pl := range b.layers {
		shift := b.Shift(i, t.Now)
		for j, h := range pl.handles {
			x := math.Mod(pl.base[j]-shift, span)
			if x < 0 {
				x += span
			}
			_ = b.graph.Update(h, func(n *engine.Node) {
				n.Position.X = x
			})
		}
	}
}

// Unload removes every background node
func (b *Background) Unload() {
	_ = b.graph.Remove(b.sky)
	_ = b.graph.Remove(b.sun)
	for _, pl := range b.layers {
		teardown(pl.handles).release(b.graph)
	}
}
