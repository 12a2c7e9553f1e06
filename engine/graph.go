package engine

import (
	"errors"
	"sort"
	"sync"

	"github.com/lixenwraith/superpong/vmath"
)

var (
	// ErrGraphClosed is returned when creating nodes after the graph was closed
	ErrGraphClosed = errors.New("scene graph closed")
	// ErrGraphFull is returned when the node limit is reached
	ErrGraphFull = errors.New("scene graph full")
	// ErrStaleHandle is returned for handles whose node was already removed
	ErrStaleHandle = errors.New("stale node handle")
)

// Layer orders nodes for drawing, lower layers are drawn first
type Layer int

const (
	LayerSky Layer = iota * 10
	LayerFar
	LayerTerrain
	LayerEntity
	LayerProjectile
	LayerParticle
	LayerUI
	LayerOverlay
)

// Handle addresses a node in the arena
// Generation guards against reuse of a freed slot
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h was never assigned
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// In reports whether h is among ids
func (h Handle) In(ids []Handle) bool {
	for _, id := range ids {
		if id == h {
			return true
		}
	}
	return false
}

// ShapeKind selects the collider geometry
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

// Shape is a collider centered on a position
// For circles Half.X is the radius
type Shape struct {
	Kind ShapeKind
	Half vmath.Vec2
}

// Rect returns a rectangle collider with full width w and height h
func Rect(w, h float64) Shape {
	return Shape{Kind: ShapeRect, Half: vmath.V(w/2, h/2)}
}

// Circle returns a circle collider of radius r
func Circle(r float64) Shape {
	return Shape{Kind: ShapeCircle, Half: vmath.V(r, r)}
}

// Color is linear RGBA, channels above 1 are allowed for flash effects
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

var (
	ColorWhite = RGB(1, 1, 1)
	ColorBlack = RGB(0, 0, 0)
)

// Node is the renderable and physical state of a scene-graph object
type Node struct {
	Position vmath.Vec2
	Size     vmath.Vec2 // Full drawn extent in world units
	Glyph    rune       // Fill glyph, zero draws Text only
	Text     string
	Color    Color
	Layer    Layer
	Visible  bool
	Collider *Shape // Nil excludes the node from overlap queries
}

type slot struct {
	gen  uint32
	live bool
	node Node
}

// Graph is the node arena shared by scene entities, the renderer, and overlay animations
// All access is guarded internally, handles are stable until Remove
type Graph struct {
	mu     sync.RWMutex
	slots  []slot
	free   []uint32
	count  int
	limit  int
	closed bool
}

// NewGraph creates an arena holding at most limit live nodes, limit <= 0 means unbounded
func NewGraph(limit int) *Graph {
	return &Graph{limit: limit}
}

// Create registers a node and returns its handle
func (g *Graph) Create(n Node) (Handle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return Handle{}, ErrGraphClosed
	}
	if g.limit > 0 && g.count >= g.limit {
		return Handle{}, ErrGraphFull
	}

	var idx uint32
	if k := len(g.free); k > 0 {
		idx = g.free[k-1]
		g.free = g.free[:k-1]
	} else {
		g.slots = append(g.slots, slot{})
		idx = uint32(len(g.slots) - 1)
	}

	s := &g.slots[idx]
	s.gen++
	s.live = true
	s.node = n
	g.count++
	return Handle{index: idx, gen: s.gen}, nil
}

// lookup must be called with the lock held
func (g *Graph) lookup(h Handle) *slot {
	if h.gen == 0 || int(h.index) >= len(g.slots) {
		return nil
	}
	s := &g.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil
	}
	return s
}

// Remove releases the node, the handle becomes stale
func (g *Graph) Remove(h Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.lookup(h)
	if s == nil {
		return ErrStaleHandle
	}
	s.live = false
	s.node = Node{}
	g.free = append(g.free, h.index)
	g.count--
	return nil
}

// Get returns a copy of the node
func (g *Graph) Get(h Handle) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := g.lookup(h)
	if s == nil {
		return Node{}, false
	}
	return s.node, true
}

// Update mutates the node in place under the arena lock
func (g *Graph) Update(h Handle, fn func(n *Node)) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.lookup(h)
	if s == nil {
		return ErrStaleHandle
	}
	fn(&s.node)
	return nil
}

// SetAlpha sets the node opacity
func (g *Graph) SetAlpha(h Handle, alpha float64) error {
	return g.Update(h, func(n *Node) {
		n.Color.A = vmath.Clamp(alpha, 0, 1)
	})
}

// Intersections returns handles of collider nodes overlapping shape placed at center, visibility is ignored
// Result order follows arena index order
func (g *Graph) Intersections(shape Shape, center vmath.Vec2) []Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var hits []Handle
	for i := range g.slots {
		s := &g.slots[i]
		if !s.live || s.node.Collider == nil {
			continue
		}
		if overlaps(shape, center, *s.node.Collider, s.node.Position) {
			hits = append(hits, Handle{index: uint32(i), gen: s.gen})
		}
	}
	return hits
}

// Snapshot returns visible nodes ordered by layer then creation slot
func (g *Graph) Snapshot() []Node {
	g.mu.RLock()
	nodes := make([]Node, 0, g.count)
	for i := range g.slots {
		s := &g.slots[i]
		if s.live && s.node.Visible {
			nodes = append(nodes, s.node)
		}
	}
	g.mu.RUnlock()

	sort.SliceStable(nodes, func(a, b int) bool {
		return nodes[a].Layer < nodes[b].Layer
	})
	return nodes
}

// Len returns the number of live nodes
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.count
}

// Close drops every node and rejects further creation
func (g *Graph) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.slots = nil
	g.free = nil
	g.count = 0
}

func overlaps(a Shape, ac vmath.Vec2, b Shape, bc vmath.Vec2) bool {
	switch {
	case a.Kind == ShapeCircle && b.Kind == ShapeCircle:
		r := a.Half.X + b.Half.X
		d := ac.Sub(bc)
		return d.Dot(d) < r*r
	case a.Kind == ShapeCircle:
		return circleRect(ac, a.Half.X, bc, b.Half)
	case b.Kind == ShapeCircle:
		return circleRect(bc, b.Half.X, ac, a.Half)
	default:
		dx := ac.X - bc.X
		dy := ac.Y - bc.Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		return dx < a.Half.X+b.Half.X && dy < a.Half.Y+b.Half.Y
	}
}

func circleRect(c vmath.Vec2, r float64, rc vmath.Vec2, half vmath.Vec2) bool {
	nearest := vmath.V(
		vmath.Clamp(c.X, rc.X-half.X, rc.X+half.X),
		vmath.Clamp(c.Y, rc.Y-half.Y, rc.Y+half.Y),
	)
	d := c.Sub(nearest)
	return d.Dot(d) < r*r
}
