package terminal

import (
	"math"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/vmath"
)

const (
	fillGlyph = '█'
	// Text at least this tall in world units renders bold
	boldHeight = 0.065
)

var consoleBackground = engine.RGB(0.08, 0.08, 0.12)

// ConsoleView is the read side of the developer console
type ConsoleView interface {
	Active() bool
	History() []string
	Line() string
}

type cell struct {
	r    rune
	fg   engine.Color
	bg   engine.Color
	bold bool
}

// Render draws nodes in order, offset shifts world layers below the UI
// A nil or inactive console is not drawn
func (t *Terminal) Render(nodes []engine.Node, offset vmath.Vec2, con ConsoleView) {
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if len(t.cells) != w*h {
		t.cells = make([]cell, w*h)
	}
	for i := range t.cells {
		t.cells[i] = cell{r: ' ', fg: engine.ColorBlack, bg: engine.ColorBlack}
	}

	for _, n := range nodes {
		if n.Layer < engine.LayerUI {
			n.Position = n.Position.Add(offset)
		}
		t.drawNode(n, w, h)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := t.cells[y*w+x]
			style := tcell.StyleDefault.
				Foreground(toTcell(c.fg)).
				Background(toTcell(c.bg)).
				Bold(c.bold)
			t.screen.SetContent(x, y, c.r, nil, style)
		}
	}

	if t.showFPS {
		rate := t.fps.Mark(time.Now())
		drawString(t.screen, 0, 0, strconv.Itoa(rate), tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	if con != nil && con.Active() {
		t.drawConsole(con, w, h)
	}
	t.screen.Show()
}

func (t *Terminal) drawNode(n engine.Node, w, h int) {
	alpha := vmath.Clamp(n.Color.A, 0, 1)
	if alpha <= 0 {
		return
	}
	color := clampColor(n.Color)

	if n.Glyph != 0 {
		x0, y0, x1, y1 := t.rect(n.Position, n.Size)
		for y := max(y0, 0); y < min(y1, h); y++ {
			for x := max(x0, 0); x < min(x1, w); x++ {
				c := &t.cells[y*w+x]
				if n.Glyph == fillGlyph {
					c.bg = mix(c.bg, color, alpha)
					c.fg = mix(c.fg, color, alpha)
					continue
				}
				c.r = n.Glyph
				c.fg = mix(c.bg, color, alpha)
			}
		}
	}

	if n.Text != "" {
		runes := []rune(n.Text)
		col, row := t.toCell(n.Position)
		if row < 0 || row >= h {
			return
		}
		start := col - len(runes)/2
		for i, r := range runes {
			x := start + i
			if x < 0 || x >= w {
				continue
			}
			c := &t.cells[row*w+x]
			c.r = r
			c.fg = mix(c.bg, color, alpha)
			c.bold = n.Size.Y >= boldHeight
		}
	}
}

// rect returns the half-open cell span covered by a node, never empty
func (t *Terminal) rect(center, size vmath.Vec2) (x0, y0, x1, y1 int) {
	_, h := t.screen.Size()
	rows := float64(h)
	half := size.Scale(0.5)
	lo, hi := center.Sub(half), center.Add(half)

	x0 = int(math.Floor(lo.X * rows))
	x1 = int(math.Ceil(hi.X * rows))
	y0 = int(math.Floor((lo.Y + 1) * rows / 2))
	y1 = int(math.Ceil((hi.Y + 1) * rows / 2))
	if x1 <= x0 {
		x0, _ = t.toCell(center)
		x1 = x0 + 1
	}
	if y1 <= y0 {
		_, y0 = t.toCell(center)
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// drawConsole fills the top half with the history and the edit line
func (t *Terminal) drawConsole(con ConsoleView, w, h int) {
	height := max(h/2, 2)
	bg := tcell.StyleDefault.Background(toTcell(consoleBackground))
	for y := 0; y < height; y++ {
		for x := 0; x < w; x++ {
			t.screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	history := con.History()
	lines := height - 1
	if len(history) > lines {
		history = history[len(history)-lines:]
	}
	text := bg.Foreground(tcell.ColorSilver)
	for i, line := range history {
		drawString(t.screen, 1, i, line, text)
	}
	drawString(t.screen, 1, height-1, "> "+con.Line()+"_", bg.Foreground(tcell.ColorWhite).Bold(true))
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func mix(a, b engine.Color, t float64) engine.Color {
	return engine.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: 1,
	}
}

func clampColor(c engine.Color) engine.Color {
	return engine.Color{
		R: vmath.Clamp(c.R, 0, 1),
		G: vmath.Clamp(c.G, 0, 1),
		B: vmath.Clamp(c.B, 0, 1),
		A: 1,
	}
}

func toTcell(c engine.Color) tcell.Color {
	return tcell.NewRGBColor(
		int32(math.Round(c.R*255)),
		int32(math.Round(c.G*255)),
		int32(math.Round(c.B*255)),
	)
}
