package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const alertFooter = "press any key"

// Alert draws a centered dialog and blocks until a key is pressed or the
// screen stops delivering events
func (t *Terminal) Alert(title, message string) {
	t.log.Error("alert", zap.String("title", title), zap.String("message", message))
	t.drawAlert(title, message)

	for ev := range t.events {
		if _, ok := ev.(*tcell.EventKey); ok {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			t.screen.Sync()
			t.drawAlert(title, message)
		}
	}
}

func (t *Terminal) drawAlert(title, message string) {
	w, h := t.screen.Size()
	lines := strings.Split(message, "\n")

	width := len([]rune(title)) + 4
	for _, l := range append(lines, alertFooter) {
		width = max(width, len([]rune(l))+4)
	}
	width = min(width, w)
	height := min(len(lines)+4, h)
	x0, y0 := (w-width)/2, (h-height)/2

	box := tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite)
	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			t.screen.SetContent(x, y, ' ', nil, box)
		}
	}

	drawString(t.screen, x0+(width-len([]rune(title)))/2, y0, title, box.Bold(true))
	for i, l := range lines {
		drawString(t.screen, x0+2, y0+2+i, l, box)
	}
	drawString(t.screen, x0+(width-len(alertFooter))/2, y0+height-1, alertFooter, box.Italic(true))
	t.screen.Show()
}
