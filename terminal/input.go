package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/superpong/engine"
)

// Aim rotation per mouse wheel notch, radians
const wheelStep = 0.1

// Input drains pending events into one tick's input snapshot
// textMode routes printable keys to Input.Text for the console
func (t *Terminal) Input(textMode bool) engine.Input {
	var in engine.Input
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				in.Press(engine.ActionQuit)
				return t.withPointer(in)
			}
			t.translate(ev, &in, textMode)
		default:
			return t.withPointer(in)
		}
	}
}

func (t *Terminal) withPointer(in engine.Input) engine.Input {
	in.PointerY, in.HasPointer = t.pointer, t.hasPointer
	return in
}

// translate folds one event into in
func (t *Terminal) translate(ev tcell.Event, in *engine.Input, textMode bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		translateKey(ev, in, textMode)

	case *tcell.EventMouse:
		_, h := t.screen.Size()
		_, y := ev.Position()
		if h > 0 {
			t.pointer = (float64(y)+0.5)*2/float64(h) - 1
			t.hasPointer = true
		}

		buttons := ev.Buttons()
		if buttons&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0 {
			in.Press(engine.ActionConfirm)
		}
		if buttons&tcell.WheelUp != 0 {
			in.AimDelta -= wheelStep
		}
		if buttons&tcell.WheelDown != 0 {
			in.AimDelta += wheelStep
		}
		t.buttons = buttons

	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func translateKey(ev *tcell.EventKey, in *engine.Input, textMode bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		in.Press(engine.ActionQuit)
	case tcell.KeyUp:
		in.Press(engine.ActionUp)
	case tcell.KeyDown:
		in.Press(engine.ActionDown)
	case tcell.KeyLeft:
		in.Press(engine.ActionAimLeft)
	case tcell.KeyRight:
		in.Press(engine.ActionAimRight)
	case tcell.KeyEnter:
		in.Press(engine.ActionConfirm)
	case tcell.KeyEscape:
		// Closes whichever overlay is open, opens settings otherwise
		in.Press(engine.ActionBack)
		in.Press(engine.ActionSettings)
	case tcell.KeyF7:
		in.Press(engine.ActionConsole)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		in.Press(engine.ActionErase)
	case tcell.KeyRune:
		r := ev.Rune()
		if r == '`' {
			in.Press(engine.ActionConsole)
			return
		}
		if textMode {
			in.Text = append(in.Text, string(r))
			return
		}
		switch r {
		case 'w':
			in.Press(engine.ActionUp)
		case 's':
			in.Press(engine.ActionDown)
		case 'a':
			in.Press(engine.ActionAimLeft)
		case 'd':
			in.Press(engine.ActionAimRight)
		case ' ':
			in.Press(engine.ActionConfirm)
		}
	}
}
