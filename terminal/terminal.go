package terminal

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/superpong/config"
	"github.com/lixenwraith/superpong/core"
	"github.com/lixenwraith/superpong/vmath"
)

const (
	eventBuffer = 100
	// Pacing applied when vsync is on and the frame rate is unlimited
	vsyncInterval = 16 * time.Millisecond
)

// Terminal adapts a tcell screen: it draws the scene graph, collects input,
// applies display settings and shows fatal alerts
type Terminal struct {
	screen tcell.Screen
	log    *zap.Logger
	events chan tcell.Event
	cells  []cell

	pointer    float64
	hasPointer bool
	buttons    tcell.ButtonMask

	interval time.Duration
	showFPS  bool
	fps      frameCounter
}

// New initializes screen, a nil screen opens the controlling terminal
func New(screen tcell.Screen, log *zap.Logger) (*Terminal, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen: screen,
		log:    log,
		events: make(chan tcell.Event, eventBuffer),
	}
	core.Go(t.poll)
	return t, nil
}

// poll forwards screen events until Fini makes PollEvent return nil
func (t *Terminal) poll() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			close(t.events)
			return
		}
		t.events <- ev
	}
}

// Screen exposes the underlying tcell screen
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Width returns the visible world width, one row spans 2/rows world units
// and a cell is half as wide as it is tall
func (t *Terminal) Width() float64 {
	w, h := t.screen.Size()
	if h <= 0 {
		return 0
	}
	return float64(w) / float64(h)
}

// toCell maps a world position to a cell, the top row is y = -1
func (t *Terminal) toCell(p vmath.Vec2) (int, int) {
	_, h := t.screen.Size()
	rows := float64(h)
	return int(math.Floor(p.X * rows)), int(math.Floor((p.Y + 1) * rows / 2))
}

// ApplySettings maps settings onto the terminal, vsync and the frame cap set the
// present interval, fullscreen and resolution belong to the host terminal
func (t *Terminal) ApplySettings(s config.Settings) (config.Settings, error) {
	t.interval = s.FrameInterval()
	if t.interval == 0 && s.VSync {
		t.interval = vsyncInterval
	}
	t.log.Debug("display settings",
		zap.Duration("interval", t.interval),
		zap.Stringer("fullscreen", s.Fullscreen),
	)
	return s, nil
}

// FrameInterval is the minimum time between presented frames, zero is unpaced
func (t *Terminal) FrameInterval() time.Duration { return t.interval }

// ShowFPS toggles the frame rate readout in the top-left corner
func (t *Terminal) ShowFPS(show bool) { t.showFPS = show }

// Close restores the terminal
func (t *Terminal) Close() {
	t.screen.Fini()
}
