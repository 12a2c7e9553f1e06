package overlay

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/superpong/core"
	"github.com/lixenwraith/superpong/engine"
)

const defaultCadence = 16 * time.Millisecond

// Fader is anything with adjustable opacity
type Fader interface {
	SetAlpha(alpha float64) error
}

// NodeFader fades one graph node
type NodeFader struct {
	Graph  *engine.Graph
	Handle engine.Handle
}

func (f NodeFader) SetAlpha(alpha float64) error {
	return f.Graph.SetAlpha(f.Handle, alpha)
}

// Nodes wraps handles of one graph as faders
func Nodes(g *engine.Graph, hs ...engine.Handle) []Fader {
	out := make([]Fader, len(hs))
	for i, h := range hs {
		out[i] = NodeFader{Graph: g, Handle: h}
	}
	return out
}

// Group owns the fades of one scene, Close cancels and joins all of them
type Group struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	tp      engine.TimeProvider
	cadence time.Duration
	log     *zap.Logger

	mu     sync.Mutex
	closed bool
}

func NewGroup(parent context.Context, tp engine.TimeProvider, cadence time.Duration, log *zap.Logger) *Group {
	if cadence <= 0 {
		cadence = defaultCadence
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Group{ctx: ctx, cancel: cancel, tp: tp, cadence: cadence, log: log}
}

// Task is one running fade
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel stops the fade and waits for its goroutine to exit
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancel()
	<-t.done
}

// Done is closed when the fade goroutine has exited
func (t *Task) Done() <-chan struct{} { return t.done }

// Fade animates targets along curve, then runs once the curve completes uncancelled
// Returns nil after Close
func (g *Group) Fade(targets []Fader, curve Curve, T time.Duration, then func()) *Task {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}

	ctx, cancel := context.WithCancel(g.ctx)
	task := &Task{cancel: cancel, done: make(chan struct{})}
	start := g.tp.Now()

	g.wg.Add(1)
	core.Go(func() {
		defer g.wg.Done()
		defer close(task.done)
		defer cancel()

		if g.run(ctx, targets, curve, T, start) && then != nil {
			then()
		}
	})
	return task
}

// run samples the curve every cadence tick and reports whether it reached the end
func (g *Group) run(ctx context.Context, targets []Fader, curve Curve, T time.Duration, start time.Time) bool {
	ticker := time.NewTicker(g.cadence)
	defer ticker.Stop()

	for {
		alpha, done := Opacity(curve, g.tp.Now().Sub(start), T)
		for _, f := range targets {
			if err := f.SetAlpha(alpha); err != nil {
				// Target removed underneath, nothing left to animate
				if errors.Is(err, engine.ErrStaleHandle) || errors.Is(err, engine.ErrGraphClosed) {
					return false
				}
				g.log.Warn("fade target", zap.Stringer("curve", curve), zap.Error(err))
				return false
			}
		}
		if done {
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

// Close cancels every running fade and blocks until all have exited, later Fade calls are ignored
func (g *Group) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.cancel()
	g.wg.Wait()
}
