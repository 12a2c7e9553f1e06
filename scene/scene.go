package scene

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/superpong/audio"
	"github.com/lixenwraith/superpong/config"
	"github.com/lixenwraith/superpong/core"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/level"
	"github.com/lixenwraith/superpong/session"
)

// Scene is one top-level screen driven by the controller
type Scene interface {
	// Update advances one tick, a returned error is fatal
	Update(t engine.Tick) (*core.Command, error)
	// Unload cancels animations and releases every node the scene owns
	Unload()
}

// Display applies presentation settings and returns what it could actually honor
type Display interface {
	ApplySettings(s config.Settings) (config.Settings, error)
}

// Deps are the long-lived collaborators shared by all scenes
type Deps struct {
	Graph       *engine.Graph
	Time        engine.TimeProvider
	Cues        audio.Cues
	Log         *zap.Logger
	Stages      *level.Catalog
	Session     *session.State
	Store       *session.Store
	FadeCadence time.Duration
	Version     string
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

func (d Deps) cues() audio.Cues {
	if d.Cues == nil {
		return audio.Nop{}
	}
	return d.Cues
}

// teardown collects removal of scene nodes, stale handles are ignored
type teardown []engine.Handle

func (td teardown) release(g *engine.Graph) {
	for _, h := range td {
		_ = g.Remove(h)
	}
}
